package player

import (
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	playing string
	paused  bool
	done    chan struct{}
	volume  float64
	pos     time.Duration
	seeked  time.Duration
	stopped bool
}

func (f *fakeBackend) Play(n string) (chan struct{}, error) {
	f.playing = n
	f.done = make(chan struct{}, 1)
	return f.done, nil
}

func (f *fakeBackend) Paused() bool                { return f.paused }
func (f *fakeBackend) Pause(v bool)                { f.paused = v }
func (f *fakeBackend) SetVolume(n float64)         { f.volume = n }
func (f *fakeBackend) IncreaseVolume(n float64)    { f.volume += n }
func (f *fakeBackend) Volume() float64             { return f.volume }
func (f *fakeBackend) Seek(d time.Duration, w int) { f.seeked = d }
func (f *fakeBackend) Position() time.Duration     { return f.pos }
func (f *fakeBackend) Duration() time.Duration     { return time.Minute }
func (f *fakeBackend) Stop()                       { f.stopped = true }
func (f *fakeBackend) Close() error                { return nil }

func testSession(t *testing.T) (*Session, *fakeBackend) {
	t.Helper()
	b := &fakeBackend{}
	posFile := filepath.Join(t.TempDir(), "position")
	return NewSession(log.New(io.Discard, "", 0), b, posFile), b
}

func TestSessionStates(t *testing.T) {
	s, b := testSession(t)

	assert.Equal(t, State{}, s.State())

	require.NoError(t, s.Open("/songs/a.mp3"))
	assert.Equal(t, "/songs/a.mp3", b.playing)
	assert.Equal(t, State{Playing: true}, s.State())

	s.Pause()
	assert.Equal(t, State{Paused: true}, s.State())
	s.Resume()
	assert.Equal(t, State{Playing: true}, s.State())

	done := s.Done()
	b.done <- struct{}{}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("done channel never closed")
	}
	assert.Equal(t, State{Ended: true}, s.State())
}

func TestSessionStop(t *testing.T) {
	s, b := testSession(t)
	require.NoError(t, s.Open("/songs/a.mp3"))
	s.Stop()
	assert.True(t, b.stopped)
	assert.Equal(t, State{}, s.State())
}

func TestResumePosition(t *testing.T) {
	b := &fakeBackend{pos: 83 * time.Second}
	posFile := filepath.Join(t.TempDir(), "position")
	s := NewSession(log.New(io.Discard, "", 0), b, posFile)

	require.NoError(t, s.Open("/songs/a.mp3"))
	require.NoError(t, s.SavePosition())

	re := NewSession(log.New(io.Discard, "", 0), b, posFile)
	file, pos, err := re.loadPosition()
	require.NoError(t, err)
	assert.Equal(t, "/songs/a.mp3", file)
	assert.Equal(t, 83*time.Second, pos)

	// opening the stored file seeks to the stored position
	require.NoError(t, re.Open("/songs/a.mp3"))
	assert.Equal(t, 83*time.Second, b.seeked)

	// and consumes it
	file, pos, err = re.loadPosition()
	require.NoError(t, err)
	assert.Equal(t, "", file)
	assert.Equal(t, time.Duration(0), pos)
}

func TestResumeSkippedForOtherFile(t *testing.T) {
	b := &fakeBackend{pos: 10 * time.Second}
	posFile := filepath.Join(t.TempDir(), "position")
	s := NewSession(log.New(io.Discard, "", 0), b, posFile)

	require.NoError(t, s.Open("/songs/a.mp3"))
	require.NoError(t, s.SavePosition())

	re := NewSession(log.New(io.Discard, "", 0), b, posFile)
	require.NoError(t, re.Open("/songs/b.mp3"))
	assert.Equal(t, time.Duration(0), b.seeked)

	// playing something else leaves the stored position alone
	file, pos, err := re.loadPosition()
	require.NoError(t, err)
	assert.Equal(t, "/songs/a.mp3", file)
	assert.Equal(t, 10*time.Second, pos)

	// so the original file still resumes
	require.NoError(t, re.Open("/songs/a.mp3"))
	assert.Equal(t, 10*time.Second, b.seeked)
}
