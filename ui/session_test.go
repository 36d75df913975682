package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaytube/yay/collection"
	"github.com/yaytube/yay/config"
	"github.com/yaytube/yay/fetch"
)

func init() {
	color.NoColor = true
}

type fakeSearch struct {
	results []Item
	err     error

	resolved Item
	queries  []string
}

func (f *fakeSearch) Search(q string, limit int) ([]Item, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) > limit {
		return f.results[:limit], nil
	}
	return f.results, nil
}

func (f *fakeSearch) Resolve(u string) (Item, error) {
	if f.err != nil {
		return Item{}, f.err
	}
	return f.resolved, nil
}

type fetchCall struct {
	locator string
	stem    string
	target  fetch.Target
}

type fakeFetch struct {
	calls []fetchCall
	err   error
}

func (f *fakeFetch) Fetch(ctx context.Context, locator, stem string, t fetch.Target) error {
	f.calls = append(f.calls, fetchCall{locator, stem, t})
	return f.err
}

type fakePlayer struct {
	opened  []string
	done    chan struct{}
	autoEnd bool
	paused  bool
	stopped bool
	volume  float64
}

func (f *fakePlayer) Open(path string) error {
	f.opened = append(f.opened, path)
	f.done = make(chan struct{})
	if f.autoEnd {
		close(f.done)
	}
	return nil
}

func (f *fakePlayer) Pause()                   { f.paused = true }
func (f *fakePlayer) Resume()                  { f.paused = false }
func (f *fakePlayer) Stop()                    { f.stopped = true }
func (f *fakePlayer) IncreaseVolume(d float64) { f.volume += d }
func (f *fakePlayer) Done() <-chan struct{}    { return f.done }

type harness struct {
	out     *bytes.Buffer
	col     *collection.Collection
	search  *fakeSearch
	fetch   *fakeFetch
	player  *fakePlayer
	cfg     config.Settings
	cfgPath string
}

func run(t *testing.T, h *harness, script string) string {
	t.Helper()

	if h.out == nil {
		h.out = bytes.NewBuffer(nil)
	}
	if h.col == nil {
		h.col = collection.New(log.New(io.Discard, "", 0), t.TempDir())
		require.NoError(t, h.col.Init())
	}
	if h.search == nil {
		h.search = &fakeSearch{}
	}
	if h.fetch == nil {
		h.fetch = &fakeFetch{}
	}
	if h.player == nil {
		h.player = &fakePlayer{autoEnd: true}
	}
	if h.cfg.AudioFormat == "" {
		h.cfg = config.Default()
		h.cfg.DownloadPath = t.TempDir()
	}
	if h.cfgPath == "" {
		h.cfgPath = filepath.Join(t.TempDir(), "config.json")
	}

	s := NewSession(
		log.New(io.Discard, "", 0),
		strings.NewReader(script),
		h.out,
		h.cfgPath,
		h.cfg,
		h.col,
		h.search,
		h.fetch,
		h.player,
	)
	require.NoError(t, s.Run())

	return h.out.String()
}

func TestExit(t *testing.T) {
	out := run(t, &harness{}, "11\n")
	assert.Contains(t, out, "Bye.")
}

func TestSearchNoResults(t *testing.T) {
	h := &harness{search: &fakeSearch{}}
	out := run(t, h, "1\nsome song\n")

	assert.Contains(t, out, "No results found.")
	assert.NotContains(t, out, "Audio or video?")
	assert.Empty(t, h.fetch.calls)
}

func TestSelectionOutOfRange(t *testing.T) {
	h := &harness{search: &fakeSearch{results: []Item{
		{Title: "One", Locator: "u1"},
		{Title: "Two", Locator: "u2"},
	}}}
	out := run(t, h, "1\nsome song\n9\n")

	assert.Contains(t, out, "Cancelled.")
	assert.Empty(t, h.fetch.calls)
}

func TestSelectionNonNumeric(t *testing.T) {
	h := &harness{search: &fakeSearch{results: []Item{{Title: "One", Locator: "u1"}}}}
	run(t, h, "1\nsome song\nc\n")
	assert.Empty(t, h.fetch.calls)
}

func TestAudioDownload(t *testing.T) {
	h := &harness{search: &fakeSearch{results: []Item{
		{Title: `A/B:C?`, Locator: "https://youtu.be/abc"},
	}}}
	out := run(t, h, "1\nsome song\n1\na\n\n")

	require.Len(t, h.fetch.calls, 1)
	call := h.fetch.calls[0]
	assert.Equal(t, "https://youtu.be/abc", call.locator)
	assert.Equal(t, filepath.Join(h.col.PathSongs(), "ABC"), call.stem)
	assert.Equal(t, fetch.Target{Kind: fetch.Audio, Format: "mp3", Quality: "192"}, call.target)
	assert.Contains(t, out, "Download complete")
}

func TestAudioQualityFallback(t *testing.T) {
	h := &harness{search: &fakeSearch{results: []Item{{Title: "Song", Locator: "u"}}}}
	out := run(t, h, "1\nsome song\n1\na\n999\n")

	require.Len(t, h.fetch.calls, 1)
	assert.Equal(t, "192", h.fetch.calls[0].target.Quality)
	assert.Contains(t, out, "not a valid quality")
}

func TestVideoDownloadFromURL(t *testing.T) {
	h := &harness{search: &fakeSearch{
		resolved: Item{Title: "Clip", Locator: "https://youtu.be/xyz"},
	}}
	run(t, h, "3\nyoutu.be/xyz\nv\n")

	require.Len(t, h.fetch.calls, 1)
	call := h.fetch.calls[0]
	assert.Equal(t, fetch.Video, call.target.Kind)
	assert.Equal(t, "mp4", call.target.Format)
	assert.False(t, strings.HasPrefix(call.stem, h.col.PathSongs()))
}

func TestResolveFailure(t *testing.T) {
	h := &harness{search: &fakeSearch{err: errors.New("nope")}}
	out := run(t, h, "3\nvimeo.com/123\n")

	assert.Contains(t, out, "could not resolve url")
	assert.Empty(t, h.fetch.calls)
}

func TestDownloadFailure(t *testing.T) {
	h := &harness{
		search: &fakeSearch{results: []Item{{Title: "Song", Locator: "u"}}},
		fetch:  &fakeFetch{err: errors.New("boom")},
	}
	out := run(t, h, "1\nsome song\n1\nv\n1\n")

	assert.Contains(t, out, "download failed")
	// a failed download drops back to the menu, entry 1 starts a new search
	assert.Contains(t, out, "Song name:")
}

func TestPlaylistCreateDuplicate(t *testing.T) {
	h := &harness{}
	out := run(t, h, "4\nRoad Trip\n4\nroad trip\n")
	assert.Contains(t, out, `Created playlist "Road Trip".`)
	assert.Contains(t, out, "already exists")

	require.Len(t, h.col.List(), 1)
	assert.Equal(t, "Road Trip", h.col.List()[0].Name)
}

func TestPlaylistAddUnknown(t *testing.T) {
	out := run(t, &harness{}, "5\nnope\nSong A\n")
	assert.Contains(t, out, `no playlist named "nope"`)
}

func TestPlaySong(t *testing.T) {
	col := collection.New(log.New(io.Discard, "", 0), t.TempDir())
	require.NoError(t, col.Init())
	require.NoError(t, os.WriteFile(col.PathSong("a.mp3"), []byte("x"), 0644))

	h := &harness{col: col, player: &fakePlayer{autoEnd: true}}
	run(t, h, "8\n1\n")

	assert.Equal(t, []string{col.PathSong("a.mp3")}, h.player.opened)
	assert.True(t, h.player.stopped)
}

func TestPlayPlaylistSkipsMissing(t *testing.T) {
	col := collection.New(log.New(io.Discard, "", 0), t.TempDir())
	require.NoError(t, col.Init())
	require.NoError(t, col.Create("mix"))
	require.NoError(t, col.AddSong("mix", "here"))
	require.NoError(t, col.AddSong("mix", "gone"))
	require.NoError(t, os.WriteFile(col.PathSong("here.mp3"), []byte("x"), 0644))

	h := &harness{col: col, player: &fakePlayer{autoEnd: true}}
	out := run(t, h, "9\nmix\n")

	assert.Equal(t, []string{col.PathSong("here.mp3")}, h.player.opened)
	assert.Contains(t, out, `skipping "gone"`)
}

func TestPlaybackQuit(t *testing.T) {
	col := collection.New(log.New(io.Discard, "", 0), t.TempDir())
	require.NoError(t, col.Init())
	require.NoError(t, col.Create("mix"))
	require.NoError(t, col.AddSong("mix", "a"))
	require.NoError(t, col.AddSong("mix", "b"))
	require.NoError(t, os.WriteFile(col.PathSong("a.mp3"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(col.PathSong("b.mp3"), []byte("x"), 0644))

	// q during the first song, the second never starts
	h := &harness{col: col, player: &fakePlayer{}}
	run(t, h, "9\nmix\nq\n")

	assert.Equal(t, []string{col.PathSong("a.mp3")}, h.player.opened)
	assert.True(t, h.player.stopped)
}

func TestSettingsKeepEverything(t *testing.T) {
	h := &harness{}
	out := run(t, h, "10\n\n\n\n\n\n")
	assert.Contains(t, out, "Settings saved.")
}

func TestSettingsChangePersisted(t *testing.T) {
	h := &harness{}
	// pick audio format 2 (wav) and quality 4 (320), keep the rest
	out := run(t, h, "10\n2\n4\n\n\n\n")
	assert.Contains(t, out, "Settings saved.")

	saved, err := config.Load(h.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "wav", saved.AudioFormat)
	assert.Equal(t, "320", saved.AudioQuality)
	assert.Equal(t, h.cfg.VideoFormat, saved.VideoFormat)
	assert.Equal(t, h.cfg.VideoQuality, saved.VideoQuality)
	assert.Equal(t, h.cfg.DownloadPath, saved.DownloadPath)
}

func TestSettingsInvalidChoiceKeepsCurrent(t *testing.T) {
	h := &harness{}
	out := run(t, h, "10\n9\n\n\n\n\n")
	assert.Contains(t, out, "invalid choice")

	saved, err := config.Load(h.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, h.cfg.AudioFormat, saved.AudioFormat)
}
