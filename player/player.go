// Package player provides playback of local files through a Backend.
package player

import (
	"io"
	"log"
	"sync"
	"time"
)

// Backend is the grittier interface to an actual music player.
type Backend interface {
	// Play should play the given string (file or url)
	// and send once on done to signal EOF.
	Play(string) (done chan struct{}, err error)

	// Paused must report if the player is paused.
	Paused() bool

	// Pause must pause the player.
	Pause(bool)

	// SetVolume must update the player volume. argument is always
	// between 0 and 1.
	SetVolume(float64)

	// IncreaseVolume should change the volume by the given delta.
	IncreaseVolume(float64)

	// Volume must report the current volume.
	Volume() float64

	// Seek must seek to the given duration if whence == io.SeekStart
	// and do a relative seek if whence == io.SeekCurrent.
	Seek(d time.Duration, whence int)

	// Position must report the current position in the file.
	Position() time.Duration

	// Duration must report the total file duration.
	Duration() time.Duration

	// Stop must stop playing.
	Stop()

	// Close should release as many resources as possible as the
	// Backend wont be used any more.
	Close() error
}

// State is a snapshot of a session.
type State struct {
	Playing bool
	Paused  bool
	Ended   bool
}

// Session plays one file at a time on a Backend. What to play next is
// the caller's business.
type Session struct {
	sem     sync.Mutex
	log     *log.Logger
	backend Backend

	posFile string

	current string
	done    chan struct{}
	ended   bool
}

// NewSession constructs a session. posFile is where the resume
// position is persisted, empty disables resuming.
func NewSession(log *log.Logger, backend Backend, posFile string) *Session {
	return &Session{log: log, backend: backend, posFile: posFile}
}

// Open starts playback of the given file, stopping whatever played
// before. If a resume position was stored for exactly this file,
// playback continues from there.
func (s *Session) Open(path string) error {
	s.sem.Lock()
	defer s.sem.Unlock()

	done, err := s.backend.Play(path)
	if err != nil {
		return err
	}

	s.current = path
	s.ended = false

	relay := make(chan struct{})
	s.done = relay
	go func() {
		<-done
		s.sem.Lock()
		if s.done == relay {
			s.ended = true
		}
		s.sem.Unlock()
		close(relay)
	}()

	if file, pos, err := s.loadPosition(); err == nil && file == path {
		if pos > 0 {
			s.backend.Seek(pos, io.SeekStart)
		}
		s.clearPosition()
	}

	return nil
}

// Done returns a channel that is closed when the file opened last
// finishes playing. A stop counts as finishing.
func (s *Session) Done() <-chan struct{} {
	s.sem.Lock()
	defer s.sem.Unlock()
	return s.done
}

func (s *Session) Pause()  { s.backend.Pause(true) }
func (s *Session) Resume() { s.backend.Pause(false) }

func (s *Session) Stop() {
	s.sem.Lock()
	s.current = ""
	s.sem.Unlock()
	s.backend.Stop()
}

// State reports what the session is up to.
func (s *Session) State() State {
	s.sem.Lock()
	defer s.sem.Unlock()

	if s.current == "" {
		return State{}
	}
	if s.ended {
		return State{Ended: true}
	}
	if s.backend.Paused() {
		return State{Paused: true}
	}
	return State{Playing: true}
}

func (s *Session) SetVolume(n float64)      { s.backend.SetVolume(n) }
func (s *Session) IncreaseVolume(n float64) { s.backend.IncreaseVolume(n) }
func (s *Session) Volume() float64          { return s.backend.Volume() }

func (s *Session) Position() time.Duration { return s.backend.Position() }
func (s *Session) Duration() time.Duration { return s.backend.Duration() }

// Close persists the resume position of whatever is playing and
// releases the backend.
func (s *Session) Close() error {
	if err := s.SavePosition(); err != nil {
		s.log.Println("save position:", err)
	}
	return s.backend.Close()
}
