package ui

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yaytube/yay/collection"
)

func (s *Session) playback() State {
	switch s.action {
	case actionPlaySong:
		s.playSong()
	case actionPlayPlaylist:
		s.playPlaylist()
	}

	return StateMenu
}

func (s *Session) playSong() {
	songs, err := s.col.LocalSongs()
	if err != nil {
		s.errorf("could not list songs: %s", err)
		return
	}
	if len(songs) == 0 {
		s.notef("No songs downloaded yet.")
		return
	}

	s.renderSongs(songs)
	in := s.prompt("Number to play, anything else cancels: ")
	i, err := strconv.Atoi(in)
	if err != nil || i < 1 || i > len(songs) {
		s.notef("Cancelled.")
		return
	}

	s.play([]string{s.col.PathSong(songs[i-1].Name)})
}

func (s *Session) playPlaylist() {
	name := s.prompt("Playlist name: ")
	titles, err := s.col.Songs(name)
	if collection.IsErrNotExists(err) {
		s.errorf("no playlist named %q", name)
		return
	}
	if err != nil {
		s.errorf("could not read playlist: %s", err)
		return
	}
	if len(titles) == 0 {
		s.notef("Playlist %q is empty.", name)
		return
	}

	paths := make([]string, 0, len(titles))
	for _, title := range titles {
		path, ok := s.col.FindSong(title)
		if !ok {
			s.notef("skipping %q, not in the songs directory", title)
			continue
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		s.notef("None of the songs in %q have been downloaded.", name)
		return
	}

	s.play(paths)
}

// play runs the playback control loop over the given files in order.
func (s *Session) play(paths []string) {
	s.notef("Controls: p pause, r resume, n next, q quit, +/- volume")

	for _, path := range paths {
		if err := s.player.Open(path); err != nil {
			s.errorf("could not play %s: %s", filepath.Base(path), err)
			continue
		}
		s.okf("Playing %s", filepath.Base(path))
		if !s.controls() {
			break
		}
	}

	s.player.Stop()
}

// controls handles playback tokens until the current file ends or is
// skipped (true) or the user quits (false).
func (s *Session) controls() bool {
	for {
		select {
		case <-s.player.Done():
			return true
		case line, ok := <-s.lines:
			if !ok {
				s.eof = true
				return false
			}
			switch strings.TrimSpace(line) {
			case "p":
				s.player.Pause()
			case "r":
				s.player.Resume()
			case "n":
				return true
			case "q":
				return false
			case "+":
				s.player.IncreaseVolume(0.05)
			case "-":
				s.player.IncreaseVolume(-0.05)
			default:
				s.notef("p pause, r resume, n next, q quit, +/- volume")
			}
		}
	}
}
