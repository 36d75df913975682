// Package ui implements the interactive menu session: a small state
// machine driving search, downloads, playlists and playback from line
// input.
package ui

import (
	"bufio"
	"context"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yaytube/yay/collection"
	"github.com/yaytube/yay/config"
	"github.com/yaytube/yay/fetch"
)

// State is a session controller state. The session loop runs one state
// at a time until StateExit.
type State int

const (
	StateMenu State = iota
	StateSearching
	StateResultSelection
	StateFormatSelection
	StateDownloading
	StatePlaylistManagement
	StatePlayback
	StateExit
)

// Search results never show more than this many entries.
const searchLimit = 5

// Item is one remote clip offered for download.
type Item struct {
	Title     string
	Locator   string
	Published string
	Duration  string
}

// Searcher finds remote media.
type Searcher interface {
	// Search returns up to limit matches, none is not an error.
	Search(query string, limit int) ([]Item, error)

	// Resolve turns a pasted url into an Item.
	Resolve(rawURL string) (Item, error)
}

// Fetcher downloads remote media, see the fetch package.
type Fetcher interface {
	Fetch(ctx context.Context, locator, destStem string, t fetch.Target) error
}

// Player plays local files one at a time.
type Player interface {
	Open(path string) error
	Pause()
	Resume()
	Stop()
	IncreaseVolume(delta float64)

	// Done is closed when the file opened last stops playing.
	Done() <-chan struct{}
}

// Session owns all interaction state. Input arrives line by line over
// a single channel so the playback loop can select on input and
// end-of-song at the same time.
type Session struct {
	log *log.Logger
	out io.Writer

	lines <-chan string
	eof   bool

	cfgPath string
	cfg     config.Settings

	col    *collection.Collection
	search Searcher
	fetch  Fetcher
	player Player

	// pending interaction context, only meaningful between states
	action  int
	query   string
	results []Item
	picked  Item
	target  fetch.Target
}

func NewSession(
	log *log.Logger,
	in io.Reader,
	out io.Writer,
	cfgPath string,
	cfg config.Settings,
	col *collection.Collection,
	search Searcher,
	fetcher Fetcher,
	play Player,
) *Session {
	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	return &Session{
		log:     log,
		out:     out,
		lines:   lines,
		cfgPath: cfgPath,
		cfg:     cfg,
		col:     col,
		search:  search,
		fetch:   fetcher,
		player:  play,
	}
}

// Run drives the state machine until the user exits or input runs dry.
func (s *Session) Run() error {
	s.banner()
	for st := StateMenu; st != StateExit; {
		st = s.step(st)
	}
	return nil
}

func (s *Session) step(st State) State {
	switch st {
	case StateMenu:
		return s.menu()
	case StateSearching:
		return s.searching()
	case StateResultSelection:
		return s.resultSelection()
	case StateFormatSelection:
		return s.formatSelection()
	case StateDownloading:
		return s.downloading()
	case StatePlaylistManagement:
		return s.playlistManagement()
	case StatePlayback:
		return s.playback()
	}

	return StateExit
}

func (s *Session) readLine() (string, bool) {
	line, ok := <-s.lines
	if !ok {
		s.eof = true
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (s *Session) prompt(label string) string {
	s.printf("%s", label)
	line, _ := s.readLine()
	return line
}

const (
	actionCreatePlaylist = iota
	actionAddToPlaylist
	actionListPlaylists
	actionPlaySong
	actionPlayPlaylist
)

func (s *Session) menu() State {
	s.renderMenu()

	choice := s.prompt("> ")
	if s.eof {
		return StateExit
	}

	switch choice {
	case "1":
		s.query = s.prompt("Song name: ")
		if s.query == "" {
			return StateMenu
		}
		return StateSearching
	case "2":
		s.query = s.prompt("Artist name: ")
		if s.query == "" {
			return StateMenu
		}
		return StateSearching
	case "3":
		u := s.prompt("YouTube url: ")
		if u == "" {
			return StateMenu
		}
		item, err := s.search.Resolve(u)
		if err != nil {
			s.errorf("could not resolve url: %s", err)
			return StateMenu
		}
		s.picked = item
		return StateFormatSelection
	case "4":
		s.action = actionCreatePlaylist
		return StatePlaylistManagement
	case "5":
		s.action = actionAddToPlaylist
		return StatePlaylistManagement
	case "6":
		s.action = actionListPlaylists
		return StatePlaylistManagement
	case "7":
		s.listSongs()
		return StateMenu
	case "8":
		s.action = actionPlaySong
		return StatePlayback
	case "9":
		s.action = actionPlayPlaylist
		return StatePlayback
	case "10":
		s.updateSettings()
		return StateMenu
	case "11", "q", "exit":
		s.notef("Bye.")
		return StateExit
	}

	s.errorf("invalid choice: %s", choice)
	return StateMenu
}

func (s *Session) searching() State {
	results, err := s.search.Search(s.query, searchLimit)
	if err != nil {
		s.errorf("search failed: %s", err)
		return StateMenu
	}
	if len(results) == 0 {
		s.notef("No results found.")
		return StateMenu
	}

	s.results = results
	s.renderResults(results)
	return StateResultSelection
}

func (s *Session) resultSelection() State {
	in := s.prompt("Number to download, anything else cancels: ")
	i, err := strconv.Atoi(in)
	if err != nil || i < 1 || i > len(s.results) {
		s.notef("Cancelled.")
		return StateMenu
	}

	s.picked = s.results[i-1]
	return StateFormatSelection
}

func (s *Session) formatSelection() State {
	switch s.prompt("Audio or video? (a/v): ") {
	case "a", "audio":
		q := s.prompt("Audio quality in kbit/s (128/192/256/320) [" + s.cfg.AudioQuality + "]: ")
		if q == "" {
			q = s.cfg.AudioQuality
		}
		if !config.ValidAudioQuality(q) {
			s.notef("%s is not a valid quality, using %s", q, s.cfg.AudioQuality)
			q = s.cfg.AudioQuality
		}
		s.target = fetch.Target{Kind: fetch.Audio, Format: s.cfg.AudioFormat, Quality: q}
	case "v", "video":
		s.target = fetch.Target{
			Kind:    fetch.Video,
			Format:  s.cfg.VideoFormat,
			Quality: s.cfg.VideoQuality,
		}
	default:
		s.notef("Cancelled.")
		return StateMenu
	}

	return StateDownloading
}

// Audio ends up in the songs directory so it can be played from here,
// video in the configured download path.
func (s *Session) destStem() string {
	dir := s.cfg.DownloadPath
	if s.target.Kind == fetch.Audio {
		dir = s.col.PathSongs()
	}
	return filepath.Join(dir, collection.Sanitize(s.picked.Title))
}

func (s *Session) downloading() State {
	stem := s.destStem()
	s.notef("Downloading %s ...", s.picked.Title)

	if err := s.fetch.Fetch(context.Background(), s.picked.Locator, stem, s.target); err != nil {
		s.errorf("download failed: %s", err)
		return StateMenu
	}

	s.okf("Download complete: %s", fetch.FinalPath(stem, s.target))
	return StateMenu
}

func (s *Session) playlistManagement() State {
	switch s.action {
	case actionCreatePlaylist:
		name := s.prompt("New playlist name: ")
		if name == "" {
			return StateMenu
		}
		err := s.col.Create(name)
		switch {
		case collection.IsErrExists(err):
			s.errorf("playlist %q already exists", name)
		case err != nil:
			s.errorf("could not create playlist: %s", err)
		default:
			s.okf("Created playlist %q.", strings.TrimSpace(name))
		}
	case actionAddToPlaylist:
		name := s.prompt("Playlist name: ")
		title := s.prompt("Song title: ")
		if name == "" || title == "" {
			return StateMenu
		}
		err := s.col.AddSong(name, title)
		switch {
		case collection.IsErrNotExists(err):
			s.errorf("no playlist named %q", name)
		case err != nil:
			s.errorf("could not add song: %s", err)
		default:
			s.okf("Added %q to %q.", title, name)
		}
	case actionListPlaylists:
		s.renderPlaylists(s.col.List())
	}

	return StateMenu
}

func (s *Session) listSongs() {
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
}
