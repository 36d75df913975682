// Package collection manages named playlists and the local songs
// directory they refer to.
package collection

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

var (
	ErrNotExists = errors.New("playlist does not exist")
	ErrExists    = errors.New("playlist already exists")
)

func IsErrNotExists(err error) bool { return errors.Is(err, ErrNotExists) }
func IsErrExists(err error) bool    { return errors.Is(err, ErrExists) }

// ErrCorrupt indicates a playlist file that exists but can not be
// parsed. The collection never overwrites such a file.
var ErrCorrupt = errors.New("corrupt playlist file")

func IsErrCorrupt(err error) bool { return errors.Is(err, ErrCorrupt) }

// Playlist is a named, ordered list of song titles. Titles reference
// files in the songs directory by name, without path.
type Playlist struct {
	Name  string
	Songs []string
}

// Collection holds every playlist and remembers in which order they
// were created. Names keep the casing they were typed with, lookups
// are case-insensitive. Every mutation is persisted before it returns.
type Collection struct {
	log *log.Logger
	dir string

	// order holds names as entered, playlists is keyed by the
	// cleaned form of those names.
	order     []string
	playlists map[string][]string
}

func New(log *log.Logger, dir string) *Collection {
	return &Collection{
		log:       log,
		dir:       dir,
		order:     make([]string, 0),
		playlists: make(map[string][]string),
	}
}

func (c *Collection) clean(n string) string {
	return strings.TrimSpace(strings.ToLower(n))
}

// Exists reports if the given playlist exists.
func (c *Collection) Exists(n string) bool {
	_, ok := c.playlists[c.clean(n)]
	return ok
}

// Create creates a new playlist and persists the collection. The name
// is stored as entered, modulo surrounding whitespace.
func (c *Collection) Create(n string) error {
	n = strings.TrimSpace(n)
	key := c.clean(n)
	if key == "" {
		return fmt.Errorf("playlist name can not be empty")
	}
	if _, ok := c.playlists[key]; ok {
		return fmt.Errorf("%w: %s", ErrExists, n)
	}

	c.order = append(c.order, n)
	c.playlists[key] = make([]string, 0)

	return c.Save()
}

// AddSong appends the given song title to a playlist and persists the
// collection. Duplicates are allowed, a playlist is a play order.
func (c *Collection) AddSong(n, title string) error {
	key := c.clean(n)
	songs, ok := c.playlists[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotExists, n)
	}

	c.playlists[key] = append(songs, title)

	return c.Save()
}

// List returns all playlists in creation order.
func (c *Collection) List() []Playlist {
	l := make([]Playlist, 0, len(c.order))
	for _, n := range c.order {
		l = append(l, Playlist{Name: n, Songs: c.songs(n)})
	}

	return l
}

// Songs returns the titles of the given playlist in play order.
func (c *Collection) Songs(n string) ([]string, error) {
	if _, ok := c.playlists[c.clean(n)]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExists, n)
	}

	return c.songs(n), nil
}

func (c *Collection) songs(n string) []string {
	key := c.clean(n)
	songs := make([]string, len(c.playlists[key]))
	copy(songs, c.playlists[key])
	return songs
}
