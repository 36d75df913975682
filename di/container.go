// Package di lazily wires the application together.
package di

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	libmpv "github.com/yaytube/yay/backend/mpv/lib"
	rpcmpv "github.com/yaytube/yay/backend/mpv/rpc"
	"github.com/yaytube/yay/collection"
	"github.com/yaytube/yay/config"
	"github.com/yaytube/yay/fetch"
	"github.com/yaytube/yay/player"
	"github.com/yaytube/yay/ui"
	"github.com/yaytube/yay/youtube"
)

type Config struct {
	// Defaults to an stderr logger
	Log *log.Logger

	// Defaults to ~/.config/yay
	StorePath string

	// Defaults to os.Stderr
	BackendLogger io.Writer

	// Defaults to os.Stdin / os.Stdout
	Stdin  io.Reader
	Stdout io.Writer
}

type Backend interface {
	Init() error

	player.Backend
}

type BackendBuilder struct {
	Name  string
	Build func(di *DI, log *log.Logger) (Backend, error)
}

type DI struct {
	c        Config
	backends []BackendBuilder

	store            string
	log              *log.Logger
	backend          Backend
	backendName      string
	backendAvailable error
	player           *player.Session
	collection       *collection.Collection
	fetcher          *fetch.Fetcher
	session          *ui.Session
}

func New(c Config) *DI {
	di := &DI{c: c}
	di.backends = []BackendBuilder{
		{
			Name: "libmpv",
			Build: func(di *DI, log *log.Logger) (Backend, error) {
				return libmpv.New(log), nil
			},
		},
		{
			Name: "mpv",
			Build: func(di *DI, log *log.Logger) (Backend, error) {
				return rpcmpv.New(log, filepath.Join(di.Store(), "mpv-ipc.sock"), nil), nil
			},
		},
	}

	return di
}

func (di *DI) Log() *log.Logger {
	if di.log == nil {
		di.log = di.c.Log
		if di.log == nil {
			di.log = log.New(os.Stderr, "", 0)
		}
	}

	return di.log
}

func (di *DI) Store() string {
	if di.store == "" {
		if di.c.StorePath != "" {
			di.store = di.c.StorePath
			return di.store
		}

		conf, err := os.UserConfigDir()
		if err != nil {
			panic(err)
		}
		di.store = filepath.Join(conf, "yay")
	}

	return di.store
}

func (di *DI) ConfigPath() string { return filepath.Join(di.Store(), "config.json") }

// Settings loads the persisted settings, a corrupt file is a hard
// error so we never clobber it with defaults.
func (di *DI) Settings() (config.Settings, error) {
	return config.Load(di.ConfigPath())
}

func (di *DI) BackendAvailable() (string, error) {
	di.Backend()
	return di.backendName, di.backendAvailable
}

func (di *DI) Backend() Backend {
	if di.backend == nil {
		w := di.c.BackendLogger
		if w == nil {
			w = os.Stderr
		}
		for _, b := range di.backends {
			di.backendName = b.Name

			l := log.New(w, strings.ToUpper(b.Name)+": ", 0)
			be, err := b.Build(di, l)
			if err != nil {
				l.Println(err)
				di.backendAvailable = err
				continue
			}

			if err := be.Init(); err != nil {
				l.Println(err)
				di.backendAvailable = err
				continue
			}

			di.backend = be
			di.backendAvailable = nil
			break
		}
	}

	return di.backend
}

func (di *DI) Player() *player.Session {
	if di.player == nil {
		store := filepath.Join(di.Store(), "player-position")
		di.player = player.NewSession(di.Log(), di.Backend(), store)
	}
	return di.player
}

func (di *DI) Collection() (*collection.Collection, error) {
	if di.collection == nil {
		c := collection.New(di.Log(), di.Store())
		if err := c.Init(); err != nil {
			return nil, err
		}
		if err := c.Load(); err != nil {
			return nil, err
		}
		di.collection = c
	}
	return di.collection, nil
}

func (di *DI) Fetcher() *fetch.Fetcher {
	if di.fetcher == nil {
		out := di.c.Stdout
		if out == nil {
			out = os.Stdout
		}
		di.fetcher = fetch.New(di.Log(), out)
		if err := di.fetcher.Check(); err != nil {
			di.Log().Println("warning:", err)
		}
	}
	return di.fetcher
}

// Session builds the interactive session, failing early on anything
// that would make it useless: corrupt stores or no playback backend.
func (di *DI) Session() (*ui.Session, error) {
	if di.session == nil {
		settings, err := di.Settings()
		if err != nil {
			return nil, err
		}

		col, err := di.Collection()
		if err != nil {
			return nil, err
		}

		if name, err := di.BackendAvailable(); err != nil {
			return nil, fmt.Errorf("no playback backend (%s): %w", name, err)
		}

		in := di.c.Stdin
		if in == nil {
			in = os.Stdin
		}
		out := di.c.Stdout
		if out == nil {
			out = os.Stdout
		}

		di.session = ui.NewSession(
			di.Log(),
			in,
			out,
			di.ConfigPath(),
			settings,
			col,
			Catalog{},
			di.Fetcher(),
			di.Player(),
		)
	}

	return di.session, nil
}

// Close releases the playback backend, persisting the resume position
// on the way out.
func (di *DI) Close() error {
	if di.player != nil {
		return di.player.Close()
	}
	if di.backend != nil {
		return di.backend.Close()
	}
	return nil
}

// Catalog adapts the youtube package to the ui.Searcher boundary.
type Catalog struct{}

func (Catalog) Search(query string, limit int) ([]ui.Item, error) {
	rs, err := youtube.Search(query, limit)
	if err != nil {
		return nil, err
	}

	items := make([]ui.Item, 0, len(rs))
	for _, r := range rs {
		items = append(items, ui.Item{
			Title:     r.Title(),
			Locator:   r.URL().String(),
			Published: r.Published(),
			Duration:  r.Duration(),
		})
	}

	return items, nil
}

func (Catalog) Resolve(rawURL string) (ui.Item, error) {
	r, err := youtube.FromURL(rawURL, "")
	if err != nil {
		return ui.Item{}, err
	}
	if err := r.UpdateTitle(); err != nil {
		return ui.Item{}, err
	}

	return ui.Item{Title: r.Title(), Locator: r.URL().String()}, nil
}
