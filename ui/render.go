package ui

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/yaytube/yay/collection"
)

var (
	cHeader = color.New(color.FgCyan, color.Bold)
	cOK     = color.New(color.FgGreen)
	cErr    = color.New(color.FgRed)
	cNote   = color.New(color.FgYellow)
)

func (s *Session) printf(format string, v ...interface{}) {
	fmt.Fprintf(s.out, format, v...)
}

func (s *Session) okf(format string, v ...interface{}) {
	cOK.Fprintf(s.out, format+"\n", v...)
}

func (s *Session) errorf(format string, v ...interface{}) {
	cErr.Fprintf(s.out, format+"\n", v...)
}

func (s *Session) notef(format string, v ...interface{}) {
	cNote.Fprintf(s.out, format+"\n", v...)
}

func (s *Session) banner() {
	cHeader.Fprintln(s.out, `
                    _        _
  _   _  __ _ _   _| |_ _   _| |__   ___
 | | | |/ _`+"`"+` | | | | __| | | | '_ \ / _ \
 | |_| | (_| | |_| | |_| |_| | |_) |  __/
  \__, |\__,_|\__, |\__|\__,_|_.__/ \___|
  |___/       |___/   search. grab. play.`)
}

var menuEntries = []string{
	"Search for a song",
	"Search for an artist",
	"Download from a YouTube url",
	"Create a playlist",
	"Add a song to a playlist",
	"List playlists",
	"List downloaded songs",
	"Play a song",
	"Play a playlist",
	"Settings",
	"Exit",
}

func (s *Session) renderMenu() {
	cHeader.Fprintln(s.out, "\nWhat do you want to do?")
	for i, e := range menuEntries {
		fmt.Fprintf(s.out, " %2d) %s\n", i+1, e)
	}
}

func (s *Session) renderResults(items []Item) {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tUPLOADED\tLENGTH")
	for i, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, it.Title, it.Published, it.Duration)
	}
	w.Flush()
}

func (s *Session) renderSongs(songs []collection.LocalSong) {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFILE\tSIZE")
	for i, song := range songs {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, song.Name, humanize.Bytes(uint64(song.Size)))
	}
	w.Flush()
}

func (s *Session) renderPlaylists(playlists []collection.Playlist) {
	if len(playlists) == 0 {
		s.notef("No playlists yet.")
		return
	}

	for _, p := range playlists {
		cHeader.Fprintf(s.out, "%s (%d)\n", p.Name, len(p.Songs))
		for i, song := range p.Songs {
			fmt.Fprintf(s.out, "  %2d. %s\n", i+1, song)
		}
	}
}
