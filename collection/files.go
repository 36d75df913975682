package collection

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// reserved would either break paths or upset other tooling when they
// end up in a filename.
const reserved = `/\:*?"<>|`

// Sanitize strips filesystem reserved characters from a title so it
// can be used as a filename on any platform.
func Sanitize(title string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(reserved, r) {
			return -1
		}
		return r
	}, title)
}

var mediaExts = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".aac":  {},
	".flac": {},
	".m4a":  {},
	".opus": {},
	".mp4":  {},
	".mkv":  {},
	".avi":  {},
	".mov":  {},
	".webm": {},
}

// LocalSong is a playable file in the songs directory.
type LocalSong struct {
	Name string
	Size int64
}

// LocalSongs rescans the songs directory. There is no index, the
// filesystem is the source of truth, files added or removed behind our
// back simply show up or disappear.
func (c *Collection) LocalSongs() ([]LocalSong, error) {
	entries, err := os.ReadDir(c.PathSongs())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	songs := make([]LocalSong, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if _, ok := mediaExts[ext]; !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		songs = append(songs, LocalSong{Name: e.Name(), Size: info.Size()})
	}

	sort.Slice(songs, func(i, j int) bool { return songs[i].Name < songs[j].Name })

	return songs, nil
}

// PathSong returns the absolute path of a song by name.
func (c *Collection) PathSong(name string) string {
	return filepath.Join(c.PathSongs(), name)
}

// FindSong locates a playlist entry in the songs directory. Entries
// are usually stored without extension, so an exact match is tried
// first and a match on the extension-less stem second.
func (c *Collection) FindSong(title string) (string, bool) {
	exact := c.PathSong(title)
	if _, err := os.Stat(exact); err == nil {
		return exact, true
	}

	songs, err := c.LocalSongs()
	if err != nil {
		return "", false
	}
	for _, s := range songs {
		stem := strings.TrimSuffix(s.Name, filepath.Ext(s.Name))
		if stem == title {
			return c.PathSong(s.Name), true
		}
	}

	return "", false
}
