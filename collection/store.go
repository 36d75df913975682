package collection

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

func (c *Collection) pathDB() string { return filepath.Join(c.dir, "playlists.json") }

// PathSongs is the directory downloads end up in and playback reads
// from.
func (c *Collection) PathSongs() string { return filepath.Join(c.dir, "songs") }

// Init creates the store and songs directories.
func (c *Collection) Init() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.PathSongs(), 0755)
}

// Load reads the playlist file. A missing file yields an empty
// collection. Anything but a JSON object of string lists yields an
// error wrapping ErrCorrupt.
//
// The file is decoded token by token so the creation order of
// playlists survives a reload, a plain map would shuffle it.
func (c *Collection) Load() error {
	db, err := os.Open(c.pathDB())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	corrupt := func(err error) error {
		return fmt.Errorf("%w: %s: %s", ErrCorrupt, c.pathDB(), err)
	}

	dec := json.NewDecoder(db)
	tok, err := dec.Token()
	if err != nil {
		return corrupt(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return corrupt(fmt.Errorf("not a JSON object"))
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return corrupt(err)
		}
		name, ok := tok.(string)
		if !ok {
			return corrupt(fmt.Errorf("non-string playlist name"))
		}

		var songs []string
		if err := dec.Decode(&songs); err != nil {
			return corrupt(err)
		}
		if songs == nil {
			songs = make([]string, 0)
		}

		key := c.clean(name)
		if _, ok := c.playlists[key]; ok {
			return corrupt(fmt.Errorf("duplicate playlist %q", name))
		}

		c.order = append(c.order, strings.TrimSpace(name))
		c.playlists[key] = songs
	}

	if _, err := dec.Token(); err != nil {
		return corrupt(err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return corrupt(err)
		}
		return corrupt(fmt.Errorf("trailing data after playlists: %v", tok))
	}

	return nil
}

// Save writes the full mapping, temp file and rename.
func (c *Collection) Save() error {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i, n := range c.order {
		if i != 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")

		name, err := json.Marshal(n)
		if err != nil {
			return err
		}
		songs, err := json.Marshal(c.playlists[c.clean(n)])
		if err != nil {
			return err
		}

		buf.Write(name)
		buf.WriteString(": ")
		buf.Write(songs)
	}
	if len(c.order) != 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	path := c.pathDB()
	tmp := TempFile(path)
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// TempFile generates a non-existing filename next to file.
func TempFile(file string) string {
	stamp := strconv.FormatInt(time.Now().UnixNano(), 36)
	rnd := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, rnd)
	if err != nil {
		panic(err)
	}

	return fmt.Sprintf(
		"%s.%s-%s.tmp",
		file,
		stamp,
		base64.RawURLEncoding.EncodeToString(rnd),
	)
}
