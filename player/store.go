package player

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/frizinak/binary"
)

// SavePosition stores the current file and position so the next
// session can pick up where this one left off. A no-op when nothing is
// playing or resuming is disabled.
func (s *Session) SavePosition() error {
	s.sem.Lock()
	current, ended := s.current, s.ended
	s.sem.Unlock()

	if s.posFile == "" || current == "" || ended {
		return nil
	}

	pos := s.backend.Position()
	if pos < 0 {
		pos = 0
	}

	stamp := strconv.FormatInt(time.Now().UnixNano(), 36)
	rnd := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, rnd); err != nil {
		return err
	}

	tmp := fmt.Sprintf(
		"%s.%s-%s.tmp",
		s.posFile,
		stamp,
		base64.RawURLEncoding.EncodeToString(rnd),
	)

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := binary.NewWriter(f)
	enc.WriteString(current, 16)
	enc.WriteUint32(uint32(pos / time.Second))
	if err := enc.Err(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	f.Close()
	return os.Rename(tmp, s.posFile)
}

func (s *Session) loadPosition() (string, time.Duration, error) {
	if s.posFile == "" {
		return "", 0, nil
	}

	f, err := os.Open(s.posFile)
	if os.IsNotExist(err) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	dec := binary.NewReader(f)
	file := dec.ReadString(16)
	pos := dec.ReadUint32()
	if err := dec.Err(); err != nil && err != io.EOF {
		return "", 0, err
	}

	return file, time.Duration(pos) * time.Second, nil
}

func (s *Session) clearPosition() {
	if s.posFile == "" {
		return
	}
	os.Remove(s.posFile)
}
