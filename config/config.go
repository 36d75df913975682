// Package config stores the user settings that drive downloads:
// formats, qualities and the download directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCorrupt indicates a settings file that exists but can not be
// parsed. Callers should abort rather than overwrite it.
var ErrCorrupt = errors.New("corrupt settings file")

func IsErrCorrupt(err error) bool { return errors.Is(err, ErrCorrupt) }

// Option sets offered by the interactive settings menu. Values read
// from elsewhere (e.g. a quality typed during a download) are validated
// against the same sets.
var (
	AudioFormats   = []string{"mp3", "wav", "aac", "flac"}
	AudioQualities = []string{"128", "192", "256", "320"}
	VideoFormats   = []string{"mp4", "mkv", "avi", "mov"}
	VideoQualities = []string{"lowest", "low", "medium", "high", "best"}
)

func ValidAudioFormat(v string) bool  { return contains(AudioFormats, v) }
func ValidAudioQuality(v string) bool { return contains(AudioQualities, v) }
func ValidVideoFormat(v string) bool  { return contains(VideoFormats, v) }
func ValidVideoQuality(v string) bool { return contains(VideoQualities, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Settings is the full persisted record. Audio qualities are bitrates
// in kbit/s, video qualities are the tiers of VideoQualities.
type Settings struct {
	AudioFormat  string `json:"audio_format"`
	AudioQuality string `json:"audio_quality"`
	VideoFormat  string `json:"video_format"`
	VideoQuality string `json:"video_quality"`
	DownloadPath string `json:"default_download_path"`

	// Keys written by a newer version survive a save.
	extra map[string]json.RawMessage
}

// Default returns the settings used when no file exists yet.
// The download path defaults to the working directory.
func Default() Settings {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return Settings{
		AudioFormat:  "mp3",
		AudioQuality: "192",
		VideoFormat:  "mp4",
		VideoQuality: "best",
		DownloadPath: wd,
	}
}

func (s *Settings) fields() map[string]*string {
	return map[string]*string{
		"audio_format":          &s.AudioFormat,
		"audio_quality":         &s.AudioQuality,
		"video_format":          &s.VideoFormat,
		"video_quality":         &s.VideoQuality,
		"default_download_path": &s.DownloadPath,
	}
}

// Load reads the settings at path. A missing file yields Default() and
// no error. Recognized keys missing from the file are backfilled from
// Default(). A file that is not a JSON object of the expected shape
// yields an error wrapping ErrCorrupt.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("%w: %s: %s", ErrCorrupt, path, err)
	}

	for key, dst := range s.fields() {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var str string
		if err := json.Unmarshal(v, &str); err != nil {
			return s, fmt.Errorf("%w: %s: %q is not a string", ErrCorrupt, path, key)
		}
		*dst = str
		delete(raw, key)
	}

	if len(raw) != 0 {
		s.extra = raw
	}

	return s, nil
}

// Save writes the full record to path, temp file and rename so a crash
// can not leave a half-written file behind.
func Save(path string, s Settings) error {
	m := make(map[string]json.RawMessage, len(s.extra)+5)
	for k, v := range s.extra {
		m[k] = v
	}
	for key, src := range s.fields() {
		v, err := json.Marshal(*src)
		if err != nil {
			return err
		}
		m[key] = v
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := TempFile(path)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
