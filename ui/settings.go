package ui

import (
	"fmt"
	"strconv"

	"github.com/yaytube/yay/config"
)

func (s *Session) updateSettings() {
	s.notef("Settings, Enter keeps the current value.")

	s.cfg.AudioFormat = s.pickOption("Audio format", config.AudioFormats, s.cfg.AudioFormat)
	s.cfg.AudioQuality = s.pickOption("Audio quality (kbit/s)", config.AudioQualities, s.cfg.AudioQuality)
	s.cfg.VideoFormat = s.pickOption("Video format", config.VideoFormats, s.cfg.VideoFormat)
	s.cfg.VideoQuality = s.pickOption("Video quality", config.VideoQualities, s.cfg.VideoQuality)

	if p := s.prompt(fmt.Sprintf("Download path [%s]: ", s.cfg.DownloadPath)); p != "" {
		s.cfg.DownloadPath = p
	}

	if err := config.Save(s.cfgPath, s.cfg); err != nil {
		s.errorf("could not save settings: %s", err)
		return
	}
	s.okf("Settings saved.")
}

func (s *Session) pickOption(label string, opts []string, current string) string {
	for i, o := range opts {
		s.printf(" %d) %s\n", i+1, o)
	}

	in := s.prompt(fmt.Sprintf("%s (1-%d) [%s]: ", label, len(opts), current))
	if in == "" {
		return current
	}

	i, err := strconv.Atoi(in)
	if err != nil || i < 1 || i > len(opts) {
		s.errorf("invalid choice, keeping %s", current)
		return current
	}

	return opts[i-1]
}
