// Package fetch downloads and transcodes remote media through yt-dlp.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
)

// Kind selects the download pipeline.
type Kind uint8

const (
	Audio Kind = iota
	Video
)

// Target describes the desired output. Format is a container or codec
// name (mp3, flac, mp4, ...), Quality a bitrate in kbit/s for audio or
// a tier (lowest..best) for video.
type Target struct {
	Kind    Kind
	Format  string
	Quality string
}

// Fetcher shells out to yt-dlp. Downloads are synchronous, one at a
// time, canceled through their context.
type Fetcher struct {
	log *log.Logger
	out io.Writer
	cmd string
}

// New creates a Fetcher that streams yt-dlp progress output to out.
func New(log *log.Logger, out io.Writer) *Fetcher {
	return &Fetcher{log: log, out: out, cmd: "yt-dlp"}
}

// Check reports whether the yt-dlp binary can be found.
func (f *Fetcher) Check() error {
	if _, err := exec.LookPath(f.cmd); err != nil {
		return fmt.Errorf("%s was not found in PATH: %w", f.cmd, err)
	}
	return nil
}

// Fetch downloads the media behind locator into destStem. destStem is
// the destination path without extension, the extension follows from
// the target (see FinalPath).
func (f *Fetcher) Fetch(ctx context.Context, locator, destStem string, t Target) error {
	args := f.args(locator, destStem, t)

	f.log.Printf("fetch: %s %s", f.cmd, strings.Join(args, " "))

	stderr := bytes.NewBuffer(nil)
	cmd := exec.CommandContext(ctx, f.cmd, args...)
	cmd.Stdout = f.out
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s", err, tail(stderr.String(), 10))
	}

	return nil
}

func (f *Fetcher) args(locator, destStem string, t Target) []string {
	out := destStem + ".%(ext)s"

	switch t.Kind {
	case Audio:
		return []string{
			"--no-playlist",
			"-f", "bestaudio[ext=m4a]/bestaudio/best",
			"-x",
			"--audio-format", t.Format,
			"--audio-quality", t.Quality + "K",
			"-o", out,
			locator,
		}
	default:
		return []string{
			"--no-playlist",
			"-f", videoSelector(t.Quality),
			"--merge-output-format", t.Format,
			"-o", out,
			locator,
		}
	}
}

// videoSelector maps a quality tier onto a yt-dlp format selector.
func videoSelector(quality string) string {
	switch quality {
	case "lowest":
		return "worstvideo+worstaudio/worst"
	case "low":
		return "bestvideo[height<=360]+bestaudio/best[height<=360]"
	case "medium":
		return "bestvideo[height<=480]+bestaudio/best[height<=480]"
	case "high":
		return "bestvideo[height<=720]+bestaudio/best[height<=720]"
	default:
		return "bestvideo+bestaudio/best"
	}
}

// FinalPath reports where Fetch left its output: the audio
// postprocessor and the video merger both name the file after the
// target format.
func FinalPath(destStem string, t Target) string {
	return destStem + "." + t.Format
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
