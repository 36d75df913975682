// Package youtube provides a few utilities around youtube clips.

package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Result represents a youtube.com search result, i.e.: a youtube clip.
type Result struct {
	videoID   string
	title     string
	published string
	duration  string
	u         *url.URL
}

// NewResult creates a new youtube result.
// ID is required and should not be empty for it to be a valid youtube clip.
// Title is an arbitrary string that will be used as the title,
// this can be fetched using Title(id string) or Result.UpdateTitle().
func NewResult(id, title string) *Result {
	return &Result{videoID: id, title: title}
}

// ID returns the clip id.
func (r *Result) ID() string { return r.videoID }

// Title returns the title associated with this Result.
func (r *Result) Title() string { return r.title }

// Published returns youtube's human readable upload age label,
// e.g. "3 years ago". Empty if the search page did not carry one.
func (r *Result) Published() string { return r.published }

// Duration returns the clip length label, e.g. "3:41".
// Empty if the search page did not carry one.
func (r *Result) Duration() string { return r.duration }

// SetTitle updates the title.
func (r *Result) SetTitle(title string) { r.title = title }

// SetLabels updates the published and duration labels.
func (r *Result) SetLabels(published, duration string) {
	r.published = published
	r.duration = duration
}

// URL constructs the youtube url for this clip.
func (r *Result) URL() *url.URL {
	if r.u != nil {
		return r.u
	}

	u, err := Page(r.videoID)
	if err != nil {
		panic(err)
	}
	r.u = u
	return u
}

// UpdateTitle uses Title to update the clips title using its id.
func (r *Result) UpdateTitle() error {
	n, err := Title(r.ID())
	if err != nil {
		return fmt.Errorf("%s: %w", r.ID(), err)
	}
	if n == "" {
		return fmt.Errorf("%s: received empty title", r.ID())
	}
	r.title = n
	return nil
}

var schemeRE = regexp.MustCompile(`^(https?://)|^(//)?`)

// FromURL parses the given url to extract the id and create a youtube
// result. see NewResult.
func FromURL(u, title string) (*Result, error) {
	r := &Result{title: title}

	u = schemeRE.ReplaceAllString(u, "https://")
	n, err := url.Parse(u)
	if err != nil {
		return nil, err
	}

	direct := false
	switch n.Hostname() {
	case "youtu.be":
		direct = true
	case "www.youtube.com", "m.youtube.com", "youtube.com":
	default:
		return nil, fmt.Errorf("'%s' seems to not be a youtube url", u)
	}

	p := strings.Split(n.Path, "/")
	q := n.Query()

	if len(p) > 1 && (p[1] == "embed" || p[1] == "v") {
		if len(p) > 2 {
			r.videoID = p[2]
			return r, nil
		}
	}

	if v := q.Get("v"); v != "" {
		r.videoID = v
		return r, nil
	}

	if direct {
		if len(p) > 1 {
			r.videoID = p[1]
			return r, nil
		}
	}

	return nil, fmt.Errorf("'%s' does not seem to be a youtube video url", u)
}
