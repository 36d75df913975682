package youtube

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/antchfx/jsonquery"
)

// parseSearch extracts the ytInitialData object from a search results
// page by brace matching. No guarantees whatsoever, it breaks when
// youtube decides it breaks.
func parseSearch(r io.Reader) ([]*Result, error) {
	const (
		pre  = 0
		post = 1
	)

	opener := ""
	closer := ""
	opened := 0
	onceOpened := false

	matching := map[string]string{
		"{": "}",
		"[": "]",
	}

	s := bufio.NewScanner(r)
	s.Split(bufio.ScanRunes)

	ytInitial := "ytInitialData ="
	ytInitialPos := 0

	buf := bytes.NewBuffer(nil)

	status := pre

	for s.Scan() {
		c := s.Text()

		switch status {
		case pre:
			if ytInitial[ytInitialPos] == c[0] {
				ytInitialPos++
				if ytInitialPos >= len(ytInitial) {
					status = post
				}
				continue
			}
			ytInitialPos = 0
			continue
		case post:
			if opener == "" {
				if n, ok := matching[c]; ok {
					opener = c
					closer = n
				}
			}

			if c == opener {
				onceOpened = true
				opened++
			} else if c == closer {
				opened--
			}
		}

		if onceOpened {
			buf.WriteString(c)
		}

		if onceOpened && opened == 0 {
			break
		}
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return decodeSearch(buf)
}

func nodeText(parent *jsonquery.Node, expr string) string {
	n := jsonquery.FindOne(parent, expr)
	if n == nil || n.FirstChild == nil || n.FirstChild.Type != jsonquery.TextNode {
		return ""
	}
	return n.FirstChild.Data
}

func decodeSearch(r io.Reader) ([]*Result, error) {
	rs := make([]*Result, 0)
	d, err := jsonquery.Parse(r)
	if err != nil {
		return nil, err
	}

	els := jsonquery.Find(d, "//videoId")
	for _, e := range els {
		if e.FirstChild == nil || e.FirstChild.Type != jsonquery.TextNode {
			continue
		}
		title := nodeText(e.Parent, "//title//text")
		if title == "" {
			continue
		}

		hasLiveBadge := false
		badgeStyles := jsonquery.Find(e.Parent, "//badges//style")
		for _, bs := range badgeStyles {
			if bs.FirstChild == nil {
				continue
			}
			if strings.Contains(bs.FirstChild.Data, "_LIVE_") {
				hasLiveBadge = true
				break
			}
		}

		if hasLiveBadge {
			continue
		}

		n := NewResult(e.FirstChild.Data, title)
		n.SetLabels(
			nodeText(e.Parent, "//publishedTimeText//simpleText"),
			nodeText(e.Parent, "//lengthText//simpleText"),
		)
		rs = append(rs, n)
	}

	return rs, nil
}
