package youtube

import (
	"strings"
	"testing"
)

const searchPage = `<!DOCTYPE html><html><head><script>
var something = {"a": 1};
var ytInitialData = {"contents": [
  {"videoRenderer": {
    "videoId": "id1",
    "title": {"runs": [{"text": "First Song"}]},
    "publishedTimeText": {"simpleText": "3 years ago"},
    "lengthText": {"simpleText": "3:41"}
  }},
  {"videoRenderer": {
    "videoId": "live1",
    "title": {"runs": [{"text": "Live Stream"}]},
    "badges": [{"metadataBadgeRenderer": {"style": "BADGE_STYLE_TYPE_LIVE_NOW"}}]
  }},
  {"videoRenderer": {
    "videoId": "id2",
    "title": {"runs": [{"text": "Second Song"}]}
  }}
]};</script></head><body></body></html>`

func TestParseSearch(t *testing.T) {
	rs, err := parseSearch(strings.NewReader(searchPage))
	if err != nil {
		t.Fatal(err)
	}

	if len(rs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(rs))
	}

	if rs[0].ID() != "id1" || rs[0].Title() != "First Song" {
		t.Errorf("unexpected first result: %s %s", rs[0].ID(), rs[0].Title())
	}
	if rs[0].Published() != "3 years ago" {
		t.Errorf("unexpected published label: %s", rs[0].Published())
	}
	if rs[0].Duration() != "3:41" {
		t.Errorf("unexpected duration label: %s", rs[0].Duration())
	}

	if rs[1].ID() != "id2" {
		t.Errorf("live stream should have been filtered, got %s", rs[1].ID())
	}
	if rs[1].Published() != "" || rs[1].Duration() != "" {
		t.Error("expected empty labels when the page carries none")
	}
}

func TestParseSearchNoResults(t *testing.T) {
	page := `<html><script>var ytInitialData = {"contents": []};</script></html>`
	rs, err := parseSearch(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 0 {
		t.Fatalf("expected no results, got %d", len(rs))
	}
}
