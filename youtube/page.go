package youtube

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func Page(id string) (*url.URL, error) {
	u, err := url.Parse("https://www.youtube.com/watch")
	if err != nil {
		return u, err
	}

	qry := u.Query()
	qry.Set("v", id)
	u.RawQuery = qry.Encode()
	return u, err
}

// Title extracts the page title of the given youtube clip id.
func Title(id string) (string, error) {
	u, err := Page(id)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return "", err
	}

	res, err := doReq(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", err
	}

	return pageTitle(doc)
}

func pageTitle(doc *goquery.Document) (string, error) {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", errors.New("no title found in page")
	}

	// a bare "YouTube" title is the consent / unavailable placeholder
	if len(title) < 10 && strings.Contains(title, "YouTube") {
		return "", errors.New("invalid page")
	}

	const suff = " - YouTube"
	title = strings.TrimSuffix(title, suff)

	return title, nil
}
