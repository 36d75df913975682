package youtube

import (
	"net/http"
	"net/url"
)

// Search queries youtube.com for search results matching the given
// query and returns at most limit of them, zero results is not an
// error. limit <= 0 means no limit.
func Search(q string, limit int) ([]*Result, error) {
	u, err := url.Parse("https://www.youtube.com/results")
	if err != nil {
		return nil, err
	}

	qry := u.Query()

	qry.Set("search_query", q)
	u.RawQuery = qry.Encode()

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, err
	}

	res, err := doReq(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	rs, err := parseSearch(res.Body)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rs) > limit {
		rs = rs[:limit]
	}

	return rs, nil
}
