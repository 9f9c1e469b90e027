package carlist

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// PageParam is the query parameter that selects a search-results page.
const PageParam = "page"

// PageRange is an inclusive range of 1-based search-results page numbers.
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Validate returns an error if the range is empty or starts below page 1.
func (r PageRange) Validate() error {
	if r.Start < 1 {
		return Errorf(EINVALID, "page start must be at least 1, got %d", r.Start)
	}
	if r.End < r.Start {
		return Errorf(EINVALID, "page end %d is before page start %d", r.End, r.Start)
	}
	return nil
}

// Pages returns the page numbers in ascending order.
func (r PageRange) Pages() []int {
	if r.End < r.Start {
		return nil
	}
	pages := make([]int, 0, r.End-r.Start+1)
	for n := r.Start; n <= r.End; n++ {
		pages = append(pages, n)
	}
	return pages
}

// Len returns the number of pages in the range.
func (r PageRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// PageURL returns baseURL with page appended as its last query parameter.
// The rest of the query is kept as written; only earlier page parameters
// are dropped.
func PageURL(baseURL string, page int) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "base URL must be absolute: %q", baseURL)
	}

	var kept []string
	for part := range strings.SplitSeq(u.RawQuery, "&") {
		if part == "" {
			continue
		}
		key, _, _ := strings.Cut(part, "=")
		if k, err := url.QueryUnescape(key); err == nil && k == PageParam {
			continue
		}
		kept = append(kept, part)
	}
	u.RawQuery = strings.Join(append(kept, PageParam+"="+strconv.Itoa(page)), "&")
	return u.String(), nil
}

// PageResult holds everything extracted from one search-results page.
type PageResult struct {
	Page     int
	URL      string
	Listings []*Listing
	Ads      []*Ad

	// Err is set when the page could not be fetched or parsed.
	// Listings and Ads are empty in that case.
	Err error
}

// PageStore keeps the raw markup of fetched pages so they can be
// re-extracted later. Saved pages become visible only after Commit.
type PageStore interface {
	Save(ctx context.Context, page int, url, html string) error
	Commit() error
	Abort() error
}
