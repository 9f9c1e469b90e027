package carlist

import "time"

// Run identifies one archived scrape of a page range.
type Run struct {
	ID        string    `json:"id"`
	BaseURL   string    `json:"baseUrl"`
	Pages     PageRange `json:"pages"`
	StartedAt time.Time `json:"startedAt"`
}

// Validate returns an error if the run lacks a base URL or has an invalid range.
func (r *Run) Validate() error {
	if r.BaseURL == "" {
		return Errorf(EINVALID, "run base URL required")
	}
	return r.Pages.Validate()
}
