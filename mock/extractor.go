package mock

import "github.com/fwojciec/carlist"

var _ carlist.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of carlist.ListingExtractor.
type ListingExtractor struct {
	ExtractFn func(html string) ([]*carlist.Listing, error)
}

func (e *ListingExtractor) Extract(html string) ([]*carlist.Listing, error) {
	return e.ExtractFn(html)
}

var _ carlist.AdDetector = (*AdDetector)(nil)

// AdDetector is a mock implementation of carlist.AdDetector.
type AdDetector struct {
	DetectFn func(html string, page int) ([]*carlist.Ad, error)
}

func (d *AdDetector) Detect(html string, page int) ([]*carlist.Ad, error) {
	return d.DetectFn(html, page)
}
