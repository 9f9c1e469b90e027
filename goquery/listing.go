// Package goquery implements listing extraction and advertisement detection
// over search-results markup using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/carlist"
	"golang.org/x/sync/errgroup"
)

// Default selectors for the results container and the listing cards inside it.
const (
	DefaultResultsSelector = `[data-testid="search-results"]`
	DefaultCardSelector    = "div article[data-media-size]"
)

// Ensure ListingExtractor implements carlist.ListingExtractor at compile time.
var _ carlist.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor turns a search-results page into listing records.
type ListingExtractor struct {
	resultsSelector string
	cardSelector    string
	currency        string
	concurrency     int
	hypotheses      []PriceHypothesis

	price *PriceResolver
}

// Option configures a ListingExtractor.
type Option func(*ListingExtractor)

// WithCurrency sets the suffix appended to prices.
// Defaults to carlist.DefaultCurrency.
func WithCurrency(currency string) Option {
	return func(e *ListingExtractor) {
		e.currency = currency
	}
}

// WithResultsSelector sets the selector of the results container.
func WithResultsSelector(selector string) Option {
	return func(e *ListingExtractor) {
		e.resultsSelector = selector
	}
}

// WithCardSelector sets the selector of listing cards within the results container.
func WithCardSelector(selector string) Option {
	return func(e *ListingExtractor) {
		e.cardSelector = selector
	}
}

// WithConcurrency sets how many cards are extracted in parallel.
// Values below 2 extract cards one at a time. Output order does not change.
func WithConcurrency(n int) Option {
	return func(e *ListingExtractor) {
		e.concurrency = n
	}
}

// WithPriceHypotheses replaces the price layout hypotheses.
func WithPriceHypotheses(hypotheses ...PriceHypothesis) Option {
	return func(e *ListingExtractor) {
		e.hypotheses = hypotheses
	}
}

// NewListingExtractor creates a new ListingExtractor.
func NewListingExtractor(opts ...Option) *ListingExtractor {
	e := &ListingExtractor{
		resultsSelector: DefaultResultsSelector,
		cardSelector:    DefaultCardSelector,
		currency:        carlist.DefaultCurrency,
		concurrency:     1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.price = NewPriceResolver(e.currency, e.hypotheses...)
	return e
}

// Extract returns one listing per card in the results container, in
// document order. Cards missing any or all fields still produce a record.
func (e *ListingExtractor) Extract(html string) ([]*carlist.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, carlist.Errorf(carlist.EINVALID, "failed to parse HTML: %v", err)
	}

	cards := doc.Find(e.resultsSelector).Find(e.cardSelector)
	listings := make([]*carlist.Listing, cards.Length())
	if len(listings) == 0 {
		return listings, nil
	}

	if e.concurrency < 2 {
		cards.Each(func(i int, card *goquery.Selection) {
			listings[i] = e.extractCard(card)
		})
		return listings, nil
	}

	// Cards are read-only subtrees, so they can be evaluated in parallel.
	// Each goroutine writes its own slot, which keeps document order.
	var g errgroup.Group
	g.SetLimit(e.concurrency)
	cards.Each(func(i int, card *goquery.Selection) {
		g.Go(func() error {
			listings[i] = e.extractCard(card)
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return listings, nil
}

func (e *ListingExtractor) extractCard(card *goquery.Selection) *carlist.Listing {
	return &carlist.Listing{
		Title:             ExtractTitle(card),
		DataID:            ExtractDataID(card),
		URL:               ExtractURL(card),
		Mileage:           ExtractMileage(card),
		EnginePower:       ExtractEnginePower(card),
		Year:              ExtractYear(card),
		Price:             e.price.Resolve(card),
		IsSponsoredInsert: IsSponsoredInsert(card),
	}
}
