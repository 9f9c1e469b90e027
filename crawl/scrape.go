// Package crawl provides the page driver for scraping classifieds search
// results. It walks a page range, paces and retries fetches, and hands each
// page to the listing extractor and the ad detector.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/carlist"
)

// Scraper walks a range of search-results pages.
type Scraper struct {
	Fetcher     carlist.Fetcher
	Listings    carlist.ListingExtractor
	Ads         carlist.AdDetector
	RateLimiter carlist.DomainLimiter

	// Store, when set, receives the raw markup of every fetched page.
	Store carlist.PageStore

	// RetryDelays are the backoff delays between fetch attempts.
	// Nil means DefaultRetryDelays; an empty non-nil slice disables retries.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Result holds the outcome of a scrape, one entry per page in page order.
type Result struct {
	Pages  []*carlist.PageResult
	Failed int

	// Bytes is the total size of the markup fetched.
	Bytes int
}

// Listings returns the listings of every successful page, page-ordered.
func (r *Result) Listings() []*carlist.Listing {
	var out []*carlist.Listing
	for _, p := range r.Pages {
		out = append(out, p.Listings...)
	}
	return out
}

// Ads returns the ads of every successful page, page-ordered.
func (r *Result) Ads() []*carlist.Ad {
	var out []*carlist.Ad
	for _, p := range r.Pages {
		out = append(out, p.Ads...)
	}
	return out
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Page      int
	URL       string
	Completed int
	Total     int
	Listings  int
	Ads       int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	PageStarted ProgressType = iota
	PageCompleted
	PageFailed
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Scrape fetches and extracts every page in pages. A page that cannot be
// fetched or parsed is recorded as failed and the scrape moves on; only a
// canceled context stops it early, in which case the pages finished so far
// are returned along with the context error.
func (s *Scraper) Scrape(ctx context.Context, baseURL string, pages carlist.PageRange, progress ProgressFunc) (*Result, error) {
	if err := pages.Validate(); err != nil {
		return nil, err
	}
	if _, err := carlist.PageURL(baseURL, pages.Start); err != nil {
		return nil, err
	}

	emit := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	total := pages.Len()
	result := &Result{Pages: make([]*carlist.PageResult, 0, total)}
	for i, n := range pages.Pages() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		pageURL, _ := carlist.PageURL(baseURL, n)
		emit(ProgressEvent{Type: PageStarted, Page: n, URL: pageURL, Completed: i, Total: total})

		pr, size := s.scrapePage(ctx, n, pageURL)
		if pr.Err != nil && ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.Pages = append(result.Pages, pr)
		result.Bytes += size

		if pr.Err != nil {
			result.Failed++
			s.logger().Warn("page failed", "page", n, "url", pageURL, "err", pr.Err)
			emit(ProgressEvent{Type: PageFailed, Page: n, URL: pageURL, Completed: i + 1, Total: total, Error: pr.Err})
			continue
		}
		emit(ProgressEvent{
			Type:      PageCompleted,
			Page:      n,
			URL:       pageURL,
			Completed: i + 1,
			Total:     total,
			Listings:  len(pr.Listings),
			Ads:       len(pr.Ads),
		})
	}
	return result, nil
}

// scrapePage returns the page result and the number of bytes fetched.
func (s *Scraper) scrapePage(ctx context.Context, page int, pageURL string) (*carlist.PageResult, int) {
	pr := &carlist.PageResult{Page: page, URL: pageURL}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, host(pageURL)); err != nil {
			pr.Err = fmt.Errorf("rate limit: %w", err)
			return pr, 0
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	onRetry := func(u string, attempt int, err error) {
		s.logger().Info("retry", "url", u, "attempt", attempt, "err", err)
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, onRetry, delays)
	if err != nil {
		pr.Err = fmt.Errorf("fetch page %d: %w", page, err)
		return pr, 0
	}

	// A page that cannot be kept on disk is still extracted.
	if s.Store != nil {
		if err := s.Store.Save(ctx, page, pageURL, html); err != nil {
			s.logger().Warn("save page", "page", page, "err", err)
		}
	}

	listings, err := s.Listings.Extract(html)
	if err != nil {
		pr.Err = fmt.Errorf("extract listings from page %d: %w", page, err)
		return pr, len(html)
	}
	ads, err := s.Ads.Detect(html, page)
	if err != nil {
		pr.Err = fmt.Errorf("detect ads on page %d: %w", page, err)
		return pr, len(html)
	}

	pr.Listings = listings
	pr.Ads = ads
	return pr, len(html)
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// host returns the host of rawURL, used as the rate limiting key.
func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}

// IsCanceled reports whether err stems from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
