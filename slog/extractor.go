package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/carlist"
)

// Ensure LoggingListingExtractor implements carlist.ListingExtractor.
var _ carlist.ListingExtractor = (*LoggingListingExtractor)(nil)

// LoggingListingExtractor wraps a ListingExtractor with debug logging.
type LoggingListingExtractor struct {
	next   carlist.ListingExtractor
	logger *slog.Logger
}

// NewLoggingListingExtractor creates a new LoggingListingExtractor.
func NewLoggingListingExtractor(next carlist.ListingExtractor, logger *slog.Logger) *LoggingListingExtractor {
	return &LoggingListingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the record count,
// including how many records lack a price or are sponsored inserts.
func (e *LoggingListingExtractor) Extract(html string) (listings []*carlist.Listing, err error) {
	defer func(begin time.Time) {
		var noPrice, sponsored int
		for _, l := range listings {
			if l.Price == "" {
				noPrice++
			}
			if l.IsSponsoredInsert {
				sponsored++
			}
		}
		e.logger.Info("extract listings",
			"bytes", len(html),
			"count", len(listings),
			"no_price", noPrice,
			"sponsored", sponsored,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}

// Ensure LoggingAdDetector implements carlist.AdDetector.
var _ carlist.AdDetector = (*LoggingAdDetector)(nil)

// LoggingAdDetector wraps an AdDetector with debug logging.
type LoggingAdDetector struct {
	next   carlist.AdDetector
	logger *slog.Logger
}

// NewLoggingAdDetector creates a new LoggingAdDetector.
func NewLoggingAdDetector(next carlist.AdDetector, logger *slog.Logger) *LoggingAdDetector {
	return &LoggingAdDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the operation.
func (d *LoggingAdDetector) Detect(html string, page int) (ads []*carlist.Ad, err error) {
	defer func(begin time.Time) {
		d.logger.Info("detect ads",
			"page", page,
			"count", len(ads),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Detect(html, page)
}
