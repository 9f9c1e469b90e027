package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fwojciec/carlist"
	"github.com/fwojciec/carlist/crawl"
	"github.com/fwojciec/carlist/fs"
	"github.com/fwojciec/carlist/goquery"
	carlisthttp "github.com/fwojciec/carlist/http"
	carslog "github.com/fwojciec/carlist/slog"
	"github.com/fwojciec/carlist/sqlite"
	"github.com/fwojciec/carlist/xlsx"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	logger := slog.New(slog.DiscardHandler)
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(deps.Stderr, nil))
	}

	var fetcher carlist.Fetcher = deps.Fetcher
	if fetcher == nil {
		opts := []carlisthttp.Option{carlisthttp.WithTimeout(c.Timeout)}
		if c.UserAgent != "" {
			opts = append(opts, carlisthttp.WithUserAgent(c.UserAgent))
		}
		fetcher = carlisthttp.NewFetcher(opts...)
	}
	defer fetcher.Close()

	detector, err := goquery.NewAdDetector()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlist.ErrorMessage(err))
		return err
	}

	var (
		listings carlist.ListingExtractor = goquery.NewListingExtractor(
			goquery.WithCurrency(c.Currency),
			goquery.WithConcurrency(c.Concurrency),
		)
		ads    carlist.AdDetector   = detector
		writer carlist.RecordWriter = xlsx.NewWriter(c.ListingsFile, c.AdsFile)
	)
	if c.Verbose {
		fetcher = carslog.NewLoggingFetcher(fetcher, logger)
		listings = carslog.NewLoggingListingExtractor(listings, logger)
		ads = carslog.NewLoggingAdDetector(ads, logger)
		writer = carslog.NewLoggingRecordWriter(writer, "xlsx", logger)
	}

	scraper := &crawl.Scraper{
		Fetcher:     fetcher,
		Listings:    listings,
		Ads:         ads,
		RateLimiter: crawl.NewDomainLimiter(c.RPS),
		RetryDelays: deps.RetryDelays,
		Logger:      logger,
	}

	var store *fs.FileStore
	if c.SaveHTML != "" {
		dir := filepath.Clean(c.SaveHTML)
		store = fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
		scraper.Store = store
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.PageStarted:
			fmt.Fprintf(deps.Stdout, "Scraping page %d (%d/%d) %s\n",
				event.Page, event.Completed+1, event.Total, crawl.TruncateURL(event.URL, 60))
		case crawl.PageCompleted:
			if event.Ads == 0 {
				fmt.Fprintf(deps.Stdout, "No ads found on page %d.\n", event.Page)
			}
		case crawl.PageFailed:
			fmt.Fprintf(deps.Stderr, "  skip page %d: %v\n", event.Page, event.Error)
		}
	}

	result, err := scraper.Scrape(deps.Ctx, c.URL, c.pages(), progress)
	if err != nil {
		if store != nil {
			_ = store.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error scraping: %s\n", errorText(err))
		return err
	}

	if store != nil {
		if err := store.Commit(); err != nil {
			return fmt.Errorf("save pages to %s: %w", c.SaveHTML, err)
		}
		fmt.Fprintf(deps.Stdout, "Pages saved to %s\n", c.SaveHTML)
	}

	if err := writeRecords(deps, writer, result, c.ListingsFile, c.AdsFile); err != nil {
		return err
	}

	if c.DB != "" {
		if err := archive(deps, c, result, logger); err != nil {
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d pages (%d failed, %s): %d listings, %d ads\n",
		len(result.Pages), result.Failed, crawl.FormatBytes(result.Bytes), len(result.Listings()), len(result.Ads()))

	if len(result.Pages) > 0 && result.Failed == len(result.Pages) {
		return fmt.Errorf("all %d pages failed", result.Failed)
	}
	return nil
}

// writeRecords exports listings and ads. An empty sequence produces no file.
func writeRecords(deps *Dependencies, w carlist.RecordWriter, result *crawl.Result, listingsFile, adsFile string) error {
	if listings := result.Listings(); len(listings) > 0 {
		if err := w.WriteListings(deps.Ctx, listings); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Main data written to %s\n", listingsFile)
	} else {
		fmt.Fprintln(deps.Stdout, "No main data found.")
	}

	if ads := result.Ads(); len(ads) > 0 {
		if err := w.WriteAds(deps.Ctx, ads); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Ads data written to %s\n", adsFile)
	} else {
		fmt.Fprintln(deps.Stdout, "No ads data found.")
	}
	return nil
}

// archive stores the scrape result as a new run in the SQLite database.
func archive(deps *Dependencies, c *ScrapeCmd, result *crawl.Result, logger *slog.Logger) error {
	db := sqlite.NewDB(c.DB)
	if err := db.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set CARLIST_DB or --db to a writable path\n")
		return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
	}
	defer db.Close()

	store := sqlite.NewRecordStore(db)
	run, err := store.BeginRun(deps.Ctx, c.URL, c.pages())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	var w carlist.RecordWriter = store
	if c.Verbose {
		w = carslog.NewLoggingRecordWriter(store, "sqlite", logger)
	}
	if err := w.WriteListings(deps.Ctx, result.Listings()); err != nil {
		return fmt.Errorf("archive listings: %w", err)
	}
	if err := w.WriteAds(deps.Ctx, result.Ads()); err != nil {
		return fmt.Errorf("archive ads: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Archived run %s to %s\n", run.ID, c.DB)
	return nil
}

// errorText returns the user-facing message for application errors and
// the full text otherwise.
func errorText(err error) string {
	if carlist.ErrorCode(err) == carlist.EINTERNAL {
		return err.Error()
	}
	return carlist.ErrorMessage(err)
}
