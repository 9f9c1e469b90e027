package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/carlist"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// Fetcher replaces the HTTP fetcher when set.
	Fetcher carlist.Fetcher

	// RetryDelays replaces the default fetch backoff when non-nil.
	RetryDelays []time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape a range of search-results pages into workbooks"`
	Extract ExtractCmd `cmd:"" help:"Extract listings and ads from a saved HTML page"`
	Runs    RunsCmd    `cmd:"" help:"List scrape runs archived in a database"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL          string        `required:"" env:"URL" help:"Search-results URL without the page parameter"`
	PageStart    int           `required:"" env:"PageStart" help:"First page to scrape (1-based)"`
	PageEnd      int           `required:"" env:"PageEnd" help:"Last page to scrape (inclusive)"`
	ListingsFile string        `default:"listings.xlsx" env:"XLSX_Main_File_Title" help:"Workbook for listings"`
	AdsFile      string        `default:"ads.xlsx" env:"XLSX_Adds_File_Title" help:"Workbook for ads"`
	DB           string        `name:"db" env:"CARLIST_DB" help:"Also archive the run in this SQLite database"`
	SaveHTML     string        `name:"save-html" placeholder:"DIR" help:"Also keep the raw markup of every page in DIR"`
	Currency     string        `default:"PLN" env:"CARLIST_CURRENCY" help:"Suffix appended to prices"`
	Concurrency  int           `short:"c" default:"4" help:"Cards extracted in parallel per page"`
	RPS          float64       `name:"rps" default:"1" help:"Requests per second to the site"`
	Timeout      time.Duration `default:"10s" help:"Per-request timeout"`
	UserAgent    string        `name:"user-agent" env:"CARLIST_USER_AGENT" help:"User-Agent header for requests"`
	Verbose      bool          `short:"v" help:"Log every fetch, extraction and write"`
}

func (c *ScrapeCmd) pages() carlist.PageRange {
	return carlist.PageRange{Start: c.PageStart, End: c.PageEnd}
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File     string `arg:"" type:"existingfile" help:"Saved search-results HTML file"`
	Page     int    `default:"1" help:"Page number recorded on detected ads"`
	Currency string `default:"PLN" env:"CARLIST_CURRENCY" help:"Suffix appended to prices"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	DB    string `name:"db" required:"" env:"CARLIST_DB" help:"SQLite database to read"`
	Limit int    `default:"20" help:"Maximum number of runs to list"`
}
