package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/carlist"
	"github.com/fwojciec/carlist/goquery"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	b, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	html := string(b)

	listings, err := goquery.NewListingExtractor(goquery.WithCurrency(c.Currency)).Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlist.ErrorMessage(err))
		return err
	}

	detector, err := goquery.NewAdDetector()
	if err != nil {
		return err
	}
	ads, err := detector.Detect(html, c.Page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlist.ErrorMessage(err))
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No main data found.")
	} else {
		fmt.Fprintln(deps.Stdout, strings.Join(carlist.ListingColumns, "\t"))
		for _, l := range listings {
			fmt.Fprintln(deps.Stdout, strings.Join(l.Row(), "\t"))
		}
	}

	if len(ads) == 0 {
		fmt.Fprintf(deps.Stdout, "No ads found on page %d.\n", c.Page)
		return nil
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, strings.Join(carlist.AdColumns, "\t"))
	for _, a := range ads {
		row := a.Row()
		row[2] = summarize(row[2], 60)
		fmt.Fprintln(deps.Stdout, strings.Join(row, "\t"))
	}
	return nil
}

// summarize collapses whitespace in s and cuts it to at most n runes.
func summarize(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
