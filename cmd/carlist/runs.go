package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/carlist"
	"github.com/fwojciec/carlist/sqlite"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	db := sqlite.NewDB(c.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
	}
	defer db.Close()

	store := sqlite.NewRecordStore(db)
	runs, err := store.FindRuns(deps.Ctx, c.Limit, 0)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carlist.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found.")
		return nil
	}

	for _, r := range runs {
		listings, err := store.FindListings(deps.Ctx, r.ID)
		if err != nil {
			return err
		}
		ads, err := store.FindAds(deps.Ctx, r.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  pages %d-%d  %d listings  %d ads  %s\n",
			r.ID, r.StartedAt.Format(time.DateTime), r.Pages.Start, r.Pages.End, len(listings), len(ads), r.BaseURL)
	}

	return nil
}
