package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fwojciec/carlist"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ carlist.RecordWriter = (*RecordStore)(nil)

// RecordStore archives the records of one scrape run. BeginRun must be
// called before records are written; every record is tagged with the run ID.
type RecordStore struct {
	db  *DB
	run *carlist.Run
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

// BeginRun records a new run and makes it the target of subsequent writes.
func (s *RecordStore) BeginRun(ctx context.Context, baseURL string, pages carlist.PageRange) (*carlist.Run, error) {
	run := &carlist.Run{
		ID:        uuid.New().String(),
		BaseURL:   baseURL,
		Pages:     pages,
		StartedAt: time.Now().UTC(),
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, base_url, page_start, page_end, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.BaseURL, run.Pages.Start, run.Pages.End, formatTime(run.StartedAt))
	if err != nil {
		return nil, err
	}

	s.run = run
	return run, nil
}

// Run returns the current run, or nil before BeginRun.
func (s *RecordStore) Run() *carlist.Run {
	return s.run
}

// WriteListings appends listings to the current run. Positions continue
// from the listings already stored for the run, starting at 1.
func (s *RecordStore) WriteListings(ctx context.Context, listings []*carlist.Listing) error {
	if s.run == nil {
		return carlist.Errorf(carlist.EINVALID, "no run started")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var offset int
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), 0) FROM listings WHERE run_id = ?
	`, s.run.ID).Scan(&offset); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (run_id, position, title, data_id, url, mileage, engine_power, year, price, is_sponsored_insert)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, l := range listings {
		if _, err := stmt.ExecContext(ctx, s.run.ID, offset+i+1, l.Title, l.DataID, l.URL,
			l.Mileage, l.EnginePower, l.Year, l.Price, l.IsSponsoredInsert); err != nil {
			return fmt.Errorf("insert listing %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// WriteAds appends ads to the current run with a hash of their content.
func (s *RecordStore) WriteAds(ctx context.Context, ads []*carlist.Ad) error {
	if s.run == nil {
		return carlist.Errorf(carlist.EINVALID, "no run started")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ads (run_id, page, position, content, content_hash)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, a := range ads {
		if _, err := stmt.ExecContext(ctx, s.run.ID, a.Page, a.Position, a.Content, hashContent(a.Content)); err != nil {
			return fmt.Errorf("insert ad %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *RecordStore) FindRunByID(ctx context.Context, id string) (*carlist.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, carlist.Errorf(carlist.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns returns runs, most recent first.
func (s *RecordStore) FindRuns(ctx context.Context, limit, offset int) ([]*carlist.Run, error) {
	page, args := paginate(limit, offset)
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC`+page, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*carlist.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FindListings returns the listings of a run in position order.
func (s *RecordStore) FindListings(ctx context.Context, runID string) ([]*carlist.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, data_id, url, mileage, engine_power, year, price, is_sponsored_insert
		FROM listings
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*carlist.Listing
	for rows.Next() {
		var l carlist.Listing
		if err := rows.Scan(&l.Title, &l.DataID, &l.URL, &l.Mileage, &l.EnginePower,
			&l.Year, &l.Price, &l.IsSponsoredInsert); err != nil {
			return nil, err
		}
		listings = append(listings, &l)
	}
	return listings, rows.Err()
}

// FindAds returns the ads of a run ordered by page and position.
func (s *RecordStore) FindAds(ctx context.Context, runID string) ([]*carlist.Ad, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT page, position, content
		FROM ads
		WHERE run_id = ?
		ORDER BY page, position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []*carlist.Ad
	for rows.Next() {
		var a carlist.Ad
		if err := rows.Scan(&a.Page, &a.Position, &a.Content); err != nil {
			return nil, err
		}
		ads = append(ads, &a)
	}
	return ads, rows.Err()
}

// CountAdsByContent returns how many stored ads across all runs share
// the content hash of content.
func (s *RecordStore) CountAdsByContent(ctx context.Context, content string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ads WHERE content_hash = ?
	`, hashContent(content)).Scan(&n)
	return n, err
}
