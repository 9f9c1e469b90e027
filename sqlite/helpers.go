package sqlite

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/carlist"
)

// runColumns lists the runs columns in the order scanRun expects them.
const runColumns = "id, base_url, page_start, page_end, started_at"

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one runs row selected with runColumns.
func scanRun(row rowScanner) (*carlist.Run, error) {
	var run carlist.Run
	var startedAt string
	if err := row.Scan(&run.ID, &run.BaseURL, &run.Pages.Start, &run.Pages.End, &startedAt); err != nil {
		return nil, err
	}

	t, err := parseTime(startedAt)
	if err != nil {
		return nil, fmt.Errorf("run %s started_at: %w", run.ID, err)
	}
	run.StartedAt = t
	return &run, nil
}

// formatTime renders t as stored in TEXT timestamp columns.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// paginate returns the LIMIT and OFFSET clause for the given bounds and its
// arguments. Non-positive bounds are left out; an offset without a limit
// uses LIMIT -1, which SQLite reads as no limit.
func paginate(limit, offset int) (string, []any) {
	switch {
	case limit > 0 && offset > 0:
		return " LIMIT ? OFFSET ?", []any{limit, offset}
	case limit > 0:
		return " LIMIT ?", []any{limit}
	case offset > 0:
		return " LIMIT -1 OFFSET ?", []any{offset}
	}
	return "", nil
}

// hashContent returns the hex-encoded big-endian xxHash of content.
func hashContent(content string) string {
	d := xxhash.New()
	_, _ = d.WriteString(content)
	return hex.EncodeToString(d.Sum(nil))
}
