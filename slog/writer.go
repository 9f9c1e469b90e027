package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/carlist"
)

// Ensure LoggingRecordWriter implements carlist.RecordWriter.
var _ carlist.RecordWriter = (*LoggingRecordWriter)(nil)

// LoggingRecordWriter wraps a RecordWriter with debug logging.
type LoggingRecordWriter struct {
	next   carlist.RecordWriter
	name   string
	logger *slog.Logger
}

// NewLoggingRecordWriter creates a new LoggingRecordWriter. The name
// identifies the destination in log lines, e.g. "xlsx" or "sqlite".
func NewLoggingRecordWriter(next carlist.RecordWriter, name string, logger *slog.Logger) *LoggingRecordWriter {
	return &LoggingRecordWriter{next: next, name: name, logger: logger}
}

// WriteListings delegates to the wrapped writer and logs the operation.
func (w *LoggingRecordWriter) WriteListings(ctx context.Context, listings []*carlist.Listing) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write listings",
			"writer", w.name,
			"count", len(listings),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteListings(ctx, listings)
}

// WriteAds delegates to the wrapped writer and logs the operation.
func (w *LoggingRecordWriter) WriteAds(ctx context.Context, ads []*carlist.Ad) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write ads",
			"writer", w.name,
			"count", len(ads),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteAds(ctx, ads)
}
