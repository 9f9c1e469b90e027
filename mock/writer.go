package mock

import (
	"context"

	"github.com/fwojciec/carlist"
)

var _ carlist.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of carlist.RecordWriter.
type RecordWriter struct {
	WriteListingsFn func(ctx context.Context, listings []*carlist.Listing) error
	WriteAdsFn      func(ctx context.Context, ads []*carlist.Ad) error
}

func (w *RecordWriter) WriteListings(ctx context.Context, listings []*carlist.Listing) error {
	return w.WriteListingsFn(ctx, listings)
}

func (w *RecordWriter) WriteAds(ctx context.Context, ads []*carlist.Ad) error {
	return w.WriteAdsFn(ctx, ads)
}
