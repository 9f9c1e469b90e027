package carlist

import "context"

// RecordWriter exports extracted records to a tabular destination.
// Rows are written in the order given; columns follow ListingColumns and AdColumns.
type RecordWriter interface {
	WriteListings(ctx context.Context, listings []*Listing) error
	WriteAds(ctx context.Context, ads []*Ad) error
}
