package carlist

import "strconv"

// DefaultCurrency is appended to every extracted price.
const DefaultCurrency = "PLN"

// Listing represents one vehicle listing card from a search-results page.
// Every field is optional; a value missing from the card's markup is left empty.
type Listing struct {
	Title       string `json:"title"`
	DataID      string `json:"dataId"`
	URL         string `json:"url"`
	Mileage     string `json:"mileage"`
	EnginePower string `json:"enginePower"`
	Year        string `json:"year"`

	// Price is the displayed price followed by the currency suffix,
	// e.g. "99 000 PLN", or empty when no known price layout matched.
	Price string `json:"price"`

	// IsSponsoredInsert is set when the card embeds a nested list of
	// listings, which marks a promotional module rather than a genuine listing.
	IsSponsoredInsert bool `json:"isSponsoredInsert"`
}

// ListingColumns are the export column names, in field declaration order.
var ListingColumns = []string{
	"title",
	"dataId",
	"url",
	"mileage",
	"enginePower",
	"year",
	"price",
	"isSponsoredInsert",
}

// Row returns the listing as a table row matching ListingColumns.
func (l *Listing) Row() []string {
	return []string{
		l.Title,
		l.DataID,
		l.URL,
		l.Mileage,
		l.EnginePower,
		l.Year,
		l.Price,
		strconv.FormatBool(l.IsSponsoredInsert),
	}
}

// ListingExtractor extracts listing records from one page of markup.
type ListingExtractor interface {
	// Extract returns one Listing per listing card, in document order.
	// A page without a results container yields an empty slice and no error.
	// Returns EINVALID only if the markup cannot be parsed at all.
	Extract(html string) ([]*Listing, error)
}
