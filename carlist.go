// Package carlist extracts vehicle listings and advertisement placements
// from paginated classifieds search-result pages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, xlsx/).
package carlist
