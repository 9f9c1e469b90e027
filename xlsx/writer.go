// Package xlsx exports listings and ads to Excel workbooks using excelize.
package xlsx

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/fwojciec/carlist"
	"github.com/xuri/excelize/v2"
)

// Sheet names used for the two workbooks.
const (
	ListingsSheet = "Data"
	AdsSheet      = "Ads"
)

// Ensure Writer implements carlist.RecordWriter at compile time.
var _ carlist.RecordWriter = (*Writer)(nil)

// Writer writes listings and ads to two separate workbooks. Each call
// replaces the target file with a single sheet: a header row followed by
// one row per record.
type Writer struct {
	listingsPath string
	adsPath      string
}

// NewWriter creates a Writer for the given workbook paths.
func NewWriter(listingsPath, adsPath string) *Writer {
	return &Writer{listingsPath: listingsPath, adsPath: adsPath}
}

// ListingsPath returns the path of the listings workbook.
func (w *Writer) ListingsPath() string { return w.listingsPath }

// AdsPath returns the path of the ads workbook.
func (w *Writer) AdsPath() string { return w.adsPath }

// WriteListings writes listings to the listings workbook.
func (w *Writer) WriteListings(ctx context.Context, listings []*carlist.Listing) error {
	rows := make([][]any, 0, len(listings))
	for _, l := range listings {
		row := make([]any, 0, len(carlist.ListingColumns))
		for _, v := range l.Row() {
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return writeWorkbook(ctx, w.listingsPath, ListingsSheet, carlist.ListingColumns, rows)
}

// WriteAds writes ads to the ads workbook. Page and position are numeric cells.
func (w *Writer) WriteAds(ctx context.Context, ads []*carlist.Ad) error {
	rows := make([][]any, 0, len(ads))
	for _, a := range ads {
		rows = append(rows, []any{a.Page, a.Position, clip(a.Content)})
	}
	return writeWorkbook(ctx, w.adsPath, AdsSheet, carlist.AdColumns, rows)
}

func writeWorkbook(ctx context.Context, path, sheet string, header []string, rows [][]any) error {
	if path == "" {
		return carlist.Errorf(carlist.EINVALID, "output path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := setRow(f, sheet, 1, headerRow); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}
	return nil
}

// clip shortens s to the maximum number of characters a cell can hold.
func clip(s string) string {
	if utf8.RuneCountInString(s) <= excelize.TotalCellChars {
		return s
	}
	return string([]rune(s)[:excelize.TotalCellChars])
}
