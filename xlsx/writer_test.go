package xlsx_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/carlist"
	"github.com/fwojciec/carlist/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// readSheet returns all rows of sheet in the workbook at path.
func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriter_WriteListings(t *testing.T) {
	t.Parallel()

	t.Run("writes header and one row per listing to the Data sheet", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := xlsx.NewWriter(filepath.Join(dir, "listings.xlsx"), filepath.Join(dir, "ads.xlsx"))

		err := w.WriteListings(context.Background(), []*carlist.Listing{
			{
				Title:       "Model X",
				DataID:      "1001",
				URL:         "https://example.com/oferta/1001",
				Mileage:     "50 000 km",
				EnginePower: "300 KM",
				Year:        "2021",
				Price:       "99 000 PLN",
			},
			{Title: "Dealer promo", DataID: "2002", IsSponsoredInsert: true},
		})

		require.NoError(t, err)
		rows := readSheet(t, w.ListingsPath(), xlsx.ListingsSheet)
		require.Len(t, rows, 3)
		assert.Equal(t, carlist.ListingColumns, rows[0])
		assert.Equal(t, []string{"Model X", "1001", "https://example.com/oferta/1001", "50 000 km", "300 KM", "2021", "99 000 PLN", "false"}, rows[1])
		assert.Equal(t, "Dealer promo", rows[2][0])
		assert.Equal(t, "true", rows[2][7])

		_, err = os.Stat(w.AdsPath())
		assert.True(t, os.IsNotExist(err), "ads workbook must not be created")
	})

	t.Run("writes only the header for no listings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.xlsx")
		w := xlsx.NewWriter(path, "")

		require.NoError(t, w.WriteListings(context.Background(), nil))

		rows := readSheet(t, path, xlsx.ListingsSheet)
		require.Len(t, rows, 1)
		assert.Equal(t, carlist.ListingColumns, rows[0])
	})

	t.Run("replaces an existing workbook", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "listings.xlsx")
		w := xlsx.NewWriter(path, "")

		require.NoError(t, w.WriteListings(context.Background(), []*carlist.Listing{{Title: "old"}, {Title: "older"}}))
		require.NoError(t, w.WriteListings(context.Background(), []*carlist.Listing{{Title: "new"}}))

		rows := readSheet(t, path, xlsx.ListingsSheet)
		require.Len(t, rows, 2)
		assert.Equal(t, "new", rows[1][0])
	})

	t.Run("rejects an empty path", func(t *testing.T) {
		t.Parallel()

		w := xlsx.NewWriter("", "")

		err := w.WriteListings(context.Background(), []*carlist.Listing{{Title: "x"}})

		require.Error(t, err)
		assert.Equal(t, carlist.EINVALID, carlist.ErrorCode(err))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := filepath.Join(t.TempDir(), "listings.xlsx")

		err := xlsx.NewWriter(path, "").WriteListings(ctx, []*carlist.Listing{{Title: "x"}})

		require.ErrorIs(t, err, context.Canceled)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestWriter_WriteAds(t *testing.T) {
	t.Parallel()

	t.Run("writes page, position and raw content to the Ads sheet", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := xlsx.NewWriter(filepath.Join(dir, "listings.xlsx"), filepath.Join(dir, "ads.xlsx"))

		err := w.WriteAds(context.Background(), []*carlist.Ad{
			{Page: 3, Position: 1, Content: "<span>Ad 1</span>"},
			{Page: 3, Position: 2, Content: `<img src="/b.png"/>`},
		})

		require.NoError(t, err)
		rows := readSheet(t, w.AdsPath(), xlsx.AdsSheet)
		require.Len(t, rows, 3)
		assert.Equal(t, carlist.AdColumns, rows[0])
		assert.Equal(t, []string{"3", "1", "<span>Ad 1</span>"}, rows[1])
		assert.Equal(t, []string{"3", "2", `<img src="/b.png"/>`}, rows[2])
	})

	t.Run("clips content longer than a cell can hold", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ads.xlsx")
		w := xlsx.NewWriter("", path)
		long := strings.Repeat("a", excelize.TotalCellChars+100)

		require.NoError(t, w.WriteAds(context.Background(), []*carlist.Ad{{Page: 1, Position: 1, Content: long}}))

		rows := readSheet(t, path, xlsx.AdsSheet)
		require.Len(t, rows, 2)
		assert.Len(t, rows[1][2], excelize.TotalCellChars)
	})
}
