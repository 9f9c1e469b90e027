package carlist_test

import (
	"testing"

	"github.com/fwojciec/carlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRange_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		r       carlist.PageRange
		wantErr bool
	}{
		{name: "single page", r: carlist.PageRange{Start: 1, End: 1}},
		{name: "multi-digit bounds", r: carlist.PageRange{Start: 2, End: 10}},
		{name: "zero start", r: carlist.PageRange{Start: 0, End: 3}, wantErr: true},
		{name: "end before start", r: carlist.PageRange{Start: 5, End: 4}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.r.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, carlist.EINVALID, carlist.ErrorCode(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPageRange_Pages(t *testing.T) {
	t.Parallel()

	t.Run("iterates numerically across digit boundaries", func(t *testing.T) {
		t.Parallel()

		r := carlist.PageRange{Start: 8, End: 11}

		assert.Equal(t, []int{8, 9, 10, 11}, r.Pages())
		assert.Equal(t, 4, r.Len())
	})

	t.Run("returns nothing for an inverted range", func(t *testing.T) {
		t.Parallel()

		r := carlist.PageRange{Start: 10, End: 2}

		assert.Empty(t, r.Pages())
		assert.Zero(t, r.Len())
	})
}

func TestPageURL(t *testing.T) {
	t.Parallel()

	t.Run("adds page parameter to existing query", func(t *testing.T) {
		t.Parallel()

		got, err := carlist.PageURL("https://example.com/osobowe?search=audi", 3)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/osobowe?search=audi&page=3", got)
	})

	t.Run("keeps the existing query as written", func(t *testing.T) {
		t.Parallel()

		got, err := carlist.PageURL("https://example.com/osobowe?search[filter_enum_make]=audi&order=created_at:desc", 2)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/osobowe?search[filter_enum_make]=audi&order=created_at:desc&page=2", got)
	})

	t.Run("drops every earlier page parameter", func(t *testing.T) {
		t.Parallel()

		got, err := carlist.PageURL("https://example.com/osobowe?page=1&search=audi&%70age=4", 5)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/osobowe?search=audi&page=5", got)
	})

	t.Run("keeps the fragment after the query", func(t *testing.T) {
		t.Parallel()

		got, err := carlist.PageURL("https://example.com/osobowe?search=audi#results", 2)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/osobowe?search=audi&page=2#results", got)
	})

	t.Run("adds page parameter when base has no query", func(t *testing.T) {
		t.Parallel()

		got, err := carlist.PageURL("https://example.com/osobowe", 12)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/osobowe?page=12", got)
	})

	t.Run("replaces an existing page parameter", func(t *testing.T) {
		t.Parallel()

		got, err := carlist.PageURL("https://example.com/osobowe?page=1", 2)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/osobowe?page=2", got)
	})

	t.Run("rejects relative base URL", func(t *testing.T) {
		t.Parallel()

		_, err := carlist.PageURL("/osobowe", 1)

		require.Error(t, err)
		assert.Equal(t, carlist.EINVALID, carlist.ErrorCode(err))
	})

	t.Run("rejects unparseable base URL", func(t *testing.T) {
		t.Parallel()

		_, err := carlist.PageURL("://bad", 1)

		require.Error(t, err)
		assert.Equal(t, carlist.EINVALID, carlist.ErrorCode(err))
	})
}
