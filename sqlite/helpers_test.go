package sqlite

import (
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		limit, offset int
		wantClause    string
		wantArgs      []any
	}{
		{name: "no bounds", wantClause: "", wantArgs: nil},
		{name: "limit only", limit: 5, wantClause: " LIMIT ?", wantArgs: []any{5}},
		{name: "limit and offset", limit: 5, offset: 10, wantClause: " LIMIT ? OFFSET ?", wantArgs: []any{5, 10}},
		{name: "offset only", offset: 10, wantClause: " LIMIT -1 OFFSET ?", wantArgs: []any{10}},
		{name: "negative bounds", limit: -1, offset: -1, wantClause: "", wantArgs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clause, args := paginate(tt.limit, tt.offset)

			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	t.Run("encodes the 64-bit hash as 16 hex digits", func(t *testing.T) {
		t.Parallel()

		got := hashContent("<span>Ad</span>")

		assert.Len(t, got, 16)
		assert.Equal(t, hashContent("<span>Ad</span>"), got)
		assert.NotEqual(t, hashContent("<span>Other</span>"), got)
	})

	t.Run("matches the hex form of the 64-bit sum", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, uint64(0xef46db3751d8e999), xxhash.Sum64String(""))
		assert.Equal(t, "ef46db3751d8e999", hashContent(""))
	})
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	t.Run("stores UTC and parses back to the same instant", func(t *testing.T) {
		t.Parallel()

		in := time.Date(2026, 3, 14, 15, 9, 26, 0, time.FixedZone("CET", 3600))

		s := formatTime(in)
		assert.Equal(t, "2026-03-14T14:09:26Z", s)

		out, err := parseTime(s)
		require.NoError(t, err)
		assert.True(t, in.Equal(out))
	})
}
