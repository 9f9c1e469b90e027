package crawl_test

import (
	"testing"

	"github.com/fwojciec/carlist/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		maxLen int
		want   string
	}{
		{name: "keeps a short URL", url: "https://x.pl/?page=1", maxLen: 50, want: "https://x.pl/?page=1"},
		{name: "keeps a URL of exactly max length", url: "https://x.pl/?page=1", maxLen: 20, want: "https://x.pl/?page=1"},
		{name: "keeps the page number when cutting", url: "https://www.otomoto.pl/osobowe/audi?page=12", maxLen: 16, want: ".../audi?page=12"},
		{name: "returns empty for zero max", url: "https://x.pl", maxLen: 0, want: ""},
		{name: "returns empty for negative max", url: "https://x.pl", maxLen: -3, want: ""},
		{name: "returns a bare prefix when too short for an ellipsis", url: "https://x.pl", maxLen: 3, want: "htt"},
		{name: "keeps a URL shorter than a tiny max", url: "ab", maxLen: 3, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := crawl.TruncateURL(tt.url, tt.maxLen)

			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.maxLen, 0))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", crawl.FormatBytes(0))
	assert.Equal(t, "1023 B", crawl.FormatBytes(1023))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "312.4 KB", crawl.FormatBytes(319898))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
}
