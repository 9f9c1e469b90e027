package crawl

import "fmt"

// TruncateURL shortens a page URL for progress lines. The tail is kept,
// since that is where the query string with the page number lives.
func TruncateURL(url string, maxLen int) string {
	switch {
	case maxLen <= 0:
		return ""
	case len(url) <= maxLen:
		return url
	case maxLen < 4:
		return url[:maxLen]
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats a byte count as B, KB or MB.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / unit
	if v < unit {
		return fmt.Sprintf("%.1f KB", v)
	}
	return fmt.Sprintf("%.1f MB", v/unit)
}
