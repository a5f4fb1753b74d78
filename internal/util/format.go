package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDate formats a backend timestamp for display. Anything that does
// not parse is returned unchanged.
func FormatDate(ts string) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return "—"
	}
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("Jan 02, 2006")
		}
	}
	return ts
}

// FormatRating formats a rating as "4.5★", or "—" for zero.
func FormatRating(rating float64) string {
	if rating == 0 {
		return "—"
	}
	return formatRatingNumber(rating) + "★"
}

// FormatAvgRating formats an average rating.
func FormatAvgRating(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}

// FormatCost formats an amount with its currency code, or "—" for zero.
func FormatCost(amount float64, currency string) string {
	if amount == 0 {
		return "—"
	}
	s := FormatNumber(amount)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatNumber drops trailing zeros: 90 → "90", 9.50 → "9.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatList joins list values for a table cell.
func FormatList(values []string) string {
	if len(values) == 0 {
		return "—"
	}
	return strings.Join(values, ", ")
}

// FormatActive renders the soft-delete flag.
func FormatActive(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// OrDash returns s, or "—" when blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

func formatRatingNumber(v float64) string {
	// Keep one decimal at most, but avoid trailing .0 for whole values.
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
