// Package payload assembles create and update request bodies from flat
// form text. Builders are pure: the same form and resolver always give the
// same body.
package payload

import (
	"math"
	"strconv"
	"strings"
)

// List splits comma separated text into trimmed, non-empty items. Empty
// input gives an empty list, never a list holding "".
func List(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// TimePair is one [start, end] clock range on the wire.
type TimePair [2]string

// TimeRanges parses "HH:MM-HH:MM, HH:MM-HH:MM". Entries missing either
// boundary are dropped.
func TimeRanges(text string) []TimePair {
	out := []TimePair{}
	for _, entry := range List(text) {
		start, end, ok := strings.Cut(entry, "-")
		if !ok {
			continue
		}
		start, end = strings.TrimSpace(start), strings.TrimSpace(end)
		if start == "" || end == "" {
			continue
		}
		out = append(out, TimePair{start, end})
	}
	return out
}

// Number coerces numeric text. Empty or invalid input is 0.
func Number(text string) float64 {
	f, _ := ParseNumber(text)
	return f
}

// ParseNumber reports whether text is a finite number. NaN and the
// infinities have no JSON encoding and are rejected.
func ParseNumber(text string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
