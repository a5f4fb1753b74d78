// Package openhours converts between the backend's weekly opening-hours
// object and the editable per-day slot rows shown in the place form.
package openhours

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Weekday is a backend day key.
type Weekday string

const (
	Mon Weekday = "mon"
	Tue Weekday = "tue"
	Wed Weekday = "wed"
	Thu Weekday = "thu"
	Fri Weekday = "fri"
	Sat Weekday = "sat"
	Sun Weekday = "sun"
)

// Weekdays lists the day keys in display order.
var Weekdays = [7]Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

var labels = map[Weekday]string{
	Mon: "Monday",
	Tue: "Tuesday",
	Wed: "Wednesday",
	Thu: "Thursday",
	Fri: "Friday",
	Sat: "Saturday",
	Sun: "Sunday",
}

// Label returns the full day name.
func (d Weekday) Label() string {
	if l, ok := labels[d]; ok {
		return l
	}
	return string(d)
}

// Index returns the display position of d, or -1.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// ParseWeekday accepts short keys and full names in any case.
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return "", false
	}
	d := Weekday(s[:3])
	if d.Index() < 0 {
		return "", false
	}
	if len(s) > 3 && !strings.EqualFold(labels[d], s) {
		return "", false
	}
	return d, true
}

// Range is one opening interval. It travels as a two element array,
// ["09:00","17:00"].
type Range struct {
	Start string
	End   string
}

// Complete reports whether both boundaries are filled in.
func (r Range) Complete() bool {
	return strings.TrimSpace(r.Start) != "" && strings.TrimSpace(r.End) != ""
}

// MarshalJSON encodes the range as [start, end].
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{strings.TrimSpace(r.Start), strings.TrimSpace(r.End)})
}

// UnmarshalJSON accepts [start, end] and {"start":..,"end":..}.
func (r *Range) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("open hours range needs 2 values, got %d", len(pair))
		}
		r.Start, r.End = pair[0], pair[1]
		return nil
	}
	var obj struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Open  string `json:"open"`
		Close string `json:"close"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid open hours range: %w", err)
	}
	r.Start, r.End = obj.Start, obj.End
	if r.Start == "" {
		r.Start = obj.Open
	}
	if r.End == "" {
		r.End = obj.Close
	}
	return nil
}

// Schedule is the wire form. A day key that is present with no ranges
// means closed; an absent key means the day was never specified.
type Schedule struct {
	Days  map[Weekday][]Range
	Notes string
}

// MarshalJSON writes present days in weekday order, then notes.
func (s Schedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(data)
		return nil
	}
	for _, d := range Weekdays {
		ranges, ok := s.Days[d]
		if !ok {
			continue
		}
		if ranges == nil {
			ranges = []Range{}
		}
		if err := write(string(d), ranges); err != nil {
			return nil, fmt.Errorf("encode %s: %w", d, err)
		}
	}
	if s.Notes != "" {
		if err := write("notes", s.Notes); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the backend object. Unknown keys and malformed ranges
// are skipped rather than failing the whole record.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
			*s = Schedule{}
			return nil
		}
		return fmt.Errorf("invalid open hours: %w", err)
	}
	out := Schedule{Days: make(map[Weekday][]Range)}
	for key, value := range raw {
		if strings.EqualFold(key, "notes") {
			_ = json.Unmarshal(value, &out.Notes)
			continue
		}
		d, ok := ParseWeekday(key)
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil {
			continue
		}
		ranges := make([]Range, 0, len(items))
		for _, item := range items {
			var r Range
			if err := json.Unmarshal(item, &r); err == nil {
				ranges = append(ranges, r)
			}
		}
		if len(items) > 0 && len(ranges) == 0 {
			// nothing readable; leave the day unspecified rather than closed
			continue
		}
		out.Days[d] = ranges
	}
	*s = out
	return nil
}
