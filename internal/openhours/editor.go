package openhours

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxSlots is the number of ranges a day may hold.
const MaxSlots = 2

// Status is the editable state of one day.
type Status int

const (
	// Unset means the backend never specified the day.
	Unset Status = iota
	// Open means the day's slots are authoritative.
	Open
	// Closed means the day serializes as an empty list whatever its slots.
	Closed
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unset"
	}
}

var (
	// ErrSlotLimit is returned when a day already holds MaxSlots rows.
	ErrSlotLimit = errors.New("a day holds at most 2 slots")
	// ErrDayClosed is returned when editing slots of a closed day.
	ErrDayClosed = errors.New("day is marked closed")
)

// Day is one editable row group. Slots always holds at least one row,
// possibly empty.
type Day struct {
	Status Status
	Slots  []Range
}

// Week holds the seven editable days in Weekdays order.
type Week [7]Day

// Day returns a pointer to the editable day for d.
func (w *Week) Day(d Weekday) *Day {
	i := d.Index()
	if i < 0 {
		return nil
	}
	return &w[i]
}

// DefaultWeek is the starting state of a new place: open all day, every day.
func DefaultWeek() Week {
	var w Week
	for i := range w {
		w[i] = Day{Status: Open, Slots: []Range{{Start: "00:00", End: "23:59"}}}
	}
	return w
}

// ToEditable converts the wire schedule into slot rows. Up to MaxSlots
// ranges are kept per day; a day with no ranges gets one empty row.
func ToEditable(s Schedule) Week {
	var w Week
	for i, d := range Weekdays {
		ranges, present := s.Days[d]
		day := Day{Status: Unset}
		switch {
		case present && len(ranges) == 0:
			day.Status = Closed
		case present:
			day.Status = Open
			n := len(ranges)
			if n > MaxSlots {
				n = MaxSlots
			}
			day.Slots = append([]Range(nil), ranges[:n]...)
		}
		if len(day.Slots) == 0 {
			day.Slots = []Range{{}}
		}
		w[i] = day
	}
	return w
}

// ToWire converts slot rows back to the wire schedule. Every weekday key is
// emitted. Closed days become empty lists, other days keep their complete
// rows in order, capped at MaxSlots.
func ToWire(w Week, notes string) Schedule {
	s := Schedule{Days: make(map[Weekday][]Range, len(Weekdays)), Notes: strings.TrimSpace(notes)}
	for i, d := range Weekdays {
		day := w[i]
		ranges := []Range{}
		if day.Status != Closed {
			for _, slot := range day.Slots {
				if !slot.Complete() {
					continue
				}
				ranges = append(ranges, Range{Start: strings.TrimSpace(slot.Start), End: strings.TrimSpace(slot.End)})
				if len(ranges) == MaxSlots {
					break
				}
			}
		}
		s.Days[d] = ranges
	}
	return s
}

// AddSlot appends an empty row to d.
func (w *Week) AddSlot(d Weekday) error {
	day := w.Day(d)
	if day == nil {
		return fmt.Errorf("unknown weekday %q", d)
	}
	if day.Status == Closed {
		return ErrDayClosed
	}
	if len(day.Slots) >= MaxSlots {
		return ErrSlotLimit
	}
	day.Slots = append(day.Slots, Range{})
	return nil
}

// RemoveSlot drops row i from d. Removing the last row leaves one empty row.
func (w *Week) RemoveSlot(d Weekday, i int) {
	day := w.Day(d)
	if day == nil || i < 0 || i >= len(day.Slots) {
		return
	}
	day.Slots = append(day.Slots[:i:i], day.Slots[i+1:]...)
	if len(day.Slots) == 0 {
		day.Slots = []Range{{}}
	}
}

// SetSlot replaces row i of d. Editing an unset day opens it.
func (w *Week) SetSlot(d Weekday, i int, r Range) error {
	day := w.Day(d)
	if day == nil {
		return fmt.Errorf("unknown weekday %q", d)
	}
	if day.Status == Closed {
		return ErrDayClosed
	}
	if i < 0 || i >= len(day.Slots) {
		return fmt.Errorf("slot %d out of range", i)
	}
	day.Slots[i] = r
	if day.Status == Unset {
		day.Status = Open
	}
	return nil
}

// SetClosed toggles the closed flag. Slots are kept so unchecking restores
// them.
func (w *Week) SetClosed(d Weekday, closed bool) {
	day := w.Day(d)
	if day == nil {
		return
	}
	if closed {
		day.Status = Closed
		return
	}
	day.Status = Open
	if len(day.Slots) == 0 {
		day.Slots = []Range{{}}
	}
}

// Validate checks every filled boundary of non-closed days against HH:MM
// and that a complete range does not end before it starts.
func (w Week) Validate() error {
	var problems []string
	for i, d := range Weekdays {
		day := w[i]
		if day.Status == Closed {
			continue
		}
		for n, slot := range day.Slots {
			start, end := strings.TrimSpace(slot.Start), strings.TrimSpace(slot.End)
			var ts, te time.Time
			var errS, errE error
			if start != "" {
				if ts, errS = parseClock(start); errS != nil {
					problems = append(problems, fmt.Sprintf("%s slot %d start %q is not HH:MM", d.Label(), n+1, start))
				}
			}
			if end != "" {
				if te, errE = parseClock(end); errE != nil {
					problems = append(problems, fmt.Sprintf("%s slot %d end %q is not HH:MM", d.Label(), n+1, end))
				}
			}
			if start != "" && end != "" && errS == nil && errE == nil && te.Before(ts) {
				problems = append(problems, fmt.Sprintf("%s slot %d ends before it starts", d.Label(), n+1))
			}
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func parseClock(s string) (time.Time, error) {
	if len(s) != 5 {
		return time.Time{}, fmt.Errorf("invalid clock %q", s)
	}
	return time.Parse("15:04", s)
}
