package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wanderdesk/internal/openhours"
)

// HoursEditor edits the seven open-hours days. Keys when not editing a
// slot: j/k day, h/l slot, enter edit, a add slot, x remove slot, c toggle
// closed.
type HoursEditor struct {
	week    openhours.Week
	day     int
	slot    int
	editing bool
	input   textinput.Model
	err     string
}

// NewHoursEditor wraps an editable week.
func NewHoursEditor(w openhours.Week) *HoursEditor {
	in := textinput.New()
	in.Placeholder = "09:00-17:00"
	in.CharLimit = 11
	return &HoursEditor{week: w, input: in}
}

// Week returns the current rows.
func (h *HoursEditor) Week() openhours.Week { return h.week }

// Editing reports whether a slot input is open.
func (h *HoursEditor) Editing() bool { return h.editing }

func (h *HoursEditor) weekday() openhours.Weekday { return openhours.Weekdays[h.day] }

func (h *HoursEditor) current() *openhours.Day { return h.week.Day(h.weekday()) }

// Update handles keys while the editor is focused.
func (h *HoursEditor) Update(msg tea.KeyMsg) tea.Cmd {
	if h.editing {
		switch msg.String() {
		case "esc":
			h.editing = false
			h.input.Blur()
			return nil
		case "enter":
			h.commit()
			return nil
		}
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return cmd
	}

	h.err = ""
	day := h.current()
	switch msg.String() {
	case "j", "down":
		if h.day < len(openhours.Weekdays)-1 {
			h.day++
		}
		h.slot = min(h.slot, len(h.current().Slots)-1)
	case "k", "up":
		if h.day > 0 {
			h.day--
		}
		h.slot = min(h.slot, len(h.current().Slots)-1)
	case "l", "right":
		if h.slot < len(day.Slots)-1 {
			h.slot++
		}
	case "h", "left":
		if h.slot > 0 {
			h.slot--
		}
	case "a":
		if err := h.week.AddSlot(h.weekday()); err != nil {
			h.err = err.Error()
			return nil
		}
		h.slot = len(h.current().Slots) - 1
	case "x":
		h.week.RemoveSlot(h.weekday(), h.slot)
		h.slot = min(h.slot, len(h.current().Slots)-1)
	case "c":
		h.week.SetClosed(h.weekday(), day.Status != openhours.Closed)
	case "enter":
		if day.Status == openhours.Closed {
			h.err = openhours.ErrDayClosed.Error()
			return nil
		}
		if h.slot < 0 || h.slot >= len(day.Slots) {
			return nil
		}
		r := day.Slots[h.slot]
		value := ""
		if r.Start != "" || r.End != "" {
			value = r.Start + "-" + r.End
		}
		h.input.SetValue(value)
		h.input.CursorEnd()
		h.editing = true
		return h.input.Focus()
	}
	return nil
}

func (h *HoursEditor) commit() {
	text := strings.TrimSpace(h.input.Value())
	start, end, _ := strings.Cut(text, "-")
	r := openhours.Range{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
	if err := h.week.SetSlot(h.weekday(), h.slot, r); err != nil {
		h.err = err.Error()
		return
	}
	if err := h.week.Validate(); err != nil {
		h.err = err.Error()
	}
	h.editing = false
	h.input.Blur()
}

// View renders one line per day.
func (h *HoursEditor) View(label string, focused bool) string {
	lines := []string{LabelStyle.Render(label)}
	for i, d := range openhours.Weekdays {
		day := h.week[i]
		cursor := "  "
		if focused && i == h.day {
			cursor = "› "
		}
		var cells []string
		switch day.Status {
		case openhours.Closed:
			cells = append(cells, HelpDescStyle.Render("closed"))
		default:
			for n, slot := range day.Slots {
				text := "--:--–--:--"
				if slot.Start != "" || slot.End != "" {
					text = orClock(slot.Start) + "–" + orClock(slot.End)
				}
				if focused && i == h.day && n == h.slot {
					if h.editing {
						text = h.input.View()
					} else {
						text = SelectedRowStyle.Render(text)
					}
				}
				cells = append(cells, text)
			}
			if day.Status == openhours.Unset {
				cells = append(cells, HelpDescStyle.Render("(unset)"))
			}
		}
		lines = append(lines, fmt.Sprintf("%s%-10s %s", cursor, d.Label(), strings.Join(cells, "  ")))
	}
	if focused {
		lines = append(lines, HelpDescStyle.Render("j/k day  h/l slot  enter edit  a add  x remove  c closed"))
	}
	if h.err != "" {
		lines = append(lines, ErrorStyle.Render(h.err))
	}
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func orClock(s string) string {
	if s == "" {
		return "--:--"
	}
	return s
}
