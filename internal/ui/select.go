package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wanderdesk/internal/util"
)

// Option is one dropdown entry. ID is zero for plain string choices.
type Option struct {
	ID    int64
	Label string
}

type selectEvent int

const (
	selectNone selectEvent = iota
	// selectPicked means an option was chosen from the list.
	selectPicked
	// selectTyped means free text was committed without a matching option.
	selectTyped
	// selectEdited means the text changed and any earlier pick is stale.
	selectEdited
)

const maxDropdownRows = 8

// SelectModel is a searchable dropdown: typing filters, up/down moves,
// enter picks.
type SelectModel struct {
	input    textinput.Model
	spinner  spinner.Model
	options  []Option
	filtered []Option
	cursor   int
	open     bool
	loading  bool
	failed   string
	strict   bool
	picked   Option
}

// NewSelectModel creates a dropdown. A strict select only accepts one of its
// options.
func NewSelectModel(placeholder string, strict bool) *SelectModel {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 100
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &SelectModel{input: in, spinner: sp, strict: strict}
}

// StringOptions builds options from fixed labels.
func StringOptions(labels []string) []Option {
	out := make([]Option, 0, len(labels))
	for _, l := range labels {
		out = append(out, Option{Label: l})
	}
	return out
}

// SetOptions replaces the list and refilters it.
func (s *SelectModel) SetOptions(opts []Option) {
	s.options = append([]Option(nil), opts...)
	s.loading = false
	s.failed = ""
	s.refilter()
}

// SetLoading shows the spinner until options arrive.
func (s *SelectModel) SetLoading() tea.Cmd {
	s.loading = true
	s.failed = ""
	return s.spinner.Tick
}

// SetFailed shows a load error under the field.
func (s *SelectModel) SetFailed(msg string) {
	s.loading = false
	s.failed = msg
}

// Value returns the committed text.
func (s *SelectModel) Value() string { return strings.TrimSpace(s.input.Value()) }

// SetValue sets the text without opening the list.
func (s *SelectModel) SetValue(v string) {
	s.input.SetValue(v)
	s.refilter()
}

// Picked returns the option last chosen, if the text still matches it.
func (s *SelectModel) Picked() (Option, bool) {
	if s.picked.Label == "" || !strings.EqualFold(s.picked.Label, s.Value()) {
		return Option{}, false
	}
	return s.picked, true
}

func (s *SelectModel) Focus() tea.Cmd { return s.input.Focus() }

func (s *SelectModel) Blur() {
	s.input.Blur()
	s.open = false
}

// IsOpen reports whether the dropdown list is showing.
func (s *SelectModel) IsOpen() bool { return s.open }

func (s *SelectModel) refilter() {
	q := strings.ToLower(s.Value())
	s.filtered = s.filtered[:0]
	for _, o := range s.options {
		if q == "" || strings.Contains(strings.ToLower(o.Label), q) {
			s.filtered = append(s.filtered, o)
		}
	}
	if s.cursor >= len(s.filtered) {
		s.cursor = max(0, len(s.filtered)-1)
	}
}

// Update handles keys while the field is focused.
func (s *SelectModel) Update(msg tea.Msg) (selectEvent, Option, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if !s.loading {
			return selectNone, Option{}, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tick)
		return selectNone, Option{}, cmd
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return selectNone, Option{}, nil
	}

	switch keyMsg.String() {
	case "down", "ctrl+n":
		if !s.open {
			s.open = true
			s.refilter()
			return selectNone, Option{}, nil
		}
		if s.cursor < len(s.filtered)-1 {
			s.cursor++
		}
		return selectNone, Option{}, nil
	case "up", "ctrl+k":
		if s.cursor > 0 {
			s.cursor--
		}
		return selectNone, Option{}, nil
	case "esc":
		s.open = false
		return selectNone, Option{}, nil
	case "enter":
		if s.open && s.cursor < len(s.filtered) {
			return s.pick(s.filtered[s.cursor])
		}
		if o, ok := s.exact(); ok {
			return s.pick(o)
		}
		if !s.open {
			s.open = true
			s.refilter()
			return selectNone, Option{}, nil
		}
		s.open = false
		if s.strict || s.Value() == "" {
			return selectNone, Option{}, nil
		}
		return selectTyped, Option{Label: s.Value()}, nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(keyMsg)
	if s.input.Value() != before {
		s.open = true
		s.cursor = 0
		s.refilter()
		return selectEdited, Option{}, cmd
	}
	return selectNone, Option{}, cmd
}

func (s *SelectModel) pick(o Option) (selectEvent, Option, tea.Cmd) {
	s.input.SetValue(o.Label)
	s.input.CursorEnd()
	s.picked = o
	s.open = false
	s.refilter()
	return selectPicked, o, nil
}

func (s *SelectModel) exact() (Option, bool) {
	v := s.Value()
	for _, o := range s.options {
		if strings.EqualFold(strings.TrimSpace(o.Label), v) {
			return o, true
		}
	}
	return Option{}, false
}

// View renders the field with its dropdown when open.
func (s *SelectModel) View(label string, focused bool, width int) string {
	parts := []string{LabelStyle.Render(label), s.input.View()}
	switch {
	case s.loading:
		parts = append(parts, HelpDescStyle.Render(s.spinner.View()+" Loading..."))
	case s.failed != "":
		parts = append(parts, ErrorStyle.Render(s.failed))
	}
	if s.open && focused {
		parts = append(parts, s.renderDropdown(width-6))
	}
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (s *SelectModel) renderDropdown(width int) string {
	if len(s.filtered) == 0 {
		return HelpDescStyle.Render("No matches")
	}
	start := 0
	if s.cursor >= maxDropdownRows {
		start = s.cursor - maxDropdownRows + 1
	}
	var items []string
	for i := start; i < len(s.filtered) && i < start+maxDropdownRows; i++ {
		style := NormalRowStyle
		if i == s.cursor {
			style = SelectedRowStyle
		}
		items = append(items, style.Width(max(10, width)).Render(util.TruncateString(s.filtered[i].Label, max(10, width))))
	}
	if more := len(s.filtered) - (start + len(items)); more > 0 {
		items = append(items, HelpDescStyle.Render("  ..."))
	}
	return strings.Join(items, "\n")
}
