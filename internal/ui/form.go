package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wanderdesk/internal/location"
	"wanderdesk/internal/model"
	"wanderdesk/internal/normalize"
	"wanderdesk/internal/payload"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSelect
	fieldLocation
	fieldToggle
	fieldHours
)

type field struct {
	key      string
	label    string
	kind     fieldKind
	input    textinput.Model
	sel      *SelectModel
	level    location.Level
	on       bool
	required bool
	numeric  bool
}

func textField(key, label, placeholder string, limit int) *field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return &field{key: key, label: label, kind: fieldText, input: in}
}

func numberField(key, label, placeholder string) *field {
	f := textField(key, label, placeholder, 16)
	f.numeric = true
	return f
}

func selectField(key, label string, opts []string) *field {
	sel := NewSelectModel("choose...", true)
	sel.SetOptions(StringOptions(opts))
	return &field{key: key, label: label, kind: fieldSelect, sel: sel}
}

func locationField(level location.Level, label string) *field {
	return &field{
		key:   level.String(),
		label: label,
		kind:  fieldLocation,
		level: level,
		sel:   NewSelectModel("type to search "+level.String()+"...", false),
	}
}

func toggleField(key, label string, on bool) *field {
	return &field{key: key, label: label, kind: fieldToggle, on: on}
}

func required(f *field) *field {
	f.required = true
	f.label += " *"
	return f
}

// referencesLoadedMsg carries a cascade list back to the form that asked.
type referencesLoadedMsg struct {
	session int
	result  location.Result
}

// FormModel is the create/edit form shared by every writable resource.
// The fields and payload depend on kind.
type FormModel struct {
	backend Backend
	keys    FormKeyMap
	desc    screenDesc
	session int
	id      int64
	fields  []*field
	focused int
	loc     *location.Controller
	hours   *HoursEditor
	error   string
	saving  bool
	preview bool
	pending []location.Fetch
}

// NewFormModel builds the form for desc. r is the row being edited, or nil
// for a new record.
func NewFormModel(backend Backend, desc screenDesc, session int, r *row) *FormModel {
	m := &FormModel{backend: backend, keys: DefaultFormKeyMap(), desc: desc, session: session}
	var rec normalize.Record
	if r != nil {
		m.id = r.ID
		rec = r.Record
	}
	switch desc.form {
	case formPlace:
		m.buildPlace(rec)
	case formRestaurant:
		m.buildRestaurant(rec)
	default:
		m.buildGeo(rec)
	}
	m.focusField(0)
	return m
}

// Editing reports whether the form updates an existing record.
func (m *FormModel) Editing() bool { return m.id != 0 }

// Init requests the reference lists the cascade needs up front.
func (m *FormModel) Init() tea.Cmd {
	if m.loc == nil {
		return nil
	}
	fetches := append(m.loc.Start(), m.pending...)
	m.pending = nil
	m.syncLocation()
	return m.fetchCmd(fetches)
}

func (m *FormModel) field(key string) *field {
	for _, f := range m.fields {
		if f.key == key {
			return f
		}
	}
	return nil
}

func (m *FormModel) text(key string) string {
	f := m.field(key)
	if f == nil {
		return ""
	}
	if f.sel != nil {
		return f.sel.Value()
	}
	return strings.TrimSpace(f.input.Value())
}

func (m *FormModel) setText(key, value string) {
	f := m.field(key)
	if f == nil {
		return
	}
	if f.sel != nil {
		f.sel.SetValue(value)
		return
	}
	f.input.SetValue(value)
}

func (m *FormModel) isOn(key string) bool {
	f := m.field(key)
	return f != nil && f.on
}

func (m *FormModel) selection() location.Selection {
	if m.loc == nil {
		return location.Selection{}
	}
	return m.loc.Selection()
}

func (m *FormModel) resolver() location.Resolver {
	if m.loc == nil {
		return nil
	}
	return m.loc
}

// Update handles keys and cascade results.
func (m *FormModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case referencesLoadedMsg:
		if msg.session != m.session || m.loc == nil {
			return nil
		}
		next, ok := m.loc.Loaded(msg.result)
		if !ok {
			return nil
		}
		m.syncLocation()
		if err := msg.result.Err; err != nil {
			notice := model.NoticeMsg{
				Kind: model.NoticeError,
				Text: fmt.Sprintf("Could not load %s list: %v", msg.result.Level, err),
			}
			return tea.Batch(m.fetchCmd(next), func() tea.Msg { return notice })
		}
		return m.fetchCmd(next)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmds []tea.Cmd
		for _, f := range m.fields {
			if f.sel != nil {
				_, _, cmd := f.sel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
		return tea.Batch(cmds...)
	}
}

func (m *FormModel) current() *field {
	if m.focused < 0 || m.focused >= len(m.fields) {
		return nil
	}
	return m.fields[m.focused]
}

func (m *FormModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	f := m.current()
	hoursEditing := f.kind == fieldHours && m.hours.Editing()
	captured := (f.sel != nil && f.sel.IsOpen()) || hoursEditing

	switch {
	case key.Matches(msg, m.keys.Cancel) && !captured:
		if m.preview {
			m.preview = false
			return nil
		}
		return func() tea.Msg { return model.FormCancelledMsg{} }
	case key.Matches(msg, m.keys.Save):
		return m.submit()
	case key.Matches(msg, m.keys.Preview):
		m.preview = !m.preview
		return m.fetchCmd(m.commitLocation())
	case key.Matches(msg, m.keys.NextField) && !hoursEditing:
		return m.move(1)
	case key.Matches(msg, m.keys.PrevField) && !hoursEditing:
		return m.move(-1)
	}

	switch f.kind {
	case fieldToggle:
		switch msg.String() {
		case " ", "space", "enter":
			f.on = !f.on
		case "y":
			f.on = true
		case "n":
			f.on = false
		}
		return nil
	case fieldHours:
		return m.hours.Update(msg)
	case fieldSelect:
		_, _, cmd := f.sel.Update(msg)
		return cmd
	case fieldLocation:
		ev, opt, cmd := f.sel.Update(msg)
		var fetches []location.Fetch
		switch ev {
		case selectPicked:
			fetches = m.loc.Pick(f.level, model.LocationRef{ID: opt.ID, Name: opt.Label})
			m.syncLocation()
		case selectTyped:
			fetches = m.loc.Select(f.level, opt.Label)
			m.syncLocation()
		}
		return tea.Batch(cmd, m.fetchCmd(fetches))
	default:
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return cmd
	}
}

func (m *FormModel) move(delta int) tea.Cmd {
	fetches := m.commitField(m.current())
	next := (m.focused + delta + len(m.fields)) % len(m.fields)
	cmd := m.focusField(next)
	return tea.Batch(cmd, m.fetchCmd(fetches))
}

func (m *FormModel) focusField(i int) tea.Cmd {
	if cur := m.current(); cur != nil {
		cur.input.Blur()
		if cur.sel != nil {
			cur.sel.Blur()
		}
	}
	m.focused = i
	f := m.fields[i]
	switch {
	case f.sel != nil:
		return f.sel.Focus()
	case f.kind == fieldText:
		return f.input.Focus()
	}
	return nil
}

// commitField pushes text typed into a location field to the controller
// when the field is left without picking.
func (m *FormModel) commitField(f *field) []location.Fetch {
	if f == nil || f.kind != fieldLocation || m.loc == nil {
		return nil
	}
	if strings.EqualFold(f.sel.Value(), m.loc.Name(f.level)) {
		return nil
	}
	fetches := m.loc.Select(f.level, f.sel.Value())
	m.syncLocation()
	return fetches
}

func (m *FormModel) commitLocation() []location.Fetch {
	var fetches []location.Fetch
	for _, f := range m.fields {
		fetches = append(fetches, m.commitField(f)...)
	}
	return fetches
}

// syncLocation copies names, lists and load states from the controller
// into the location fields.
func (m *FormModel) syncLocation() {
	if m.loc == nil {
		return
	}
	for _, f := range m.fields {
		if f.kind != fieldLocation {
			continue
		}
		// the focused field already shows what the user typed or picked
		if name := m.loc.Name(f.level); !f.sel.input.Focused() && !strings.EqualFold(name, f.sel.Value()) {
			f.sel.SetValue(name)
		}
		items := m.loc.Items(f.level)
		opts := make([]Option, 0, len(items))
		for _, it := range items {
			opts = append(opts, Option{ID: it.ID, Label: it.Name})
		}
		f.sel.SetOptions(opts)
		switch st, err := m.loc.Status(f.level); st {
		case location.Loading:
			f.sel.loading = true
		case location.Failed:
			f.sel.SetFailed("Could not load list: " + err.Error())
		}
	}
}

func (m *FormModel) fetchCmd(fetches []location.Fetch) tea.Cmd {
	if len(fetches) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, 2*len(fetches))
	for _, f := range fetches {
		cmds = append(cmds, referencesCmd(m.backend, m.session, f))
		if lf := m.locationField(f.Level); lf != nil {
			cmds = append(cmds, lf.sel.SetLoading())
		}
	}
	return tea.Batch(cmds...)
}

func (m *FormModel) locationField(level location.Level) *field {
	for _, f := range m.fields {
		if f.kind == fieldLocation && f.level == level {
			return f
		}
	}
	return nil
}

// Payload builds the request body from the current field values.
func (m *FormModel) Payload() any {
	switch m.desc.form {
	case formPlace:
		return m.placePayload()
	case formRestaurant:
		return m.restaurantPayload()
	default:
		return m.geoPayload()
	}
}

func (m *FormModel) validate() error {
	var problems []string
	for _, f := range m.fields {
		value := m.text(f.key)
		if f.required && f.kind != fieldLocation && value == "" {
			problems = append(problems, strings.TrimSuffix(f.label, " *")+" is required")
		}
		if f.numeric && value != "" {
			if _, ok := payload.ParseNumber(value); !ok {
				problems = append(problems, fmt.Sprintf("%s must be a number", f.label))
			}
		}
	}
	if m.loc != nil {
		var missing []string
		for _, f := range m.fields {
			if f.kind == fieldLocation && f.required && m.loc.Resolve(f.level) == 0 {
				missing = append(missing, f.level.String())
			}
		}
		if len(missing) > 0 {
			problems = append(problems, "select "+strings.Join(missing, ", ")+" from the list")
		}
	}
	if m.hours != nil {
		if err := m.hours.Week().Validate(); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (m *FormModel) submit() tea.Cmd {
	if m.saving {
		return nil
	}
	fetches := m.fetchCmd(m.commitLocation())
	if err := m.validate(); err != nil {
		m.error = err.Error()
		return fetches
	}
	m.error = ""
	m.saving = true
	return tea.Batch(fetches, saveCmd(m.backend, m.desc, m.session, m.id, m.Payload()))
}

// SaveFailed re-enables the form after a rejected save.
func (m *FormModel) SaveFailed(err error) {
	m.saving = false
	m.error = err.Error()
}

// View renders the visible window of fields around the focused one.
func (m *FormModel) View(width, height int) string {
	inner := width - 8
	blocks := make([]string, len(m.fields))
	for i, f := range m.fields {
		blocks[i] = m.renderField(f, i == m.focused, inner)
	}

	var footer []string
	if m.saving {
		footer = append(footer, HelpDescStyle.Render("Saving..."))
	}
	if m.error != "" {
		footer = append(footer, ErrorStyle.Render(m.error))
	}
	budget := height - 6 - len(footer)

	body := visibleWindow(blocks, m.focused, budget)
	if m.preview {
		preview := m.renderPreview(inner/2, height-6)
		left := lipgloss.NewStyle().Width(inner - lipgloss.Width(preview) - 2).Render(body)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", preview)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{body}, footer...)...)
	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(content)
}

func (m *FormModel) renderField(f *field, focused bool, width int) string {
	switch f.kind {
	case fieldSelect, fieldLocation:
		return f.sel.View(f.label, focused, width)
	case fieldToggle:
		box := "[ ]"
		if f.on {
			box = "[x]"
		}
		style := BorderStyle
		if focused {
			style = ActiveBorderStyle
		}
		return style.Render(box + " " + LabelStyle.Render(f.label))
	case fieldHours:
		return m.hours.View(f.label, focused)
	default:
		return renderFormField(f.label, f.input, focused)
	}
}

func (m *FormModel) renderPreview(width, height int) string {
	data, err := json.MarshalIndent(m.Payload(), "", "  ")
	text := string(data)
	if err != nil {
		text = err.Error()
	}
	lines := strings.Split(text, "\n")
	if len(lines) > height-2 && height > 3 {
		lines = append(lines[:height-3], "  ...")
	}
	return PreviewStyle.Width(max(30, width)).Render(strings.Join(lines, "\n"))
}

// visibleWindow joins blocks around focus until the line budget is spent.
func visibleWindow(blocks []string, focus, budget int) string {
	if len(blocks) == 0 {
		return ""
	}
	start, end := focus, focus+1
	used := lipgloss.Height(blocks[focus])
	for {
		grew := false
		if end < len(blocks) && used+lipgloss.Height(blocks[end]) <= budget {
			used += lipgloss.Height(blocks[end])
			end++
			grew = true
		}
		if start > 0 && used+lipgloss.Height(blocks[start-1]) <= budget {
			start--
			used += lipgloss.Height(blocks[start])
			grew = true
		}
		if !grew {
			break
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks[start:end]...)
}

func referencesCmd(backend Backend, session int, f location.Fetch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		items, err := backend.References(ctx, f.Level, f.ParentID)
		return referencesLoadedMsg{session: session, result: location.Result{Fetch: f, Items: items, Err: err}}
	}
}

func saveCmd(backend Backend, desc screenDesc, session int, id int64, body any) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if id == 0 {
			ack, err := backend.Create(ctx, desc.resource, body)
			if err != nil {
				return model.SaveFailedMsg{Session: session, Err: fmt.Errorf("failed to create %s: %w", strings.ToLower(desc.resource.Label), err)}
			}
			return model.SavedMsg{Session: session, Screen: desc.screen, ID: ack.Result.ID("id"), Created: true, Message: ack.Message}
		}
		ack, err := backend.Update(ctx, desc.resource, id, body)
		if err != nil {
			return model.SaveFailedMsg{Session: session, Err: fmt.Errorf("failed to update %s: %w", strings.ToLower(desc.resource.Label), err)}
		}
		return model.SavedMsg{Session: session, Screen: desc.screen, ID: id, Message: ack.Message}
	}
}
