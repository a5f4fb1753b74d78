package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"wanderdesk/internal/api"
	"wanderdesk/internal/location"
	"wanderdesk/internal/model"
	"wanderdesk/internal/normalize"
)

// Backend is the subset of the API client the dashboard uses.
type Backend interface {
	List(ctx context.Context, r api.Resource, p api.ListParams) (normalize.Page, error)
	Create(ctx context.Context, r api.Resource, body any) (normalize.Ack, error)
	Update(ctx context.Context, r api.Resource, id int64, body any) (normalize.Ack, error)
	SetActive(ctx context.Context, r api.Resource, id int64, active bool) (normalize.Ack, error)
	ToggleStatus(ctx context.Context, r api.Resource, id int64, active bool) (normalize.Ack, error)
	References(ctx context.Context, level location.Level, parentID int64) ([]model.LocationRef, error)
}

const (
	// noticeTTL is how long a banner stays up.
	noticeTTL   = 4 * time.Second
	listTimeout = 15 * time.Second
)

type pageLoadedMsg struct {
	screen model.Screen
	seq    int
	page   normalize.Page
	err    error
}

type noticeExpiredMsg struct {
	seq int
}

// Model is the root Bubble Tea model.
type Model struct {
	backend  Backend
	log      zerolog.Logger
	pageSize int

	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	notice      model.NoticeMsg
	noticeSeq   int
	showingHelp bool
	columnJump  bool

	lists   map[model.Screen]*RecordsModel
	form    *FormModel
	session int

	keys      KeyMap
	formKeys  FormKeyMap
	prefs     UIPreferences
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model.
func New(backend Backend, pageSize int, logger zerolog.Logger) Model {
	lists := make(map[model.Screen]*RecordsModel, len(screens))
	for _, d := range screens {
		lists[d.screen] = NewRecordsModel(d, pageSize)
	}
	return Model{
		backend:  backend,
		log:      logger,
		pageSize: pageSize,
		screen:   model.ScreenPlaces,
		mode:     model.ModeNav,
		gState:   GStateIdle,
		lists:    lists,
		keys:     DefaultKeyMap(),
		formKeys: DefaultFormKeyMap(),
		prefs:    UIPreferences{},
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.reloadCmd(m.screen)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == model.ModeInsert && m.form != nil {
			return m, m.form.Update(msg)
		}
		return m.handleNavKey(msg)

	case model.NoticeMsg:
		return m, m.notify(msg.Kind, msg.Text)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = model.NoticeMsg{}
		}
		return m, nil

	case pageLoadedMsg:
		list := m.lists[msg.screen]
		if msg.err != nil {
			if list.LoadFailed(msg.seq) {
				m.log.Warn().Err(msg.err).Str("screen", list.desc.title).Msg("list load failed")
				return m, m.notify(model.NoticeError, "Failed to fetch "+strings.ToLower(list.desc.title)+": "+msg.err.Error())
			}
			return m, nil
		}
		list.Loaded(msg.seq, msg.page)
		return m, nil

	case referencesLoadedMsg:
		if m.form != nil {
			return m, m.form.Update(msg)
		}
		return m, nil

	case model.SavedMsg:
		if m.form == nil || msg.Session != m.form.session {
			return m, nil
		}
		m.closeForm()
		text := msg.Message
		if text == "" {
			text = screenFor(msg.Screen).resource.Label + " saved"
		}
		m.log.Info().Str("resource", screenFor(msg.Screen).resource.Label).Int64("id", msg.ID).Bool("created", msg.Created).Msg("record saved")
		return m, tea.Batch(m.notify(model.NoticeSuccess, text), m.reloadCmd(msg.Screen))

	case model.SaveFailedMsg:
		if m.form == nil || msg.Session != m.form.session {
			return m, nil
		}
		m.form.SaveFailed(msg.Err)
		return m, m.notify(model.NoticeError, msg.Err.Error())

	case model.FormCancelledMsg:
		m.closeForm()
		return m, nil

	case model.StatusChangedMsg:
		return m, m.applyStatusChange(msg)

	case undoAppliedMsg:
		return m, m.applyUndoResult(msg)

	default:
		// spinner ticks and cursor blinks
		if m.form != nil {
			return m, m.form.Update(msg)
		}
	}
	return m, nil
}

func (m *Model) current() *RecordsModel {
	return m.lists[m.screen]
}

func (m *Model) notify(kind model.NoticeKind, text string) tea.Cmd {
	m.noticeSeq++
	m.notice = model.NoticeMsg{Kind: kind, Text: text}
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) openForm(r *row) tea.Cmd {
	desc := m.current().desc
	if desc.form == formNone {
		return m.notify(model.NoticeInfo, desc.title+" are read-only")
	}
	m.session++
	m.form = NewFormModel(m.backend, desc, m.session, r)
	m.mode = model.ModeInsert
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = model.ModeNav
}

func (m *Model) reloadCmd(screen model.Screen) tea.Cmd {
	list := m.lists[screen]
	seq := list.BeginLoad()
	return loadPageCmd(m.backend, list.desc, seq, list.Params())
}

func (m *Model) switchTab(screen model.Screen) tea.Cmd {
	m.screen = screen
	list := m.current()
	if list.loaded || list.loading {
		return nil
	}
	list.ApplyPrefs(m.prefs.load(screen))
	return m.reloadCmd(screen)
}

func (m *Model) tabOffset(delta int) model.Screen {
	for i, d := range screens {
		if d.screen == m.screen {
			return screens[(i+delta+len(screens))%len(screens)].screen
		}
	}
	return m.screen
}

// applyStatusChange finishes a delete, restore or toggle. A failed
// optimistic toggle puts the row back.
func (m *Model) applyStatusChange(msg model.StatusChangedMsg) tea.Cmd {
	list := m.lists[msg.Screen]
	if msg.Err != nil {
		if msg.Toggle {
			list.SetRowActive(msg.ID, !msg.Active)
		}
		return m.notify(model.NoticeError, msg.Err.Error())
	}
	m.pushUndoAction(m.buildStatusAction(msg))
	text := msg.Message
	if text == "" {
		text = list.desc.resource.Label + " updated"
	}
	return tea.Batch(m.notify(model.NoticeSuccess, text+" (u to undo)"), m.reloadCmd(msg.Screen))
}

func (m *Model) persistCurrentTablePrefs() {
	m.prefs.save(m.screen, m.current().Prefs())
}

// handleNavKey handles list-mode input.
func (m Model) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.current()

	if m.showingHelp {
		if msg.String() == "esc" || key.Matches(msg, m.keys.Help) {
			m.showingHelp = false
		}
		return m, nil
	}

	if list.editingQuery {
		switch msg.String() {
		case "enter":
			list.StopQuery()
			list.SetQuery(list.queryInput.Value())
			return m, m.reloadCmd(m.screen)
		case "esc":
			list.StopQuery()
			return m, nil
		}
		var cmd tea.Cmd
		list.queryInput, cmd = list.queryInput.Update(msg)
		return m, cmd
	}

	if list.confirm != nil {
		c := list.TakeConfirm()
		if !key.Matches(msg, m.keys.Confirm) {
			return m, m.notify(model.NoticeInfo, "Cancelled")
		}
		active := c.kind == confirmRestore
		return m, setActiveCmd(m.backend, list.desc, c.id, c.name, active, false)
	}

	if m.columnJump {
		if msg.String() == "esc" {
			m.columnJump = false
			return m, nil
		}
		if n, err := strconv.Atoi(msg.String()); err == nil {
			m.columnJump = false
			if list.JumpToColumn(n) {
				m.persistCurrentTablePrefs()
				return m, m.notify(model.NoticeInfo, fmt.Sprintf("Jumped to column %d", n))
			}
			return m, m.notify(model.NoticeInfo, fmt.Sprintf("Column %d unavailable", n))
		}
	}

	if key.Matches(msg, m.keys.Help) {
		m.showingHelp = true
		return m, nil
	}

	if cmd, ok := m.handleColumnKey(list, msg); ok {
		return m, cmd
	}

	// "gg" state machine
	if msg.String() == "g" {
		if m.gState == GStateFirstG {
			m.gState = GStateIdle
			list.JumpToTop()
			return m, nil
		}
		m.gState = GStateFirstG
		return m, nil
	}
	m.gState = GStateIdle

	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(screens) {
		return m, m.switchTab(screens[n-1].screen)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		list.MoveDown()
	case key.Matches(msg, m.keys.Up):
		list.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		list.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		list.HalfPageDown(m.height / 2)
	case key.Matches(msg, m.keys.HalfPageUp):
		list.HalfPageUp(m.height / 2)
	case key.Matches(msg, m.keys.PrevTab):
		return m, m.switchTab(m.tabOffset(-1))
	case key.Matches(msg, m.keys.NextTab):
		return m, m.switchTab(m.tabOffset(1))
	case key.Matches(msg, m.keys.NextPage):
		if list.NextPage() {
			return m, m.reloadCmd(m.screen)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if list.PrevPage() {
			return m, m.reloadCmd(m.screen)
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd(m.screen)
	case key.Matches(msg, m.keys.Search):
		list.StartQuery()
		return m, nil
	case key.Matches(msg, m.keys.ActiveFilter):
		text := list.CycleActive()
		return m, tea.Batch(m.notify(model.NoticeInfo, text), m.reloadCmd(m.screen))
	case key.Matches(msg, m.keys.Add):
		return m, m.openForm(nil)
	case key.Matches(msg, m.keys.Edit):
		r := list.Selected()
		if r == nil {
			return m, nil
		}
		return m, m.openForm(r)
	case key.Matches(msg, m.keys.Delete):
		if problem := list.AskConfirm(confirmDelete); problem != "" {
			return m, m.notify(model.NoticeInfo, problem)
		}
	case key.Matches(msg, m.keys.Restore):
		if problem := list.AskConfirm(confirmRestore); problem != "" {
			return m, m.notify(model.NoticeInfo, problem)
		}
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleSelected(list)
	case key.Matches(msg, m.keys.Undo):
		if len(m.undoStack) == 0 {
			return m, m.notify(model.NoticeInfo, "Nothing to undo")
		}
		return m, m.undoCmd()
	case key.Matches(msg, m.keys.Redo):
		if len(m.redoStack) == 0 {
			return m, m.notify(model.NoticeInfo, "Nothing to redo")
		}
		return m, m.redoCmd()
	}
	return m, nil
}

// toggleSelected flips the row at once and sends the change; the reply
// either confirms it or reverts it.
func (m *Model) toggleSelected(list *RecordsModel) tea.Cmd {
	if !list.desc.toggle {
		return m.notify(model.NoticeInfo, "Status toggle is only available for "+strings.ToLower(screenFor(model.ScreenCountries).title))
	}
	r := list.Selected()
	if r == nil {
		return nil
	}
	next := !r.Active
	list.SetRowActive(r.ID, next)
	return setActiveCmd(m.backend, list.desc, r.ID, r.Name, next, true)
}

func (m *Model) handleColumnKey(list columnView, msg tea.KeyMsg) (tea.Cmd, bool) {
	var text string
	switch {
	case key.Matches(msg, m.keys.NextColumn):
		list.NextColumn()
	case key.Matches(msg, m.keys.PrevColumn):
		list.PrevColumn()
	case key.Matches(msg, m.keys.ColumnJump):
		m.columnJump = true
		text = "Jump to column: press 1-9 (esc to cancel)"
	case key.Matches(msg, m.keys.SortAsc):
		list.SortActiveColumn(false)
		text = "Sorted ascending"
	case key.Matches(msg, m.keys.SortDesc):
		list.SortActiveColumn(true)
		text = "Sorted descending"
	case key.Matches(msg, m.keys.HideColumn):
		text = "Cannot hide last visible column"
		if list.HideActiveColumn() {
			text = "Column hidden"
		}
	case key.Matches(msg, m.keys.ShowColumns):
		list.ShowAllColumns()
		text = "All columns shown"
	case key.Matches(msg, m.keys.FilterValue):
		text = "No filterable value in selected cell"
		if list.FilterBySelectedValue() {
			text = "Filter applied from selected value"
		}
	case key.Matches(msg, m.keys.ClearFilter):
		if !list.ClearFilter() {
			return nil, true
		}
		text = "Filter cleared"
	default:
		return nil, false
	}
	m.persistCurrentTablePrefs()
	if text == "" {
		return nil, true
	}
	return m.notify(model.NoticeInfo, text), true
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	list := m.current()
	breadcrumb := []string{list.desc.title}
	showTabs := m.form == nil

	// header + footer + padding, tabs take 2 more lines
	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}
	banner := m.renderNotice()
	if banner != "" {
		contentHeight -= lipgloss.Height(banner)
	}

	var content string
	if m.form != nil {
		verb := "New"
		if m.form.Editing() {
			verb = "Edit"
		}
		breadcrumb = append(breadcrumb, verb+" "+strings.ToLower(list.desc.resource.Label))
		content = m.form.View(m.width, contentHeight)
	} else {
		content = list.View(m.width, contentHeight)
	}

	header := renderHeader(breadcrumb, m.width)
	footer := RenderHelp(list.desc, m.mode, m.keys, m.formKeys, m.width)

	// fill the height so the footer stays at the bottom
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.width))
	}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderNotice() string {
	if m.notice.Text == "" {
		return ""
	}
	switch m.notice.Kind {
	case model.NoticeError:
		return ErrorStyle.Width(m.width).Render("Error: " + m.notice.Text)
	case model.NoticeSuccess:
		return SuccessStyle.Width(m.width).Render(m.notice.Text)
	default:
		return InfoStyle.Width(m.width).Render(m.notice.Text)
	}
}

func renderTabs(screen model.Screen, width int) string {
	var tabStrings []string
	for i, d := range screens {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(ColorMuted)

		if screen == d.screen {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(fmt.Sprintf("%d %s", i+1, d.title)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("wanderdesk")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

// Commands

func loadPageCmd(backend Backend, desc screenDesc, seq int, params api.ListParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		page, err := backend.List(ctx, desc.resource, params)
		return pageLoadedMsg{screen: desc.screen, seq: seq, page: page, err: err}
	}
}

func setActiveCmd(backend Backend, desc screenDesc, id int64, name string, active, toggle bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()
		var (
			ack normalize.Ack
			err error
		)
		if toggle {
			ack, err = backend.ToggleStatus(ctx, desc.resource, id, active)
		} else {
			ack, err = backend.SetActive(ctx, desc.resource, id, active)
		}
		msg := model.StatusChangedMsg{Screen: desc.screen, ID: id, Name: name, Active: active, Toggle: toggle, Message: ack.Message}
		if err != nil {
			verb := "delete"
			switch {
			case toggle:
				verb = "update status of"
			case active:
				verb = "restore"
			}
			msg.Err = fmt.Errorf("failed to %s %q: %w", verb, name, err)
		}
		return msg
	}
}
