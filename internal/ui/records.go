package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"wanderdesk/internal/api"
	"wanderdesk/internal/normalize"
	"wanderdesk/internal/util"
)

type column struct {
	key     string
	label   string
	width   int
	numeric bool
	hidden  bool
}

// row is one rendered record. Record keeps the normalized source so forms
// can be prefilled from it.
type row struct {
	ID     int64
	Name   string
	Active bool
	Rating float64
	Values map[string]string
	Record normalize.Record
}

type activeFilter int

const (
	showActive activeFilter = iota
	showInactive
	showAll
)

func (f activeFilter) String() string {
	switch f {
	case showInactive:
		return "inactive"
	case showAll:
		return "all"
	default:
		return "active"
	}
}

type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmRestore
)

type confirmation struct {
	kind confirmKind
	id   int64
	name string
}

// pageWindow is how many page numbers the status bar shows at once.
const pageWindow = 5

// RecordsModel is a server-paged list of one resource.
type RecordsModel struct {
	desc    screenDesc
	allRows []row
	rows    []row
	cursor  int
	offset  int

	viewportHeight int

	columns      []column
	activeColumn int
	sortKey      string
	sortDesc     bool
	filterKey    string
	filterValue  string

	page     int
	pageSize int
	total    int
	query    string
	active   activeFilter
	loading  bool
	loaded   bool
	seq      int

	queryInput   textinput.Model
	editingQuery bool
	confirm      *confirmation
}

// NewRecordsModel creates an empty list for desc.
func NewRecordsModel(desc screenDesc, pageSize int) *RecordsModel {
	if pageSize <= 0 {
		pageSize = 10
	}
	qi := textinput.New()
	qi.Placeholder = "search by name"
	qi.CharLimit = 100
	return &RecordsModel{
		desc:       desc,
		columns:    append([]column(nil), desc.columns...),
		page:       1,
		pageSize:   pageSize,
		queryInput: qi,
	}
}

// Params returns the list query for the current page and filters.
func (m *RecordsModel) Params() api.ListParams {
	p := api.ListParams{
		Page:     m.page,
		PageSize: m.pageSize,
		Query:    m.query,
	}
	switch m.active {
	case showActive:
		p.IsActive = api.Bool(true)
	case showInactive:
		p.IsActive = api.Bool(false)
	}
	return p
}

// BeginLoad marks a fetch in flight and returns its sequence number.
func (m *RecordsModel) BeginLoad() int {
	m.seq++
	m.loading = true
	return m.seq
}

// Loaded installs a page. Results for a superseded fetch are ignored.
func (m *RecordsModel) Loaded(seq int, page normalize.Page) bool {
	if seq != m.seq {
		return false
	}
	m.loading = false
	m.loaded = true
	rows := make([]row, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, m.desc.rowOf(item))
	}
	m.allRows = rows
	m.total = page.Total
	m.rebuild()
	return true
}

// LoadFailed ends a fetch, keeping the previous rows.
func (m *RecordsModel) LoadFailed(seq int) bool {
	if seq != m.seq {
		return false
	}
	m.loading = false
	return true
}

// Pages returns the number of server pages.
func (m *RecordsModel) Pages() int {
	if m.total <= 0 {
		return 1
	}
	return (m.total + m.pageSize - 1) / m.pageSize
}

// PageNumbers returns up to pageWindow page numbers around the current one.
func (m *RecordsModel) PageNumbers() []int {
	pages := m.Pages()
	start := max(1, m.page-pageWindow/2)
	end := min(pages, start+pageWindow-1)
	start = max(1, end-pageWindow+1)
	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}

// NextPage advances one page and reports whether a reload is needed.
func (m *RecordsModel) NextPage() bool {
	if m.page >= m.Pages() {
		return false
	}
	m.page++
	m.JumpToTop()
	return true
}

// PrevPage goes back one page and reports whether a reload is needed.
func (m *RecordsModel) PrevPage() bool {
	if m.page <= 1 {
		return false
	}
	m.page--
	m.JumpToTop()
	return true
}

// SetQuery sets the server search text and returns to the first page.
func (m *RecordsModel) SetQuery(q string) {
	m.query = strings.TrimSpace(q)
	m.page = 1
	m.JumpToTop()
}

// CycleActive moves through active, inactive and all records.
func (m *RecordsModel) CycleActive() string {
	m.active = (m.active + 1) % 3
	m.page = 1
	m.JumpToTop()
	return "Showing " + m.active.String() + " " + strings.ToLower(m.desc.title)
}

// StartQuery opens the search input.
func (m *RecordsModel) StartQuery() {
	m.editingQuery = true
	m.queryInput.SetValue(m.query)
	m.queryInput.CursorEnd()
	m.queryInput.Focus()
}

// StopQuery closes the search input.
func (m *RecordsModel) StopQuery() {
	m.editingQuery = false
	m.queryInput.Blur()
}

// Selected returns the row under the cursor.
func (m *RecordsModel) Selected() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// SetRowActive flips a row's flag locally and returns the previous value.
func (m *RecordsModel) SetRowActive(id int64, active bool) (bool, bool) {
	found := false
	prev := false
	for _, list := range [][]row{m.allRows, m.rows} {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			prev = list[i].Active
			list[i].Active = active
			list[i].Values["status"] = util.FormatActive(active)
			found = true
		}
	}
	return prev, found
}

// AskConfirm opens a delete or restore confirmation for the selected row.
// Deleting an inactive row or restoring an active one is refused.
func (m *RecordsModel) AskConfirm(kind confirmKind) string {
	r := m.Selected()
	if r == nil {
		return "No row selected"
	}
	if m.desc.resource.Active == "" {
		return m.desc.title + " are read-only"
	}
	switch {
	case kind == confirmDelete && !r.Active:
		return fmt.Sprintf("%q is already deleted", r.Name)
	case kind == confirmRestore && r.Active:
		return fmt.Sprintf("%q is already active", r.Name)
	}
	m.confirm = &confirmation{kind: kind, id: r.ID, name: r.Name}
	return ""
}

// TakeConfirm returns and clears the pending confirmation.
func (m *RecordsModel) TakeConfirm() *confirmation {
	c := m.confirm
	m.confirm = nil
	return c
}

func (m *RecordsModel) ApplyPrefs(prefs TablePrefs) {
	if prefs.SortKey != "" {
		m.sortKey = prefs.SortKey
		m.sortDesc = prefs.SortDesc
	}
	hidden := make(map[string]bool, len(prefs.HiddenColumns))
	for _, c := range prefs.HiddenColumns {
		hidden[c] = true
	}
	for i := range m.columns {
		m.columns[i].hidden = hidden[m.columns[i].key]
	}
	if prefs.ActiveColumn != "" {
		for i, c := range m.columns {
			if c.key == prefs.ActiveColumn {
				m.activeColumn = i
				break
			}
		}
	}
	m.ensureVisibleActiveColumn()
	m.rebuild()
}

func (m *RecordsModel) Prefs() TablePrefs {
	var hidden []string
	for _, c := range m.columns {
		if c.hidden {
			hidden = append(hidden, c.key)
		}
	}
	return TablePrefs{
		SortKey:       m.sortKey,
		SortDesc:      m.sortDesc,
		HiddenColumns: hidden,
		ActiveColumn:  m.columns[m.activeColumn].key,
	}
}

func (m *RecordsModel) rebuild() {
	rows := append([]row(nil), m.allRows...)

	if m.filterKey != "" && m.filterValue != "" {
		filtered := make([]row, 0, len(rows))
		target := strings.ToLower(strings.TrimSpace(m.filterValue))
		for _, r := range rows {
			if strings.EqualFold(strings.TrimSpace(r.Values[m.filterKey]), target) {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	if m.sortKey != "" {
		numeric := m.columnByKey(m.sortKey).numeric
		sort.SliceStable(rows, func(i, j int) bool {
			left, right := rows[i].Values[m.sortKey], rows[j].Values[m.sortKey]
			if numeric {
				l, r := sortNumber(left), sortNumber(right)
				if l != r {
					if m.sortDesc {
						return l > r
					}
					return l < r
				}
				return rows[i].ID > rows[j].ID
			}
			left, right = strings.ToLower(left), strings.ToLower(right)
			if left == right {
				return rows[i].ID > rows[j].ID
			}
			if m.sortDesc {
				return left > right
			}
			return left < right
		})
	}

	m.rows = rows
	m.clampCursor()
}

// sortNumber reads the leading number of a cell such as "4.5★" or "250 INR".
func sortNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

func (m *RecordsModel) columnByKey(key string) column {
	for _, c := range m.columns {
		if c.key == key {
			return c
		}
	}
	return column{}
}

func (m *RecordsModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m *RecordsModel) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *RecordsModel) ensureVisibleActiveColumn() {
	if !m.columns[m.activeColumn].hidden {
		return
	}
	for i := range m.columns {
		if !m.columns[i].hidden {
			m.activeColumn = i
			return
		}
	}
	m.columns[0].hidden = false
	m.activeColumn = 0
}

func (m *RecordsModel) NextColumn() {
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *RecordsModel) PrevColumn() {
	start := m.activeColumn
	for {
		m.activeColumn--
		if m.activeColumn < 0 {
			m.activeColumn = len(m.columns) - 1
		}
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *RecordsModel) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.columns) {
		return false
	}
	idx := number - 1
	if m.columns[idx].hidden {
		return false
	}
	m.activeColumn = idx
	return true
}

func (m *RecordsModel) SortActiveColumn(desc bool) {
	m.sortKey = m.columns[m.activeColumn].key
	m.sortDesc = desc
	m.rebuild()
}

func (m *RecordsModel) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *RecordsModel) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

func (m *RecordsModel) FilterBySelectedValue() bool {
	if len(m.rows) == 0 {
		return false
	}
	key := m.columns[m.activeColumn].key
	value := strings.TrimSpace(m.rows[m.cursor].Values[key])
	if value == "" || value == "—" {
		return false
	}
	m.filterKey = key
	m.filterValue = value
	m.rebuild()
	return true
}

func (m *RecordsModel) ClearFilter() bool {
	if m.filterKey == "" {
		return false
	}
	m.filterKey = ""
	m.filterValue = ""
	m.rebuild()
	return true
}

func (m *RecordsModel) TableMeta() string {
	col := strings.ToUpper(m.columns[m.activeColumn].label)
	parts := []string{fmt.Sprintf("col %s", col)}
	if m.sortKey != "" {
		order := "asc"
		if m.sortDesc {
			order = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", strings.ToUpper(m.sortKey), order))
	}
	if m.filterKey != "" {
		parts = append(parts, fmt.Sprintf("filter %s=%q", strings.ToUpper(m.filterKey), m.filterValue))
	}
	return strings.Join(parts, "  ·  ")
}

// PageInfo renders "page 2/5 [1] 2 [3]..." for the status bar.
func (m *RecordsModel) PageInfo() string {
	nums := m.PageNumbers()
	parts := make([]string, 0, len(nums))
	for _, p := range nums {
		if p == m.page {
			parts = append(parts, fmt.Sprintf("[%d]", p))
			continue
		}
		parts = append(parts, strconv.Itoa(p))
	}
	return fmt.Sprintf("page %d/%d %s", m.page, m.Pages(), strings.Join(parts, " "))
}

// View renders the list.
func (m *RecordsModel) View(width, height int) string {
	var top []string
	if m.editingQuery {
		top = append(top, LabelStyle.Render("Search ")+m.queryInput.View())
	} else if m.query != "" {
		top = append(top, HelpDescStyle.Render(fmt.Sprintf("search %q  (f to change)", m.query)))
	}
	if m.confirm != nil {
		verb := "Delete"
		if m.confirm.kind == confirmRestore {
			verb = "Restore"
		}
		top = append(top, ConfirmStyle.Render(fmt.Sprintf("%s %s %q? y to confirm, any other key to cancel", verb, strings.ToLower(m.desc.resource.Label), m.confirm.name)))
	}
	height -= len(top)

	var body string
	switch {
	case len(m.rows) == 0 && m.loading:
		body = EmptyStateStyle.Width(width).Height(height).Render("    Loading " + strings.ToLower(m.desc.title) + "...")
	case len(m.rows) == 0:
		emptyMsg := fmt.Sprintf("    No %s %s.", m.active, strings.ToLower(m.desc.title))
		if m.desc.form != formNone {
			emptyMsg += "\n    Press  a  to add one!"
		}
		body = EmptyStateStyle.Width(width).Height(height).Render(emptyMsg)
	default:
		body = m.renderTable(width, height)
	}
	if len(top) == 0 {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(top, body)...)
}

func (m *RecordsModel) renderTable(width, height int) string {
	visible := m.visibleColumnIndexes()
	if len(visible) == 0 {
		return EmptyStateStyle.Width(width).Height(height).Render("No visible columns. Press C to show all columns.")
	}

	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	totalFixed := 0
	for _, idx := range visible {
		col := m.columns[idx]
		label := formatHeaderLabel(col.label)
		if idx == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		if m.sortKey == col.key {
			if m.sortDesc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		cellWidth := max(col.width+2, lipgloss.Width(label)+4)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}
	if len(widths) > 0 {
		sepTotal := (len(widths) - 1) * tableSeparatorWidth()
		extra := width - totalFixed - sepTotal - 2
		if extra > 0 {
			widths[len(widths)-1] += extra
		}
	}

	header := renderTableRow(headers, widths, TableHeaderStyle.Bold(true))
	divider := renderTableDivider(widths)

	visibleHeight := height - 3
	m.viewportHeight = visibleHeight
	var rows []string

	totalRating := 0.0
	ratedCount := 0
	for _, r := range m.rows {
		if r.Rating > 0 {
			totalRating += r.Rating
			ratedCount++
		}
	}

	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		r := m.rows[i]
		style := NormalRowStyle
		if !r.Active {
			style = InactiveRowStyle
		}
		if i == m.cursor {
			style = SelectedRowStyle
		}

		cells := make([]string, 0, len(visible))
		for _, idx := range visible {
			col := m.columns[idx]
			value := util.TruncateString(util.OrDash(r.Values[col.key]), col.width)
			if col.key == "rating" && r.Rating > 0 && i != m.cursor {
				value = lipgloss.NewStyle().Foreground(ColorYellow).Render(value)
			}
			cells = append(cells, value)
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	overallAvg := ""
	if ratedCount > 0 {
		overallAvg = "  ·  avg rating " + util.FormatAvgRating(totalRating/float64(ratedCount))
	}
	filterInfo := ""
	if m.filterKey != "" {
		filterInfo = fmt.Sprintf("  ·  filtered: %d/%d", len(m.rows), len(m.allRows))
	}
	meta := m.TableMeta()
	if meta != "" {
		meta = "  ·  " + meta
	}
	rowPos := fmt.Sprintf("  ·  row %d/%d", m.cursor+1, len(m.rows))
	loading := ""
	if m.loading {
		loading = "  ·  loading"
	}
	status := StatusBarStyle.Render(fmt.Sprintf("%d %s %s%s  ·  %s%s%s%s%s",
		m.total, m.active, strings.ToLower(m.desc.title), rowPos, m.PageInfo(), overallAvg, filterInfo, meta, loading))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(rows, "\n"),
	)
	statusHeight := lipgloss.Height(status)
	contentHeight := lipgloss.Height(content)
	spacerHeight := max(0, height-contentHeight-statusHeight)
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		spacer,
		status,
	)
}

// MoveDown moves the cursor down.
func (m *RecordsModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= m.offset+vh {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *RecordsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first item.
func (m *RecordsModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last item.
func (m *RecordsModel) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= vh {
			m.offset = m.cursor - vh + 1
		}
	}
}

// HalfPageDown moves down half a page.
func (m *RecordsModel) HalfPageDown(pageSize int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += pageSize / 2
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	vh := m.viewportHeight
	if vh == 0 {
		vh = 10
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *RecordsModel) HalfPageUp(pageSize int) {
	m.cursor -= pageSize / 2
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}
