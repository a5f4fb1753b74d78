package ui

import "github.com/charmbracelet/bubbles/key"

// GState represents the state for "gg" navigation.
type GState int

const (
	GStateIdle GState = iota
	GStateFirstG
)

// KeyMap defines all keybindings for nav mode.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PrevTab      key.Binding
	NextTab      key.Binding
	Bottom       key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	Search       key.Binding
	ActiveFilter key.Binding
	Reload       key.Binding
	Quit         key.Binding
	Help         key.Binding
	Add          key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Restore      key.Binding
	Toggle       key.Binding
	Confirm      key.Binding
	NextColumn   key.Binding
	PrevColumn   key.Binding
	SortAsc      key.Binding
	SortDesc     key.Binding
	HideColumn   key.Binding
	ShowColumns  key.Binding
	FilterValue  key.Binding
	ClearFilter  key.Binding
	ColumnJump   key.Binding
	Undo         key.Binding
	Redo         key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// movement
		Up:           bind("k/↑", "up", "k", "up"),
		Down:         bind("j/↓", "down", "j", "down"),
		Bottom:       bind("G", "bottom", "G"),
		HalfPageDown: bind("ctrl+d", "½ page down", "ctrl+d"),
		HalfPageUp:   bind("ctrl+u", "½ page up", "ctrl+u"),
		PrevTab:      bind("h/←", "prev tab", "h", "left"),
		NextTab:      bind("l/→", "next tab", "l", "right"),

		// server queries
		NextPage:     bind("]", "next page", "]", "pgdown"),
		PrevPage:     bind("[", "prev page", "[", "pgup"),
		Search:       bind("f", "search", "f"),
		ActiveFilter: bind("x", "active/inactive/all", "x"),
		Reload:       bind("r", "reload", "r", "ctrl+l"),

		// records
		Add:     bind("a", "add", "a"),
		Edit:    bind("enter/e", "edit", "e", "enter"),
		Delete:  bind("d", "delete", "d"),
		Restore: bind("R", "restore", "R"),
		Toggle:  bind("t", "toggle status", "t"),
		Confirm: bind("y", "confirm", "y"),
		Undo:    bind("u", "undo", "u"),
		Redo:    bind("ctrl+r", "redo", "ctrl+r"),

		// columns
		NextColumn:  bind("tab", "next col", "tab"),
		PrevColumn:  bind("shift+tab", "prev col", "shift+tab"),
		SortAsc:     bind("s", "sort asc", "s"),
		SortDesc:    bind("S", "sort desc", "S"),
		HideColumn:  bind("c", "hide col", "c"),
		ShowColumns: bind("C", "show cols", "C"),
		FilterValue: bind("n", "filter value", "n"),
		ClearFilter: bind("N", "clear filter", "N"),
		ColumnJump:  bind("/", "jump col", "/"),

		Help: bind("?", "help", "?"),
		Quit: bind("q", "quit", "q", "ctrl+c"),
	}
}

// FormKeyMap defines keybindings for insert/edit mode.
type FormKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Preview   key.Binding
	Cancel    key.Binding
}

// DefaultFormKeyMap returns the default form keybindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		NextField: bind("tab", "next field", "tab"),
		PrevField: bind("shift+tab", "prev field", "shift+tab"),
		Save:      bind("ctrl+s", "save", "ctrl+s"),
		Preview:   bind("ctrl+p", "preview json", "ctrl+p"),
		Cancel:    bind("esc", "cancel", "esc"),
	}
}

// bindingHelp renders bindings as footer entries.
func bindingHelp(bindings ...key.Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, helpKey(h.Key, h.Desc))
	}
	return out
}
