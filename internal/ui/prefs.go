package ui

import "wanderdesk/internal/model"

// TablePrefs stores per-table UI preferences.
type TablePrefs struct {
	SortKey       string
	SortDesc      bool
	HiddenColumns []string
	ActiveColumn  string
}

// UIPreferences holds table preferences per screen for the session. They
// survive page reloads and tab switches; nothing is written to disk.
type UIPreferences map[model.Screen]TablePrefs

func (p UIPreferences) save(screen model.Screen, prefs TablePrefs) {
	p[screen] = prefs
}

func (p UIPreferences) load(screen model.Screen) TablePrefs {
	return p[screen]
}
