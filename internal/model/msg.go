package model

// Bubble Tea message types

// NoticeKind selects the banner style of a notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// NoticeMsg asks the root model to show a transient banner.
type NoticeMsg struct {
	Kind NoticeKind
	Text string
}

// SavedMsg is sent when a form's create or update succeeded.
type SavedMsg struct {
	Session int
	Screen  Screen
	ID      int64
	Created bool
	Message string
}

// SaveFailedMsg is sent when a create or update was rejected. The form
// stays open with its input intact.
type SaveFailedMsg struct {
	Session int
	Err     error
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// StatusChangedMsg reports a soft delete, restore or status toggle.
type StatusChangedMsg struct {
	Screen  Screen
	ID      int64
	Name    string
	Active  bool
	Toggle  bool
	Message string
	Err     error
}

// Screen represents different app screens.
type Screen int

const (
	ScreenPlaces Screen = iota
	ScreenRestaurants
	ScreenCountries
	ScreenStates
	ScreenCities
	ScreenFoods
	ScreenHotels
	ScreenItineraries
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
