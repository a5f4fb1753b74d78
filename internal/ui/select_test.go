package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cities() []Option {
	return []Option{{ID: 1, Label: "Kochi"}, {ID: 2, Label: "Munnar"}, {ID: 3, Label: "Alappuzha"}}
}

func TestSelectFiltersWhileTyping(t *testing.T) {
	s := NewSelectModel("city", false)
	s.SetOptions(cities())
	s.Focus()

	ev, _, _ := s.Update(keys("u"))
	assert.Equal(t, selectEdited, ev)
	assert.True(t, s.IsOpen())
	assert.Equal(t, []Option{{ID: 2, Label: "Munnar"}, {ID: 3, Label: "Alappuzha"}}, s.filtered)

	s.Update(tea.KeyMsg{Type: tea.KeyDown})
	ev, opt, _ := s.Update(keyEnter)
	assert.Equal(t, selectPicked, ev)
	assert.Equal(t, Option{ID: 3, Label: "Alappuzha"}, opt)
	assert.Equal(t, "Alappuzha", s.Value())
	assert.False(t, s.IsOpen())

	picked, ok := s.Picked()
	require.True(t, ok)
	assert.Equal(t, int64(3), picked.ID)
}

func TestSelectExactMatchPicks(t *testing.T) {
	s := NewSelectModel("city", false)
	s.SetOptions(cities())
	s.SetValue("kochi")

	ev, opt, _ := s.Update(keyEnter)
	assert.Equal(t, selectPicked, ev)
	assert.Equal(t, int64(1), opt.ID)
	assert.Equal(t, "Kochi", s.Value())
}

func TestSelectTypedValue(t *testing.T) {
	s := NewSelectModel("city", false)
	s.SetOptions(cities())
	s.Focus()
	s.Update(keys("Thekkady"))
	assert.Empty(t, s.filtered)

	ev, opt, _ := s.Update(keyEnter)
	assert.Equal(t, selectTyped, ev)
	assert.Equal(t, Option{Label: "Thekkady"}, opt)
	_, ok := s.Picked()
	assert.False(t, ok)
}

func TestStrictSelectRejectsFreeText(t *testing.T) {
	s := NewSelectModel("food type", true)
	s.SetOptions(StringOptions([]string{"Veg", "Non-Veg"}))
	s.Focus()
	s.Update(keys("Vegan"))

	ev, _, _ := s.Update(keyEnter)
	assert.Equal(t, selectNone, ev)
	assert.False(t, s.IsOpen())
}

func TestSelectPickGoesStaleOnEdit(t *testing.T) {
	s := NewSelectModel("city", false)
	s.SetOptions(cities())
	s.Focus()
	s.SetValue("Kochi")
	s.Update(keyEnter)
	_, ok := s.Picked()
	require.True(t, ok)

	s.Update(keys("x"))
	_, ok = s.Picked()
	assert.False(t, ok)
}

func TestSelectLoadingAndFailure(t *testing.T) {
	s := NewSelectModel("state", false)
	assert.NotNil(t, s.SetLoading())
	assert.Contains(t, s.View("State", true, 40), "Loading...")

	s.SetFailed("Could not load list: timeout")
	assert.False(t, s.loading)
	assert.Contains(t, s.View("State", true, 40), "timeout")

	s.SetOptions(cities())
	assert.Empty(t, s.failed)
}
