package openhours

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSchedule() Schedule {
	return Schedule{Days: map[Weekday][]Range{
		Mon: {{"09:00", "17:00"}},
		Tue: {{"09:00", "12:00"}, {"13:00", "18:00"}},
		Wed: {},
		Thu: {{"10:00", "16:00"}},
		Fri: {{"10:00", "22:00"}},
		Sat: {},
		Sun: {{"00:00", "23:59"}},
	}}
}

func TestRoundTripPreservesWellFormedSchedule(t *testing.T) {
	in := fullSchedule()
	out := ToWire(ToEditable(in), "")
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripTurnsMissingDaysIntoEmptyLists(t *testing.T) {
	in := Schedule{Days: map[Weekday][]Range{Mon: {{"09:00", "17:00"}}}}
	out := ToWire(ToEditable(in), "")

	assert.Len(t, out.Days, 7)
	assert.Equal(t, []Range{{"09:00", "17:00"}}, out.Days[Mon])
	assert.Equal(t, []Range{}, out.Days[Tue])
}

func TestToEditableDistinguishesClosedFromUnset(t *testing.T) {
	w := ToEditable(Schedule{Days: map[Weekday][]Range{Wed: {}}})

	assert.Equal(t, Closed, w.Day(Wed).Status)
	assert.Equal(t, Unset, w.Day(Thu).Status)
	for i := range w {
		assert.Len(t, w[i].Slots, 1, "day %s", Weekdays[i])
	}
}

func TestToEditableCapsSlots(t *testing.T) {
	w := ToEditable(Schedule{Days: map[Weekday][]Range{
		Fri: {{"08:00", "09:00"}, {"10:00", "11:00"}, {"12:00", "13:00"}},
	}})
	assert.Equal(t, []Range{{"08:00", "09:00"}, {"10:00", "11:00"}}, w.Day(Fri).Slots)
}

func TestClosedOverridesSlots(t *testing.T) {
	w := DefaultWeek()
	require.NoError(t, w.SetSlot(Wed, 0, Range{"09:00", "12:00"}))
	require.NoError(t, w.AddSlot(Wed))
	require.NoError(t, w.SetSlot(Wed, 1, Range{"13:00", "17:00"}))
	w.SetClosed(Wed, true)

	out := ToWire(w, "")
	assert.Equal(t, []Range{}, out.Days[Wed])

	w.SetClosed(Wed, false)
	out = ToWire(w, "")
	assert.Equal(t, []Range{{"09:00", "12:00"}, {"13:00", "17:00"}}, out.Days[Wed])
}

func TestToWireDropsIncompleteSlots(t *testing.T) {
	w := ToEditable(Schedule{})
	require.NoError(t, w.SetSlot(Mon, 0, Range{Start: "09:00"}))
	require.NoError(t, w.AddSlot(Mon))
	require.NoError(t, w.SetSlot(Mon, 1, Range{"14:00", "18:00"}))

	out := ToWire(w, "")
	assert.Equal(t, []Range{{"14:00", "18:00"}}, out.Days[Mon])
}

func TestAddSlotLimits(t *testing.T) {
	w := ToEditable(Schedule{})
	require.NoError(t, w.AddSlot(Mon))
	assert.ErrorIs(t, w.AddSlot(Mon), ErrSlotLimit)

	w.SetClosed(Tue, true)
	assert.ErrorIs(t, w.AddSlot(Tue), ErrDayClosed)
}

func TestRemoveSlotKeepsOneRow(t *testing.T) {
	w := ToEditable(Schedule{Days: map[Weekday][]Range{Sat: {{"10:00", "14:00"}}}})
	w.RemoveSlot(Sat, 0)
	assert.Equal(t, []Range{{}}, w.Day(Sat).Slots)

	w.RemoveSlot(Sat, 5)
	assert.Len(t, w.Day(Sat).Slots, 1)
}

func TestValidate(t *testing.T) {
	w := ToEditable(Schedule{})
	assert.NoError(t, w.Validate())

	require.NoError(t, w.SetSlot(Mon, 0, Range{"9am", "17:00"}))
	err := w.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Monday slot 1 start")

	require.NoError(t, w.SetSlot(Mon, 0, Range{"18:00", "17:00"}))
	assert.ErrorContains(t, w.Validate(), "ends before it starts")

	w.SetClosed(Mon, true)
	assert.NoError(t, w.Validate())
}

func TestScheduleJSON(t *testing.T) {
	in := `{"sun":[["10:00","14:00"]],"mon":[["09:00","17:00"],{"start":"18:00","end":"20:00"}],"wed":[],"friday":[["bad"]],"notes":"Closed on holidays","extra":1}`
	var s Schedule
	require.NoError(t, json.Unmarshal([]byte(in), &s))

	assert.Equal(t, []Range{{"09:00", "17:00"}, {"18:00", "20:00"}}, s.Days[Mon])
	assert.Equal(t, []Range{}, s.Days[Wed])
	_, hasFri := s.Days[Fri]
	assert.False(t, hasFri, "unreadable day is left unspecified")
	assert.Equal(t, "Closed on holidays", s.Notes)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mon":[["09:00","17:00"],["18:00","20:00"]],"wed":[],"sun":[["10:00","14:00"]],"notes":"Closed on holidays"}`, string(data))
}

func TestMarshalOrdersDays(t *testing.T) {
	data, err := json.Marshal(ToWire(ToEditable(Schedule{}), ""))
	require.NoError(t, err)
	assert.Equal(t, `{"mon":[],"tue":[],"wed":[],"thu":[],"fri":[],"sat":[],"sun":[]}`, string(data))
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want Weekday
		ok   bool
	}{
		{"mon", Mon, true},
		{"Tuesday", Tue, true},
		{" SUN ", Sun, true},
		{"thurs", "", false},
		{"xx", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseWeekday(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
