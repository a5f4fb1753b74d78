package payload

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderdesk/internal/location"
	"wanderdesk/internal/model"
	"wanderdesk/internal/openhours"
)

// fakeResolver answers every name at a level with the same id.
type fakeResolver map[location.Level]int64

func (f fakeResolver) Lookup(l location.Level, _ string) int64 { return f[l] }

func ptr(v int64) *int64 { return &v }

func TestList(t *testing.T) {
	assert.Equal(t, []string{}, List(""))
	assert.Equal(t, []string{}, List(" , ,"))
	assert.Equal(t, []string{"temple", "heritage"}, List(" temple,, heritage "))

	data, err := json.Marshal(List(""))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestTimeRanges(t *testing.T) {
	got := TimeRanges("10:00-12:00, bad, 14:00-16:00")
	assert.Equal(t, []TimePair{{"10:00", "12:00"}, {"14:00", "16:00"}}, got)

	assert.Equal(t, []TimePair{}, TimeRanges(""))
	assert.Equal(t, []TimePair{{"06:00", "08:00"}}, TimeRanges("-09:00, 17:00-, 06:00 - 08:00"))
}

func TestNumber(t *testing.T) {
	tests := map[string]float64{
		"":          0,
		"abc":       0,
		" 12.5":     12.5,
		"-3":        -3,
		"1e2":       100,
		"NaN":       0,
		"+Inf":      0,
		"-Inf":      0,
		"-infinity": 0,
		"1e999":     0,
	}
	for in, want := range tests {
		assert.Equal(t, want, Number(in), "input %q", in)
	}

	_, ok := ParseNumber("nan")
	assert.False(t, ok)
	f, ok := ParseNumber(" 0 ")
	assert.True(t, ok)
	assert.Zero(t, f)
}

func TestPlaceBuildsWireBody(t *testing.T) {
	form := NewPlaceForm()
	form.Name = " Fort Kochi Beach "
	form.Type = "beach"
	form.Location = location.Selection{Country: "India", State: "Kerala", City: "Kochi", CityID: 100}
	form.Lat, form.Lng = "9.96", "76.24"
	form.Tags = "sunset, walk"
	form.BestMonths = "Nov, Dec"
	form.BestTimes = "16:00-18:30, bad"
	form.AvgVisitMins = "90"
	form.FeeAdult = "50"
	form.AvgCost = "250"
	form.Rating = "4.5"
	form.Hours.SetClosed(openhours.Wed, true)
	form.HoursNotes = "Closed on holidays"

	got := Place(form, fakeResolver{location.Country: 1, location.State: 10})

	allDay := []openhours.Range{{Start: "00:00", End: "23:59"}}
	want := PlaceRequest{
		Name:         "Fort Kochi Beach",
		Type:         "beach",
		Country:      "India",
		State:        "Kerala",
		City:         "Kochi",
		CountryID:    ptr(1),
		StateID:      ptr(10),
		CityID:       ptr(100),
		Lat:          9.96,
		Lng:          76.24,
		AvgVisitMins: 90,
		Tags:         []string{"sunset", "walk"},
		SuitableFor:  []string{},
		FamousFor:    []string{},
		EntryFee:     EntryFee{Adult: 50},
		OpenHours: openhours.Schedule{
			Days: map[openhours.Weekday][]openhours.Range{
				openhours.Mon: allDay,
				openhours.Tue: allDay,
				openhours.Wed: {},
				openhours.Thu: allDay,
				openhours.Fri: allDay,
				openhours.Sat: allDay,
				openhours.Sun: allDay,
			},
			Notes: "Closed on holidays",
		},
		BestMonths:    []string{"Nov", "Dec"},
		BestTimeOfDay: []TimePair{{"16:00", "18:30"}},
		Accessibility: Accessibility{PublicTransport: true},
		AvgCost:       Cost{Amount: 250, Currency: "INR"},
		Rating:        4.5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("place payload mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaceJSONShape(t *testing.T) {
	form := NewPlaceForm()
	form.Name = "Gateway"
	form.Hours.SetClosed(openhours.Wed, true)

	data, err := json.Marshal(Place(form, nil))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.NotContains(t, body, "country_id")
	assert.NotContains(t, body, "state_id")
	assert.NotContains(t, body, "city_id")
	assert.Equal(t, []any{}, body["tags"])
	assert.Equal(t, []any{}, body["best_time_of_day_to_visit"])
	assert.Equal(t, map[string]any{"amount": 0.0, "currency": "INR"}, body["avg_cost_per_person"])

	hours := body["open_hours"].(map[string]any)
	assert.Len(t, hours, 7)
	assert.Equal(t, []any{}, hours["wed"])
	assert.Equal(t, []any{[]any{"00:00", "23:59"}}, hours["mon"])
}

func TestUnmatchedCountryOmitsID(t *testing.T) {
	c := location.New(location.City)
	f := c.Start()[0]
	c.Loaded(location.Result{Fetch: f, Items: []model.LocationRef{{ID: 1, Name: "India"}}})
	c.Select(location.Country, "Country unmatched")

	form := NewPlaceForm()
	form.Name = "Somewhere"
	form.Location = c.Selection()
	req := Place(form, c)

	assert.Nil(t, req.CountryID)
	assert.Equal(t, "Country unmatched", req.Country)
	assert.False(t, c.CanSubmit())
}

func TestPlaceResolvesNameAgainstLatestList(t *testing.T) {
	c := location.New(location.City)
	f := c.Start()[0]
	c.Loaded(location.Result{Fetch: f, Items: []model.LocationRef{{ID: 1, Name: "India"}}})
	form := NewPlaceForm()
	form.Location = location.Selection{Country: "India"}

	req := Place(form, c)
	require.NotNil(t, req.CountryID)
	assert.Equal(t, int64(1), *req.CountryID)
}

func TestPlaceIsIdempotent(t *testing.T) {
	form := NewPlaceForm()
	form.Tags = "a, b"
	res := fakeResolver{location.City: 3}
	assert.Equal(t, Place(form, res), Place(form, res))
}

func TestPlaceFormRoundTrip(t *testing.T) {
	p := model.Place{
		Name:      "Fort",
		Country:   "India",
		CountryID: 1,
		Tags:      []string{"a", "b"},
		BestTimes: []model.TimeRange{{Start: "06:00", End: "08:00"}},
		Lat:       9.5,
		OpenHours: openhours.Schedule{Days: map[openhours.Weekday][]openhours.Range{openhours.Mon: {{Start: "09:00", End: "17:00"}}}},
	}
	f := PlaceFormFrom(p)
	assert.Equal(t, "a, b", f.Tags)
	assert.Equal(t, "06:00-08:00", f.BestTimes)
	assert.Equal(t, "9.5", f.Lat)
	assert.Empty(t, f.Rating)
	assert.Equal(t, "INR", f.Currency)
	assert.Equal(t, openhours.Open, f.Hours.Day(openhours.Mon).Status)
	assert.Equal(t, openhours.Unset, f.Hours.Day(openhours.Tue).Status)

	req := Place(f, nil)
	assert.Equal(t, []TimePair{{"06:00", "08:00"}}, req.BestTimeOfDay)
	assert.Equal(t, ptr(1), req.CountryID)
}

func TestRestaurantSendsOnlyCity(t *testing.T) {
	form := RestaurantForm{
		Name:       "Kashi Art Cafe",
		FoodType:   "Veg",
		Location:   location.Selection{Country: "India", CountryID: 1, State: "Kerala", StateID: 10, City: "Kochi"},
		Cuisine:    "Cafe, Continental",
		MustTry:    "",
		PriceRange: " 200-500 ",
	}
	got := Restaurant(form, fakeResolver{location.City: 100})
	want := RestaurantRequest{
		Name:          "Kashi Art Cafe",
		City:          "Kochi",
		CityID:        ptr(100),
		Cuisine:       []string{"Cafe", "Continental"},
		PriceRange:    "200-500",
		MustTryDishes: []string{},
		Tags:          []string{},
		FoodType:      "Veg",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("restaurant payload mismatch (-want +got):\n%s", diff)
	}

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "country")
	assert.NotContains(t, string(data), "state")
}

func TestGeo(t *testing.T) {
	sel := location.Selection{Country: "India", CountryID: 1, State: "Kerala"}
	res := fakeResolver{location.State: 10}

	assert.Equal(t, GeoRequest{Name: "India"}, Geo(location.Country, " India ", sel, res))
	assert.Equal(t, GeoRequest{Name: "Kerala", CountryID: ptr(1)}, Geo(location.State, "Kerala", sel, res))
	assert.Equal(t, GeoRequest{Name: "Kochi", CountryID: ptr(1), StateID: ptr(10)}, Geo(location.City, "Kochi", sel, res))
}
