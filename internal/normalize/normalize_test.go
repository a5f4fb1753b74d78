package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderdesk/internal/model"
	"wanderdesk/internal/openhours"
)

func TestListPageShapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		ok    bool
		items int
		total int
		shape string
	}{
		{
			name:  "envelope with pagination",
			body:  `{"is_success":true,"result":[{"id":1},{"id":2}],"pagination":{"total":42,"page":1}}`,
			ok:    true,
			items: 2,
			total: 42,
			shape: "envelope",
		},
		{
			name:  "total_count wins over total",
			body:  `{"result":[{"id":1}],"pagination":{"total_count":9,"total":3}}`,
			ok:    true,
			items: 1,
			total: 9,
			shape: "envelope",
		},
		{
			name:  "top level total",
			body:  `{"isSuccess":true,"result":[],"total":"15"}`,
			ok:    true,
			items: 0,
			total: 15,
			shape: "envelope",
		},
		{
			name:  "total falls back to item count",
			body:  `{"result":[{"id":1},{"id":2},{"id":3}]}`,
			ok:    true,
			items: 3,
			total: 3,
			shape: "envelope",
		},
		{
			name:  "bare array",
			body:  `[{"id":1},{"id":2},"junk"]`,
			ok:    true,
			items: 2,
			total: 2,
			shape: "bare-array",
		},
		{
			name:  "data envelope",
			body:  `{"data":[{"id":5}]}`,
			ok:    true,
			items: 1,
			total: 1,
			shape: "data-envelope",
		},
		{
			name:  "explicit failure",
			body:  `{"is_success":false,"message":"boom","result":null}`,
			ok:    false,
			items: 0,
			shape: "envelope",
		},
		{
			name:  "result object is not a list",
			body:  `{"is_success":true,"result":{"id":1}}`,
			ok:    true,
			items: 0,
			shape: "envelope",
		},
		{
			name:  "unrecognized object",
			body:  `{"hello":"world"}`,
			ok:    true,
			items: 0,
			shape: "object",
		},
		{
			name:  "malformed json",
			body:  `{"result":[`,
			ok:    false,
			items: 0,
			shape: "invalid",
		},
		{
			name:  "scalar body",
			body:  `"ok"`,
			ok:    true,
			items: 0,
			shape: "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ListPage([]byte(tt.body))
			assert.Equal(t, tt.ok, page.OK)
			assert.Len(t, page.Items, tt.items)
			assert.NotNil(t, page.Items)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.shape, page.Shape)
		})
	}
}

func TestMutationIsStrict(t *testing.T) {
	ack := Mutation([]byte(`{"result":{"id":3},"message":"Country created"}`))
	assert.False(t, ack.OK, "missing success flag fails a mutation")
	assert.Equal(t, "Country created", ack.Message)
	assert.Equal(t, int64(3), ack.Result.ID("id"))

	ack = Mutation([]byte(`{"is_success":true,"message":"Place updated successfully","result":{"id":7}}`))
	assert.True(t, ack.OK)

	ack = Mutation([]byte(`{"is_success":false,"message":"Country already exists"}`))
	assert.False(t, ack.OK)
	assert.Equal(t, "Country already exists", ack.Message)

	assert.False(t, Mutation([]byte(`not json`)).OK)
	assert.False(t, Mutation(nil).OK)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Not Found", Message([]byte(`{"detail":"Not Found"}`)))
	assert.Equal(t, "bad input", Message([]byte(`{"error":"bad input","message":""}`)))
	assert.Empty(t, Message([]byte(`[1,2]`)))
	assert.Empty(t, Message([]byte(`<html>`)))
}

func TestRecordLookups(t *testing.T) {
	page := ListPage([]byte(`[{
		"id": "12",
		"code": "city_00001",
		"name": "  Kochi ",
		"lat": "9.93",
		"is_active": "false",
		"tags": "beach, , backwater ",
		"state": {"name": "Kerala", "country": {"name": "India"}}
	}]`))
	require.Len(t, page.Items, 1)
	r := page.Items[0]

	assert.Equal(t, int64(12), r.ID("id"))
	assert.Zero(t, r.ID("code"), "non-numeric codes are not ids")
	assert.Equal(t, int64(12), r.ID("code", "id"))
	assert.Equal(t, "Kochi", r.String("name"))
	assert.Equal(t, "Kerala", r.String("state", "state.name"), "objects are skipped")
	assert.Equal(t, "India", r.String("state.country.name"))
	assert.InDelta(t, 9.93, r.Float("lat"), 1e-9)
	assert.Equal(t, []string{"beach", "backwater"}, r.Strings("tags"))

	active, ok := r.Bool("is_active")
	assert.True(t, ok)
	assert.False(t, active)

	_, ok = r.Lookup("state.country.name.first")
	assert.False(t, ok)
	assert.Nil(t, r.Object("missing"))
	assert.Zero(t, Record(nil).Float("lat"))
}

func TestAlternateIDFieldsResolveIdentically(t *testing.T) {
	a := ListPage([]byte(`[{"place_id":7,"title":"Fort","city":{"id":3,"name":"Kochi"}}]`)).Items[0]
	b := ListPage([]byte(`[{"id":7,"name":"Fort","city_id":3,"city":"Kochi"}]`)).Items[0]

	pa, pb := Place(a), Place(b)
	assert.Equal(t, int64(7), pa.ID)
	assert.Equal(t, pa.ID, pb.ID)
	assert.Equal(t, pa.Name, pb.Name)
	assert.Equal(t, pa.CityID, pb.CityID)
	assert.Equal(t, pa.City, pb.City)
}

func TestNestedLocationNames(t *testing.T) {
	r := ListPage([]byte(`{"result":[{
		"id": 100,
		"name": "Munnar",
		"state_id": 10,
		"state": {"id": 10, "name": "Kerala", "country_id": 1, "country": {"id": 1, "name": "India"}}
	}]}`)).Items[0]

	got := Geo(r)
	want := model.Geo{ID: 100, Name: "Munnar", CountryID: 1, Country: "India", StateID: 10, State: "Kerala", Active: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("geo mismatch (-want +got):\n%s", diff)
	}

	place := Place(Record{"id": 1, "city": map[string]any{
		"name":  "Munnar",
		"state": map[string]any{"name": "Kerala", "country": map[string]any{"name": "India"}},
	}})
	assert.Equal(t, "India", place.Country)
	assert.Equal(t, "Kerala", place.State)
	assert.Equal(t, "Munnar", place.City)
}

func TestLocationRefsSkipIncompleteRows(t *testing.T) {
	page := ListPage([]byte(`{"result":[
		{"id":10,"name":"Kerala","country_id":1},
		{"id":0,"name":"Ghost"},
		{"id":11,"name":""},
		{"id":12,"name":"Goa","country":{"id":1}}
	]}`))
	refs := LocationRefs(page.Items, FieldStateRefID, FieldCountryID)
	assert.Equal(t, []model.LocationRef{
		{ID: 10, Name: "Kerala", ParentID: 1},
		{ID: 12, Name: "Goa", ParentID: 1},
	}, refs)

	countries := LocationRefs(ListPage([]byte(`[{"id":1,"name":"India"}]`)).Items, FieldCountryRefID, nil)
	assert.Equal(t, []model.LocationRef{{ID: 1, Name: "India"}}, countries)
}

func TestLocationRefsReadLevelIDField(t *testing.T) {
	cities := LocationRefs(ListPage([]byte(`{"result":[
		{"city_id":7,"name":"Pune","state_id":3},
		{"id":8,"city_id":99,"name":"Nagpur","state_id":3}
	]}`)).Items, FieldCityRefID, FieldStateID)
	assert.Equal(t, []model.LocationRef{
		{ID: 7, Name: "Pune", ParentID: 3},
		{ID: 8, Name: "Nagpur", ParentID: 3},
	}, cities)

	countries := LocationRefs(ListPage([]byte(`[{"country_id":2,"name":"Japan"}]`)).Items, FieldCountryRefID, nil)
	assert.Equal(t, []model.LocationRef{{ID: 2, Name: "Japan"}}, countries)
}

func TestPlaceDecodesFullRecord(t *testing.T) {
	r := ListPage([]byte(`[{
		"id": 4,
		"name": "Fort Kochi Beach",
		"category": "beach",
		"country": "India", "state": "Kerala", "city": "Kochi",
		"country_id": 1, "state_id": 10, "city_id": 100,
		"latitude": 9.96, "longitude": 76.24,
		"tags": ["sunset", "walk"],
		"best_months": ["Nov", "Dec"],
		"best_time_of_day_to_visit": [["16:00","18:30"], ["bad"], ["06:00",""]],
		"avg_visit_mins": 90,
		"entry_fee": {"adult": 0, "child": 0, "senior": 0},
		"accessibility": {"wheelchair_accessible": true, "public_transport": true},
		"open_hours": {"mon": [["00:00","23:59"]], "wed": [], "notes": "Open all day"},
		"avg_cost_per_person": {"amount": 250, "currency": "USD"},
		"avg_rating": "4.5",
		"is_active": false
	}]`)).Items[0]

	p := Place(r)
	assert.Equal(t, "beach", p.Type)
	assert.Equal(t, int64(100), p.CityID)
	assert.InDelta(t, 76.24, p.Lng, 1e-9)
	assert.Equal(t, []model.TimeRange{{Start: "16:00", End: "18:30"}}, p.BestTimes)
	assert.Equal(t, 90.0, p.AvgVisitMins)
	assert.True(t, p.Accessibility.WheelchairAccessible)
	assert.False(t, p.Accessibility.ParkingAvailable)
	assert.Equal(t, 250.0, p.AvgCost)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, 4.5, p.Rating)
	assert.False(t, p.Active)
	assert.Equal(t, []openhours.Range{}, p.OpenHours.Days[openhours.Wed])
	assert.Equal(t, "Open all day", p.OpenHours.Notes)

	bare := Place(Record{"id": 9})
	assert.Equal(t, model.DefaultCurrency, bare.Currency)
	assert.True(t, bare.Active)
	assert.Empty(t, bare.OpenHours.Days)
}

func TestRestaurantDecodes(t *testing.T) {
	r := ListPage([]byte(`{"is_success":true,"result":[{
		"restaurant_id": 3,
		"name": "Kashi Art Cafe",
		"city": "Kochi",
		"city_id": "100",
		"cuisine": "Cafe, Continental",
		"must_try": ["Chocolate cake"],
		"food_type": "Veg",
		"rating": 4.2
	}]}`)).Items[0]

	got := Restaurant(r)
	want := model.Restaurant{
		ID:       3,
		Name:     "Kashi Art Cafe",
		City:     "Kochi",
		CityID:   100,
		Cuisine:  []string{"Cafe", "Continental"},
		MustTry:  []string{"Chocolate cake"},
		FoodType: "Veg",
		Rating:   4.2,
		Active:   true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("restaurant mismatch (-want +got):\n%s", diff)
	}
}

func TestMalformedFieldsDegrade(t *testing.T) {
	r := ListPage([]byte(`[{"id":{"x":1},"name":["a"],"lat":"north","tags":42,"open_hours":"24x7"}]`)).Items[0]
	p := Place(r)
	assert.Zero(t, p.ID)
	assert.Empty(t, p.Name)
	assert.Zero(t, p.Lat)
	assert.Nil(t, p.Tags)
	assert.Empty(t, p.OpenHours.Days)
}
