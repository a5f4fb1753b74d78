package location

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderdesk/internal/model"
)

var (
	countries    = []model.LocationRef{{ID: 1, Name: "India"}, {ID: 2, Name: "Japan"}}
	indiaStates  = []model.LocationRef{{ID: 10, Name: "Kerala", ParentID: 1}, {ID: 11, Name: "Goa", ParentID: 1}}
	japanStates  = []model.LocationRef{{ID: 20, Name: "Kyoto", ParentID: 2}}
	keralaCities = []model.LocationRef{{ID: 100, Name: "Kochi", ParentID: 10}, {ID: 101, Name: "Munnar", ParentID: 10}}
)

func loaded(t *testing.T, c *Controller, f Fetch, items []model.LocationRef) []Fetch {
	t.Helper()
	next, ok := c.Loaded(Result{Fetch: f, Items: items})
	require.True(t, ok, "result for %s should be current", f.Level)
	return next
}

func single(t *testing.T, fetches []Fetch, level Level) Fetch {
	t.Helper()
	require.Len(t, fetches, 1)
	require.Equal(t, level, fetches[0].Level)
	return fetches[0]
}

func TestStartRequestsCountries(t *testing.T) {
	c := New(City)
	f := single(t, c.Start(), Country)
	assert.Zero(t, f.ParentID)

	st, _ := c.Status(Country)
	assert.Equal(t, Loading, st)
	assert.Empty(t, c.Start(), "no duplicate fetch while loading")
}

func TestSelectCascades(t *testing.T) {
	c := New(City)
	assert.Empty(t, loaded(t, c, single(t, c.Start(), Country), countries))

	sf := single(t, c.Select(Country, "India"), State)
	assert.Equal(t, int64(1), sf.ParentID)
	assert.Empty(t, loaded(t, c, sf, indiaStates))

	cf := single(t, c.Select(State, "Kerala"), City)
	assert.Equal(t, int64(10), cf.ParentID)
	assert.Empty(t, loaded(t, c, cf, keralaCities))

	assert.Empty(t, c.Select(City, "Munnar"))
	assert.Equal(t, Selection{
		Country: "India", State: "Kerala", City: "Munnar",
		CountryID: 1, StateID: 10, CityID: 101,
	}, c.Selection())
	assert.True(t, c.CanSubmit())
}

func TestUnmatchedNameLeavesIDEmpty(t *testing.T) {
	c := New(City)
	loaded(t, c, single(t, c.Start(), Country), countries)

	assert.Empty(t, c.Select(Country, "Country unmatched"))
	assert.Zero(t, c.Selection().CountryID)
	assert.Zero(t, c.Resolve(Country))
	assert.False(t, c.CanSubmit(Country))
}

func TestChangingCountryClearsDescendants(t *testing.T) {
	c := New(City)
	loaded(t, c, single(t, c.Start(), Country), countries)
	loaded(t, c, single(t, c.Select(Country, "India"), State), indiaStates)
	loaded(t, c, single(t, c.Select(State, "Goa"), City), nil)
	c.Select(City, "Panaji")

	c.Select(Country, "Japan")
	sel := c.Selection()
	assert.Empty(t, sel.State)
	assert.Empty(t, sel.City)
	assert.Zero(t, sel.StateID)
	assert.Zero(t, sel.CityID)
	assert.Empty(t, c.Items(City))

	c.Select(Country, "")
	sel = c.Selection()
	assert.Empty(t, sel.State)
	assert.Zero(t, sel.StateID)
}

func TestStaleResultIsDiscarded(t *testing.T) {
	c := New(City)
	loaded(t, c, single(t, c.Start(), Country), countries)

	first := single(t, c.Select(Country, "India"), State)
	second := single(t, c.Select(Country, "Japan"), State)

	_, ok := c.Loaded(Result{Fetch: first, Items: indiaStates})
	assert.False(t, ok, "response for the superseded country must be dropped")
	st, _ := c.Status(State)
	assert.Equal(t, Loading, st)

	loaded(t, c, second, japanStates)
	assert.Equal(t, japanStates, c.Items(State))
}

func TestStaleChildResultAfterParentChange(t *testing.T) {
	c := New(City)
	loaded(t, c, single(t, c.Start(), Country), countries)
	loaded(t, c, single(t, c.Select(Country, "India"), State), indiaStates)
	cities := single(t, c.Select(State, "Kerala"), City)

	c.Select(Country, "Japan")
	_, ok := c.Loaded(Result{Fetch: cities, Items: keralaCities})
	assert.False(t, ok)
	assert.Empty(t, c.Items(City))
}

func TestPrefillBackfillsIDsAndCascades(t *testing.T) {
	c := New(City)
	countryFetch := single(t, c.Start(), Country)
	assert.Empty(t, c.Prefill(Selection{Country: "India", State: "Kerala", City: "Kochi"}))

	stateFetch := single(t, loaded(t, c, countryFetch, countries), State)
	assert.Equal(t, int64(1), c.Selection().CountryID)
	assert.Equal(t, int64(1), stateFetch.ParentID)

	cityFetch := single(t, loaded(t, c, stateFetch, indiaStates), City)
	assert.Equal(t, int64(10), cityFetch.ParentID)

	assert.Empty(t, loaded(t, c, cityFetch, keralaCities))
	assert.Equal(t, Selection{
		Country: "India", State: "Kerala", City: "Kochi",
		CountryID: 1, StateID: 10, CityID: 100,
	}, c.Selection())
}

func TestPrefillWithKnownIDsFetchesInParallel(t *testing.T) {
	c := New(City)
	c.Start()
	fetches := c.Prefill(Selection{CountryID: 1, StateID: 10, CityID: 100})
	require.Len(t, fetches, 2)
	assert.Equal(t, State, fetches[0].Level)
	assert.Equal(t, City, fetches[1].Level)

	loaded(t, c, fetches[1], keralaCities)
	assert.Equal(t, "Kochi", c.Name(City), "name backfilled from id")
}

func TestFailedLoad(t *testing.T) {
	c := New(City)
	f := single(t, c.Start(), Country)
	next, ok := c.Loaded(Result{Fetch: f, Err: errors.New("boom")})
	assert.True(t, ok)
	assert.Empty(t, next)

	st, err := c.Status(Country)
	assert.Equal(t, Failed, st)
	assert.EqualError(t, err, "boom")
	assert.Empty(t, c.Items(Country))
	assert.Empty(t, c.Start(), "failed loads are not retried automatically")

	retry := c.Begin(Country)
	require.Len(t, retry, 1)
	loaded(t, c, retry[0], countries)
}

func TestPickUsesReferenceID(t *testing.T) {
	c := New(City)
	loaded(t, c, single(t, c.Start(), Country), countries)
	f := single(t, c.Pick(Country, model.LocationRef{ID: 2, Name: "Japan"}), State)
	assert.Equal(t, int64(2), f.ParentID)
}

func TestDepthLimitsCascade(t *testing.T) {
	c := New(Country)
	loaded(t, c, single(t, c.Start(), Country), countries)
	assert.Empty(t, c.Select(Country, "India"))
	assert.Nil(t, c.Select(State, "Kerala"))
	assert.True(t, c.CanSubmit())
}

func TestSelectMatchesNamesCaseInsensitively(t *testing.T) {
	c := New(City)
	loaded(t, c, single(t, c.Start(), Country), countries)
	c.Select(Country, "  india ")
	assert.Equal(t, int64(1), c.Resolve(Country))
}

func TestLookupUsesLatestList(t *testing.T) {
	c := New(City)
	assert.Zero(t, c.Lookup(Country, "India"), "nothing loaded yet")

	loaded(t, c, single(t, c.Start(), Country), countries)
	assert.Equal(t, int64(2), c.Lookup(Country, " JAPAN "))
	assert.Zero(t, c.Lookup(Country, "Peru"))
	assert.Zero(t, c.Lookup(Country, ""))
	assert.Zero(t, c.Lookup(Level(9), "India"))
}
