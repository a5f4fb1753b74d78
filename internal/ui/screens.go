package ui

import (
	"strconv"

	"wanderdesk/internal/api"
	"wanderdesk/internal/model"
	"wanderdesk/internal/normalize"
	"wanderdesk/internal/util"
)

type formKind int

const (
	formNone formKind = iota
	formPlace
	formRestaurant
	formCountry
	formState
	formCity
)

// screenDesc describes one list tab: its resource, columns and how a
// backend record becomes a row.
type screenDesc struct {
	screen   model.Screen
	title    string
	resource api.Resource
	columns  []column
	rowOf    func(normalize.Record) row
	form     formKind
	toggle   bool
}

var screens = []screenDesc{
	{
		screen:   model.ScreenPlaces,
		title:    "Places",
		resource: api.Places,
		form:     formPlace,
		columns: []column{
			{key: "name", label: "name", width: 26},
			{key: "type", label: "type", width: 10},
			{key: "city", label: "city", width: 12},
			{key: "state", label: "state", width: 12},
			{key: "country", label: "country", width: 10},
			{key: "cost", label: "cost", width: 10, numeric: true},
			{key: "rating", label: "rating", width: 7, numeric: true},
			{key: "status", label: "status", width: 8},
		},
		rowOf: placeRow,
	},
	{
		screen:   model.ScreenRestaurants,
		title:    "Restaurants",
		resource: api.Restaurants,
		form:     formRestaurant,
		columns: []column{
			{key: "name", label: "name", width: 24},
			{key: "food", label: "food", width: 8},
			{key: "cuisine", label: "cuisine", width: 20},
			{key: "city", label: "city", width: 12},
			{key: "price", label: "price", width: 10},
			{key: "rating", label: "rating", width: 7, numeric: true},
			{key: "status", label: "status", width: 8},
		},
		rowOf: restaurantRow,
	},
	{
		screen:   model.ScreenCountries,
		title:    "Countries",
		resource: api.Countries,
		form:     formCountry,
		toggle:   true,
		columns: []column{
			{key: "id", label: "id", width: 5, numeric: true},
			{key: "code", label: "code", width: 14},
			{key: "name", label: "name", width: 24},
			{key: "created", label: "created", width: 12},
			{key: "status", label: "status", width: 8},
		},
		rowOf: geoRow,
	},
	{
		screen:   model.ScreenStates,
		title:    "States",
		resource: api.States,
		form:     formState,
		columns: []column{
			{key: "id", label: "id", width: 5, numeric: true},
			{key: "name", label: "name", width: 24},
			{key: "country", label: "country", width: 16},
			{key: "created", label: "created", width: 12},
			{key: "status", label: "status", width: 8},
		},
		rowOf: geoRow,
	},
	{
		screen:   model.ScreenCities,
		title:    "Cities",
		resource: api.Cities,
		form:     formCity,
		columns: []column{
			{key: "id", label: "id", width: 5, numeric: true},
			{key: "name", label: "name", width: 20},
			{key: "state", label: "state", width: 16},
			{key: "country", label: "country", width: 14},
			{key: "created", label: "created", width: 12},
			{key: "status", label: "status", width: 8},
		},
		rowOf: geoRow,
	},
	{
		screen:   model.ScreenFoods,
		title:    "Food",
		resource: api.Foods,
		columns: []column{
			{key: "name", label: "name", width: 24},
			{key: "category", label: "category", width: 12},
			{key: "food", label: "food", width: 8},
			{key: "city", label: "city", width: 14},
			{key: "status", label: "status", width: 8},
		},
		rowOf: browseRow,
	},
	{
		screen:   model.ScreenHotels,
		title:    "Hotels",
		resource: api.Hotels,
		columns: []column{
			{key: "name", label: "name", width: 24},
			{key: "stars", label: "stars", width: 6, numeric: true},
			{key: "city", label: "city", width: 14},
			{key: "price", label: "price/night", width: 14, numeric: true},
			{key: "status", label: "status", width: 8},
		},
		rowOf: browseRow,
	},
	{
		screen:   model.ScreenItineraries,
		title:    "Itineraries",
		resource: api.Itineraries,
		columns: []column{
			{key: "name", label: "name", width: 28},
			{key: "days", label: "days", width: 6, numeric: true},
			{key: "city", label: "city", width: 14},
			{key: "status", label: "status", width: 8},
		},
		rowOf: browseRow,
	},
}

// screenFor returns the descriptor of s, or the first tab for an unknown
// screen.
func screenFor(s model.Screen) screenDesc {
	for _, d := range screens {
		if d.screen == s {
			return d
		}
	}
	return screens[0]
}

func placeRow(r normalize.Record) row {
	p := normalize.Place(r)
	return row{
		ID:     p.ID,
		Name:   p.Name,
		Active: p.Active,
		Rating: p.Rating,
		Record: r,
		Values: map[string]string{
			"name":    p.Name,
			"type":    p.Type,
			"city":    p.City,
			"state":   p.State,
			"country": p.Country,
			"cost":    util.FormatCost(p.AvgCost, p.Currency),
			"rating":  util.FormatRating(p.Rating),
			"status":  util.FormatActive(p.Active),
		},
	}
}

func restaurantRow(r normalize.Record) row {
	res := normalize.Restaurant(r)
	return row{
		ID:     res.ID,
		Name:   res.Name,
		Active: res.Active,
		Rating: res.Rating,
		Record: r,
		Values: map[string]string{
			"name":    res.Name,
			"food":    res.FoodType,
			"cuisine": util.FormatList(res.Cuisine),
			"city":    res.City,
			"price":   res.PriceRange,
			"rating":  util.FormatRating(res.Rating),
			"status":  util.FormatActive(res.Active),
		},
	}
}

func geoRow(r normalize.Record) row {
	g := normalize.Geo(r)
	return row{
		ID:     g.ID,
		Name:   g.Name,
		Active: g.Active,
		Record: r,
		Values: map[string]string{
			"id":      strconv.FormatInt(g.ID, 10),
			"code":    r.String("code"),
			"name":    g.Name,
			"state":   g.State,
			"country": g.Country,
			"created": util.FormatDate(r.String("created_at")),
			"status":  util.FormatActive(g.Active),
		},
	}
}

// browseRow covers the read-only collections, whose records have no fixed
// schema beyond a name and a city.
func browseRow(r normalize.Record) row {
	active := normalize.Active(r)
	price := ""
	if amount, ok := r.FloatOK("price_per_night.amount", "price_per_night"); ok {
		price = util.FormatCost(amount, r.String("price_per_night.currency"))
	}
	days := ""
	if d, ok := r.FloatOK("days"); ok {
		days = util.FormatNumber(d)
	}
	stars := ""
	if s, ok := r.FloatOK("stars"); ok {
		stars = util.FormatNumber(s)
	}
	return row{
		ID:     r.ID(normalize.FieldID...),
		Name:   r.String(normalize.FieldName...),
		Active: active,
		Rating: r.Float(normalize.FieldRating...),
		Record: r,
		Values: map[string]string{
			"name":     r.String(normalize.FieldName...),
			"category": r.String("category", "type"),
			"food":     r.String("food_type"),
			"city":     r.String(normalize.FieldCityName...),
			"stars":    stars,
			"price":    price,
			"days":     days,
			"status":   util.FormatActive(active),
		},
	}
}
