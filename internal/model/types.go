package model

import "wanderdesk/internal/openhours"

// LocationRef is one country, state or city in a reference list.
type LocationRef struct {
	ID       int64
	Name     string
	ParentID int64
}

// Geo is a country, state or city row as edited on the geo screens.
type Geo struct {
	ID        int64
	Name      string
	CountryID int64
	Country   string
	StateID   int64
	State     string
	Active    bool
}

// EntryFee holds per-visitor admission prices.
type EntryFee struct {
	Adult  float64
	Child  float64
	Senior float64
}

// Accessibility holds the place accessibility flags.
type Accessibility struct {
	WheelchairAccessible bool
	ParkingAvailable     bool
	PublicTransport      bool
}

// TimeRange is a start/end clock pair such as 10:00-12:00.
type TimeRange struct {
	Start string
	End   string
}

// Place is a point of interest.
type Place struct {
	ID            int64
	Name          string
	Type          string
	Description   string
	Country       string
	State         string
	City          string
	CountryID     int64
	StateID       int64
	CityID        int64
	Lat           float64
	Lng           float64
	Tags          []string
	SuitableFor   []string
	FamousFor     []string
	BestMonths    []string
	BestTimes     []TimeRange
	AvgVisitMins  float64
	EntryFee      EntryFee
	Accessibility Accessibility
	OpenHours     openhours.Schedule
	AvgCost       float64
	Currency      string
	Rating        float64
	Notes         string
	Active        bool
}

// Restaurant is an eatery tied to a city.
type Restaurant struct {
	ID          int64
	Name        string
	Description string
	Country     string
	State       string
	City        string
	CountryID   int64
	StateID     int64
	CityID      int64
	Lat         float64
	Lng         float64
	Cuisine     []string
	PriceRange  string
	MustTry     []string
	FoodType    string
	Tags        []string
	Rating      float64
	Notes       string
	Active      bool
}

// Currencies lists the accepted average-cost currencies. INR is the default.
var Currencies = []string{"INR", "USD", "EUR", "GBP", "JPY", "CNY", "AUD", "CAD", "CHF", "AED", "SGD", "NZD"}

// FoodTypes lists the restaurant food type options.
var FoodTypes = []string{"Veg", "Non Veg"}

// DefaultCurrency is used when a record carries none.
const DefaultCurrency = "INR"
