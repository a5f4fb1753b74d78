package payload

import (
	"strings"

	"wanderdesk/internal/location"
	"wanderdesk/internal/model"
	"wanderdesk/internal/openhours"
)

// PlaceForm is the flat text state of the place form.
type PlaceForm struct {
	Name        string
	Type        string
	Description string
	Location    location.Selection

	Lat string
	Lng string

	Tags        string
	SuitableFor string
	FamousFor   string
	BestMonths  string
	BestTimes   string

	AvgVisitMins string
	FeeAdult     string
	FeeChild     string
	FeeSenior    string
	AvgCost      string
	Currency     string

	Wheelchair      bool
	Parking         bool
	PublicTransport bool

	Hours      openhours.Week
	HoursNotes string

	Rating string
	Notes  string
}

// EntryFee is the entry_fee sub-object.
type EntryFee struct {
	Adult  float64 `json:"adult"`
	Child  float64 `json:"child"`
	Senior float64 `json:"senior"`
}

// Accessibility is the accessibility sub-object.
type Accessibility struct {
	WheelchairAccessible bool `json:"wheelchair_accessible"`
	ParkingAvailable     bool `json:"parking_available"`
	PublicTransport      bool `json:"public_transport"`
}

// Cost is an amount with its currency.
type Cost struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// PlaceRequest is the create body for /places/create. Updates send the
// same body with the record id merged in.
type PlaceRequest struct {
	Name          string             `json:"name"`
	Type          string             `json:"type"`
	Description   string             `json:"description"`
	Country       string             `json:"country"`
	State         string             `json:"state"`
	City          string             `json:"city"`
	CountryID     *int64             `json:"country_id,omitempty"`
	StateID       *int64             `json:"state_id,omitempty"`
	CityID        *int64             `json:"city_id,omitempty"`
	Lat           float64            `json:"lat"`
	Lng           float64            `json:"lng"`
	AvgVisitMins  float64            `json:"avg_visit_mins"`
	Tags          []string           `json:"tags"`
	SuitableFor   []string           `json:"suitable_for"`
	FamousFor     []string           `json:"famous_for"`
	EntryFee      EntryFee           `json:"entry_fee"`
	OpenHours     openhours.Schedule `json:"open_hours"`
	BestMonths    []string           `json:"best_months"`
	BestTimeOfDay []TimePair         `json:"best_time_of_day_to_visit"`
	Accessibility Accessibility      `json:"accessibility"`
	AvgCost       Cost               `json:"avg_cost_per_person"`
	Rating        float64            `json:"rating"`
	Notes         string             `json:"notes"`
}

// Place builds the place body. res may be nil, in which case only ids
// already held by the form are used.
func Place(f PlaceForm, res location.Resolver) PlaceRequest {
	ids := resolveIDs(f.Location, res)
	currency := strings.TrimSpace(f.Currency)
	if currency == "" {
		currency = model.DefaultCurrency
	}
	return PlaceRequest{
		Name:         strings.TrimSpace(f.Name),
		Type:         strings.TrimSpace(f.Type),
		Description:  strings.TrimSpace(f.Description),
		Country:      strings.TrimSpace(f.Location.Country),
		State:        strings.TrimSpace(f.Location.State),
		City:         strings.TrimSpace(f.Location.City),
		CountryID:    ids[location.Country],
		StateID:      ids[location.State],
		CityID:       ids[location.City],
		Lat:          Number(f.Lat),
		Lng:          Number(f.Lng),
		AvgVisitMins: Number(f.AvgVisitMins),
		Tags:         List(f.Tags),
		SuitableFor:  List(f.SuitableFor),
		FamousFor:    List(f.FamousFor),
		EntryFee: EntryFee{
			Adult:  Number(f.FeeAdult),
			Child:  Number(f.FeeChild),
			Senior: Number(f.FeeSenior),
		},
		OpenHours:     openhours.ToWire(f.Hours, strings.TrimSpace(f.HoursNotes)),
		BestMonths:    List(f.BestMonths),
		BestTimeOfDay: TimeRanges(f.BestTimes),
		Accessibility: Accessibility{
			WheelchairAccessible: f.Wheelchair,
			ParkingAvailable:     f.Parking,
			PublicTransport:      f.PublicTransport,
		},
		AvgCost: Cost{Amount: Number(f.AvgCost), Currency: currency},
		Rating:  Number(f.Rating),
		Notes:   strings.TrimSpace(f.Notes),
	}
}

// NewPlaceForm returns an empty form with the defaults a new place starts
// with: open all day, public transport available, INR.
func NewPlaceForm() PlaceForm {
	return PlaceForm{
		Currency:        model.DefaultCurrency,
		PublicTransport: true,
		Hours:           openhours.DefaultWeek(),
	}
}

// PlaceFormFrom fills a form from a decoded record for editing.
func PlaceFormFrom(p model.Place) PlaceForm {
	f := PlaceForm{
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		Location: location.Selection{
			Country:   p.Country,
			State:     p.State,
			City:      p.City,
			CountryID: p.CountryID,
			StateID:   p.StateID,
			CityID:    p.CityID,
		},
		Lat:             formatNumber(p.Lat),
		Lng:             formatNumber(p.Lng),
		Tags:            strings.Join(p.Tags, ", "),
		SuitableFor:     strings.Join(p.SuitableFor, ", "),
		FamousFor:       strings.Join(p.FamousFor, ", "),
		BestMonths:      strings.Join(p.BestMonths, ", "),
		BestTimes:       joinTimes(p.BestTimes),
		AvgVisitMins:    formatNumber(p.AvgVisitMins),
		FeeAdult:        formatNumber(p.EntryFee.Adult),
		FeeChild:        formatNumber(p.EntryFee.Child),
		FeeSenior:       formatNumber(p.EntryFee.Senior),
		AvgCost:         formatNumber(p.AvgCost),
		Currency:        p.Currency,
		Wheelchair:      p.Accessibility.WheelchairAccessible,
		Parking:         p.Accessibility.ParkingAvailable,
		PublicTransport: p.Accessibility.PublicTransport,
		Hours:           openhours.ToEditable(p.OpenHours),
		HoursNotes:      p.OpenHours.Notes,
		Rating:          formatNumber(p.Rating),
		Notes:           p.Notes,
	}
	if f.Currency == "" {
		f.Currency = model.DefaultCurrency
	}
	return f
}

func joinTimes(ranges []model.TimeRange) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, r.Start+"-"+r.End)
	}
	return strings.Join(parts, ", ")
}
