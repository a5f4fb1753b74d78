package normalize

import (
	"encoding/json"

	"wanderdesk/internal/model"
	"wanderdesk/internal/openhours"
)

// Field path lists, most specific first. The same logical attribute is
// spelled differently across endpoints and record versions.
var (
	FieldID     = []string{"id", "place_id", "restaurant_id"}
	FieldName   = []string{"name", "title"}
	FieldActive = []string{"is_active", "isActive", "active"}

	FieldCountryName = []string{"country.name", "country", "country_name", "state.country.name", "city.state.country.name"}
	FieldStateName   = []string{"state.name", "state", "state_name", "city.state.name"}
	FieldCityName    = []string{"city.name", "city", "city_name"}

	FieldCountryID = []string{"country_id", "country.id", "country.country_id", "state.country_id", "city.state.country_id", "city.state.country.id"}
	FieldStateID   = []string{"state_id", "state.id", "state.state_id", "city.state_id", "city.state.id"}
	FieldCityID    = []string{"city_id", "city.id", "city.city_id"}

	// Own-id paths for reference rows, which may carry their id under the
	// level's foreign-key name.
	FieldCountryRefID = []string{"id", "country_id"}
	FieldStateRefID   = []string{"id", "state_id"}
	FieldCityRefID    = []string{"id", "city_id"}

	FieldLat      = []string{"lat", "latitude", "location.lat"}
	FieldLng      = []string{"lng", "longitude", "lon", "location.lng"}
	FieldType     = []string{"type", "category"}
	FieldNotes    = []string{"notes", "note"}
	FieldRating   = []string{"rating", "avg_rating"}
	FieldAvgCost  = []string{"avg_cost_per_person.amount", "avg_cost_per_person", "avg_cost_for_one.amount", "avg_cost_for_one"}
	FieldCurrency = []string{"avg_cost_per_person.currency", "currency", "avg_cost_for_one.currency"}
	FieldBestTime = []string{"best_time_of_day_to_visit", "best_time_of_day"}
)

// Active reads the soft-delete flag. Records without one are active.
func Active(r Record) bool {
	if v, ok := r.Bool(FieldActive...); ok {
		return v
	}
	return true
}

// LocationRef maps a country, state or city row. idFields names where the
// row's own id lives; parentFields names where the containing region's id
// lives, nil for countries.
func LocationRef(r Record, idFields, parentFields []string) model.LocationRef {
	ref := model.LocationRef{
		ID:   r.ID(idFields...),
		Name: r.String(FieldName...),
	}
	if parentFields != nil {
		ref.ParentID = r.ID(parentFields...)
	}
	return ref
}

// LocationRefs maps a page of reference rows, skipping rows without an id
// or a name.
func LocationRefs(items []Record, idFields, parentFields []string) []model.LocationRef {
	refs := make([]model.LocationRef, 0, len(items))
	for _, it := range items {
		ref := LocationRef(it, idFields, parentFields)
		if ref.ID == 0 || ref.Name == "" {
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

// Geo maps a country, state or city row for the geo screens.
func Geo(r Record) model.Geo {
	return model.Geo{
		ID:        r.ID("id"),
		Name:      r.String(FieldName...),
		CountryID: r.ID(FieldCountryID...),
		Country:   r.String(FieldCountryName...),
		StateID:   r.ID(FieldStateID...),
		State:     r.String(FieldStateName...),
		Active:    Active(r),
	}
}

// Place maps a place record, accepting every known field variant.
func Place(r Record) model.Place {
	p := model.Place{
		ID:           r.ID(FieldID...),
		Name:         r.String(FieldName...),
		Type:         r.String(FieldType...),
		Description:  r.String("description"),
		Country:      r.String(FieldCountryName...),
		State:        r.String(FieldStateName...),
		City:         r.String(FieldCityName...),
		CountryID:    r.ID(FieldCountryID...),
		StateID:      r.ID(FieldStateID...),
		CityID:       r.ID(FieldCityID...),
		Lat:          r.Float(FieldLat...),
		Lng:          r.Float(FieldLng...),
		Tags:         r.Strings("tags"),
		SuitableFor:  r.Strings("suitable_for"),
		FamousFor:    r.Strings("famous_for"),
		BestMonths:   r.Strings("best_months"),
		BestTimes:    timeRanges(r),
		AvgVisitMins: r.Float("avg_visit_mins"),
		EntryFee: model.EntryFee{
			Adult:  r.Float("entry_fee.adult"),
			Child:  r.Float("entry_fee.child"),
			Senior: r.Float("entry_fee.senior"),
		},
		AvgCost:  r.Float(FieldAvgCost...),
		Currency: r.String(FieldCurrency...),
		Rating:   r.Float(FieldRating...),
		Notes:    r.String(FieldNotes...),
		Active:   Active(r),
	}
	p.Accessibility.WheelchairAccessible, _ = r.Bool("accessibility.wheelchair_accessible")
	p.Accessibility.ParkingAvailable, _ = r.Bool("accessibility.parking_available")
	p.Accessibility.PublicTransport, _ = r.Bool("accessibility.public_transport")
	if p.Currency == "" {
		p.Currency = model.DefaultCurrency
	}
	p.OpenHours = OpenHours(r)
	return p
}

// Restaurant maps a restaurant record.
func Restaurant(r Record) model.Restaurant {
	return model.Restaurant{
		ID:          r.ID(FieldID...),
		Name:        r.String(FieldName...),
		Description: r.String("description"),
		Country:     r.String(FieldCountryName...),
		State:       r.String(FieldStateName...),
		City:        r.String(FieldCityName...),
		CountryID:   r.ID(FieldCountryID...),
		StateID:     r.ID(FieldStateID...),
		CityID:      r.ID(FieldCityID...),
		Lat:         r.Float(FieldLat...),
		Lng:         r.Float(FieldLng...),
		Cuisine:     r.Strings("cuisine"),
		PriceRange:  r.String("price_range"),
		MustTry:     r.Strings("must_try_dishes", "must_try"),
		FoodType:    r.String("food_type"),
		Tags:        r.Strings("tags"),
		Rating:      r.Float(FieldRating...),
		Notes:       r.String(FieldNotes...),
		Active:      Active(r),
	}
}

// OpenHours reads the open_hours object. A missing or unreadable value is
// an empty schedule.
func OpenHours(r Record) openhours.Schedule {
	raw := r.Raw("open_hours")
	if raw == nil {
		return openhours.Schedule{}
	}
	var s openhours.Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return openhours.Schedule{}
	}
	return s
}

func timeRanges(r Record) []model.TimeRange {
	for _, p := range FieldBestTime {
		v, ok := r.Lookup(p)
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]model.TimeRange, 0, len(list))
		for _, item := range list {
			pair, ok := item.([]any)
			if !ok || len(pair) != 2 {
				continue
			}
			start, _ := scalarString(pair[0])
			end, _ := scalarString(pair[1])
			if start == "" || end == "" {
				continue
			}
			out = append(out, model.TimeRange{Start: start, End: end})
		}
		return out
	}
	return nil
}
