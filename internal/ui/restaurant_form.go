package ui

import (
	"wanderdesk/internal/location"
	"wanderdesk/internal/model"
	"wanderdesk/internal/normalize"
	"wanderdesk/internal/payload"
)

// Country and state only narrow the city list here; the body carries the
// city alone.
func (m *FormModel) buildRestaurant(rec normalize.Record) {
	var form payload.RestaurantForm
	if rec != nil {
		form = payload.RestaurantFormFrom(normalize.Restaurant(rec))
	}

	m.fields = []*field{
		required(textField("name", "Name", "Restaurant name", 120)),
		required(selectField("food_type", "Food type", model.FoodTypes)),
		textField("description", "Description", "", 500),
		locationField(location.Country, "Country"),
		locationField(location.State, "State"),
		required(locationField(location.City, "City")),
		numberField("lat", "Latitude", "9.9658"),
		numberField("lng", "Longitude", "76.2421"),
		textField("cuisine", "Cuisine", "Kerala, Seafood", 200),
		textField("price_range", "Price range", "200-500", 40),
		textField("must_try", "Must-try dishes", "comma separated", 300),
		textField("tags", "Tags", "comma separated", 300),
		textField("notes", "Notes", "", 500),
	}

	m.setText("name", form.Name)
	m.setText("food_type", form.FoodType)
	m.setText("description", form.Description)
	m.setText("lat", form.Lat)
	m.setText("lng", form.Lng)
	m.setText("cuisine", form.Cuisine)
	m.setText("price_range", form.PriceRange)
	m.setText("must_try", form.MustTry)
	m.setText("tags", form.Tags)
	m.setText("notes", form.Notes)

	m.loc = location.New(location.City)
	if rec != nil {
		m.pending = m.loc.Prefill(form.Location)
	}
	m.syncLocation()
}

func (m *FormModel) restaurantForm() payload.RestaurantForm {
	return payload.RestaurantForm{
		Name:        m.text("name"),
		Description: m.text("description"),
		FoodType:    m.text("food_type"),
		Location:    m.selection(),
		Lat:         m.text("lat"),
		Lng:         m.text("lng"),
		Cuisine:     m.text("cuisine"),
		PriceRange:  m.text("price_range"),
		MustTry:     m.text("must_try"),
		Tags:        m.text("tags"),
		Notes:       m.text("notes"),
	}
}

func (m *FormModel) restaurantPayload() payload.RestaurantRequest {
	return payload.Restaurant(m.restaurantForm(), m.resolver())
}
