package ui

import (
	"wanderdesk/internal/location"
	"wanderdesk/internal/model"
	"wanderdesk/internal/normalize"
	"wanderdesk/internal/payload"
)

func (m *FormModel) buildPlace(rec normalize.Record) {
	form := payload.NewPlaceForm()
	if rec != nil {
		form = payload.PlaceFormFrom(normalize.Place(rec))
	}

	m.fields = []*field{
		required(textField("name", "Name", "Fort Kochi Beach", 120)),
		textField("type", "Type", "beach, fort, temple...", 60),
		textField("description", "Description", "", 500),
		required(locationField(location.Country, "Country")),
		required(locationField(location.State, "State")),
		required(locationField(location.City, "City")),
		numberField("lat", "Latitude", "9.9658"),
		numberField("lng", "Longitude", "76.2421"),
		textField("tags", "Tags", "comma separated", 300),
		textField("suitable_for", "Suitable for", "families, couples", 300),
		textField("famous_for", "Famous for", "comma separated", 300),
		textField("best_months", "Best months", "Nov, Dec, Jan", 120),
		textField("best_times", "Best time of day", "06:00-09:00, 16:00-18:30", 200),
		numberField("avg_visit_mins", "Avg visit (mins)", "90"),
		numberField("fee_adult", "Entry fee adult", "0"),
		numberField("fee_child", "Entry fee child", "0"),
		numberField("fee_senior", "Entry fee senior", "0"),
		numberField("avg_cost", "Avg cost per person", "0"),
		selectField("currency", "Currency", model.Currencies),
		toggleField("wheelchair", "Wheelchair accessible", form.Wheelchair),
		toggleField("parking", "Parking available", form.Parking),
		toggleField("public_transport", "Public transport", form.PublicTransport),
		{key: "hours", label: "Open hours", kind: fieldHours},
		textField("hours_notes", "Hours notes", "Closed on public holidays", 200),
		numberField("rating", "Rating", "0-5"),
		textField("notes", "Notes", "", 500),
	}
	m.hours = NewHoursEditor(form.Hours)

	m.setText("name", form.Name)
	m.setText("type", form.Type)
	m.setText("description", form.Description)
	m.setText("lat", form.Lat)
	m.setText("lng", form.Lng)
	m.setText("tags", form.Tags)
	m.setText("suitable_for", form.SuitableFor)
	m.setText("famous_for", form.FamousFor)
	m.setText("best_months", form.BestMonths)
	m.setText("best_times", form.BestTimes)
	m.setText("avg_visit_mins", form.AvgVisitMins)
	m.setText("fee_adult", form.FeeAdult)
	m.setText("fee_child", form.FeeChild)
	m.setText("fee_senior", form.FeeSenior)
	m.setText("avg_cost", form.AvgCost)
	m.setText("currency", form.Currency)
	m.setText("hours_notes", form.HoursNotes)
	m.setText("rating", form.Rating)
	m.setText("notes", form.Notes)

	m.loc = location.New(location.City)
	if rec != nil {
		m.pending = m.loc.Prefill(form.Location)
	}
	m.syncLocation()
}

func (m *FormModel) placeForm() payload.PlaceForm {
	return payload.PlaceForm{
		Name:            m.text("name"),
		Type:            m.text("type"),
		Description:     m.text("description"),
		Location:        m.selection(),
		Lat:             m.text("lat"),
		Lng:             m.text("lng"),
		Tags:            m.text("tags"),
		SuitableFor:     m.text("suitable_for"),
		FamousFor:       m.text("famous_for"),
		BestMonths:      m.text("best_months"),
		BestTimes:       m.text("best_times"),
		AvgVisitMins:    m.text("avg_visit_mins"),
		FeeAdult:        m.text("fee_adult"),
		FeeChild:        m.text("fee_child"),
		FeeSenior:       m.text("fee_senior"),
		AvgCost:         m.text("avg_cost"),
		Currency:        m.text("currency"),
		Wheelchair:      m.isOn("wheelchair"),
		Parking:         m.isOn("parking"),
		PublicTransport: m.isOn("public_transport"),
		Hours:           m.hours.Week(),
		HoursNotes:      m.text("hours_notes"),
		Rating:          m.text("rating"),
		Notes:           m.text("notes"),
	}
}

func (m *FormModel) placePayload() payload.PlaceRequest {
	return payload.Place(m.placeForm(), m.resolver())
}
