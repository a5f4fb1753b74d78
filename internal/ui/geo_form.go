package ui

import (
	"wanderdesk/internal/location"
	"wanderdesk/internal/normalize"
	"wanderdesk/internal/payload"
)

// geoLevel is the level a country, state or city form creates.
func (m *FormModel) geoLevel() location.Level {
	switch m.desc.form {
	case formState:
		return location.State
	case formCity:
		return location.City
	}
	return location.Country
}

func (m *FormModel) buildGeo(rec normalize.Record) {
	level := m.geoLevel()
	name := required(textField("name", "Name", level.String()+" name", 100))

	if level == location.Country {
		m.fields = []*field{name}
	} else {
		m.loc = location.New(level - 1)
		m.fields = []*field{required(locationField(location.Country, "Country"))}
		if level == location.City {
			m.fields = append(m.fields, required(locationField(location.State, "State")))
		}
		m.fields = append(m.fields, name)
	}

	if rec == nil {
		m.syncLocation()
		return
	}
	g := normalize.Geo(rec)
	m.setText("name", g.Name)
	if m.loc != nil {
		m.pending = m.loc.Prefill(location.Selection{
			Country:   g.Country,
			State:     g.State,
			CountryID: g.CountryID,
			StateID:   g.StateID,
		})
	}
	m.syncLocation()
}

func (m *FormModel) geoPayload() payload.GeoRequest {
	return payload.Geo(m.geoLevel(), m.text("name"), m.selection(), m.resolver())
}
