package payload

import (
	"strconv"
	"strings"

	"wanderdesk/internal/location"
)

// GeoRequest is the create body for countries, states and cities. States
// carry a country id; cities carry both.
type GeoRequest struct {
	Name      string `json:"name"`
	CountryID *int64 `json:"country_id,omitempty"`
	StateID   *int64 `json:"state_id,omitempty"`
}

// Geo builds the body for a row at level. Parents deeper than the row's
// own level are not sent.
func Geo(level location.Level, name string, sel location.Selection, res location.Resolver) GeoRequest {
	ids := resolveIDs(sel, res)
	req := GeoRequest{Name: strings.TrimSpace(name)}
	if level >= location.State {
		req.CountryID = ids[location.Country]
	}
	if level >= location.City {
		req.StateID = ids[location.State]
	}
	return req
}

// StatusRequest is the soft delete, restore and toggle body.
type StatusRequest struct {
	ID       int64 `json:"id"`
	IsActive bool  `json:"is_active"`
}

func resolveIDs(sel location.Selection, res location.Resolver) [3]*int64 {
	held := [3]int64{sel.CountryID, sel.StateID, sel.CityID}
	names := [3]string{sel.Country, sel.State, sel.City}
	var out [3]*int64
	for _, l := range location.Levels {
		id := held[l]
		if id == 0 && res != nil {
			id = res.Lookup(l, names[l])
		}
		if id > 0 {
			v := id
			out[l] = &v
		}
	}
	return out
}

func formatNumber(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
