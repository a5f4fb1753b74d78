package payload

import (
	"strings"

	"wanderdesk/internal/location"
	"wanderdesk/internal/model"
)

// RestaurantForm is the flat text state of the restaurant form. The
// country and state in Location only drive the city dropdown.
type RestaurantForm struct {
	Name        string
	Description string
	FoodType    string
	Location    location.Selection
	Lat         string
	Lng         string
	Cuisine     string
	PriceRange  string
	MustTry     string
	Tags        string
	Notes       string
}

// RestaurantRequest is the create body for /restaurant/create.
type RestaurantRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	City          string   `json:"city"`
	CityID        *int64   `json:"city_id,omitempty"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	Cuisine       []string `json:"cuisine"`
	PriceRange    string   `json:"price_range"`
	MustTryDishes []string `json:"must_try_dishes"`
	Tags          []string `json:"tags"`
	FoodType      string   `json:"food_type"`
	Notes         string   `json:"notes"`
}

// Restaurant builds the restaurant body. Only the city travels; country
// and state are never sent.
func Restaurant(f RestaurantForm, res location.Resolver) RestaurantRequest {
	ids := resolveIDs(f.Location, res)
	return RestaurantRequest{
		Name:          strings.TrimSpace(f.Name),
		Description:   strings.TrimSpace(f.Description),
		City:          strings.TrimSpace(f.Location.City),
		CityID:        ids[location.City],
		Lat:           Number(f.Lat),
		Lng:           Number(f.Lng),
		Cuisine:       List(f.Cuisine),
		PriceRange:    strings.TrimSpace(f.PriceRange),
		MustTryDishes: List(f.MustTry),
		Tags:          List(f.Tags),
		FoodType:      strings.TrimSpace(f.FoodType),
		Notes:         strings.TrimSpace(f.Notes),
	}
}

// RestaurantFormFrom fills a form from a decoded record for editing.
func RestaurantFormFrom(r model.Restaurant) RestaurantForm {
	return RestaurantForm{
		Name:        r.Name,
		Description: r.Description,
		FoodType:    r.FoodType,
		Location: location.Selection{
			Country:   r.Country,
			State:     r.State,
			City:      r.City,
			CountryID: r.CountryID,
			StateID:   r.StateID,
			CityID:    r.CityID,
		},
		Lat:        formatNumber(r.Lat),
		Lng:        formatNumber(r.Lng),
		Cuisine:    strings.Join(r.Cuisine, ", "),
		PriceRange: r.PriceRange,
		MustTry:    strings.Join(r.MustTry, ", "),
		Tags:       strings.Join(r.Tags, ", "),
		Notes:      r.Notes,
	}
}
