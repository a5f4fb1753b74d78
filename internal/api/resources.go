package api

// Resource names one backend collection and its endpoints. Empty paths
// mean the operation is not offered.
type Resource struct {
	Label  string
	Plural string
	List   string
	Create string
	Update string
	Active string
	Toggle string
}

// Writable reports whether records can be created and edited.
func (r Resource) Writable() bool { return r.Create != "" && r.Update != "" }

var (
	Countries = Resource{
		Label:  "Country",
		Plural: "Countries",
		List:   "/country/get_all_countries",
		Create: "/country/create",
		Update: "/country/update_country",
		Active: "/country/delete_country",
		Toggle: "/country/toggle_status",
	}
	States = Resource{
		Label:  "State",
		Plural: "States",
		List:   "/state/get_all_states",
		Create: "/state/create",
		Update: "/state/update_state",
		Active: "/state/delete_state",
	}
	Cities = Resource{
		Label:  "City",
		Plural: "Cities",
		List:   "/city/get_all_cities",
		Create: "/city/create",
		Update: "/city/update_city",
		Active: "/city/delete_city",
	}
	Places = Resource{
		Label:  "Place",
		Plural: "Places",
		List:   "/places/get_all_places",
		Create: "/places/create",
		Update: "/places/update_place",
		Active: "/places/delete_place",
	}
	Restaurants = Resource{
		Label:  "Restaurant",
		Plural: "Restaurants",
		List:   "/restaurant/get_all_restaurants",
		Create: "/restaurant/create",
		Update: "/restaurant/update_restaurant",
		Active: "/restaurant/delete_restaurant",
	}
	Foods       = Resource{Label: "Food", Plural: "Food", List: "/foods"}
	Hotels      = Resource{Label: "Hotel", Plural: "Hotels", List: "/hotels"}
	Itineraries = Resource{Label: "Itinerary", Plural: "Itineraries", List: "/itineraries"}
)

// ListParams is the list query string.
type ListParams struct {
	IsActive  *bool  `url:"is_active,omitempty"`
	SortBy    string `url:"sort_by,omitempty"`
	SortOrder string `url:"sort_order,omitempty"`
	Page      int    `url:"page,omitempty"`
	PageSize  int    `url:"page_size,omitempty"`
	Query     string `url:"q,omitempty"`
	ID        int64  `url:"id,omitempty"`
	CountryID int64  `url:"country_id,omitempty"`
	StateID   int64  `url:"state_id,omitempty"`
	CityID    int64  `url:"city_id,omitempty"`
}

// Bool returns a pointer for ListParams.IsActive.
func Bool(b bool) *bool { return &b }
