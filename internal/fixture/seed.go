package fixture

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"wanderdesk/internal/db"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Countries []struct {
		Name   string `yaml:"name"`
		States []struct {
			Name   string   `yaml:"name"`
			Cities []string `yaml:"cities"`
		} `yaml:"states"`
	} `yaml:"countries"`
	Places      []seedDocument `yaml:"places"`
	Restaurants []seedDocument `yaml:"restaurants"`
	Foods       []seedDocument `yaml:"foods"`
	Hotels      []seedDocument `yaml:"hotels"`
	Itineraries []seedDocument `yaml:"itineraries"`
}

type seedDocument struct {
	City string         `yaml:"city"`
	Body map[string]any `yaml:"body"`
}

// SeedDefault loads the embedded seed into an empty store.
func SeedDefault(database *sql.DB) error {
	return Seed(database, defaultSeed)
}

// Seed loads YAML seed data. A store that already holds countries is left
// untouched.
func Seed(database *sql.DB, data []byte) error {
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM countries`).Scan(&n); err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if n > 0 {
		return nil
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed: %w", err)
	}

	cities := map[string]db.GeoRow{}
	for _, country := range seed.Countries {
		countryID, err := db.InsertGeo(database, db.Countries, db.GeoRow{Name: country.Name})
		if err != nil {
			return err
		}
		for _, state := range country.States {
			stateID, err := db.InsertGeo(database, db.States, db.GeoRow{Name: state.Name, CountryID: countryID})
			if err != nil {
				return err
			}
			for _, city := range state.Cities {
				row := db.GeoRow{Name: city, CountryID: countryID, StateID: stateID, CountryName: country.Name, StateName: state.Name}
				if row.ID, err = db.InsertGeo(database, db.Cities, row); err != nil {
					return err
				}
				cities[city] = row
			}
		}
	}

	for _, group := range []struct {
		kind string
		docs []seedDocument
	}{
		{db.KindPlace, seed.Places},
		{db.KindRestaurant, seed.Restaurants},
		{db.KindFood, seed.Foods},
		{db.KindHotel, seed.Hotels},
		{db.KindItinerary, seed.Itineraries},
	} {
		kind := group.kind
		for _, d := range group.docs {
			city, found := cities[d.City]
			if !found {
				return fmt.Errorf("seed %s %v: unknown city %q", kind, d.Body["name"], d.City)
			}
			if err := insertSeedDocument(database, kind, city, d.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

func insertSeedDocument(database *sql.DB, kind string, city db.GeoRow, body map[string]any) error {
	if body == nil {
		body = map[string]any{}
	}
	body["city"] = city.Name
	body["city_id"] = city.ID
	if kind == db.KindPlace {
		body["state"] = city.StateName
		body["state_id"] = city.StateID
		body["country"] = city.CountryName
		body["country_id"] = city.CountryID
	}
	name, _ := body["name"].(string)
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode seed %s %q: %w", kind, name, err)
	}
	doc := db.Document{
		Kind:   kind,
		Name:   name,
		CityID: city.ID,
		Body:   encoded,
		Active: true,
	}
	if kind == db.KindPlace {
		doc.CountryID = city.CountryID
		doc.StateID = city.StateID
	}
	if _, err := db.InsertDocument(database, doc); err != nil {
		return fmt.Errorf("failed to seed %s %q: %w", kind, name, err)
	}
	return nil
}
