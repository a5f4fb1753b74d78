package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderdesk/internal/db"
)

type documentResource struct {
	kind   string
	label  string
	plural string
	list   string
	create string
	update string
	active string
	// required names body fields that must be non-empty strings.
	required []string
	validate func(body map[string]any) error
}

var documentResources = []documentResource{
	{
		kind: db.KindPlace, label: "Place", plural: "Places",
		list: "/places/get_all_places", create: "/places/create", update: "/places/update_place",
		active: "/places/delete_place", required: []string{"name", "city", "state", "country"},
		validate: validatePlace,
	},
	{
		kind: db.KindRestaurant, label: "Restaurant", plural: "Restaurants",
		list: "/restaurant/get_all_restaurants", create: "/restaurant/create", update: "/restaurant/update_restaurant",
		active: "/restaurant/delete_restaurant", required: []string{"name", "city"},
	},
	{kind: db.KindFood, label: "Food", plural: "Foods", list: "/foods"},
	{kind: db.KindHotel, label: "Hotel", plural: "Hotels", list: "/hotels"},
	{kind: db.KindItinerary, label: "Itinerary", plural: "Itineraries", list: "/itineraries"},
}

func (s *Server) registerDocuments(r *gin.Engine, d documentResource) {
	r.GET(d.list, s.listDocuments(d))
	if d.create != "" {
		r.POST(d.create, s.createDocument(d))
	}
	if d.update != "" {
		r.PUT(d.update, s.updateDocument(d))
	}
	if d.active != "" {
		r.PATCH(d.active, s.setDocumentActive(d))
	}
}

func (s *Server) listDocuments(d documentResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, valid := bindList(c)
		if !valid {
			return
		}
		docs, total, err := db.ListDocuments(s.db, d.kind, q)
		if err != nil {
			internalError(c, err)
			return
		}
		result := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			rendered, err := renderDocument(doc)
			if err != nil {
				internalError(c, err)
				return
			}
			result = append(result, rendered)
		}
		ok(c, d.plural+" fetched successfully", result, pageOf(q, total))
	}
}

func (s *Server) createDocument(d documentResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, valid := bindDocument(c, d)
		if !valid {
			return
		}
		taken, err := db.DocumentNameTaken(s.db, doc, 0)
		if err != nil {
			internalError(c, err)
			return
		}
		if taken {
			fail(c, http.StatusOK, http.StatusConflict, d.label+" already exists")
			return
		}
		doc.Active = true
		id, err := db.InsertDocument(s.db, doc)
		if err != nil {
			internalError(c, err)
			return
		}
		stored, err := db.GetDocument(s.db, d.kind, id)
		if err != nil {
			internalError(c, err)
			return
		}
		rendered, err := renderDocument(stored)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusCreated, envelope{
			Result:     rendered,
			IsSuccess:  true,
			Message:    d.label + " data inserted successfully",
			StatusCode: http.StatusCreated,
		})
	}
}

func (s *Server) updateDocument(d documentResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, valid := bindDocument(c, d)
		if !valid {
			return
		}
		if _, err := db.GetDocument(s.db, d.kind, doc.ID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				fail(c, http.StatusOK, http.StatusNotFound, d.label+" not found")
				return
			}
			internalError(c, err)
			return
		}
		taken, err := db.DocumentNameTaken(s.db, doc, doc.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		if taken {
			fail(c, http.StatusOK, http.StatusConflict, d.label+" with this name already exists.")
			return
		}
		if err := db.UpdateDocument(s.db, doc); err != nil {
			internalError(c, err)
			return
		}
		ok(c, d.label+" updated successfully", nil, nil)
	}
}

func (s *Server) setDocumentActive(d documentResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, valid := bindStatus(c)
		if !valid {
			return
		}
		err := db.SetDocumentActive(s.db, d.kind, req.ID, *req.IsActive)
		if errors.Is(err, db.ErrNotFound) {
			fail(c, http.StatusNotFound, http.StatusNotFound, d.label+" not found")
			return
		}
		if err != nil {
			internalError(c, err)
			return
		}
		if *req.IsActive {
			ok(c, d.label+" restored successfully", nil, nil)
			return
		}
		ok(c, d.label+" deleted successfully", nil, nil)
	}
}

// bindDocument reads a JSON object body. id and is_active are lifted out;
// everything else is stored as sent.
func bindDocument(c *gin.Context, d documentResource) (db.Document, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		fail(c, http.StatusBadRequest, http.StatusBadRequest, "Unreadable request body")
		return db.Document{}, false
	}
	body, err := decodeObject(raw)
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "Request body must be a JSON object")
		return db.Document{}, false
	}
	for _, field := range d.required {
		if v, _ := body[field].(string); strings.TrimSpace(v) == "" {
			fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, field+" is required")
			return db.Document{}, false
		}
	}
	if d.validate != nil {
		if err := d.validate(body); err != nil {
			fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, err.Error())
			return db.Document{}, false
		}
	}

	doc := db.Document{
		ID:        intField(body, "id"),
		Kind:      d.kind,
		Name:      strings.TrimSpace(fmt.Sprint(body["name"])),
		CountryID: intField(body, "country_id"),
		StateID:   intField(body, "state_id"),
		CityID:    intField(body, "city_id"),
	}
	delete(body, "id")
	delete(body, "is_active")
	delete(body, "created_at")
	encoded, err := json.Marshal(body)
	if err != nil {
		internalError(c, err)
		return db.Document{}, false
	}
	doc.Body = encoded
	return doc, true
}

func renderDocument(d db.Document) (map[string]any, error) {
	out, err := decodeObject(d.Body)
	if err != nil {
		return nil, fmt.Errorf("stored %s %d: %w", d.Kind, d.ID, err)
	}
	out["id"] = d.ID
	out["is_active"] = d.Active
	out["created_at"] = d.CreatedAt
	return out, nil
}

var weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// validatePlace applies the backend's open_hours rules: every weekday key
// present, windows of two HH:MM strings, nothing but weekdays and notes.
func validatePlace(body map[string]any) error {
	raw, present := body["open_hours"]
	if !present || raw == nil {
		return nil
	}
	hours, isObject := raw.(map[string]any)
	if !isObject {
		return errors.New("open_hours must be an object")
	}
	for _, day := range weekdays {
		windows, present := hours[day]
		if !present {
			return fmt.Errorf("open_hours missing weekday: %s", day)
		}
		list, isList := windows.([]any)
		if !isList {
			return fmt.Errorf("open_hours[%s] must be a list", day)
		}
		for _, w := range list {
			pair, isPair := w.([]any)
			if !isPair || len(pair) != 2 {
				return fmt.Errorf(`open_hours[%s] windows must be ["HH:MM","HH:MM"]`, day)
			}
			for _, t := range pair {
				if s, _ := t.(string); len(s) != 5 || s[2] != ':' {
					return fmt.Errorf("open_hours[%s] time format must be HH:MM", day)
				}
			}
		}
	}
	for key := range hours {
		if key == "notes" {
			if _, isString := hours[key].(string); !isString {
				return errors.New("open_hours.notes must be a string")
			}
			continue
		}
		known := false
		for _, day := range weekdays {
			known = known || key == day
		}
		if !known {
			return fmt.Errorf("open_hours has unknown key: %s", key)
		}
	}
	return nil
}

func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("body is not an object")
	}
	return out, nil
}

func intField(body map[string]any, key string) int64 {
	switch v := body[key].(type) {
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	}
	return 0
}
