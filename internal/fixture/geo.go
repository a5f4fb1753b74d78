package fixture

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderdesk/internal/db"
)

type geoResource struct {
	level  db.GeoLevel
	label  string
	plural string
	list   string
	create string
	update string
	active string
	toggle string
}

var geoResources = []geoResource{
	{
		level: db.Countries, label: "Country", plural: "Countries",
		list: "/country/get_all_countries", create: "/country/create", update: "/country/update_country",
		active: "/country/delete_country", toggle: "/country/toggle_status",
	},
	{
		level: db.States, label: "State", plural: "States",
		list: "/state/get_all_states", create: "/state/create", update: "/state/update_state",
		active: "/state/delete_state",
	},
	{
		level: db.Cities, label: "City", plural: "Cities",
		list: "/city/get_all_cities", create: "/city/create", update: "/city/update_city",
		active: "/city/delete_city",
	},
}

type geoRequest struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
	StateID   int64  `json:"state_id"`
}

func (s *Server) registerGeo(r *gin.Engine, g geoResource) {
	r.GET(g.list, s.listGeo(g))
	r.POST(g.create, s.createGeo(g))
	r.PUT(g.update, s.updateGeo(g))
	r.PATCH(g.active, s.setGeoActive(g))
	if g.toggle != "" {
		r.POST(g.toggle, s.toggleGeo(g))
	}
}

func (s *Server) listGeo(g geoResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, valid := bindList(c)
		if !valid {
			return
		}
		rows, total, err := db.ListGeo(s.db, g.level, q)
		if err != nil {
			internalError(c, err)
			return
		}
		result := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			result = append(result, renderGeo(g.level, row))
		}
		ok(c, g.plural+" fetched successfully", result, pageOf(q, total))
	}
}

func (s *Server) createGeo(g geoResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, valid := s.bindGeo(c, g)
		if !valid {
			return
		}
		taken, err := db.GeoNameTaken(s.db, g.level, row, 0)
		if err != nil {
			internalError(c, err)
			return
		}
		if taken {
			fail(c, http.StatusOK, http.StatusConflict, g.label+" already exists")
			return
		}
		id, err := db.InsertGeo(s.db, g.level, row)
		if err != nil {
			internalError(c, err)
			return
		}
		created, err := db.GetGeo(s.db, g.level, id)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusCreated, envelope{
			Result:     renderGeo(g.level, created),
			IsSuccess:  true,
			Message:    g.label + " data inserted successfully",
			StatusCode: http.StatusCreated,
		})
	}
}

func (s *Server) updateGeo(g geoResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, valid := s.bindGeo(c, g)
		if !valid {
			return
		}
		if _, err := db.GetGeo(s.db, g.level, row.ID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				fail(c, http.StatusOK, http.StatusNotFound, g.label+" not found")
				return
			}
			internalError(c, err)
			return
		}
		taken, err := db.GeoNameTaken(s.db, g.level, row, row.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		if taken {
			fail(c, http.StatusOK, http.StatusConflict, g.label+" with this name already exists.")
			return
		}
		if err := db.UpdateGeo(s.db, g.level, row); err != nil {
			internalError(c, err)
			return
		}
		ok(c, g.label+" updated successfully", nil, nil)
	}
}

func (s *Server) setGeoActive(g geoResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, valid := bindStatus(c)
		if !valid {
			return
		}
		err := db.SetGeoActive(s.db, g.level, req.ID, *req.IsActive)
		if errors.Is(err, db.ErrNotFound) {
			fail(c, http.StatusNotFound, http.StatusNotFound, g.label+" not found")
			return
		}
		if err != nil {
			internalError(c, err)
			return
		}
		if *req.IsActive {
			ok(c, g.label+" restored successfully", nil, nil)
			return
		}
		ok(c, g.label+" deleted successfully", nil, nil)
	}
}

func (s *Server) toggleGeo(g geoResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, valid := bindStatus(c)
		if !valid {
			return
		}
		err := db.SetGeoActive(s.db, g.level, req.ID, *req.IsActive)
		if errors.Is(err, db.ErrNotFound) {
			fail(c, http.StatusOK, http.StatusNotFound, g.label+" not found")
			return
		}
		if err != nil {
			internalError(c, err)
			return
		}
		ok(c, g.label+" status updated successfully", gin.H{"id": req.ID, "is_active": *req.IsActive}, nil)
	}
}

// bindGeo decodes and checks a create or update body. Parents must exist;
// a city without a country id inherits its state's.
func (s *Server) bindGeo(c *gin.Context, g geoResource) (db.GeoRow, bool) {
	var req geoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "Invalid request body")
		return db.GeoRow{}, false
	}
	row := db.GeoRow{ID: req.ID, Name: strings.TrimSpace(req.Name), CountryID: req.CountryID, StateID: req.StateID}
	if row.Name == "" {
		fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "name is required")
		return db.GeoRow{}, false
	}

	if g.level == db.Cities {
		state, err := db.GetGeo(s.db, db.States, row.StateID)
		if err != nil {
			fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "state_id does not reference a state")
			return db.GeoRow{}, false
		}
		if row.CountryID == 0 {
			row.CountryID = state.CountryID
		}
		if row.CountryID != state.CountryID {
			fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "state does not belong to country")
			return db.GeoRow{}, false
		}
	}
	if g.level >= db.States {
		if _, err := db.GetGeo(s.db, db.Countries, row.CountryID); err != nil {
			fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "country_id does not reference a country")
			return db.GeoRow{}, false
		}
	}
	return row, true
}

func renderGeo(level db.GeoLevel, r db.GeoRow) gin.H {
	out := gin.H{
		"id":         r.ID,
		"code":       r.Code,
		"name":       r.Name,
		"is_active":  r.Active,
		"created_at": r.CreatedAt,
	}
	country := gin.H{"id": r.CountryID, "name": r.CountryName}
	switch level {
	case db.States:
		out["country_id"] = r.CountryID
		out["country"] = country
	case db.Cities:
		out["country_id"] = r.CountryID
		out["state_id"] = r.StateID
		out["state"] = gin.H{
			"id":         r.StateID,
			"name":       r.StateName,
			"country_id": r.CountryID,
			"country":    country,
		}
	}
	return out
}
