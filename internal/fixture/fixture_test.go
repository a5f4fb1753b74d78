package fixture

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return New(database, zerolog.New(io.Discard)).Router()
}

type response struct {
	Result     json.RawMessage `json:"result"`
	IsSuccess  bool            `json:"is_success"`
	Message    string          `json:"message"`
	StatusCode int             `json:"status_code"`
	Pagination *struct {
		Total   int  `json:"total"`
		Page    int  `json:"page"`
		Limit   int  `json:"limit"`
		Pages   int  `json:"pages"`
		HasNext bool `json:"has_next"`
		HasPrev bool `json:"has_prev"`
	} `json:"pagination"`
}

func do(t *testing.T, r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func items(t *testing.T, resp response) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(resp.Result, &out))
	return out
}

func TestListCountriesWithPagination(t *testing.T) {
	r := newTestRouter(t)
	w, resp := do(t, r, http.MethodGet, "/country/get_all_countries?page=1&page_size=1&sort_by=id&sort_order=asc", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, "Countries fetched successfully", resp.Message)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Pages)
	assert.True(t, resp.Pagination.HasNext)
	assert.False(t, resp.Pagination.HasPrev)

	rows := items(t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, "India", rows[0]["name"])
	assert.Equal(t, "country_00001", rows[0]["code"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestListWithoutPagingOmitsMetadata(t *testing.T) {
	r := newTestRouter(t)
	_, resp := do(t, r, http.MethodGet, "/country/get_all_countries", "")
	assert.Nil(t, resp.Pagination)
	assert.Len(t, items(t, resp), 2)
}

func TestStatesAreScopedAndNested(t *testing.T) {
	r := newTestRouter(t)
	_, resp := do(t, r, http.MethodGet, "/state/get_all_states?country_id=2&is_active=true&sort_by=id", "")
	rows := items(t, resp)
	require.Len(t, rows, 2)
	for _, row := range rows {
		country := row["country"].(map[string]any)
		assert.Equal(t, "Japan", country["name"])
	}

	_, resp = do(t, r, http.MethodGet, "/city/get_all_cities?state_id=1", "")
	cities := items(t, resp)
	require.Len(t, cities, 3)
	state := cities[0]["state"].(map[string]any)
	assert.Equal(t, "Kerala", state["name"])
	assert.Equal(t, "India", state["country"].(map[string]any)["name"])
}

func TestSearchAcceptsBothParameterNames(t *testing.T) {
	r := newTestRouter(t)
	_, byQ := do(t, r, http.MethodGet, "/city/get_all_cities?q=pur", "")
	_, bySearch := do(t, r, http.MethodGet, "/city/get_all_cities?search=pur", "")
	assert.Len(t, items(t, byQ), 2)
	assert.JSONEq(t, string(byQ.Result), string(bySearch.Result))
}

func TestCreateCountryRejectsDuplicate(t *testing.T) {
	r := newTestRouter(t)
	w, resp := do(t, r, http.MethodPost, "/country/create", `{"name":"France"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.IsSuccess)

	w, resp = do(t, r, http.MethodPost, "/country/create", `{"name":"  france "}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, "Country already exists", resp.Message)
}

func TestCreateValidation(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		name   string
		target string
		body   string
		want   string
	}{
		{"missing name", "/country/create", `{}`, "name is required"},
		{"unknown country", "/state/create", `{"name":"Bavaria","country_id":99}`, "country_id does not reference a country"},
		{"state from other country", "/city/create", `{"name":"Nara","state_id":4,"country_id":1}`, "state does not belong to country"},
		{"place missing city", "/places/create", `{"name":"X","state":"Kerala","country":"India"}`, "city is required"},
		{"place missing weekday", "/places/create", `{"name":"X","city":"Kochi","state":"Kerala","country":"India","open_hours":{"mon":[]}}`, "open_hours missing weekday: tue"},
		{"restaurant array body", "/restaurant/create", `[]`, "Request body must be a JSON object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(t, r, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.False(t, resp.IsSuccess)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestCityInheritsCountryFromState(t *testing.T) {
	r := newTestRouter(t)
	_, resp := do(t, r, http.MethodPost, "/city/create", `{"name":"Kottayam","state_id":1}`)
	require.True(t, resp.IsSuccess, resp.Message)

	var city map[string]any
	require.NoError(t, json.Unmarshal(resp.Result, &city))
	assert.Equal(t, 1.0, city["country_id"])
}

func TestUpdateNotFoundAndDuplicate(t *testing.T) {
	r := newTestRouter(t)
	w, resp := do(t, r, http.MethodPut, "/country/update_country", `{"id":99,"name":"Nowhere"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, "Country not found", resp.Message)

	_, resp = do(t, r, http.MethodPut, "/country/update_country", `{"id":2,"name":"India"}`)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, "Country with this name already exists.", resp.Message)

	_, resp = do(t, r, http.MethodPut, "/country/update_country", `{"id":2,"name":"Nippon"}`)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, "Country updated successfully", resp.Message)
}

func TestPlaceLifecycle(t *testing.T) {
	r := newTestRouter(t)
	body := `{"name":"Marine Drive","city":"Kochi","state":"Kerala","country":"India","country_id":1,"state_id":1,"city_id":1,
		"open_hours":{"mon":[],"tue":[],"wed":[],"thu":[],"fri":[],"sat":[],"sun":[["06:00","22:00"]],"notes":""},
		"avg_cost_per_person":{"amount":0,"currency":"INR"}}`
	w, resp := do(t, r, http.MethodPost, "/places/create", body)
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)

	var created map[string]any
	require.NoError(t, json.Unmarshal(resp.Result, &created))
	id := created["id"].(float64)
	assert.Equal(t, true, created["is_active"])

	_, resp = do(t, r, http.MethodPost, "/places/create", body)
	assert.Equal(t, "Place already exists", resp.Message)

	_, resp = do(t, r, http.MethodPut, "/places/update_place", strings.Replace(body, `"name":"Marine Drive"`, `"id":`+jsonNumber(id)+`,"name":"Marine Drive Walkway"`, 1))
	assert.True(t, resp.IsSuccess, resp.Message)

	_, resp = do(t, r, http.MethodGet, "/places/get_all_places?city_id=1&q=walkway", "")
	rows := items(t, resp)
	require.Len(t, rows, 1)
	assert.Equal(t, "Marine Drive Walkway", rows[0]["name"])
	hours := rows[0]["open_hours"].(map[string]any)
	assert.Equal(t, []any{}, hours["mon"])
}

func TestSoftDeleteAndRestore(t *testing.T) {
	r := newTestRouter(t)

	_, resp := do(t, r, http.MethodPatch, "/restaurant/delete_restaurant", `{"id":4,"is_active":false}`)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, "Restaurant deleted successfully", resp.Message)

	_, active := do(t, r, http.MethodGet, "/restaurant/get_all_restaurants?is_active=true", "")
	_, inactive := do(t, r, http.MethodGet, "/restaurant/get_all_restaurants?is_active=false", "")
	assert.Len(t, items(t, active), 1)
	inactiveRows := items(t, inactive)
	require.Len(t, inactiveRows, 1)
	assert.Equal(t, "Kashi Art Cafe", inactiveRows[0]["name"])

	_, resp = do(t, r, http.MethodPatch, "/restaurant/delete_restaurant", `{"id":4,"is_active":true}`)
	assert.Equal(t, "Restaurant restored successfully", resp.Message)
	_, active = do(t, r, http.MethodGet, "/restaurant/get_all_restaurants?is_active=true", "")
	assert.Len(t, items(t, active), 2)

	w, resp := do(t, r, http.MethodPatch, "/city/delete_city", `{"id":404,"is_active":false}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "City not found", resp.Message)

	w, _ = do(t, r, http.MethodPatch, "/city/delete_city", `{"id":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestToggleCountryStatus(t *testing.T) {
	r := newTestRouter(t)
	_, resp := do(t, r, http.MethodPost, "/country/toggle_status", `{"id":2,"is_active":false}`)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, "Country status updated successfully", resp.Message)

	_, list := do(t, r, http.MethodGet, "/country/get_all_countries?id=2", "")
	rows := items(t, list)
	require.Len(t, rows, 1)
	assert.Equal(t, false, rows[0]["is_active"])
}

func TestBrowseOnlyLists(t *testing.T) {
	r := newTestRouter(t)
	for target, want := range map[string]int{"/foods": 2, "/hotels": 2, "/itineraries": 1} {
		_, resp := do(t, r, http.MethodGet, target, "")
		assert.True(t, resp.IsSuccess, target)
		assert.Len(t, items(t, resp), want, target)
	}

	req := httptest.NewRequest(http.MethodPost, "/foods", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidQueryParameters(t *testing.T) {
	r := newTestRouter(t)
	w, resp := do(t, r, http.MethodGet, "/country/get_all_countries?page_size=500", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, resp.IsSuccess)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func jsonNumber(f float64) string {
	data, _ := json.Marshal(f)
	return string(data)
}
