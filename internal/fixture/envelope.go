package fixture

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderdesk/internal/db"
)

// envelope is the backend's response wrapper.
type envelope struct {
	Result     any         `json:"result"`
	IsSuccess  bool        `json:"is_success"`
	Message    string      `json:"message"`
	StatusCode int         `json:"status_code"`
	Error      *string     `json:"error"`
	Pagination *pagination `json:"pagination"`
}

type pagination struct {
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

func paginate(total, skip, limit int) *pagination {
	page := skip/limit + 1
	pages := (total + limit - 1) / limit
	return &pagination{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

func ok(c *gin.Context, message string, result any, pg *pagination) {
	c.JSON(http.StatusOK, envelope{
		Result:     result,
		IsSuccess:  true,
		Message:    message,
		StatusCode: http.StatusOK,
		Pagination: pg,
	})
}

// fail answers with is_success false. httpStatus is the transport status;
// the backend reports most business failures with 200.
func fail(c *gin.Context, httpStatus, statusCode int, message string) {
	c.JSON(httpStatus, envelope{
		IsSuccess:  false,
		Message:    message,
		StatusCode: statusCode,
	})
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	msg := err.Error()
	c.JSON(http.StatusInternalServerError, envelope{
		IsSuccess:  false,
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
		Error:      &msg,
	})
}

// listRequest is the shared list query string. search is the backend's
// own name for q; both are accepted.
type listRequest struct {
	IsActive  *bool  `form:"is_active"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Q         string `form:"q"`
	Search    string `form:"search"`
	ID        int64  `form:"id"`
	CountryID int64  `form:"country_id"`
	StateID   int64  `form:"state_id"`
	CityID    int64  `form:"city_id"`
}

func (r listRequest) query() db.ListQuery {
	q := db.ListQuery{
		Active:    r.IsActive,
		Search:    r.Q,
		ID:        r.ID,
		CountryID: r.CountryID,
		StateID:   r.StateID,
		CityID:    r.CityID,
		SortBy:    r.SortBy,
		SortDesc:  r.SortOrder != "asc",
	}
	if q.Search == "" {
		q.Search = r.Search
	}
	if r.Page > 0 && r.PageSize > 0 {
		q.Limit = r.PageSize
		q.Offset = (r.Page - 1) * r.PageSize
	}
	return q
}

func bindList(c *gin.Context) (db.ListQuery, bool) {
	var req listRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "Invalid query parameters: "+err.Error())
		return db.ListQuery{}, false
	}
	return req.query(), true
}

func pageOf(q db.ListQuery, total int) *pagination {
	if q.Limit <= 0 {
		return nil
	}
	return paginate(total, q.Offset, q.Limit)
}

// statusRequest is the soft delete, restore and toggle body.
type statusRequest struct {
	ID       int64 `json:"id" binding:"required"`
	IsActive *bool `json:"is_active" binding:"required"`
}

func bindStatus(c *gin.Context) (statusRequest, bool) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, http.StatusUnprocessableEntity, "id and is_active are required")
		return statusRequest{}, false
	}
	return req, true
}
