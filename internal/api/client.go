// Package api talks to the travel backend. Every call returns the
// normalized envelope or an *Error; callers never see raw bodies.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wanderdesk/internal/location"
	"wanderdesk/internal/model"
	"wanderdesk/internal/normalize"
	"wanderdesk/internal/payload"
)

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

// maxBody bounds how much of a response is read.
const maxBody = 8 << 20

// Client wraps the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger,
	}
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches one page. A missing success flag counts as success.
func (c *Client) List(ctx context.Context, r Resource, p ListParams) (normalize.Page, error) {
	values, err := query.Values(p)
	if err != nil {
		return normalize.Page{}, &Error{Kind: KindRequest, Op: "list " + r.Plural, Err: fmt.Errorf("encode query: %w", err)}
	}
	path := r.List
	if enc := values.Encode(); enc != "" {
		path += "?" + enc
	}

	body, err := c.do(ctx, http.MethodGet, path, nil, "list "+r.Plural)
	if err != nil {
		return normalize.Page{}, err
	}
	page := normalize.ListPage(body)
	if page.Shape == "invalid" {
		return normalize.Page{}, &Error{Kind: KindShape, Op: "list " + r.Plural}
	}
	if !page.OK {
		return page, &Error{Kind: KindBackend, Op: "list " + r.Plural, Message: page.Message}
	}
	return page, nil
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, r Resource, body any) (normalize.Ack, error) {
	if r.Create == "" {
		return normalize.Ack{}, &Error{Kind: KindBackend, Op: "create", Message: r.Plural + " are read-only"}
	}
	return c.mutate(ctx, http.MethodPost, r.Create, body, "create "+r.Label)
}

// Update puts the record with id merged into body.
func (c *Client) Update(ctx context.Context, r Resource, id int64, body any) (normalize.Ack, error) {
	if r.Update == "" {
		return normalize.Ack{}, &Error{Kind: KindBackend, Op: "update", Message: r.Plural + " are read-only"}
	}
	merged, err := withID(id, body)
	if err != nil {
		return normalize.Ack{}, &Error{Kind: KindRequest, Op: "update " + r.Label, Err: err}
	}
	return c.mutate(ctx, http.MethodPut, r.Update, merged, "update "+r.Label)
}

// SetActive soft deletes (false) or restores (true) a record.
func (c *Client) SetActive(ctx context.Context, r Resource, id int64, active bool) (normalize.Ack, error) {
	if r.Active == "" {
		return normalize.Ack{}, &Error{Kind: KindBackend, Op: "set active", Message: r.Plural + " cannot be deleted"}
	}
	return c.mutate(ctx, http.MethodPatch, r.Active, payload.StatusRequest{ID: id, IsActive: active}, "set active "+r.Label)
}

// ToggleStatus flips the status flag through the dedicated endpoint.
func (c *Client) ToggleStatus(ctx context.Context, r Resource, id int64, active bool) (normalize.Ack, error) {
	if r.Toggle == "" {
		return c.SetActive(ctx, r, id, active)
	}
	return c.mutate(ctx, http.MethodPost, r.Toggle, payload.StatusRequest{ID: id, IsActive: active}, "toggle "+r.Label)
}

// References loads one level of the location cascade in id order. Countries
// come unfiltered; states and cities are scoped to their parent and limited
// to active rows.
func (c *Client) References(ctx context.Context, level location.Level, parentID int64) ([]model.LocationRef, error) {
	var (
		r       Resource
		p       = ListParams{SortBy: "id", SortOrder: "asc"}
		ids     []string
		parents []string
	)
	switch level {
	case location.Country:
		r = Countries
		ids = normalize.FieldCountryRefID
	case location.State:
		r = States
		p.CountryID, p.IsActive = parentID, Bool(true)
		ids, parents = normalize.FieldStateRefID, normalize.FieldCountryID
	case location.City:
		r = Cities
		p.StateID, p.IsActive = parentID, Bool(true)
		ids, parents = normalize.FieldCityRefID, normalize.FieldStateID
	default:
		return nil, fmt.Errorf("unknown level %s", level)
	}
	page, err := c.List(ctx, r, p)
	if err != nil {
		return nil, err
	}
	return normalize.LocationRefs(page.Items, ids, parents), nil
}

func (c *Client) mutate(ctx context.Context, method, path string, body any, op string) (normalize.Ack, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return normalize.Ack{}, &Error{Kind: KindRequest, Op: op, Err: fmt.Errorf("encode body: %w", err)}
	}
	resp, err := c.do(ctx, method, path, data, op)
	if err != nil {
		return normalize.Ack{}, err
	}
	ack := normalize.Mutation(resp)
	if ack.Shape == "invalid" {
		return normalize.Ack{}, &Error{Kind: KindShape, Op: op}
	}
	if !ack.OK {
		return ack, &Error{Kind: KindBackend, Op: op, Message: ack.Message}
	}
	return ack, nil
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, body []byte, op string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Op: op, Err: fmt.Errorf("request creation failed: %w", err)}
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logRequest(requestID, method, path, 0, start, err)
		return nil, &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	c.logRequest(requestID, method, path, resp.StatusCode, start, err)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Kind: KindStatus, Op: op, Status: resp.StatusCode, Message: normalize.Message(data)}
	}
	return data, nil
}

func (c *Client) logRequest(requestID, method, path string, status int, start time.Time, err error) {
	event := c.log.Debug()
	if err != nil || status == 0 || status >= 400 {
		event = c.log.Warn()
	}
	event.
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status_code", status).
		Dur("duration_ms", time.Since(start)).
		Err(err).
		Msg("backend request")
}

// withID re-encodes body as an object with "id" set.
func withID(id int64, body any) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("update body must be an object: %w", err)
	}
	idData, _ := json.Marshal(id)
	fields["id"] = idData
	return fields, nil
}
