package api

import (
	"fmt"
	"net/http"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindTransport means no response arrived.
	KindTransport Kind = iota
	// KindStatus means a non-2xx response.
	KindStatus
	// KindBackend means a 2xx response whose envelope reported failure.
	KindBackend
	// KindShape means the body could not be read as JSON.
	KindShape
	// KindRequest means the request could not be built, so nothing was sent.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindBackend:
		return "backend"
	case KindShape:
		return "shape"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Error is returned for every failed call. Message holds the backend's own
// message when it sent one.
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

// Error returns the most specific text available: the backend message,
// then the HTTP status text, then a generic fallback.
func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Kind == KindStatus && http.StatusText(e.Status) != "":
		return fmt.Sprintf("%s (%d)", http.StatusText(e.Status), e.Status)
	case e.Kind == KindTransport && e.Err != nil:
		return fmt.Sprintf("network error: %v", e.Err)
	case e.Kind == KindShape:
		return "unexpected response from server"
	case e.Kind == KindRequest && e.Err != nil:
		return fmt.Sprintf("invalid request: %v", e.Err)
	default:
		return "request failed"
	}
}

func (e *Error) Unwrap() error { return e.Err }
