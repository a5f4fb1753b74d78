// Package normalize turns the backend's loosely shaped JSON responses into
// canonical values. Nothing here returns an error: anything it cannot read
// degrades to an empty page or a failed acknowledgement.
package normalize

import (
	"bytes"
	"encoding/json"
)

// Policy decides what an absent success flag means.
type Policy int

const (
	// Lenient treats a missing flag as success. Used for list reads.
	Lenient Policy = iota
	// Strict treats a missing flag as failure. Used for mutations.
	Strict
)

// Page is a normalized list response.
type Page struct {
	OK      bool
	Items   []Record
	Total   int
	Message string
	Shape   string
}

// Ack is a normalized mutation response.
type Ack struct {
	OK      bool
	Message string
	Result  Record
	Shape   string
}

// Shape is one recognized response layout. Shapes are tried in order and
// the first whose Match accepts the document wins.
type Shape struct {
	Name  string
	Match func(doc any) bool
	Items func(doc any) []Record
	Meta  func(doc any) Record
}

var (
	successFields = []string{"is_success", "isSuccess"}
	messageFields = []string{"message", "detail", "error", "msg"}
	totalFields   = []string{"pagination.total_count", "pagination.total", "total"}
)

// Shapes lists the known layouts, most specific first.
var Shapes = []Shape{
	{
		Name: "envelope",
		Match: func(doc any) bool {
			obj, ok := asObject(doc)
			if !ok {
				return false
			}
			for _, k := range []string{"result", "is_success", "isSuccess", "pagination"} {
				if _, has := obj[k]; has {
					return true
				}
			}
			return false
		},
		Items: func(doc any) []Record {
			obj, _ := asObject(doc)
			return recordsOf(obj["result"])
		},
		Meta: func(doc any) Record {
			obj, _ := asObject(doc)
			return Record(obj)
		},
	},
	{
		Name: "data-envelope",
		Match: func(doc any) bool {
			obj, ok := asObject(doc)
			if !ok {
				return false
			}
			_, isList := obj["data"].([]any)
			return isList
		},
		Items: func(doc any) []Record {
			obj, _ := asObject(doc)
			return recordsOf(obj["data"])
		},
		Meta: func(doc any) Record {
			obj, _ := asObject(doc)
			return Record(obj)
		},
	},
	{
		Name: "bare-array",
		Match: func(doc any) bool {
			_, ok := doc.([]any)
			return ok
		},
		Items: recordsOf,
		Meta:  func(any) Record { return nil },
	},
	{
		Name: "object",
		Match: func(doc any) bool {
			_, ok := asObject(doc)
			return ok
		},
		Items: func(any) []Record { return nil },
		Meta: func(doc any) Record {
			obj, _ := asObject(doc)
			return Record(obj)
		},
	},
}

// Decode parses a body into a generic document, keeping numbers exact.
func Decode(body []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, false
	}
	return doc, true
}

// ListPage normalizes a list response. A missing success flag is success.
func ListPage(body []byte) Page {
	return ParsePage(body, Lenient)
}

// ParsePage normalizes a list response under the given policy.
func ParsePage(body []byte, policy Policy) Page {
	doc, ok := Decode(body)
	if !ok {
		return Page{OK: false, Items: []Record{}, Shape: "invalid"}
	}
	shape, ok := match(doc)
	if !ok {
		return Page{OK: policy == Lenient, Items: []Record{}, Shape: "unknown"}
	}

	items := shape.Items(doc)
	if items == nil {
		items = []Record{}
	}
	meta := shape.Meta(doc)
	page := Page{
		OK:      success(meta, policy),
		Items:   items,
		Total:   len(items),
		Message: meta.String(messageFields...),
		Shape:   shape.Name,
	}
	if total, ok := totalOf(meta); ok {
		page.Total = total
	}
	return page
}

// Mutation normalizes a create, update or status response. A missing
// success flag is failure.
func Mutation(body []byte) Ack {
	return ParseAck(body, Strict)
}

// ParseAck normalizes a mutation response under the given policy.
func ParseAck(body []byte, policy Policy) Ack {
	doc, ok := Decode(body)
	if !ok {
		return Ack{OK: false, Shape: "invalid"}
	}
	shape, ok := match(doc)
	if !ok {
		return Ack{OK: policy == Lenient, Shape: "unknown"}
	}
	meta := shape.Meta(doc)
	return Ack{
		OK:      success(meta, policy),
		Message: meta.String(messageFields...),
		Result:  meta.Object("result"),
		Shape:   shape.Name,
	}
}

// Message extracts a human readable message from any body.
func Message(body []byte) string {
	doc, ok := Decode(body)
	if !ok {
		return ""
	}
	obj, ok := asObject(doc)
	if !ok {
		return ""
	}
	return Record(obj).String(messageFields...)
}

func match(doc any) (Shape, bool) {
	for _, s := range Shapes {
		if s.Match(doc) {
			return s, true
		}
	}
	return Shape{}, false
}

func success(meta Record, policy Policy) bool {
	if v, ok := meta.Bool(successFields...); ok {
		return v
	}
	return policy == Lenient
}

func totalOf(meta Record) (int, bool) {
	for _, p := range totalFields {
		v, ok := meta.Lookup(p)
		if !ok {
			continue
		}
		if n, ok := asInt(v); ok && n >= 0 {
			return int(n), true
		}
	}
	return 0, false
}

func recordsOf(v any) []Record {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(list))
	for _, item := range list {
		if obj, ok := asObject(item); ok {
			out = append(out, Record(obj))
		}
	}
	return out
}
