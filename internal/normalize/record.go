package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one decoded JSON object from the backend. Lookups take dotted
// paths ("city.state.country.name") and never fail: a missing or mistyped
// value reads as the zero value.
type Record map[string]any

// Lookup walks a dotted path through nested objects.
func (r Record) Lookup(path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}
	var cur any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// String returns the first path holding a non-empty string or number.
// Objects and arrays are skipped so "city" falls through to "city.name"
// when the backend nests the city.
func (r Record) String(paths ...string) string {
	for _, p := range paths {
		v, ok := r.Lookup(p)
		if !ok {
			continue
		}
		if s, ok := scalarString(v); ok && s != "" {
			return s
		}
	}
	return ""
}

// ID returns the first path holding a positive integer. Numeric strings are
// accepted; non-numeric codes such as "city_00001" are skipped.
func (r Record) ID(paths ...string) int64 {
	for _, p := range paths {
		v, ok := r.Lookup(p)
		if !ok {
			continue
		}
		if n, ok := asInt(v); ok && n > 0 {
			return n
		}
	}
	return 0
}

// Float returns the first path holding a number or numeric string.
func (r Record) Float(paths ...string) float64 {
	f, _ := r.FloatOK(paths...)
	return f
}

// FloatOK is Float with a presence flag.
func (r Record) FloatOK(paths ...string) (float64, bool) {
	for _, p := range paths {
		v, ok := r.Lookup(p)
		if !ok {
			continue
		}
		if f, ok := asFloat(v); ok {
			return f, true
		}
	}
	return 0, false
}

// Bool returns the first path holding a boolean, with a presence flag.
func (r Record) Bool(paths ...string) (bool, bool) {
	for _, p := range paths {
		v, ok := r.Lookup(p)
		if !ok {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
				return parsed, true
			}
		}
	}
	return false, false
}

// Strings returns the first path holding an array, keeping its scalar
// entries. A comma separated string is split.
func (r Record) Strings(paths ...string) []string {
	for _, p := range paths {
		v, ok := r.Lookup(p)
		if !ok {
			continue
		}
		switch list := v.(type) {
		case []any:
			out := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := scalarString(item); ok && s != "" {
					out = append(out, s)
				}
			}
			return out
		case string:
			var out []string
			for _, part := range strings.Split(list, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
			return out
		}
	}
	return nil
}

// Object returns the nested object at path, or nil.
func (r Record) Object(path string) Record {
	v, ok := r.Lookup(path)
	if !ok {
		return nil
	}
	if obj, ok := asObject(v); ok {
		return Record(obj)
	}
	return nil
}

// Raw re-encodes the value at path.
func (r Record) Raw(path string) json.RawMessage {
	v, ok := r.Lookup(path)
	if !ok {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case Record:
		return obj, true
	}
	return nil, false
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
			return int64(f), true
		}
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
