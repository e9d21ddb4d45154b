// Package fields looks up values in loosely shaped JSON documents decoded
// into map[string]any. Paths are dot separated ("data.messages.key.id") and
// lookups walk candidate paths in the order given, returning the first hit.
package fields

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Lookup resolves a single dot separated path.
func Lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, Present(cur)
}

// Present reports whether v carries a value. Nil, empty strings and false are
// absent; numbers (zero included), maps and slices are present.
func Present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	default:
		return true
	}
}

// First returns the first present value and the path it was found at.
func First(doc map[string]any, paths ...string) (any, string, bool) {
	for _, path := range paths {
		if v, ok := Lookup(doc, path); ok {
			return v, path, true
		}
	}
	return nil, "", false
}

// FirstString is First restricted to scalar values that render as a string.
// Candidates holding maps, slices or booleans are skipped.
func FirstString(doc map[string]any, paths ...string) (string, bool) {
	for _, path := range paths {
		v, ok := Lookup(doc, path)
		if !ok {
			continue
		}
		if s, ok := Stringify(v); ok {
			return s, true
		}
	}
	return "", false
}

// Has reports whether any of the paths is present.
func Has(doc map[string]any, paths ...string) bool {
	_, _, ok := First(doc, paths...)
	return ok
}

// Stringify renders strings and numbers. Other kinds return false.
func Stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// Map returns the nested object at path, if any.
func Map(doc map[string]any, path string) (map[string]any, bool) {
	v, ok := Lookup(doc, path)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}
