// Package header implements the field-name to field-values multimap
// shared by requests, responses and trailers.
//
// Lookups are case-insensitive, values keep their per-name insertion
// order, and iteration yields names in first-insertion order so a
// downstream codec can serialize fields deterministically.
package header

import (
	sliceutil "http-kit/lib/slice"
	"http-kit/util/rule"

	"github.com/pkg/errors"
)

var (
	ErrInvalidFieldName  = errors.New("field name is not a valid token")
	ErrInvalidFieldValue = errors.New("field value contains illegal bytes")
)

type Headers struct {
	// Canonical names in first-insertion order.
	order []string

	entries map[string]*entry
}

type entry struct {
	// The case used at first insertion, kept for iteration.
	display string
	values  []string
}

// Field is one name with its ordered values, as yielded by [Headers.Fields].
type Field struct {
	Name   string
	Values []string
}

func NewHeaders() Headers {
	return Headers{entries: make(map[string]*entry)}
}

// Insert validates and appends value to the name's value list.
// The first insertion of a name fixes its display case.
func (h *Headers) Insert(name, value string) error {
	if err := h.validate(name, value); err != nil {
		return err
	}

	h.insert(name, value)
	return nil
}

// Set validates and replaces all values for the name with value.
func (h *Headers) Set(name, value string) error {
	if err := h.validate(name, value); err != nil {
		return err
	}

	if e, ok := h.entries[toCanonicalFieldName(name)]; ok {
		e.values = []string{value}
		return nil
	}

	h.insert(name, value)
	return nil
}

// Get returns the ordered values for the name.
func (h *Headers) Get(name string) (values []string, ok bool) {
	e, ok := h.entries[toCanonicalFieldName(name)]
	if !ok {
		return nil, false
	}

	values = make([]string, len(e.values))
	copy(values, e.values)
	return values, true
}

// First assumes the field is a singleton field and returns the first
// value. For list-based fields, use [Headers.Get].
func (h *Headers) First(name string) (value string, ok bool) {
	e, ok := h.entries[toCanonicalFieldName(name)]
	if !ok || len(e.values) == 0 {
		return "", false
	}
	return e.values[0], true
}

func (h *Headers) Has(name string) bool {
	_, ok := h.entries[toCanonicalFieldName(name)]
	return ok
}

// Remove deletes every value for the name and returns them.
func (h *Headers) Remove(name string) (values []string, ok bool) {
	key := toCanonicalFieldName(name)

	e, ok := h.entries[key]
	if !ok {
		return nil, false
	}

	delete(h.entries, key)
	h.order = sliceutil.Filter(h.order, func(k string) bool { return k != key })

	return e.values, true
}

// Fields yields (display-name, values) pairs in first-insertion order.
func (h *Headers) Fields() []Field {
	fields := make([]Field, 0, len(h.order))
	for _, key := range h.order {
		e := h.entries[key]

		values := make([]string, len(e.values))
		copy(values, e.values)

		fields = append(fields, Field{Name: e.display, Values: values})
	}

	return fields
}

// Len is the number of distinct field names.
func (h *Headers) Len() int { return len(h.order) }

func (h *Headers) Clone() Headers {
	clone := NewHeaders()
	for _, key := range h.order {
		e := h.entries[key]

		values := make([]string, len(e.values))
		copy(values, e.values)

		clone.order = append(clone.order, key)
		clone.entries[key] = &entry{display: e.display, values: values}
	}

	return clone
}

func (h *Headers) validate(name, value string) error {
	if !rule.IsValidToken(name) {
		return errors.Wrapf(ErrInvalidFieldName, "%q", name)
	}
	if !rule.IsValidFieldValue(value) {
		// The value itself is deliberately not echoed; it may be large
		// or carry the very bytes we reject.
		return errors.Wrapf(ErrInvalidFieldValue, "field %q", name)
	}
	return nil
}

func (h *Headers) insert(name, value string) {
	if h.entries == nil {
		h.entries = make(map[string]*entry)
	}

	key := toCanonicalFieldName(name)

	e, ok := h.entries[key]
	if !ok {
		e = &entry{display: name}
		h.entries[key] = e
		h.order = append(h.order, key)
	}

	e.values = append(e.values, value)
}

// This only works for valid token.
func toCanonicalFieldName(s string) string {
	const capitalDiff = 'a' - 'A'
	b := []byte(s)
	upper := true
	for i, c := range b {
		if upper && 'a' <= c && c <= 'z' {
			c -= capitalDiff
		} else if !upper && 'A' <= c && c <= 'Z' {
			c += capitalDiff
		}
		b[i] = c
		upper = c == '-'
	}
	return string(b)
}
