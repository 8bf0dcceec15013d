// Package mime implements parsing and formatting of IANA media types
// as they appear in Content-Type field values.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-8.3.1
package mime

import (
	"strings"

	"http-kit/util/rule"
)

// Mime is a parsed media type: "basetype/subtype" plus ordered parameters.
//
// The zero value is not a valid media type; construct one with [New],
// [Parse] or one of the package constants.
type Mime struct {
	basetype string
	subtype  string

	// Insertion-ordered. Names are stored lower-case, values verbatim.
	params []Param
}

type Param struct{ Name, Value string }

// New creates a media type from its two components.
// Both must be non-empty tokens; they are stored lower-cased.
func New(basetype, subtype string) (Mime, error) {
	if !rule.IsValidToken(basetype) {
		return Mime{}, errInvalid(posBasetype)
	}
	if !rule.IsValidToken(subtype) {
		return Mime{}, errInvalid(posSubtype)
	}

	return Mime{
		basetype: strings.ToLower(basetype),
		subtype:  strings.ToLower(subtype),
	}, nil
}

func (m Mime) Basetype() string { return m.basetype }
func (m Mime) Subtype() string  { return m.subtype }

// Essence is the "basetype/subtype" form without parameters.
func (m Mime) Essence() string { return m.basetype + "/" + m.subtype }

// Param looks a parameter up by name, case-insensitively.
func (m Mime) Param(name string) (value string, ok bool) {
	name = strings.ToLower(name)
	for _, p := range m.params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Params returns the parameters in insertion order.
func (m Mime) Params() []Param {
	out := make([]Param, len(m.params))
	copy(out, m.params)
	return out
}

// WithParam returns a copy of m with the parameter set.
// An existing parameter of the same name is replaced in place,
// otherwise the parameter is appended.
func (m Mime) WithParam(name, value string) (Mime, error) {
	if !rule.IsValidToken(name) {
		return Mime{}, errInvalid(posParamName)
	}
	if !rule.IsValidFieldValue(value) {
		return Mime{}, errInvalid(posParamValue)
	}
	name = strings.ToLower(name)

	params := m.Params()
	for i, p := range params {
		if p.Name == name {
			params[i].Value = value
			m.params = params
			return m, nil
		}
	}

	m.params = append(params, Param{Name: name, Value: value})
	return m, nil
}

func (m Mime) Charset() (string, bool) { return m.Param("charset") }

func (m Mime) WithCharset(charset string) (Mime, error) {
	return m.WithParam("charset", charset)
}

// String reconstructs the canonical wire form: the essence followed by
// "; name=value" for each parameter in insertion order. Values that are
// not tokens are rendered as quoted-strings.
func (m Mime) String() string {
	b := new(strings.Builder)
	b.WriteString(m.Essence())

	for _, p := range m.params {
		b.WriteString("; ")
		b.WriteString(p.Name)
		b.WriteByte('=')

		if rule.IsValidToken(p.Value) {
			b.WriteString(p.Value)
		} else {
			b.WriteString(rule.Quote(p.Value))
		}
	}

	return b.String()
}

// Equal reports whether two media types are the same type with the
// same parameter set. Parameter order does not matter.
func (m Mime) Equal(other Mime) bool {
	if m.basetype != other.basetype || m.subtype != other.subtype {
		return false
	}
	if len(m.params) != len(other.params) {
		return false
	}

	for _, p := range m.params {
		v, ok := other.Param(p.Name)
		if !ok || v != p.Value {
			return false
		}
	}

	return true
}
