package semantic

import (
	"strings"

	"http-kit/header"

	"github.com/pkg/errors"
)

var ErrForbiddenTrailerField = errors.New("field is not allowed in trailers")

// Fields necessary for message framing, routing, authentication,
// request modifiers, response control data or content processing must
// not appear in a trailer section.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-6.5.1
var forbiddenTrailerFields = map[string]struct{}{
	// Framing and routing.
	"content-length":    {},
	"transfer-encoding": {},
	"trailer":           {},
	"host":              {},
	// Authentication and state.
	"authorization":       {},
	"proxy-authenticate":  {},
	"proxy-authorization": {},
	"www-authenticate":    {},
	"cookie":              {},
	"set-cookie":          {},
	// Request modifiers.
	"cache-control": {},
	"expect":        {},
	"max-forwards":  {},
	"pragma":        {},
	"range":         {},
	"te":            {},
	// Response control data.
	"age":         {},
	"date":        {},
	"expires":     {},
	"location":    {},
	"retry-after": {},
	"vary":        {},
	// Content processing.
	"content-encoding": {},
	"content-type":     {},
	"content-range":    {},
}

// Trailers is the header block a message may carry after its body.
// It enforces the trailer restrictions on top of the usual field
// syntax validation.
type Trailers struct {
	fields header.Headers
}

func NewTrailers() Trailers {
	return Trailers{fields: header.NewHeaders()}
}

func (t *Trailers) Insert(name, value string) error {
	if _, forbidden := forbiddenTrailerFields[strings.ToLower(name)]; forbidden {
		return errors.Wrapf(ErrForbiddenTrailerField, "inserting %q", name)
	}

	return t.fields.Insert(name, value)
}

func (t *Trailers) Get(name string) (values []string, ok bool) {
	return t.fields.Get(name)
}

func (t *Trailers) Fields() []header.Field { return t.fields.Fields() }

func (t *Trailers) Len() int { return t.fields.Len() }
