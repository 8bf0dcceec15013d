// Package cookie implements HTTP cookie records and the per-message
// jar, including signed and encrypted ("private") cookies.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc6265
package cookie

import (
	"strconv"
	"strings"
	"time"

	sliceutil "http-kit/lib/slice"
	"http-kit/util/rule"
	"http-kit/util/uri"

	"github.com/pkg/errors"
)

// SameSite is the SameSite attribute policy.
// Reference: https://datatracker.ietf.org/doc/html/draft-ietf-httpbis-rfc6265bis#section-5.2
type SameSite uint8

const (
	SameSiteDefault SameSite = iota // attribute omitted
	SameSiteLax
	SameSiteStrict
	SameSiteNone
)

func (s SameSite) String() string {
	switch s {
	case SameSiteLax:
		return "Lax"
	case SameSiteStrict:
		return "Strict"
	case SameSiteNone:
		return "None"
	}
	return ""
}

// Preferred HTTP date format (IMF-fixdate).
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.7
const expiresFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

type Cookie struct {
	Name  string
	Value string

	Domain string
	Path   string

	// Zero means no Expires attribute.
	Expires time.Time

	// MaxAge semantics: 0 means unset, negative means delete now
	// (serialized as Max-Age=0), positive is the lifetime in seconds.
	MaxAge int

	Secure   bool
	HttpOnly bool
	SameSite SameSite
}

// Valid checks the record against the Set-Cookie grammar.
func (c Cookie) Valid() error {
	if !rule.IsValidToken(c.Name) {
		return errors.Errorf("cookie name %q is not a valid token", c.Name)
	}
	if !rule.IsValidCookieValue(c.Value) {
		return errors.Errorf("cookie %q has a value with illegal octets", c.Name)
	}

	if c.Domain != "" {
		// A leading dot is legal and ignored.
		domain := strings.TrimPrefix(c.Domain, ".")
		if err := uri.AssertValidHost(domain); err != nil {
			return errors.Wrapf(err, "cookie %q has an invalid domain", c.Name)
		}
	}

	if c.Path != "" && !rule.IsValidCookiePath(c.Path) {
		return errors.Errorf("cookie %q has an invalid path", c.Name)
	}

	return nil
}

// Expired reports whether the cookie is past its lifetime at now.
func (c Cookie) Expired(now time.Time) bool {
	if c.MaxAge < 0 {
		return true
	}
	if !c.Expires.IsZero() && !c.Expires.After(now) {
		return true
	}
	return false
}

// String serializes the cookie as one Set-Cookie field value.
func (c Cookie) String() string {
	b := new(strings.Builder)
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)

	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}
	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}
	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(expiresFormat))
	}
	if c.MaxAge != 0 {
		maxAge := c.MaxAge
		if maxAge < 0 {
			maxAge = 0
		}
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(maxAge))
	}
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	if c.SameSite != SameSiteDefault {
		b.WriteString("; SameSite=")
		b.WriteString(c.SameSite.String())
	}

	return b.String()
}

// ParseRequest parses a request Cookie field value
// ("name1=value1; name2=value2") into cookie records.
//
// Parsing is permissive, per common practice: a malformed pair is
// skipped, never a failure for the whole field.
func ParseRequest(fieldValue string) []Cookie {
	pairs := strings.Split(fieldValue, ";")

	cookies := make([]Cookie, 0, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimFunc(pair, func(r rune) bool { return rule.IsWhitespace(r) })
		if pair == "" {
			continue
		}

		name, value, found := strings.Cut(pair, "=")
		if !found || !rule.IsValidToken(name) {
			continue
		}

		// Servers commonly emit values wrapped in double quotes.
		value = string(rule.Unquote([]byte(value)))
		if !rule.IsValidCookieValue(value) {
			continue
		}

		cookies = append(cookies, Cookie{Name: name, Value: value})
	}

	return cookies
}

// Names lists the cookie names, preserving the given order.
func Names(cookies []Cookie) []string {
	return sliceutil.Map(cookies, func(c Cookie) string { return c.Name })
}
