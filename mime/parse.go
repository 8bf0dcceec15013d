package mime

import (
	"strings"

	"http-kit/util/rule"

	"github.com/pkg/errors"
)

// The grammar positions a parse failure can point at. The exact byte
// offset is deliberately not part of the error contract.
const (
	posBasetype   = "basetype"
	posSubtype    = "subtype"
	posParamName  = "parameter name"
	posParamValue = "parameter value"
)

func errInvalid(pos string) error {
	return errors.Errorf("media type: invalid %s", pos)
}

// Parse parses a media type string such as
// "text/html; charset=utf-8" into a [Mime].
//
// Reference: https://mimesniff.spec.whatwg.org/#parsing-a-mime-type
func Parse(s string) (Mime, error) {
	s = strings.TrimFunc(s, func(r rune) bool { return rule.IsWhitespace(r) })

	essence, paramsRaw, _ := strings.Cut(s, ";")

	basetype, subtype, found := strings.Cut(essence, "/")
	if !found {
		return Mime{}, errors.New("media type: missing '/' between type and subtype")
	}

	m, err := New(basetype, subtype)
	if err != nil {
		return Mime{}, err
	}

	m.params, err = parseParams(paramsRaw)
	if err != nil {
		return Mime{}, err
	}

	return m, nil
}

func parseParams(raw string) ([]Param, error) {
	var params []Param

	for _, part := range splitParams(raw) {
		part = strings.TrimFunc(part, func(r rune) bool { return rule.IsWhitespace(r) })
		if part == "" {
			// Tolerate a trailing or doubled ';'.
			continue
		}

		name, value, found := strings.Cut(part, "=")
		if !found {
			return nil, errInvalid(posParamName)
		}

		if !rule.IsValidToken(name) {
			return nil, errInvalid(posParamName)
		}
		name = strings.ToLower(name)

		unquoted := string(rule.Unquote([]byte(value)))
		if !rule.IsValidFieldValue(unquoted) {
			return nil, errInvalid(posParamValue)
		}
		if unquoted == value && !rule.IsValidToken(value) && value != "" {
			// Not a quoted-string, so it must be a bare token.
			return nil, errInvalid(posParamValue)
		}

		if _, exists := lookup(params, name); exists {
			// First occurrence wins.
			continue
		}

		params = append(params, Param{Name: name, Value: unquoted})
	}

	return params, nil
}

func lookup(params []Param, name string) (string, bool) {
	for _, p := range params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// splitParams splits on ';', keeping ';' inside quoted-strings intact.
func splitParams(raw string) []string {
	parts := make([]string, 0, 2)
	buf := new(strings.Builder)

	quoted, escaped := false, false
	for i := 0; i < len(raw); i++ {
		c := raw[i]

		switch {
		case escaped:
			escaped = false
		case c == '\\' && quoted:
			escaped = true
		case c == '"':
			quoted = !quoted
		case c == ';' && !quoted:
			parts = append(parts, buf.String())
			buf.Reset()
			continue
		}

		buf.WriteByte(c)
	}

	if buf.Len() > 0 {
		parts = append(parts, buf.String())
	}

	return parts
}
