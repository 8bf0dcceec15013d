package rule

import (
	"bytes"
	"strings"
)

// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.2-2
func IsValidToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if IsTokenChar(c) {
			continue
		}
		return false
	}

	return true
}

func IsTokenChar(c rune) bool {
	if IsAlpha(c) || IsDigit(c) {
		return true
	}

	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+',
		'-', '.', '^', '_', '`', '|', '~':
		return true
	}

	return false
}

// IsValidFieldValue reports whether s is a legal field value:
// visible ASCII, SP, HTAB and obs-text. Bare CR, LF and NUL are the
// bytes that enable request smuggling, so they are rejected outright.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.5-2
func IsValidFieldValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == SP || c == HTAB {
			continue
		}
		if c < 0x21 || c == DEL {
			// CTL bytes (includes CR, LF, NUL).
			return false
		}
	}

	return true
}

// IsValidCookieValue reports whether s consists of cookie-octets.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-4.1.1
func IsValidCookieValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == 0x21,
			0x23 <= c && c <= 0x2B,
			0x2D <= c && c <= 0x3A,
			0x3C <= c && c <= 0x5B,
			0x5D <= c && c <= 0x7E:
		default:
			return false
		}
	}

	return true
}

// IsValidCookiePath reports whether s is a legal cookie path value:
// printable ASCII without ';', which would terminate the attribute.
// Reference: https://datatracker.ietf.org/doc/html/rfc6265#section-4.1.1
func IsValidCookiePath(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < SP || c >= DEL || c == ';' {
			return false
		}
	}

	return true
}

// Unquote unquotes token if it was quoted with double quotes.
// If quoted string includes escaped character, it will be un-escaped.
func Unquote(token []byte) []byte {
	quoted := false
	if len(token) >= 2 {
		// Unquote the token if it's wrapped with quotes.
		first, last := 0, len(token)-1
		if token[first] == '"' && token[last] == '"' {
			token = token[first+1 : last]
			quoted = true
		}
	}

	if !quoted {
		return bytes.Clone(token)
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(token)))
	for idx := 0; idx < len(token); idx++ {
		c := token[idx]
		if c == '\\' && idx+1 < len(token) {
			// Escaped character inside quote.
			// Unescape it and write it away.
			idx++
			c = token[idx]
		}
		buf.WriteByte(c)
	}

	return buf.Bytes()
}

// Quote wraps s in double quotes, escaping '"' and '\'.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.4
func Quote(s string) string {
	b := new(strings.Builder)
	b.Grow(len(s) + 2)

	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')

	return b.String()
}
