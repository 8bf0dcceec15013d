package uri

import (
	"strconv"
	"strings"

	"http-kit/lib/ds/stack"
	"http-kit/util/rule"

	"github.com/pkg/errors"
)

func containsCTL(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < ' ' || b == 0x7f {
			return true
		}
	}
	return false
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.2
func isSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.3
func isUnreserved(c byte) bool {
	if rule.IsAlpha(rune(c)) || rule.IsDigit(rune(c)) {
		return true
	}
	switch c {
	case '-', '.', '_', '~':
		return true
	}
	return false
}

func isReserved(c byte) bool {
	switch c {
	case ':', '/', '?', '#', '[', ']', '@':
		// gen-delims
		return true
	}
	return isSubDelim(c)
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-2.1
func isPercentEncoded(s string) bool {
	if len(s) != 3 {
		return false
	}

	return s[0] == '%' &&
		rule.IsHex(rune(s[1])) &&
		rule.IsHex(rune(s[2]))
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.3
func isAllPchar(s string) bool {
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if isUnreserved(c) || isSubDelim(c) || c == ':' || c == '@' {
			continue
		}
		if idx+2 < len(s) && isPercentEncoded(s[idx:idx+3]) {
			idx += 2
			continue
		}
		return false
	}

	return true
}

func assertValidScheme(scheme string) error {
	if len(scheme) == 0 {
		return errors.New("scheme is empty")
	}

	if !rule.IsAlpha(rune(scheme[0])) {
		return errors.New("scheme doesn't start with ALPHA")
	}

	for idx := 1; idx < len(scheme); idx++ {
		c := scheme[idx]
		switch {
		case rule.IsAlpha(rune(c)) || rule.IsDigit(rune(c)):
		case c == '+' || c == '-' || c == '.':
		default:
			return errors.New("scheme contains invalid byte")
		}
	}

	return nil
}

// AssertValidHost checks host against the RFC 3986 host rule:
// an IP literal in brackets, an IPv4 address, or a reg-name.
func AssertValidHost(host string) error {
	if host == "" {
		// Empty value for reg-name is valid.
		// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-3.2.2
		return nil
	}
	if len(host) > 255 {
		// Length is limited to 255.
		return errors.Errorf("host length exceeds limit(255): %d", len(host))
	}

	first, last := 0, len(host)-1
	if host[first] == '[' && host[last] == ']' {
		// This is IP Literal.
		host = host[first+1 : last]
		if isIPv6(host) || isIPvFuture(host) {
			return nil
		}

		return errors.New("host is expected to be IP Literal, but was malformed")
	}

	if isIPv4(host) || isValidRegName(host) {
		return nil
	}

	return errors.New("host is neither ipv4 addr nor valid reg-name")
}

func isIPv4(s string) bool {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return false
	}

	for _, octet := range octets {
		if len(octet) == 0 || len(octet) > 3 {
			return false
		}
		if len(octet) > 1 && octet[0] == '0' {
			// dec-octet has no leading zero.
			return false
		}

		n, err := strconv.ParseUint(octet, 10, 8)
		if err != nil || n > 255 {
			return false
		}
	}

	return true
}

// isIPv6 validates the textual IPv6 form: up to eight 16-bit hex
// groups, "::" compressing at most once, optionally ending with an
// embedded IPv4 address.
func isIPv6(s string) bool {
	if s == "::" {
		return true
	}

	halves := strings.Split(s, "::")
	if len(halves) > 2 {
		return false
	}
	compressed := len(halves) == 2

	groups := 0
	for i, half := range halves {
		if half == "" {
			continue
		}

		parts := strings.Split(half, ":")
		for j, part := range parts {
			if part == "" {
				return false
			}

			// An embedded IPv4 address may close the last half.
			if i == len(halves)-1 && j == len(parts)-1 && strings.Contains(part, ".") {
				if !isIPv4(part) {
					return false
				}
				groups += 2
				continue
			}

			if len(part) > 4 {
				return false
			}
			for _, c := range part {
				if !rule.IsHex(c) {
					return false
				}
			}
			groups++
		}
	}

	if compressed {
		return groups < 8
	}
	return groups == 8
}

func isValidUserInfo(s string) bool {
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if isUnreserved(c) || isSubDelim(c) || c == ':' {
			continue
		}
		if idx+2 < len(s) && isPercentEncoded(s[idx:idx+3]) {
			idx += 2
			continue
		}

		return false
	}

	return true
}

func isValidRegName(s string) bool {
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if isUnreserved(c) || isSubDelim(c) {
			continue
		}
		if idx+2 < len(s) && isPercentEncoded(s[idx:idx+3]) {
			idx += 2
			continue
		}

		return false
	}

	return true
}

func isIPvFuture(s string) bool {
	if len(s) < 4 {
		return false
	}

	// v8. vA. vF.
	if !(s[0] == 'v' && rule.IsHex(rune(s[1])) && s[2] == '.') {
		return false
	}

	for idx := 3; idx < len(s); idx++ {
		c := s[idx]
		if !(isUnreserved(c) || isSubDelim(c) || c == ':') {
			return false
		}
	}

	return true
}

func assertValidPath(path string, hasAuthority bool, isRelative bool) error {
	if hasAuthority {
		if !(path == "" || path[0] == '/') {
			return errors.New(
				"URI with authority must either be empty or start with '/'",
			)
		}
	} else if strings.HasPrefix(path, "//") {
		return errors.New("URI without authority should not start with '//'")
	}

	segments := strings.Split(path, "/")
	if isRelative && strings.ContainsRune(segments[0], ':') {
		return errors.New(
			"relative URI reference's first segment should not contain ':'",
		)
	}

	for _, segment := range segments {
		if !isAllPchar(segment) {
			return errors.New("path segment should be pchar")
		}
	}

	return nil
}

func isQueryFragValid(s string) bool {
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if isUnreserved(c) || isSubDelim(c) || c == ':' || c == '@' || c == '/' || c == '?' {
			continue
		}
		if idx+2 < len(s) && isPercentEncoded(s[idx:idx+3]) {
			idx += 2
			continue
		}
		return false
	}

	return true
}

// Reference: https://datatracker.ietf.org/doc/html/rfc3986#section-5.2.4
func removeDotSegments(path string) string {
	out := stack.New[string](0)

	for len(path) > 0 {
		var found bool
		// Leading "../" or "./" prefixes are dropped.
		if path, found = strings.CutPrefix(path, "../"); found {
			continue
		}
		if path, found = strings.CutPrefix(path, "./"); found {
			continue
		}

		// "/./" and a trailing "/." collapse to "/".
		if path, found = strings.CutPrefix(path, "/./"); found {
			path = "/" + path
			continue
		} else if path == "/." {
			path = "/"
			continue
		}

		// "/../" and a trailing "/.." also pop the previous segment.
		if path, found = strings.CutPrefix(path, "/../"); found {
			out.Pop()
			path = "/" + path
			continue
		} else if path == "/.." {
			out.Pop()
			path = "/"
			continue
		}

		if path == ".." || path == "." {
			break
		}

		// Move the next complete segment to the output.
		idx := strings.IndexByte(path[1:], '/') + 1
		if idx == 0 {
			idx = len(path)
		}
		out.Push(path[:idx])
		path = path[idx:]
	}

	return strings.Join(out.Data(), "")
}
