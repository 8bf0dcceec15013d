package semantic

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Version is a protocol version: [Major, Minor].
type Version [2]uint

var (
	Version10 = Version{1, 0}
	Version11 = Version{1, 1}
)

// ParseVersion parses version text (e.g. "HTTP/1.1") into [Version].
func ParseVersion(s string) (Version, error) {
	rest, found := strings.CutPrefix(s, "HTTP/")
	if !found {
		return Version{}, errors.Errorf("version prefix not found: %s", s)
	}

	first, second, found := strings.Cut(rest, ".")
	if !found {
		return Version{}, errors.Errorf("dot separator not found on version: %s", s)
	}

	major, err1 := strconv.ParseUint(first, 10, 64)
	minor, err2 := strconv.ParseUint(second, 10, 64)
	if err1 != nil || err2 != nil {
		return Version{}, errors.Errorf("version is not convertible to int: %s", s)
	}

	return Version{uint(major), uint(minor)}, nil
}

func (ver Version) String() string {
	b := new(strings.Builder)
	b.WriteString("HTTP/")
	b.WriteString(strconv.FormatUint(uint64(ver[0]), 10))
	b.WriteByte('.')
	b.WriteString(strconv.FormatUint(uint64(ver[1]), 10))
	return b.String()
}
