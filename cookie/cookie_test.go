package cookie

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCookieString(t *testing.T) {
	expiry := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	testcases := []struct {
		desc     string
		cookie   Cookie
		expected string
	}{
		{
			desc:     "name and value only",
			cookie:   Cookie{Name: "sid", Value: "abc123"},
			expected: "sid=abc123",
		},
		{
			desc: "all attributes",
			cookie: Cookie{
				Name:     "sid",
				Value:    "abc123",
				Domain:   "example.com",
				Path:     "/",
				Expires:  expiry,
				MaxAge:   3600,
				Secure:   true,
				HttpOnly: true,
				SameSite: SameSiteStrict,
			},
			expected: "sid=abc123; Domain=example.com; Path=/; " +
				"Expires=Thu, 28 Aug 2026 12:00:00 GMT; Max-Age=3600; " +
				"Secure; HttpOnly; SameSite=Strict",
		},
		{
			desc:     "deletion cookie",
			cookie:   Cookie{Name: "sid", MaxAge: -1},
			expected: "sid=; Max-Age=0",
		},
		{
			desc:     "samesite lax",
			cookie:   Cookie{Name: "a", Value: "b", SameSite: SameSiteLax},
			expected: "a=b; SameSite=Lax",
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.cookie.String())
		})
	}
}

func TestCookieValid(t *testing.T) {
	assert.NoError(t, Cookie{Name: "sid", Value: "abc"}.Valid())
	assert.NoError(t, Cookie{Name: "sid", Value: ""}.Valid())
	assert.NoError(t, Cookie{Name: "sid", Value: "a", Domain: ".example.com"}.Valid())
	assert.NoError(t, Cookie{Name: "sid", Value: "a", Path: "/a/b"}.Valid())

	assert.Error(t, Cookie{Name: "", Value: "a"}.Valid())
	assert.Error(t, Cookie{Name: "s id", Value: "a"}.Valid())
	assert.Error(t, Cookie{Name: "sid", Value: "a b"}.Valid())
	assert.Error(t, Cookie{Name: "sid", Value: "a;b"}.Valid())
	assert.Error(t, Cookie{Name: "sid", Value: "a", Domain: "bad domain"}.Valid())

	// A ';' in Path would smuggle extra attributes into the
	// serialized Set-Cookie value.
	assert.Error(t, Cookie{Name: "sid", Value: "v", Path: "/a; Secure; HttpOnly"}.Valid())
	assert.Error(t, Cookie{Name: "sid", Value: "v", Path: "/a\x7fb"}.Valid())
}

func TestCookieExpired(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	assert.False(t, Cookie{Name: "a"}.Expired(now))
	assert.False(t, Cookie{Name: "a", Expires: now.Add(time.Hour)}.Expired(now))
	assert.False(t, Cookie{Name: "a", MaxAge: 60}.Expired(now))

	assert.True(t, Cookie{Name: "a", Expires: now.Add(-time.Hour)}.Expired(now))
	assert.True(t, Cookie{Name: "a", Expires: now}.Expired(now))
	assert.True(t, Cookie{Name: "a", MaxAge: -1}.Expired(now))
}

func TestParseRequest(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected []Cookie
	}{
		{
			desc:  "two cookies",
			input: "a=1; b=2",
			expected: []Cookie{
				{Name: "a", Value: "1"},
				{Name: "b", Value: "2"},
			},
		},
		{
			desc:  "malformed pair skipped",
			input: "a=1; bad; c=3",
			expected: []Cookie{
				{Name: "a", Value: "1"},
				{Name: "c", Value: "3"},
			},
		},
		{
			desc:  "quoted value unwrapped",
			input: `a="quoted"`,
			expected: []Cookie{
				{Name: "a", Value: "quoted"},
			},
		},
		{
			desc:  "whitespace tolerated",
			input: "  a=1 ;b=2;  ",
			expected: []Cookie{
				{Name: "a", Value: "1"},
				{Name: "b", Value: "2"},
			},
		},
		{
			desc:  "illegal octets in value skipped",
			input: "a=1; b=two words; c=3",
			expected: []Cookie{
				{Name: "a", Value: "1"},
				{Name: "c", Value: "3"},
			},
		},
		{
			desc:  "name must be a token",
			input: "a b=1; c=2",
			expected: []Cookie{
				{Name: "c", Value: "2"},
			},
		},
		{
			desc:     "empty input",
			input:    "",
			expected: []Cookie{},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseRequest(tc.input))
		})
	}
}

func TestNames(t *testing.T) {
	cookies := []Cookie{{Name: "a"}, {Name: "b"}}
	assert.Equal(t, []string{"a", "b"}, Names(cookies))
}
