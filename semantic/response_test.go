package semantic

import (
	"testing"

	"http-kit/cookie"
	"http-kit/semantic/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResponse(t *testing.T) {
	r := NewResponse(200)
	assert.Equal(t, status.OK, r.Status)
	assert.Equal(t, Version11, r.Version)

	// Unregistered codes keep the code, lose the phrase.
	r = NewResponse(599)
	assert.Equal(t, uint(599), r.Status.Code)
	assert.Equal(t, "", r.Status.ReasonPhrase)
}

func TestResponseApplyCookies(t *testing.T) {
	jar, err := cookie.NewJar(cookie.JarOptions{})
	require.NoError(t, err)

	require.NoError(t, jar.Set(cookie.Cookie{Name: "sid", Value: "abc", HttpOnly: true}))
	require.NoError(t, jar.Set(cookie.Cookie{Name: "lang", Value: "en"}))

	r := NewResponse(200)
	require.NoError(t, r.ApplyCookies(jar))

	values, ok := r.Headers.Get("Set-Cookie")
	require.True(t, ok)
	assert.Equal(t, []string{
		"sid=abc; HttpOnly",
		"lang=en",
	}, values)
}

func TestResponseApplyCookiesBaselineExcluded(t *testing.T) {
	jar, err := cookie.JarFromRequest("seen=1", cookie.JarOptions{})
	require.NoError(t, err)

	r := NewResponse(200)
	require.NoError(t, r.ApplyCookies(jar))

	assert.False(t, r.Headers.Has("Set-Cookie"))
}
