package cookie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyring(t *testing.T) {
	_, err := newKeyring(testSecret('k'))
	assert.NoError(t, err)

	_, err = newKeyring([]byte("short"))
	assert.ErrorIs(t, err, ErrShortSecret)
}

func TestKeyringDerivesDistinctKeys(t *testing.T) {
	k1, err := newKeyring(testSecret('1'))
	require.NoError(t, err)
	k2, err := newKeyring(testSecret('2'))
	require.NoError(t, err)

	assert.NotEqual(t, k1.signKey, k2.signKey)
}

func TestSignVerify(t *testing.T) {
	k, err := newKeyring(testSecret('k'))
	require.NoError(t, err)

	env := k.sign("name", "value")
	assert.True(t, isEnveloped(env))

	value, ok := k.verify("name", env)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	// Bound to the name: the same envelope under another name fails.
	_, ok = k.verify("other", env)
	assert.False(t, ok)

	// Not a signed envelope at all.
	_, ok = k.verify("name", "plain-value")
	assert.False(t, ok)
}

func TestSealOpen(t *testing.T) {
	k, err := newKeyring(testSecret('k'))
	require.NoError(t, err)

	env, err := k.seal("name", "value")
	require.NoError(t, err)
	assert.True(t, isEnveloped(env))
	assert.NotContains(t, env, "value")

	value, ok := k.open("name", env)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	// The name is associated data.
	_, ok = k.open("other", env)
	assert.False(t, ok)

	// Nonces are random: sealing twice yields distinct envelopes.
	env2, err := k.seal("name", "value")
	require.NoError(t, err)
	assert.NotEqual(t, env, env2)
}

func TestOpenRejectsGarbage(t *testing.T) {
	k, err := newKeyring(testSecret('k'))
	require.NoError(t, err)

	_, ok := k.open("name", privatePrefix+"!!!not-base64")
	assert.False(t, ok)

	_, ok = k.open("name", privatePrefix+"QUFB") // too short for a nonce
	assert.False(t, ok)
}

func TestIsEnveloped(t *testing.T) {
	assert.True(t, isEnveloped("s1.abc.def"))
	assert.True(t, isEnveloped("e1.abc"))
	assert.False(t, isEnveloped("plain"))
	assert.False(t, isEnveloped("s2.abc"))
}
