package cookie

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	_ "crypto/sha256"
	"encoding/base64"
	"strings"

	"http-kit/lib/algo/crypto/hkdf"

	"github.com/pkg/errors"
)

// MinSecretLen is the minimum acceptable secret size. Anything shorter
// undercuts the 256-bit strength of the derived keys.
const MinSecretLen = 32

var (
	ErrNoSecret    = errors.New("jar has no secret configured")
	ErrShortSecret = errors.Errorf("secret must be at least %d bytes", MinSecretLen)
)

// Value envelopes. The prefix tells [Jar.Get] which partition a stored
// value belongs to; everything after it is base64url without padding.
const (
	signedPrefix  = "s1."
	privatePrefix = "e1."
)

var b64 = base64.RawURLEncoding

// keyring holds the subkeys derived from a jar secret.
// The secret itself is not retained, and no method ever returns or
// formats key material.
type keyring struct {
	signKey []byte
	aead    cipher.AEAD
}

func newKeyring(secret []byte) (*keyring, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrShortSecret
	}

	salt := []byte("http-kit cookie keyring v1")

	signKey := hkdf.DeriveKey(crypto.SHA256, secret, salt, []byte("signing"), 32)
	encKey := hkdf.DeriveKey(crypto.SHA256, secret, salt, []byte("encryption"), 32)

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, errors.Wrap(err, "creating cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "creating aead")
	}

	return &keyring{signKey: signKey, aead: aead}, nil
}

// sign produces the signed envelope for a value: the value stays
// readable, the tag binds it to the cookie name.
func (k *keyring) sign(name, value string) string {
	tag := k.mac(name, value)

	b := new(strings.Builder)
	b.WriteString(signedPrefix)
	b.WriteString(b64.EncodeToString([]byte(value)))
	b.WriteByte('.')
	b.WriteString(b64.EncodeToString(tag))
	return b.String()
}

// verify opens a signed envelope. ok is false on any mismatch;
// the reason is deliberately not distinguished.
func (k *keyring) verify(name, envelope string) (value string, ok bool) {
	rest, found := strings.CutPrefix(envelope, signedPrefix)
	if !found {
		return "", false
	}

	rawValue, rawTag, found := strings.Cut(rest, ".")
	if !found {
		return "", false
	}

	decoded, err := b64.DecodeString(rawValue)
	if err != nil {
		return "", false
	}
	tag, err := b64.DecodeString(rawTag)
	if err != nil {
		return "", false
	}

	if !hmac.Equal(tag, k.mac(name, string(decoded))) {
		return "", false
	}

	return string(decoded), true
}

// seal produces the private envelope: the value is encrypted and
// authenticated, with the cookie name as associated data.
func (k *keyring) seal(name, value string) (string, error) {
	nonce := make([]byte, k.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "generating nonce")
	}

	sealed := k.aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return privatePrefix + b64.EncodeToString(sealed), nil
}

// open decrypts a private envelope. ok is false on any failure:
// wrong key, tampered data, or a foreign envelope.
func (k *keyring) open(name, envelope string) (value string, ok bool) {
	rest, found := strings.CutPrefix(envelope, privatePrefix)
	if !found {
		return "", false
	}

	sealed, err := b64.DecodeString(rest)
	if err != nil {
		return "", false
	}
	if len(sealed) < k.aead.NonceSize() {
		return "", false
	}

	nonce, ciphertext := sealed[:k.aead.NonceSize()], sealed[k.aead.NonceSize():]
	plain, err := k.aead.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return "", false
	}

	return string(plain), true
}

func (k *keyring) mac(name, value string) []byte {
	h := hmac.New(crypto.SHA256.New, k.signKey)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return h.Sum(nil)
}

// isEnveloped reports whether a stored value belongs to the signed or
// private partition.
func isEnveloped(value string) bool {
	return strings.HasPrefix(value, signedPrefix) ||
		strings.HasPrefix(value, privatePrefix)
}
