package cookie

import (
	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

// JarOptions configures a [Jar].
type JarOptions struct {
	// Secret enables SetSigned/SetPrivate and transparent decoding on
	// Get. Must be at least [MinSecretLen] bytes when set. Treated as
	// opaque key material: never logged, never echoed in errors.
	Secret []byte

	// Clock defaults to the real clock. Expiry checks go through it.
	Clock clock.Clock
}

// Jar holds the cookies observed on or to be attached to one message.
//
// A jar built from a request starts with that request's cookies;
// [Jar.Delta] then reports only what was added or changed afterwards,
// which is exactly the set of Set-Cookie fields a response must carry.
type Jar struct {
	clock clock.Clock
	ring  *keyring

	cookies map[string]Cookie
	order   []string

	// Names changed since construction, in first-change order.
	changed map[string]struct{}
	delta   []string
}

func NewJar(opts JarOptions) (*Jar, error) {
	j := &Jar{
		clock:   opts.Clock,
		cookies: make(map[string]Cookie),
		changed: make(map[string]struct{}),
	}
	if j.clock == nil {
		j.clock = clock.New()
	}

	if opts.Secret != nil {
		ring, err := newKeyring(opts.Secret)
		if err != nil {
			return nil, errors.Wrap(err, "configuring secret")
		}
		j.ring = ring
	}

	return j, nil
}

// JarFromRequest builds a jar from an incoming Cookie field value.
// The parsed cookies are the jar's baseline: they are visible through
// [Jar.Get] but absent from [Jar.Delta].
func JarFromRequest(fieldValue string, opts JarOptions) (*Jar, error) {
	j, err := NewJar(opts)
	if err != nil {
		return nil, err
	}

	for _, c := range ParseRequest(fieldValue) {
		j.store(c, false)
	}

	return j, nil
}

// Set inserts a plain cookie, replacing any cookie of the same name.
func (j *Jar) Set(c Cookie) error {
	if err := c.Valid(); err != nil {
		return err
	}

	j.store(c, true)
	return nil
}

// SetSigned inserts a cookie whose value is authenticated with the
// jar's secret. Tampering is detected on Get.
//
// Validation happens on the enveloped value: the plaintext may carry
// arbitrary bytes, since only the envelope reaches the wire.
func (j *Jar) SetSigned(c Cookie) error {
	if j.ring == nil {
		return ErrNoSecret
	}

	c.Value = j.ring.sign(c.Name, c.Value)
	if err := c.Valid(); err != nil {
		return err
	}

	j.store(c, true)
	return nil
}

// SetPrivate inserts a cookie whose value is encrypted and
// authenticated with the jar's secret.
//
// As with [Jar.SetSigned], the plaintext is unrestricted; validation
// applies to the enveloped value.
func (j *Jar) SetPrivate(c Cookie) error {
	if j.ring == nil {
		return ErrNoSecret
	}

	sealed, err := j.ring.seal(c.Name, c.Value)
	if err != nil {
		return errors.Wrap(err, "sealing cookie value")
	}
	c.Value = sealed

	if err := c.Valid(); err != nil {
		return err
	}

	j.store(c, true)
	return nil
}

// Get looks a cookie up by name across the plain, signed and private
// partitions. Signed and private values are decoded transparently; a
// cookie that fails verification (tampered, or sealed under another
// key) is reported absent, never as an error. Expired cookies are
// absent as well.
func (j *Jar) Get(name string) (Cookie, bool) {
	c, ok := j.cookies[name]
	if !ok {
		return Cookie{}, false
	}

	if c.Expired(j.clock.Now()) {
		return Cookie{}, false
	}

	if !isEnveloped(c.Value) {
		return c, true
	}

	if j.ring == nil {
		return Cookie{}, false
	}
	if value, ok := j.ring.verify(name, c.Value); ok {
		c.Value = value
		return c, true
	}
	if value, ok := j.ring.open(name, c.Value); ok {
		c.Value = value
		return c, true
	}

	return Cookie{}, false
}

// Names returns all cookie names in insertion order, including ones
// that would fail decoding. Useful for diagnostics and iteration.
func (j *Jar) Names() []string {
	out := make([]string, len(j.order))
	copy(out, j.order)
	return out
}

// Remove records the cookie's deletion: the change is emitted in
// [Jar.Delta] as an immediately-expiring cookie.
func (j *Jar) Remove(name string) {
	j.store(Cookie{Name: name, MaxAge: -1}, true)
}

// Delta returns one Set-Cookie field value per cookie added or changed
// since the jar was constructed, in first-change order.
func (j *Jar) Delta() []string {
	out := make([]string, 0, len(j.delta))
	for _, name := range j.delta {
		out = append(out, j.cookies[name].String())
	}
	return out
}

func (j *Jar) store(c Cookie, markChanged bool) {
	if _, exists := j.cookies[c.Name]; !exists {
		j.order = append(j.order, c.Name)
	}
	j.cookies[c.Name] = c

	if !markChanged {
		return
	}
	if _, done := j.changed[c.Name]; !done {
		j.changed[c.Name] = struct{}{}
		j.delta = append(j.delta, c.Name)
	}
}
