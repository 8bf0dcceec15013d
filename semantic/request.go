package semantic

import (
	"http-kit/cookie"
	"http-kit/util/uri"

	"github.com/pkg/errors"
)

type Request struct {
	Message

	Method Method
	URI    uri.URI
}

// NewRequest builds a request for the given target. The target is
// parsed and scheme-normalized; for absolute targets the Host field is
// derived from the authority.
func NewRequest(method Method, target string) (*Request, error) {
	u, err := uri.Parse(target)
	if err != nil {
		return nil, errors.Wrap(err, "parsing target")
	}

	request := Request{
		Message: newMessage(),
		Method:  method,
		URI:     normalizeURI(u),
	}

	if request.URI.Authority != nil {
		host := request.URI.Authority.Host
		if port := request.URI.Authority.Port; port != nil {
			host = uri.JoinHostPort(host, *port)
		}
		if err := request.Headers.Set("Host", host); err != nil {
			return nil, errors.Wrap(err, "setting Host")
		}
	}

	return &request, nil
}

// Host returns the Host field value, empty if unset.
func (r *Request) Host() string {
	v, _ := r.Headers.First("Host")
	return v
}

// Cookies builds a jar from the request's Cookie field. A request
// without one yields an empty jar; either way the jar's delta starts
// out empty.
func (r *Request) Cookies(opts cookie.JarOptions) (*cookie.Jar, error) {
	v, ok := r.Headers.First("Cookie")
	if !ok {
		return cookie.NewJar(opts)
	}

	return cookie.JarFromRequest(v, opts)
}

// normalizeURI applies http-specific normalization on top of what
// [uri.Parse] already did.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-4.2.3
func normalizeURI(u uri.URI) uri.URI {
	if u.Authority != nil && u.Authority.Port != nil {
		// The normal form omits the scheme's default port.
		if dp := defaultPort(u.Scheme); dp != 0 && *u.Authority.Port == dp {
			u.Authority.Port = nil
		}
	}

	if u.Authority != nil && u.Path == "" {
		// An empty path is equivalent to "/" outside of OPTIONS targets.
		u.Path = "/"
	}

	return u
}
