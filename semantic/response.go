package semantic

import (
	"http-kit/cookie"
	"http-kit/semantic/status"

	"github.com/pkg/errors"
)

type Response struct {
	Message

	Status status.Status
}

// NewResponse builds a response with the given status code. Codes
// outside the registry get an empty reason phrase.
func NewResponse(code uint) *Response {
	s, _ := status.FromCode(code)

	return &Response{
		Message: newMessage(),
		Status:  s,
	}
}

// ApplyCookies appends one Set-Cookie field per cookie the jar added
// or changed, in first-change order.
func (r *Response) ApplyCookies(jar *cookie.Jar) error {
	for _, v := range jar.Delta() {
		if err := r.Headers.Insert("Set-Cookie", v); err != nil {
			return errors.Wrap(err, "inserting Set-Cookie")
		}
	}

	return nil
}
