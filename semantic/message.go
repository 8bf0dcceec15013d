package semantic

import (
	"strconv"
	"time"

	"http-kit/body"
	"http-kit/header"
	"http-kit/mime"

	"github.com/pkg/errors"
)

// Message carries what requests and responses have in common: a
// version, a header block and an optional body. The body, once
// attached, is exclusively owned by the message.
type Message struct {
	Version Version
	Headers header.Headers
	Body    *body.Body
}

func newMessage() Message {
	return Message{
		Version: Version11,
		Headers: header.NewHeaders(),
	}
}

// SetBody attaches b and syncs the content headers from it:
// Content-Type from the body's mime, Content-Length from its length
// (removed when the length is unknown, signaling chunked framing to a
// downstream codec).
func (m *Message) SetBody(b *body.Body) error {
	if err := m.Headers.Set("Content-Type", b.Mime().String()); err != nil {
		return errors.Wrap(err, "setting Content-Type")
	}

	if l := b.Length(); l != nil {
		err := m.Headers.Set("Content-Length", strconv.FormatUint(uint64(*l), 10))
		if err != nil {
			return errors.Wrap(err, "setting Content-Length")
		}
	} else {
		m.Headers.Remove("Content-Length")
	}

	m.Body = b
	return nil
}

// ContentType parses the Content-Type field. A message without one
// reports the unknown-binary default, matching the body's own default.
func (m *Message) ContentType() (mime.Mime, error) {
	v, ok := m.Headers.First("Content-Type")
	if !ok {
		return mime.ByteStream, nil
	}

	parsed, err := mime.Parse(v)
	if err != nil {
		return mime.Mime{}, errors.Wrap(err, "parsing Content-Type")
	}

	return parsed, nil
}

// ContentLength parses the Content-Length field. nil means the field
// is absent.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-8.6
func (m *Message) ContentLength() (*uint, error) {
	v, ok := m.Headers.First("Content-Length")
	if !ok {
		return nil, nil
	}

	len64, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse Content-Length")
	}

	l := uint(len64)
	return &l, nil
}

// Date parses the Date field. The zero time means the field is absent.
func (m *Message) Date() (time.Time, error) {
	v, ok := m.Headers.First("Date")
	if !ok {
		return time.Time{}, nil
	}

	return ParseDate(v)
}
