// Package body implements the single-consumption payload attached to
// requests, responses and trailers.
//
// A Body abstracts one of a closed set of byte sources (buffer, string,
// file, stream) behind an [io.Reader]. Blocking behavior belongs
// entirely to the underlying source; this package adds no waiting and
// no concurrency of its own.
package body

import (
	"bytes"
	"io"
	"io/fs"
	"strings"

	iolib "http-kit/lib/io"
	"http-kit/mime"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"
)

var (
	// ErrBodyConsumed is returned on any read after the body has been
	// fully drained. Double consumption is a bug on the caller's side
	// and must surface immediately instead of reading as empty.
	ErrBodyConsumed = errors.New("body already consumed")

	// ErrSizeExceeded is returned by [Body.ReadAll] when the source
	// produces more bytes than the configured limit.
	ErrSizeExceeded = errors.New("body exceeds size limit")
)

// SourceKind is the closed set of byte sources a [Body] can wrap.
type SourceKind uint8

const (
	SourceBuffer SourceKind = iota
	SourceString
	SourceFile
	SourceStream
)

func (k SourceKind) String() string {
	switch k {
	case SourceBuffer:
		return "buffer"
	case SourceString:
		return "string"
	case SourceFile:
		return "file"
	case SourceStream:
		return "stream"
	}
	return "unknown"
}

type Body struct {
	src  io.Reader
	kind SourceKind

	// nil means unknown: the consumer must not assume a fixed size
	// (downstream codecs switch to chunked framing).
	length *uint

	mime mime.Mime

	consumed bool
}

// Empty creates a zero-length body.
func Empty() *Body {
	length := uint(0)
	return &Body{
		src:    bytes.NewReader(nil),
		kind:   SourceBuffer,
		length: &length,
		mime:   mime.ByteStream,
	}
}

// FromBytes creates a body over b. The length is known exactly.
// b is not copied; the caller hands over ownership.
func FromBytes(b []byte) *Body {
	length := uint(len(b))
	return &Body{
		src:    bytes.NewReader(b),
		kind:   SourceBuffer,
		length: &length,
		mime:   mime.ByteStream,
	}
}

// FromString creates a body over s, typed text/plain;charset=utf-8.
func FromString(s string) *Body {
	length := uint(len(s))
	return &Body{
		src:    strings.NewReader(s),
		kind:   SourceString,
		length: &length,
		mime:   mime.Plain,
	}
}

// FromReader creates a body over an arbitrary streaming source.
// The length is unknown; set it with [Body.SetLength] if the caller
// knows it out-of-band (e.g. from a Content-Length it read itself).
func FromReader(r io.Reader) *Body {
	return &Body{
		src:  r,
		kind: SourceStream,
		mime: mime.ByteStream,
	}
}

// FromReaderN creates a body over a streaming source whose length is
// known out-of-band (e.g. a declared Content-Length). Reads never go
// past n bytes, so the source can safely be a shared connection.
func FromReaderN(r io.Reader, n uint) *Body {
	return &Body{
		src:    iolib.LimitReader(r, n),
		kind:   SourceStream,
		length: &n,
		mime:   mime.ByteStream,
	}
}

// FromFile creates a body over an open file handle.
//
// The length is taken from Stat when available. The content type is
// detected from a bounded look-ahead of the file's first bytes; the
// peeked prefix stays buffered, so consumption still sees every byte.
// An inconclusive sniff falls back to application/octet-stream.
func FromFile(f fs.File) (*Body, error) {
	b := &Body{
		kind: SourceFile,
		mime: mime.ByteStream,
	}

	if info, err := f.Stat(); err == nil && !info.IsDir() {
		length := uint(info.Size())
		b.length = &length
	}

	pr := iolib.NewPeekReader(f)
	b.src = pr

	head, err := pr.Peek(mime.SniffLen)
	if err != nil {
		return nil, errors.Wrap(err, "sniffing file content")
	}
	if m, ok := mime.Sniff(head); ok {
		b.mime = m
	}

	return b, nil
}

func (b *Body) Kind() SourceKind { return b.kind }

// Length returns the body length in bytes, or nil if unknown.
func (b *Body) Length() *uint {
	if b.length == nil {
		return nil
	}
	length := *b.length
	return &length
}

func (b *Body) SetLength(n uint) { b.length = &n }

func (b *Body) Mime() mime.Mime     { return b.mime }
func (b *Body) SetMime(m mime.Mime) { b.mime = m }

func (b *Body) Consumed() bool { return b.consumed }

// Read pulls bytes from the underlying source in source order.
// It may block until the source has bytes, exactly as the source's own
// Read would. Reaching end-of-data flips the body to consumed; any
// later Read fails with [ErrBodyConsumed].
//
// An abandoned partial read leaves the body readable: undelivered
// bytes (including any sniff look-ahead) stay queued for the next Read.
func (b *Body) Read(p []byte) (n int, err error) {
	if b.consumed {
		return 0, ErrBodyConsumed
	}

	n, err = b.src.Read(p)
	if err == io.EOF {
		b.consumed = true
	}
	return n, err
}

// ReadAll drains the body into an owned buffer.
//
// limit is a hard cap on the materialized size; a source that produces
// more fails with [ErrSizeExceeded] and no partial result, leaving the
// body consumed. The cap is mandatory: callers must pick a bound
// appropriate for their memory budget instead of trusting the source.
func (b *Body) ReadAll(limit uint) ([]byte, error) {
	if b.consumed {
		return nil, ErrBodyConsumed
	}

	staging := bytebufferpool.Get()
	defer bytebufferpool.Put(staging)

	chunk := make([]byte, 4096)
	for {
		n, err := b.src.Read(chunk)
		if n > 0 {
			if uint(staging.Len())+uint(n) > limit {
				// The prefix read so far is discarded, and the source
				// position is indeterminate. Poison the body.
				b.consumed = true
				return nil, errors.Wrapf(ErrSizeExceeded, "limit %d", limit)
			}
			staging.Write(chunk[:n])
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading body source")
		}
	}

	b.consumed = true

	out := make([]byte, staging.Len())
	copy(out, staging.B)
	return out, nil
}
