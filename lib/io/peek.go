package iolib

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// PeekReader wraps a reader with a bounded look-ahead.
// Peeked bytes stay buffered and are replayed on subsequent reads,
// so a consumer pulling through [PeekReader.Read] sees every source
// byte exactly once.
type PeekReader struct {
	r io.Reader

	buf *bytes.Buffer
}

func NewPeekReader(r io.Reader) *PeekReader {
	return &PeekReader{r: r, buf: bytes.NewBuffer(nil)}
}

// Peek reads up to n bytes ahead without consuming them.
// The returned slice is valid until the next call on the reader.
// It is shorter than n if the source ends first.
func (pr *PeekReader) Peek(n uint) ([]byte, error) {
	for uint(pr.buf.Len()) < n {
		temp := make([]byte, n-uint(pr.buf.Len()))

		nn, err := pr.r.Read(temp)
		pr.buf.Write(temp[:nn])

		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "reading ahead from source")
		}
	}

	b := pr.buf.Bytes()
	if uint(len(b)) > n {
		b = b[:n]
	}
	return b, nil
}

// Buffered returns the number of replayable bytes currently held.
func (pr *PeekReader) Buffered() uint { return uint(pr.buf.Len()) }

func (pr *PeekReader) Read(p []byte) (n int, err error) {
	if pr.buf.Len() > 0 {
		n, err = pr.buf.Read(p)
		if err == io.EOF {
			// Buffer drained. The source decides when the stream ends.
			err = nil
		}
		return n, err
	}

	return pr.r.Read(p)
}
