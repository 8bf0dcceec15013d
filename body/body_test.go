package body

import (
	"bytes"
	"io"
	"testing"
	"testing/fstest"

	"http-kit/mime"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	b := Empty()

	require.NotNil(t, b.Length())
	assert.Zero(t, *b.Length())
	assert.True(t, mime.ByteStream.Equal(b.Mime()))

	out, err := b.ReadAll(10)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFromBytes(t *testing.T) {
	b := FromBytes([]byte("hello"))

	assert.Equal(t, SourceBuffer, b.Kind())
	require.NotNil(t, b.Length())
	assert.Equal(t, uint(5), *b.Length())
	assert.True(t, mime.ByteStream.Equal(b.Mime()))

	out, err := b.ReadAll(1024)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out)
}

func TestFromString(t *testing.T) {
	b := FromString("hey there")

	assert.Equal(t, SourceString, b.Kind())
	require.NotNil(t, b.Length())
	assert.Equal(t, uint(9), *b.Length())

	// Strings default to text/plain with a utf-8 charset.
	assert.True(t, mime.Plain.Equal(b.Mime()))
}

func TestFromReaderLengthUnknown(t *testing.T) {
	b := FromReader(bytes.NewReader([]byte("stream")))

	assert.Equal(t, SourceStream, b.Kind())
	assert.Nil(t, b.Length())

	// Known out-of-band, e.g. from a Content-Length the caller read.
	b.SetLength(6)
	require.NotNil(t, b.Length())
	assert.Equal(t, uint(6), *b.Length())
}

func TestFromReaderN(t *testing.T) {
	// The source keeps going past the declared length; the body must not.
	src := bytes.NewReader([]byte("contentTRAILING"))
	b := FromReaderN(src, 7)

	assert.Equal(t, SourceStream, b.Kind())
	require.NotNil(t, b.Length())
	assert.Equal(t, uint(7), *b.Length())

	out, err := b.ReadAll(1024)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), out)
}

func TestSingleConsumption(t *testing.T) {
	b := FromBytes([]byte("hello"))

	out, err := b.ReadAll(1024)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), out)

	_, err = b.ReadAll(1024)
	assert.ErrorIs(t, err, ErrBodyConsumed)

	_, err = b.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrBodyConsumed)
}

func TestReadToEOFMarksConsumed(t *testing.T) {
	b := FromBytes([]byte("hi"))

	out, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), out)
	assert.True(t, b.Consumed())

	_, err = b.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrBodyConsumed)
}

func TestPartialReadLeavesRest(t *testing.T) {
	b := FromBytes([]byte("abcdef"))

	p := make([]byte, 2)
	n, err := b.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, b.Consumed())

	out, err := b.ReadAll(1024)
	require.NoError(t, err)
	assert.Equal(t, []byte("cdef"), out)
}

func TestReadAllSizeCap(t *testing.T) {
	b := FromReader(bytes.NewReader(bytes.Repeat([]byte("a"), 11)))

	out, err := b.ReadAll(10)
	assert.ErrorIs(t, err, ErrSizeExceeded)
	assert.Nil(t, out)

	// The body is poisoned, not silently resumable.
	_, err = b.ReadAll(1024)
	assert.ErrorIs(t, err, ErrBodyConsumed)
}

func TestReadAllSizeCapExact(t *testing.T) {
	b := FromBytes(bytes.Repeat([]byte("a"), 10))

	out, err := b.ReadAll(10)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestSetMime(t *testing.T) {
	b := FromBytes([]byte(`{"a":1}`))
	b.SetMime(mime.JSON)

	assert.True(t, mime.JSON.Equal(b.Mime()))
}

type failingReader struct{ err error }

func (f failingReader) Read(p []byte) (int, error) { return 0, f.err }

func TestReadAllSourceError(t *testing.T) {
	cause := errors.New("disk on fire")
	b := FromReader(failingReader{err: cause})

	_, err := b.ReadAll(1024)
	assert.ErrorIs(t, err, cause)

	// An I/O failure is not consumption; the caller may own retry policy.
	assert.False(t, b.Consumed())
}

func TestFromFileSniffsContent(t *testing.T) {
	testcases := []struct {
		desc     string
		content  []byte
		expected mime.Mime
	}{
		{
			desc:     "png by magic number, not extension",
			content:  []byte("\x89PNG\r\n\x1a\nimage-data"),
			expected: mime.PNG,
		},
		{
			desc:     "html by leading tag",
			content:  []byte("<!doctype html><html></html>"),
			expected: mime.HTML,
		},
		{
			desc:     "inconclusive falls back to octet-stream",
			content:  []byte{0x01, 0x02, 0x03},
			expected: mime.ByteStream,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			fsys := fstest.MapFS{"blob": &fstest.MapFile{Data: tc.content}}

			f, err := fsys.Open("blob")
			require.NoError(t, err)
			defer f.Close()

			b, err := FromFile(f)
			require.NoError(t, err)

			assert.Equal(t, SourceFile, b.Kind())
			assert.True(t, tc.expected.Equal(b.Mime()), b.Mime().String())

			require.NotNil(t, b.Length())
			assert.Equal(t, uint(len(tc.content)), *b.Length())

			// Sniffing must not eat the content.
			out, err := b.ReadAll(1024)
			require.NoError(t, err)
			assert.Equal(t, tc.content, out)
		})
	}
}

func TestFromFileLargerThanSniffWindow(t *testing.T) {
	content := append([]byte("<html>"), bytes.Repeat([]byte("x"), 2*mime.SniffLen)...)
	fsys := fstest.MapFS{"page": &fstest.MapFile{Data: content}}

	f, err := fsys.Open("page")
	require.NoError(t, err)
	defer f.Close()

	b, err := FromFile(f)
	require.NoError(t, err)
	assert.True(t, mime.HTML.Equal(b.Mime()))

	out, err := b.ReadAll(uint(len(content)))
	require.NoError(t, err)
	assert.Equal(t, content, out)
}
