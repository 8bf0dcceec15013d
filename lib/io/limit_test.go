package iolib

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitReader(t *testing.T) {
	r := LimitReader(strings.NewReader("hello world"), 5)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out)

	n, err := r.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
	assert.Zero(t, n)
}

func TestLimitReaderShortSource(t *testing.T) {
	r := LimitReader(bytes.NewReader([]byte("hi")), 5)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), out)
}
