package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	testcases := []struct {
		desc     string
		input    string
		expected Version
		wantErr  bool
	}{
		{
			desc:     "http 1.1",
			input:    "HTTP/1.1",
			expected: Version{1, 1},
		},
		{
			desc:     "http 1.0",
			input:    "HTTP/1.0",
			expected: Version{1, 0},
		},
		{
			desc:    "missing prefix",
			input:   "1.1",
			wantErr: true,
		},
		{
			desc:    "missing separator",
			input:   "HTTP/1",
			wantErr: true,
		},
		{
			desc:    "two separators",
			input:   "HTTP/1.1.1",
			wantErr: true,
		},
		{
			desc:    "version not convertible to int",
			input:   "HTTP/ayo.2",
			wantErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			ver, err := ParseVersion(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, ver)
		})
	}
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "HTTP/1.1", Version11.String())
	assert.Equal(t, "HTTP/1.0", Version10.String())
	assert.Equal(t, "HTTP/2.0", Version{2, 0}.String())
}
