package semantic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	expected := time.Date(1994, 11, 6, 8, 49, 37, 0, time.UTC)

	testcases := []struct {
		desc    string
		input   string
		wantErr bool
	}{
		{
			desc:  "IMF-fixdate",
			input: "Sun, 06 Nov 1994 08:49:37 GMT",
		},
		{
			desc:  "obsolete RFC 850 format",
			input: "Sunday, 06-Nov-94 08:49:37 GMT",
		},
		{
			desc:  "ANSI C's asctime() format",
			input: "Sun Nov  6 08:49:37 1994",
		},
		{
			desc:    "datetime",
			input:   "1994-11-06 08:49:37",
			wantErr: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			tm, err := ParseDate(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tm.Equal(expected))
		})
	}
}

func TestFormatDate(t *testing.T) {
	in := time.Date(1994, 11, 6, 8, 49, 37, 0, time.UTC)
	assert.Equal(t, "Sun, 06 Nov 1994 08:49:37 GMT", FormatDate(in))

	// Non-UTC input is converted, not labeled.
	kst := time.FixedZone("KST", 9*60*60)
	assert.Equal(t, "Sun, 06 Nov 1994 08:49:37 GMT", FormatDate(in.In(kst)))
}

func TestMethodIsSafe(t *testing.T) {
	assert.True(t, MethodGet.IsSafe())
	assert.True(t, MethodHead.IsSafe())
	assert.False(t, MethodPost.IsSafe())
	assert.False(t, MethodDelete.IsSafe())
}

func TestDefaultPort(t *testing.T) {
	assert.Equal(t, uint16(80), defaultPort("http"))
	assert.Equal(t, uint16(443), defaultPort("https"))
	assert.Equal(t, uint16(0), defaultPort("gopher"))
}
