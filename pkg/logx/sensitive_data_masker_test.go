package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scratch_tracker/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Set-Cookie header",
			input:  []byte("HTTP/1.1 200 OK\r\nSet-Cookie: incap_ses_1=abc123; path=/\r\nContent-Type: text/html\r\n"),
			output: []byte("HTTP/1.1 200 OK\r\nSet-Cookie: [MASKED]\r\nContent-Type: text/html\r\n"),
		},
		{
			name:   "Cookie header",
			input:  []byte("GET /scratchers HTTP/1.1\r\nCookie: visid_incap_1=xyz\r\nAccept: text/html\r\n"),
			output: []byte("GET /scratchers HTTP/1.1\r\nCookie: [MASKED]\r\nAccept: text/html\r\n"),
		},
		{
			name:   "Bot token",
			input:  []byte(`{"botToken":"12345:AAbbCCdd","chatId":42}`),
			output: []byte(`{"botToken":"[MASKED]","chatId":42}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Access token",
			input:  []byte(`{"accessToken":"eyJhbGciOiJFUzI1NiIsInR5cC"}`),
			output: []byte(`{"accessToken":"[MASKED]"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
