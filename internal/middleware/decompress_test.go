package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gzipBody(t *testing.T, s string) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return &buf
}

func TestDecompressRequest(t *testing.T) {
	tests := []struct {
		name            string
		contentEncoding string
		body            func(t *testing.T) io.Reader
		wantStatus      int
		wantBody        string
	}{
		{
			name:            "gzipped body is unpacked",
			contentEncoding: "gzip",
			body:            func(t *testing.T) io.Reader { return gzipBody(t, `{"long_url":"https://example.com"}`) },
			wantStatus:      http.StatusOK,
			wantBody:        `{"long_url":"https://example.com"}`,
		},
		{
			name:       "plain body passes through",
			body:       func(t *testing.T) io.Reader { return strings.NewReader(`{"long_url":"https://a.com"}`) },
			wantStatus: http.StatusOK,
			wantBody:   `{"long_url":"https://a.com"}`,
		},
		{
			name:            "invalid gzip",
			contentEncoding: "gzip",
			body:            func(t *testing.T) io.Reader { return strings.NewReader("invalid gzip data") },
			wantStatus:      http.StatusBadRequest,
			wantBody:        "Invalid gzip body\n",
		},
		{
			name:            "empty body",
			contentEncoding: "gzip",
			body:            func(t *testing.T) io.Reader { return nil },
			wantStatus:      http.StatusBadRequest,
			wantBody:        "Empty request body\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Empty(t, r.Header.Get("Content-Encoding"))
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				_, _ = w.Write(body)
			})

			req := httptest.NewRequest(http.MethodPut, "/api/form/input", tt.body(t))
			if tt.contentEncoding != "" {
				req.Header.Set("Content-Encoding", tt.contentEncoding)
			}
			rec := httptest.NewRecorder()

			DecompressRequest(zap.NewNop())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}
