package statichttp

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 13, 45, 9, 0, time.UTC)
}

func TestAccessLogLine(t *testing.T) {
	var buf bytes.Buffer
	logger := &accessLogger{out: &buf, now: fixedNow}

	h := logger.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest("GET", "/missing.html", nil)
	req.RemoteAddr = "192.0.2.7:52011"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "[2024-05-01 13:45:09] 192.0.2.7 - \"GET /missing.html HTTP/1.1\" 404 -\n", buf.String())
}

func TestAccessLogDefaultsTo200(t *testing.T) {
	var buf bytes.Buffer
	logger := &accessLogger{out: &buf, now: fixedNow}

	// Write a body without ever calling WriteHeader.
	h := logger.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))

	req := httptest.NewRequest("GET", "/hello.txt", nil)
	req.RemoteAddr = "127.0.0.1:40000"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "\"GET /hello.txt HTTP/1.1\" 200 -")
}

func TestAccessLogDecodesNonASCIIPath(t *testing.T) {
	var buf bytes.Buffer
	logger := &accessLogger{out: &buf, now: fixedNow}

	h := logger.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/%E6%96%87%E6%A1%A3.txt", nil)
	req.RemoteAddr = "127.0.0.1:40000"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "文档.txt")
	assert.NotContains(t, buf.String(), "%E6%96%87")
}

func TestDecodeForDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain ascii",
			in:   "/index.html",
			want: "/index.html",
		},
		{
			name: "encoded utf8",
			in:   "/%E6%96%87%E6%A1%A3.txt",
			want: "/文档.txt",
		},
		{
			name: "encoded space",
			in:   "/my%20file.txt",
			want: "/my file.txt",
		},
		{
			name: "malformed escape falls back to raw",
			in:   "/bad%zz.txt",
			want: "/bad%zz.txt",
		},
		{
			name: "truncated escape falls back to raw",
			in:   "/trailing%",
			want: "/trailing%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeForDisplay(tt.in))
		})
	}
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "192.0.2.7", clientIP("192.0.2.7:52011"))
	assert.Equal(t, "::1", clientIP("[::1]:8080"))
	assert.Equal(t, "no-port-here", clientIP("no-port-here"))
}
