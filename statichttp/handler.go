package statichttp

import (
	"net/http"
	"time"
)

// responseHeaders are attached to every response before the file server
// writes anything, whatever the method or status ends up being. The
// wildcard CORS policy is intentional: this is a local development tool.
var responseHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "*",
	"Cache-Control":                "no-cache, no-store, must-revalidate",
}

// handler builds the request pipeline: header injection, then access
// logging, then the file server itself. Everything at the wire level
// (parsing, Content-Length, Content-Type, Date, index files, path cleaning)
// is the file server's business.
func (s *Server) handler(root string) http.Handler {
	logger := &accessLogger{out: s.accessLog(), now: time.Now}
	fs := http.FileServer(http.Dir(root))
	return withHeaders(logger.wrap(fs))
}

func withHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for k, v := range responseHeaders {
			h.Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by the wrapped handler,
// since net/http offers no way to read it back after the fact.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
