package statichttp

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// timeFormat is the timestamp layout shared by the access log, the startup
// banner and the stop notice.
const timeFormat = "2006-01-02 15:04:05"

// accessLogger writes one line per handled request:
//
//	[2024-05-01 13:45:09] 127.0.0.1 - "GET /index.html HTTP/1.1" 200 -
type accessLogger struct {
	out io.Writer
	now func() time.Time
}

// wrap returns a handler that serves via next and then logs the request
// with the status code next produced. A handler that writes a body without
// calling WriteHeader logs as 200, matching what goes out on the wire.
func (l *accessLogger) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		l.logRequest(r, rec.status)
	})
}

func (l *accessLogger) logRequest(r *http.Request, status int) {
	fmt.Fprintf(l.out, "[%s] %s - \"%s %s %s\" %d -\n",
		l.now().Format(timeFormat),
		clientIP(r.RemoteAddr),
		r.Method, decodeForDisplay(r.RequestURI), r.Proto,
		status)
}

// decodeForDisplay percent-decodes s so that non-ASCII file names read
// naturally in the log. A malformed escape leaves s unchanged; decoding
// must never fail a request.
func decodeForDisplay(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
