// Package responsewriter wraps http.ResponseWriter so middleware can observe
// the status code and body size of a response after the handler has run.
package responsewriter

import "net/http"

// ResponseWriter records the status code and number of body bytes that pass
// through it. The zero status is 200, matching net/http's implicit behavior
// when a handler writes a body without calling WriteHeader.
type ResponseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

// Wrap returns a recording wrapper around w.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code written. Later calls are dropped
// so a handler that writes twice cannot skew the logged status.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

// Write forwards the body bytes and accumulates their count.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode returns the status code sent to the client.
func (w *ResponseWriter) StatusCode() int { return w.status }

// BytesWritten returns the number of body bytes sent to the client.
func (w *ResponseWriter) BytesWritten() int { return w.bytes }

// Unwrap exposes the underlying writer so http.ResponseController keeps
// working through the wrapper.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
