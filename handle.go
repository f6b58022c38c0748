package tbgate

import "net/http"

// ResponseWriter implements the http.ResponseWriter but the underlying bytes
// are buffered. This allows middleware to reset the writer and formulate a
// completely new response.
type ResponseWriter interface {
	http.ResponseWriter
	Reset()
	Free()
	FlushBuffer() error
}

// Handler mirrors http.Handler but it writes to a buffered response and
// returns an error that is translated into a wire-level status in one place.
type Handler interface {
	ServeGate(w ResponseWriter, r *http.Request) error
}

// HandlerFunc allows casting a function to an implementation of [Handler].
type HandlerFunc func(ResponseWriter, *http.Request) error

// ServeGate implements the [Handler] interface.
func (f HandlerFunc) ServeGate(w ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// ToStd converts a handler into a standard library http.Handler. The
// implementation creates a buffered response writer and flushes it implicitly
// after serving the request. It is also the single point where handler errors
// become wire-level statuses: an [*Error] resets the buffer and renders its
// code and message, any other error is logged and rendered as a plain 500.
func ToStd(h Handler, bufLimit int, logs Logger) http.Handler {
	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		bresp := NewResponseWriter(resp, bufLimit)
		defer bresp.Free()

		if err := h.ServeGate(bresp, req); err != nil {
			bresp.Reset() // discard any partial body

			if code := CodeOf(err); code != CodeUnknown {
				http.Error(bresp, err.Error(), int(code))
			} else {
				// if all fails we don't want the client to end up with a white
				// screen so we render a 500 error with the standard text.
				logs.LogUnhandledServeError(err)
				http.Error(bresp,
					http.StatusText(http.StatusInternalServerError),
					http.StatusInternalServerError)
			}
		}

		if err := bresp.FlushBuffer(); err != nil {
			logs.LogImplicitFlushError(err)
		}
	})
}
