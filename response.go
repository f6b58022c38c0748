package tbgate

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Response is the captured output of one application invocation: produced
// once by [Invoker.Invoke], replayed once onto the live connection, never
// cached or reused.
type Response struct {
	StatusCode int
	Reason     string
	Headers    []Header
	Body       []byte
}

// Replay writes the captured status, headers and body onto w. Repeated
// header names keep the order in which the application emitted their values.
func (res *Response) Replay(w http.ResponseWriter) error {
	hdr := w.Header()
	for _, h := range res.Headers {
		hdr.Add(h.Name, h.Value)
	}

	w.WriteHeader(res.StatusCode)

	if _, err := w.Write(res.Body); err != nil {
		return errors.Wrap(err, "replay captured response body")
	}

	return nil
}
