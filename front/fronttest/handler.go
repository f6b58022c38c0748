package fronttest

import (
	"net/http"
	"net/http/httptest"

	"github.com/advdv/tbgate"
)

// CallHandler invokes a [tbgate.HandlerFunc] with a buffered response writer
// and returns the recorded response. It handles the boilerplate of wrapping
// [httptest.ResponseRecorder] in a [tbgate.ResponseWriter] and flushing the
// buffer afterward.
func CallHandler(handler tbgate.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	w := tbgate.NewResponseWriter(rec, -1)

	if err := handler(w, req); err != nil {
		panic("fronttest: handler returned error: " + err.Error())
	}

	if err := w.FlushBuffer(); err != nil {
		panic("fronttest: FlushBuffer failed: " + err.Error())
	}

	return rec
}

// StaticApp returns a gateway application that always starts the given
// status line and headers and returns the chunks as its body.
func StaticApp(statusLine string, headers []tbgate.Header, chunks ...string) tbgate.App {
	return tbgate.AppFunc(func(env tbgate.Environ, start tbgate.StartResponse) (tbgate.Body, error) {
		start(statusLine, headers)

		body := tbgate.Body{}
		for _, chunk := range chunks {
			body.Chunks = append(body.Chunks, []byte(chunk))
		}

		return body, nil
	})
}

// RecordingApp returns a gateway application that records every environment
// it is invoked with into envs and answers 200 with an empty body.
func RecordingApp(envs *[]tbgate.Environ) tbgate.App {
	return tbgate.AppFunc(func(env tbgate.Environ, start tbgate.StartResponse) (tbgate.Body, error) {
		*envs = append(*envs, env)
		start("200 OK", nil)

		return tbgate.Body{}, nil
	})
}
