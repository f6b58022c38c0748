package tbgate

import (
	"bytes"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Invoker calls synchronous applications and captures their responses. The
// zero value is ready for use. Invocations are serialized: the wrapped
// applications assume the single-threaded loop they were written for, so no
// two calls run concurrently through the same Invoker and a slow call stalls
// the ones queued behind it.
type Invoker struct {
	mu sync.Mutex
}

// Invoke calls the application with the given environment and captures the
// status, headers and body it produced. The call blocks until the
// application returns. Application errors propagate unchanged so the handler
// layer can map them; the response is either fully captured or absent, never
// partial.
func (iv *Invoker) Invoke(app App, env Environ) (*Response, error) {
	iv.mu.Lock()
	defer iv.mu.Unlock()

	var (
		started    bool
		statusLine string
		headers    []Header
	)

	body, err := app.Call(env, func(status string, hdrs []Header) {
		started = true
		statusLine = status
		headers = hdrs
	})
	if err != nil {
		return nil, err
	}
	if !started {
		return nil, errors.New("application returned without starting a response")
	}

	payload, err := drainBody(body)
	if err != nil {
		return nil, err
	}

	code, reason, err := parseStatusLine(statusLine)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: code,
		Reason:     reason,
		Headers:    headers,
		Body:       payload,
	}, nil
}

// drainBody normalizes the returned payload into one contiguous buffer. The
// close hook, when present, is released once draining completed.
func drainBody(body Body) (payload []byte, err error) {
	if body.Close != nil {
		defer func() {
			if cerr := body.Close(); cerr != nil && err == nil {
				err = errors.Wrap(cerr, "close response body")
			}
		}()
	}

	if body.Buffer != nil {
		return body.Buffer, nil
	}

	var buf bytes.Buffer
	for _, chunk := range body.Chunks {
		buf.Write(chunk)
	}

	return buf.Bytes(), nil
}

// parseStatusLine splits a gateway status line on the first space: the
// leading token is the numeric status code, the remainder the reason phrase.
func parseStatusLine(line string) (code int, reason string, err error) {
	head, reason, _ := strings.Cut(line, " ")

	code, err = strconv.Atoi(head)
	if err != nil {
		return 0, "", errors.Wrapf(err, "malformed status line %q", line)
	}

	return code, reason, nil
}
