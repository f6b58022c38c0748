package tbgate

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// ErrBufferFull is returned when a write would grow the buffered response
// past its configured limit.
var ErrBufferFull = errors.New("tbgate: response buffer is full")

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// ResponseBuffer implements [ResponseWriter] by keeping the status, headers
// and body in memory until they are flushed to the underlying writer.
type ResponseBuffer struct {
	resp   http.ResponseWriter
	buf    *bytes.Buffer
	limit  int
	status int
	header http.Header

	wroteHeader bool // WriteHeader was called on the buffer
	sentHeader  bool // status and headers reached the underlying writer
	flushed     bool // an explicit or implicit flush happened
}

var _ ResponseWriter = &ResponseBuffer{}

// NewResponseWriter wraps a standard response writer so all writes are
// buffered until flushed. A limit of -1 allows the buffer to grow without
// bound.
func NewResponseWriter(resp http.ResponseWriter, limit int) *ResponseBuffer {
	return newBufferResponse(resp, limit)
}

func newBufferResponse(resp http.ResponseWriter, limit int) *ResponseBuffer {
	buf, _ := bufPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &ResponseBuffer{
		resp:   resp,
		buf:    buf,
		limit:  limit,
		status: http.StatusOK,
		header: make(http.Header),
	}
}

// Header returns the buffered header map. Until the first flush it can be
// modified freely, including after writes.
func (b *ResponseBuffer) Header() http.Header { return b.header }

// Status returns the status code the buffered response currently carries.
func (b *ResponseBuffer) Status() int { return b.status }

// WriteHeader records the status code for the buffered response. As with the
// standard library writer only the first call has an effect.
func (b *ResponseBuffer) WriteHeader(status int) {
	if b.wroteHeader || b.sentHeader {
		return
	}

	b.wroteHeader = true
	b.status = status
}

// Write appends p to the buffer without flushing anything to the underlying
// writer. It fails with [ErrBufferFull] when the write would exceed the
// configured limit, in which case nothing is appended.
func (b *ResponseBuffer) Write(p []byte) (int, error) {
	if b.limit >= 0 && b.buf.Len()+len(p) > b.limit {
		return 0, ErrBufferFull
	}

	return b.buf.Write(p)
}

// Reset clears the buffered body, headers and status so a completely new
// response can be formulated. It panics when the response was already
// flushed to the underlying writer: those bytes are beyond recall.
func (b *ResponseBuffer) Reset() {
	if b.flushed {
		panic("tbgate: response already flushed")
	}

	b.buf.Reset()
	b.header = make(http.Header)
	b.status = http.StatusOK
	b.wroteHeader = false
}

// FlushError sends the buffered status, headers and body to the underlying
// writer. The status and headers are sent once, on the first flush; later
// flushes only append body bytes. This method makes the buffer usable with
// http.NewResponseController.
func (b *ResponseBuffer) FlushError() error {
	if !b.sentHeader {
		dst := b.resp.Header()
		for name, vals := range b.header {
			dst[name] = vals
		}

		b.resp.WriteHeader(b.status)
		b.sentHeader = true
	}

	b.flushed = true

	if b.buf.Len() > 0 {
		if _, err := b.resp.Write(b.buf.Bytes()); err != nil {
			return fmt.Errorf("flush buffered response: %w", err)
		}

		b.buf.Reset()
	}

	if f, ok := b.resp.(http.Flusher); ok {
		f.Flush()
	}

	return nil
}

// FlushBuffer implements the implicit flush performed after a handler
// completed, see [ResponseWriter].
func (b *ResponseBuffer) FlushBuffer() error {
	return b.FlushError()
}

// Free returns the buffer to the pool. The response must not be used after.
func (b *ResponseBuffer) Free() {
	if b.buf == nil {
		return
	}

	bufPool.Put(b.buf)
	b.buf = nil
}

// Unwrap returns the underlying response writer, allowing
// http.ResponseController to reach optional interfaces.
func (b *ResponseBuffer) Unwrap() http.ResponseWriter { return b.resp }
