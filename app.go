package tbgate

// Header is a single response header pair. The sequence of pairs an
// application emits keeps its order, duplicates included.
type Header struct {
	Name  string
	Value string
}

// StartResponse records the status line (e.g. "200 OK") and the ordered
// header pairs of an application response. An application calls it exactly
// once, before returning its body; when it is called again the last call
// wins, mirroring the gateway contract's replacement semantics.
type StartResponse func(statusLine string, headers []Header)

// Body holds the payload a gateway application returns. At most one of
// Buffer and Chunks is set: Buffer carries a contiguous payload, Chunks a
// finite single-pass sequence that is drained in order. Close, when non-nil,
// releases resources held by the sequence; the invoker calls it once
// draining completed. This is a scoped-resource release, not an optional
// cleanup.
type Body struct {
	Buffer []byte
	Chunks [][]byte
	Close  func() error
}

// App is the synchronous application contract every backend instance wraps:
// receive an environment, report status and headers through start, and
// return the body payload. The call runs to completion before it returns;
// there is no way to cancel it from the outside.
type App interface {
	Call(env Environ, start StartResponse) (Body, error)
}

// AppFunc allows casting a function to an implementation of [App].
type AppFunc func(Environ, StartResponse) (Body, error)

// Call implements the [App] interface.
func (f AppFunc) Call(env Environ, start StartResponse) (Body, error) {
	return f(env, start)
}
