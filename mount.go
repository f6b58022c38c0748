package tbgate

import (
	"net/http"
	"net/url"
	"strings"
)

// Mount mounts a Handler on a sub-path pattern. The mounted handler receives
// requests with the mount prefix stripped from the path.
func (m *ServeMux) Mount(pattern string, handler Handler) {
	method, path := splitMethodPattern(pattern)

	stripped := stripPrefix(path, handler)
	wrapped := Wrap(stripped, m.middlewares.buffered...)
	stdHandler := ToStd(wrapped, m.bufLimit, m.logs)

	exact := method + path
	subtree := method + path + "/"

	m.handle(exact, stdHandler)
	m.handle(subtree, stdHandler)
}

// MountFunc mounts a HandlerFunc on a sub-path pattern. The mounted handler
// receives requests with the mount prefix stripped from the path.
func (m *ServeMux) MountFunc(pattern string, handler HandlerFunc) {
	m.Mount(pattern, handler)
}

func splitMethodPattern(pattern string) (method, path string) {
	if idx := strings.LastIndex(pattern, "/"); idx > 0 {
		prefix := pattern[:idx]
		if spaceIdx := strings.Index(prefix, " "); spaceIdx >= 0 {
			return pattern[:spaceIdx+1], pattern[spaceIdx+1:]
		}
	}

	return "", pattern
}

// stripPrefix rewrites the effective request path before the handler sees it.
// Middleware registered via Use() sees the original path; the strip happens
// after middleware.
func stripPrefix(prefix string, handler Handler) Handler {
	return HandlerFunc(func(w ResponseWriter, r *http.Request) error {
		p := strings.TrimPrefix(r.URL.Path, prefix)
		if p == "" {
			p = "/"
		}

		rp := ""
		if r.URL.RawPath != "" {
			rp = strings.TrimPrefix(r.URL.RawPath, prefix)
			if rp == "" {
				rp = "/"
			}
		}

		return handler.ServeGate(w, WithPath(r, p, rp))
	})
}

// WithPath returns a shallow copy of r whose effective path (and its escaped
// form, when given) is replaced. The inbound request itself is never mutated.
func WithPath(r *http.Request, path, rawPath string) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = path
	r2.URL.RawPath = rawPath

	return r2
}

// JoinPath joins url path pieces with single slashes, the way the host
// server mounts extensions under a configurable base path. A leading slash
// on the first piece and a trailing slash on the last one are preserved.
func JoinPath(pieces ...string) string {
	if len(pieces) == 0 {
		return ""
	}

	initial := strings.HasPrefix(pieces[0], "/")
	final := strings.HasSuffix(pieces[len(pieces)-1], "/")

	var stripped []string
	for _, piece := range pieces {
		if piece = strings.Trim(piece, "/"); piece != "" {
			stripped = append(stripped, piece)
		}
	}

	result := strings.Join(stripped, "/")
	if initial {
		result = "/" + result
	}
	if final && !strings.HasSuffix(result, "/") {
		result += "/"
	}
	if result == "" {
		result = "/"
	}

	return result
}
