package tbgate

import (
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Environ is the per-request input of a synchronous gateway application: an
// immutable mapping from the canonical gateway key names to their values. It
// is built fresh for every request and never shared.
type Environ map[string]any

// Canonical environ keys.
const (
	EnvRequestMethod  = "REQUEST_METHOD"
	EnvScriptName     = "SCRIPT_NAME"
	EnvPathInfo       = "PATH_INFO"
	EnvQueryString    = "QUERY_STRING"
	EnvContentType    = "CONTENT_TYPE"
	EnvContentLength  = "CONTENT_LENGTH"
	EnvServerName     = "SERVER_NAME"
	EnvServerPort     = "SERVER_PORT"
	EnvServerProtocol = "SERVER_PROTOCOL"
	EnvRemoteAddr     = "REMOTE_ADDR"

	// EnvInput holds the readable request body as an io.Reader.
	EnvInput = "gateway.input"
)

// Method returns REQUEST_METHOD, or "" when absent.
func (e Environ) Method() string { s, _ := e[EnvRequestMethod].(string); return s }

// Path returns the decoded PATH_INFO, or "" when absent.
func (e Environ) Path() string { s, _ := e[EnvPathInfo].(string); return s }

// Query returns the raw QUERY_STRING, or "" when absent.
func (e Environ) Query() string { s, _ := e[EnvQueryString].(string); return s }

// Input returns the readable request body, or an empty reader when absent.
func (e Environ) Input() io.Reader {
	if r, ok := e[EnvInput].(io.Reader); ok && r != nil {
		return r
	}

	return strings.NewReader("")
}

// BuildEnviron converts an inbound request into the environment a
// synchronous gateway application expects. The path component is
// percent-decoded here, exactly once: the effective path is taken in its
// escaped wire form and unescaped. A malformed escape fails with a
// [CodeBadRequest] error. The inbound request is never mutated.
func BuildEnviron(r *http.Request) (Environ, error) {
	raw := r.URL.RawPath
	if raw == "" {
		raw = r.URL.EscapedPath()
	}

	path, err := url.PathUnescape(raw)
	if err != nil {
		return nil, NewError(CodeBadRequest, errors.Wrapf(err, "malformed path encoding in %q", raw))
	}

	name, port := serverAddr(r)

	var body io.Reader = r.Body
	if body == nil {
		body = strings.NewReader("")
	}

	env := Environ{
		EnvRequestMethod:  r.Method,
		EnvScriptName:     "",
		EnvPathInfo:       path,
		EnvQueryString:    r.URL.RawQuery,
		EnvServerName:     name,
		EnvServerPort:     port,
		EnvServerProtocol: r.Proto,
		EnvRemoteAddr:     remoteIP(r.RemoteAddr),
		EnvInput:          body,
	}

	if r.ContentLength >= 0 {
		env[EnvContentLength] = strconv.FormatInt(r.ContentLength, 10)
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		env[EnvContentType] = ct
	}

	for hname, vals := range r.Header {
		// Content type and length have dedicated keys in the contract.
		if hname == "Content-Type" || hname == "Content-Length" {
			continue
		}

		env[environKey(hname)] = strings.Join(vals, ",")
	}

	return env, nil
}

// environKey re-keys a header name into the gateway naming convention:
// uppercased, non-alphanumerics replaced by underscores, HTTP_-prefixed.
func environKey(header string) string {
	var sb strings.Builder
	sb.WriteString("HTTP_")

	for _, r := range strings.ToUpper(header) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}

	return sb.String()
}

// serverAddr derives SERVER_NAME and SERVER_PORT from the request host.
func serverAddr(r *http.Request) (name, port string) {
	name, port, err := net.SplitHostPort(r.Host)
	if err != nil {
		name = r.Host
		if r.TLS != nil {
			port = "443"
		} else {
			port = "80"
		}
	}

	return name, port
}

// remoteIP strips the client port when present.
func remoteIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}

	return addr
}
