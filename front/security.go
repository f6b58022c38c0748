package front

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"

	"github.com/advdv/tbgate"
	"github.com/cockroachdb/errors"
)

// TokenCookieName is the session cookie the login flow sets.
const TokenCookieName = "tbgate_token"

// XSRFCookieName is the double-submit cookie checked on unsafe methods.
const XSRFCookieName = "_xsrf"

// XSRFHeaderName carries the double-submit token on unsafe requests.
const XSRFHeaderName = "X-Xsrftoken"

// WithAuth requires a matching access token on every request. The token is
// accepted from the Authorization header ("token <value>"), a token query
// parameter or the session cookie. An empty configured token disables the
// check.
func WithAuth(token string) tbgate.Middleware {
	return func(next tbgate.Handler) tbgate.Handler {
		return tbgate.HandlerFunc(func(w tbgate.ResponseWriter, r *http.Request) error {
			if token == "" {
				return next.ServeGate(w, r)
			}

			if !tokenEquals(requestToken(r), token) {
				return tbgate.NewError(tbgate.CodeForbidden, errors.New("missing or invalid access token"))
			}

			return next.ServeGate(w, r)
		})
	}
}

func requestToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if val, ok := strings.CutPrefix(auth, "token "); ok {
			return val
		}
	}

	if val := r.URL.Query().Get("token"); val != "" {
		return val
	}

	if c, err := r.Cookie(TokenCookieName); err == nil {
		return c.Value
	}

	return ""
}

// tokenEquals compares tokens in constant time.
func tokenEquals(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// CheckReferer reports whether the request's Referer header names the same
// host the request was sent to. Requests without a referer fail the check.
func CheckReferer(r *http.Request) bool {
	referer := r.Header.Get("Referer")
	if referer == "" {
		return false
	}

	ref, err := url.Parse(referer)
	if err != nil {
		return false
	}

	return ref.Host == r.Host
}

// XSRFCheck decides whether an unsafe request carries proof it came from the
// serving origin. It errors with [tbgate.CodeForbidden] on failure.
type XSRFCheck func(r *http.Request) error

// defaultXSRFCheck implements the double-submit cookie pattern: the token in
// the xsrf cookie must reappear in the request header or query string. The
// form body is deliberately left alone; the backend needs it intact.
func defaultXSRFCheck(r *http.Request) error {
	cookie, err := r.Cookie(XSRFCookieName)
	if err != nil || cookie.Value == "" {
		return tbgate.NewError(tbgate.CodeForbidden, errors.New("xsrf cookie not set"))
	}

	token := r.Header.Get(XSRFHeaderName)
	if token == "" {
		token = r.URL.Query().Get(XSRFCookieName)
	}
	if token == "" {
		return tbgate.NewError(tbgate.CodeForbidden, errors.New("xsrf argument missing from request"))
	}

	if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(token)) != 1 {
		return tbgate.NewError(tbgate.CodeForbidden, errors.New("xsrf cookie does not match request argument"))
	}

	return nil
}

// WithXSRF guards unsafe methods with check, falling back to a same-origin
// referer comparison when a POST fails the primary check. Backends issue
// plain same-origin POSTs without the host server's xsrf token; the referer
// fallback keeps those working while still blocking cross-origin posts.
func WithXSRF(check XSRFCheck) tbgate.Middleware {
	if check == nil {
		check = defaultXSRFCheck
	}

	return func(next tbgate.Handler) tbgate.Handler {
		return tbgate.HandlerFunc(func(w tbgate.ResponseWriter, r *http.Request) error {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next.ServeGate(w, r)
			}

			err := check(r)
			if err == nil {
				return next.ServeGate(w, r)
			}

			if tbgate.CodeOf(err) != tbgate.CodeForbidden || r.Method != http.MethodPost {
				return err
			}

			if referer := r.Header.Get("Referer"); referer != "" {
				if CheckReferer(r) {
					return next.ServeGate(w, r)
				}

				return tbgate.NewError(tbgate.CodeForbidden,
					errors.Newf("Blocking Cross Origin request from %s.", referer))
			}

			return tbgate.NewError(tbgate.CodeForbidden,
				errors.New("Blocking request from unknown origin"))
		})
	}
}
