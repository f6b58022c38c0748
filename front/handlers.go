package front

import (
	"net/http"
	"strings"

	"github.com/advdv/tbgate"
	"github.com/cockroachdb/errors"
)

// FontInstanceName is the backend instance that serves the shared font
// assets. Fonts are identical across instances so the first one answers for
// all of them.
const FontInstanceName = "1"

// Handlers serve the gateway routes: per-instance proxying, instance root
// redirects and the shared font assets.
type Handlers struct {
	registry tbgate.Registry
	invoker  tbgate.Invoker
}

// NewHandlers creates the gateway handlers on top of the given instance
// registry.
func NewHandlers(registry tbgate.Registry) *Handlers {
	return &Handlers{registry: registry}
}

// InstanceRoot handles requests addressing an instance without a sub-path. A
// GET redirects to the slash-terminated form so the backend's relative asset
// urls resolve; a POST is refused because no backend operation lives at the
// root.
func (h *Handlers) InstanceRoot(w tbgate.ResponseWriter, r *http.Request) error {
	// Registry state is irrelevant here: the redirect and the method policy
	// apply even for names that are not registered.
	if r.Method == http.MethodPost {
		return tbgate.NewError(tbgate.CodeForbidden, errors.New("posting to an instance root is not allowed"))
	}

	loc := r.URL.EscapedPath() + "/"
	if r.URL.RawQuery != "" {
		loc += "?" + r.URL.RawQuery
	}

	http.Redirect(w, r, loc, http.StatusMovedPermanently)

	return nil
}

// Instance proxies one request into the named backend instance: the request
// is converted into a gateway environment scoped to the instance-relative
// sub-path, the backend is invoked, and its captured response is replayed.
func (h *Handlers) Instance(w tbgate.ResponseWriter, r *http.Request) error {
	// A POST needs a concrete backend endpoint; the bare slash-terminated
	// root names none.
	if r.Method == http.MethodPost && r.PathValue("path") == "" {
		return tbgate.NewError(tbgate.CodeForbidden, errors.New("posting to an instance root is not allowed"))
	}

	app, err := tbgate.Resolve(h.registry, r.PathValue("name"))
	if err != nil {
		return err
	}

	subPath := "/" + r.PathValue("path")

	env, err := tbgate.BuildEnviron(tbgate.WithPath(r, subPath, rawSubPath(r, subPath)))
	if err != nil {
		return err
	}

	res, err := h.invoker.Invoke(app, env)
	if err != nil {
		return err
	}

	return res.Replay(w)
}

// FontAssets proxies shared font requests into the font instance, with the
// font mount prefix restored on the backend-visible path.
func (h *Handlers) FontAssets(w tbgate.ResponseWriter, r *http.Request) error {
	app, err := tbgate.Resolve(h.registry, FontInstanceName)
	if err != nil {
		return err
	}

	path := tbgate.JoinPath(FontPrefix, r.PathValue("path"))

	env, err := tbgate.BuildEnviron(tbgate.WithPath(r, path, ""))
	if err != nil {
		return err
	}

	res, err := h.invoker.Invoke(app, env)
	if err != nil {
		return err
	}

	return res.Replay(w)
}

// Unavailable answers every route when no registry is wired: the backend
// ecosystem failed to come up but the gateway itself still responds.
func Unavailable(tbgate.ResponseWriter, *http.Request) error {
	return tbgate.NewError(tbgate.CodeServiceUnavailable, errors.New("backend ecosystem unavailable"))
}

// rawSubPath derives the escaped form of subPath from the request's escaped
// path, so percent-encoded sub-paths reach the backend decoded exactly once.
// It returns "" when the escaped form cannot be derived by prefix stripping;
// the environ builder then re-escapes the decoded path, which round-trips.
func rawSubPath(r *http.Request, subPath string) string {
	if r.URL.RawPath == "" {
		return ""
	}

	prefix := strings.TrimSuffix(r.URL.Path, subPath)
	if !strings.HasPrefix(r.URL.RawPath, prefix) {
		return ""
	}

	return strings.TrimPrefix(r.URL.RawPath, prefix)
}
