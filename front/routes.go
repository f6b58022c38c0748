package front

import (
	"github.com/advdv/tbgate"
	"go.uber.org/zap"
)

// InstancePrefix is the mount point of the per-instance routes, below the
// configured base url.
const InstancePrefix = "/tensorboard_pro"

// FontPrefix is the mount point of the shared font assets, below the
// configured base url. The backend serves these from its own root.
const FontPrefix = "/font-roboto"

// RegisterRoutes wires the gateway routes onto the mux, mounted under
// baseURL. A nil registry means the backend ecosystem failed to come up; the
// routes are then registered against the fallback handler so clients get a
// clear unavailability signal instead of a blank 404.
func RegisterRoutes(mux *Mux, logs *zap.Logger, baseURL string, registry tbgate.Registry) {
	instances := tbgate.JoinPath(baseURL, InstancePrefix)
	fonts := tbgate.JoinPath(baseURL, FontPrefix)

	if registry == nil {
		logs.Info("no instance registry; serving unavailability fallback",
			zap.String("instances", instances))

		mux.HandleFunc("GET "+instances+"/{name}", Unavailable)
		mux.HandleFunc("POST "+instances+"/{name}", Unavailable)
		mux.HandleFunc(instances+"/{name}/{path...}", Unavailable)
		mux.HandleFunc("GET "+fonts+"/{path...}", Unavailable)

		return
	}

	h := NewHandlers(registry)

	// The root patterns are method-scoped so a POST reaches the method
	// policy instead of the mux's own trailing-slash redirect.
	mux.HandleFunc("GET "+instances+"/{name}", h.InstanceRoot, "instance-root")
	mux.HandleFunc("POST "+instances+"/{name}", h.InstanceRoot)
	mux.HandleFunc(instances+"/{name}/{path...}", h.Instance, "instance")
	mux.HandleFunc("GET "+fonts+"/{path...}", h.FontAssets, "font-assets")

	logs.Info("registered gateway routes",
		zap.String("instances", instances),
		zap.String("fonts", fonts))
}
