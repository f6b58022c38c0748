package front

import (
	"github.com/advdv/tbgate"
)

// Runtime provides access to app-scoped dependencies. Inject this into
// handler constructors via fx instead of pulling from context.
type Runtime[E Environment] struct {
	env      E
	mux      *Mux
	registry tbgate.Registry
}

// NewRuntime creates a new Runtime with the given dependencies.
func NewRuntime[E Environment](env E, mux *Mux, registry tbgate.Registry) *Runtime[E] {
	return &Runtime[E]{env: env, mux: mux, registry: registry}
}

// Env returns the environment configuration.
func (r *Runtime[E]) Env() E {
	return r.env
}

// Reverse returns the URL for a named route with the given parameters.
// The route must have been registered with a name using Handle/HandleFunc.
func (r *Runtime[E]) Reverse(name string, params ...string) (string, error) {
	return r.mux.Reverse(name, params...)
}

// Registry returns the instance registry the gateway routes against, or nil
// when the app runs in unavailability fallback mode.
func (r *Runtime[E]) Registry() tbgate.Registry {
	return r.registry
}
