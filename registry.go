package tbgate

import (
	"regexp"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Instance is one named backend application, created and destroyed entirely
// by the external lifecycle manager. The core only reads the wrapped
// callable and holds no reference beyond the duration of one request.
type Instance interface {
	App() App
}

// Registry is the read view on the lifecycle manager's instance table.
type Registry interface {
	// Lookup reports the instance registered under name at this moment. A
	// name present now may be torn down before an invocation completes;
	// that race belongs to the lifecycle manager.
	Lookup(name string) (Instance, bool)
}

// instanceNameRe is the identifier grammar of registry keys: word characters
// only. Tokens outside the grammar never reach a lookup.
var instanceNameRe = regexp.MustCompile(`^\w+$`)

// ValidInstanceName reports whether name matches the registry key grammar.
func ValidInstanceName(name string) bool {
	return instanceNameRe.MatchString(name)
}

// Resolve looks name up in the registry. Names that are absent or outside
// the identifier grammar fail with a [CodeNotFound] error.
func Resolve(reg Registry, name string) (App, error) {
	if !ValidInstanceName(name) {
		return nil, NewError(CodeNotFound, errors.Newf("invalid instance name %q", name))
	}

	inst, ok := reg.Lookup(name)
	if !ok {
		return nil, NewError(CodeNotFound, errors.Newf("no instance named %q", name))
	}

	return inst.App(), nil
}

// InstanceOf wraps a bare App into an Instance, for lifecycle managers whose
// instances carry nothing beyond the callable.
func InstanceOf(app App) Instance { return appInstance{app} }

type appInstance struct{ app App }

func (i appInstance) App() App { return i.app }

// RegistryMap is a basic Registry implementation backed by a mutex-guarded
// map, for lifecycle managers that track their instances in-process. The
// gateway itself never mutates it.
type RegistryMap struct {
	mu        sync.RWMutex
	instances map[string]Instance
}

// NewRegistryMap creates an empty RegistryMap.
func NewRegistryMap() *RegistryMap {
	return &RegistryMap{instances: map[string]Instance{}}
}

// Add registers an instance. It errors when the name falls outside the
// identifier grammar or is already registered.
func (r *RegistryMap) Add(name string, inst Instance) error {
	if !ValidInstanceName(name) {
		return errors.Newf("invalid instance name %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[name]; ok {
		return errors.Newf("instance %q already registered", name)
	}

	r.instances[name] = inst

	return nil
}

// Remove drops the instance registered under name, if any.
func (r *RegistryMap) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.instances, name)
}

// Lookup implements the [Registry] interface.
func (r *RegistryMap) Lookup(name string) (Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inst, ok := r.instances[name]

	return inst, ok
}

// Names returns the registered instance names, in no particular order.
func (r *RegistryMap) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Keys(r.instances)
}
