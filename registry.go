package activerecord

import (
	"sync"

	"github.com/syssam/activerecord/dialect"
)

// Registry holds named connection handles, one of them the default, and
// the entity definitions of the application. It replaces ambient global
// state: a registry is constructed explicitly and passed to (or bound
// into) the entities that use it.
//
// All connection operations are safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	conns       map[string]dialect.Driver
	defaultName string
	defs        map[string]*Definition
	cache       Cache
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCache attaches a query-result cache consulted by queries that
// request a caching TTL.
func WithCache(c Cache) RegistryOption {
	return func(r *Registry) {
		r.cache = c
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		conns: make(map[string]dialect.Driver),
		defs:  make(map[string]*Definition),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a named connection. The first registered connection
// becomes the default if none was set.
func (r *Registry) Register(name string, drv dialect.Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[name] = drv
	if r.defaultName == "" {
		r.defaultName = name
	}
}

// Resolve returns the connection registered under the given name.
func (r *Registry) Resolve(name string) (dialect.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	drv, ok := r.conns[name]
	if !ok {
		return nil, &UnknownConnectionError{Name: name}
	}
	return drv, nil
}

// Default returns the default connection.
func (r *Registry) Default() (dialect.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultName == "" {
		return nil, ErrNoDefaultConnection
	}
	drv, ok := r.conns[r.defaultName]
	if !ok {
		return nil, &UnknownConnectionError{Name: r.defaultName}
	}
	return drv, nil
}

// SetDefault marks the given registered connection as the default.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[name]; !ok {
		return &UnknownConnectionError{Name: name}
	}
	r.defaultName = name
	return nil
}

// Clear drops all registered connections and the default marker.
// Entity definitions are kept; Clear exists for test isolation of
// connection state.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns = make(map[string]dialect.Driver)
	r.defaultName = ""
}

// Define declares an entity type on the registry and returns its definition.
func (r *Registry) Define(name string, factory func() Entity, opts ...DefineOption) *Definition {
	def := newDefinition(name, factory, opts...)
	r.mu.Lock()
	r.defs[name] = def
	r.mu.Unlock()
	return def
}

// Lookup returns the definition registered under the given entity name.
func (r *Registry) Lookup(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	if !ok {
		return nil, &InvalidRelatedTypeError{Name: name}
	}
	return def, nil
}

// New constructs a fresh entity of the given type, bound to the registry.
func (r *Registry) New(name string) (Entity, error) {
	def, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	e := def.factory()
	e.model().bind(r, def)
	return e, nil
}

// Bind attaches the given entity instance to the registry, resolving its
// definition from the instance's type name.
func (r *Registry) Bind(e Entity) error {
	def, err := r.Lookup(BaseName(e))
	if err != nil {
		return err
	}
	e.model().bind(r, def)
	return nil
}

// Query starts a query for the given entity type. A lookup failure is
// deferred onto the returned query and surfaces on execution.
func (r *Registry) Query(name string) *Query {
	def, err := r.Lookup(name)
	if err != nil {
		return &Query{registry: r, err: err}
	}
	return newQuery(r, def, "")
}
