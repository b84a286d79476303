package rxport

import (
	"reflect"
	"sync"
)

// Registry holds the most recently opened instance of each concrete port
// type. Opening a port overwrites the entry for its type; closing it does
// not remove it. Entries only disappear on Reset.
type Registry struct {
	mu    sync.RWMutex
	ports map[reflect.Type]Port
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ports: make(map[reflect.Type]Port),
	}
}

// Reset removes every entry.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.ports = make(map[reflect.Type]Port)
	r.mu.Unlock()
}

// Len returns the number of registered port types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ports)
}

// HasType reports whether an instance of the concrete type t is registered.
func (r *Registry) HasType(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ports[t]
	return ok
}

// put records p as the instance of its concrete type, replacing any other.
func (r *Registry) put(p Port) {
	t := reflect.TypeOf(p)

	r.mu.Lock()
	r.ports[t] = p
	r.mu.Unlock()
}

// lookup returns the registered instance of P if it is valid and passes cond.
func lookup[P Port](r *Registry, cond func(*PortBase) bool) (P, bool) {
	var zero P

	r.mu.RLock()
	p, ok := r.ports[reflect.TypeFor[P]()]
	r.mu.RUnlock()
	if !ok {
		return zero, false
	}

	target := p.(P)
	if !target.Valid() || !cond(target.portBase()) {
		return zero, false
	}
	return target, true
}

// Has reports whether an instance of port type P is registered.
// P must be the concrete type the port was opened as, e.g. *ScorePort.
func Has[P Port](r *Registry) bool {
	return r.HasType(reflect.TypeFor[P]())
}

// TryGet returns the registered instance of P if it is valid.
func TryGet[P Port](r *Registry) (P, bool) {
	return lookup[P](r, func(*PortBase) bool { return true })
}

// TryGetOpen returns the registered instance of P if it is valid and open.
func TryGetOpen[P Port](r *Registry) (P, bool) {
	return lookup[P](r, (*PortBase).IsOpen)
}

// TryGetClosed returns the registered instance of P if it is valid and closed.
func TryGetClosed[P Port](r *Registry) (P, bool) {
	return lookup[P](r, (*PortBase).IsClosed)
}
