package rxport

import (
	"context"
	"slices"
	"sync"
)

// Lifetime is the teardown signal that bounds every subscription on a bus.
// It fires at most once, either through Teardown or when its parent context
// is cancelled. Hooks registered before it fires run synchronously, in
// registration order, on the goroutine that fires it.
type Lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	fired bool
	hooks map[uint64]func()
	next  uint64

	stopParent func() bool
}

// NewLifetime creates a lifetime. If parent is cancelled the lifetime tears
// down with it. A nil parent means the lifetime only ends through Teardown.
func NewLifetime(parent context.Context) *Lifetime {
	if parent == nil {
		parent = context.Background()
	}

	l := &Lifetime{
		hooks: make(map[uint64]func()),
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())

	if parent.Done() != nil {
		l.stopParent = context.AfterFunc(parent, l.Teardown)
	}
	return l
}

// Context returns a context cancelled once the lifetime has torn down.
func (l *Lifetime) Context() context.Context {
	return l.ctx
}

// Done returns a channel closed once the lifetime has torn down.
func (l *Lifetime) Done() <-chan struct{} {
	return l.ctx.Done()
}

// Fired reports whether the lifetime has torn down.
func (l *Lifetime) Fired() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fired
}

// Teardown fires the signal. Calls after the first are no-ops.
func (l *Lifetime) Teardown() {
	l.mu.Lock()
	if l.fired {
		l.mu.Unlock()
		return
	}
	l.fired = true

	ids := make([]uint64, 0, len(l.hooks))
	for id := range l.hooks {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	hooks := make([]func(), 0, len(ids))
	for _, id := range ids {
		hooks = append(hooks, l.hooks[id])
	}
	l.hooks = nil
	l.mu.Unlock()

	if l.stopParent != nil {
		l.stopParent()
	}
	l.cancel()

	for _, hook := range hooks {
		hook()
	}
}

// onTeardown registers fn to run when the lifetime fires and returns a
// function that unregisters it. If the lifetime already fired, fn runs
// immediately and the returned function does nothing.
func (l *Lifetime) onTeardown(fn func()) (stop func()) {
	l.mu.Lock()
	if l.fired {
		l.mu.Unlock()
		fn()
		return func() {}
	}

	id := l.next
	l.next++
	l.hooks[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		if l.hooks != nil {
			delete(l.hooks, id)
		}
		l.mu.Unlock()
	}
}

// pending returns the number of registered hooks.
func (l *Lifetime) pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hooks)
}
