package rxport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Manager is the central rxport coordinator.
// It owns the bus, the port registry and the lifetime that tears both down.
// Multiple Manager instances can coexist in the same process; each is an
// isolated session with its own channels and registry.
type Manager struct {
	// bus routes notices for every port opened through this manager
	bus *Bus

	// registry holds the latest instance of each port type
	registry *Registry

	// parent cancels the session's lifetime when done
	parent context.Context

	// lifetime is the current session's teardown signal
	lifetime   *Lifetime
	lifetimeMu sync.RWMutex

	logger *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used by the manager and its bus.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithContext ties every session lifetime to ctx: cancelling ctx tears the
// current session down as if Shutdown had been called.
func WithContext(ctx context.Context) ManagerOption {
	return func(m *Manager) {
		m.parent = ctx
	}
}

// NewManager creates a manager. Call Initialize before opening ports, or
// use NewBuilder, which does so.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		registry: NewRegistry(),
		parent:   context.Background(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.bus = NewBus(WithBusLogger(m.logger))
	return m
}

// Initialize starts a session: the registry is cleared and, unless the
// current lifetime is still live, a fresh lifetime is attached to the bus.
// It is the initialization hook that must run before any port opens.
func (m *Manager) Initialize() {
	m.registry.Reset()

	m.lifetimeMu.Lock()
	if m.lifetime == nil || m.lifetime.Fired() {
		m.lifetime = NewLifetime(m.parent)
		m.bus.Attach(m.lifetime)
	}
	m.lifetimeMu.Unlock()

	m.logger.Debug("rxport: session initialized")
}

// Shutdown fires the teardown signal. Every subscription created during the
// session completes and every port opened through the manager closes.
// Shutdown is idempotent.
func (m *Manager) Shutdown() {
	life := m.Lifetime()
	if life == nil || life.Fired() {
		return
	}
	life.Teardown()

	m.logger.Debug("rxport: session shut down", "ports", m.registry.Len())
}

// Bus returns the manager's bus.
func (m *Manager) Bus() *Bus {
	return m.bus
}

// Registry returns the manager's port registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Lifetime returns the current session's teardown signal, or nil before
// Initialize.
func (m *Manager) Lifetime() *Lifetime {
	m.lifetimeMu.RLock()
	defer m.lifetimeMu.RUnlock()
	return m.lifetime
}

// Open opens p on the manager's bus and records it in the registry,
// replacing any other instance of the same type. It returns p for chaining.
//
// Open panics with an error wrapping ErrPrecondition if p is already open
// or not valid, and with ErrUnavailable if no session is live: before the
// first Initialize, or after Shutdown until the next Initialize.
// If Bind panics, the subscriptions it made are closed before the panic
// propagates.
func Open[P Port](m *Manager, p P) P {
	m.open(p)
	return p
}

func (m *Manager) open(p Port) {
	base := p.portBase()
	if base.IsOpen() {
		violate("port %T is already open", p)
	}
	if !p.Valid() {
		violate("port %T is not valid", p)
	}

	life := m.Lifetime()
	if life == nil || life.Fired() {
		panic(ErrUnavailable)
	}

	b := &Binder{bus: m.bus}
	bound := false
	defer func() {
		if !bound {
			b.closeAll()
		}
	}()
	p.Bind(b)
	bound = true

	id := base.markOpen(b.subs)
	base.arm(life.onTeardown(base.Close))
	m.registry.put(p)

	m.logger.Debug("rxport: port opened",
		"port", fmt.Sprintf("%T", p),
		"id", id,
		"subscriptions", len(b.subs))
}
