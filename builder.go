package rxport

import (
	"context"
	"log/slog"
)

// Builder configures rxport before initialization.
// Use NewBuilder() to create a builder and chain configuration methods.
type Builder struct {
	logger *slog.Logger
	ctx    context.Context
	ports  []Port
	hooks  []func(*Manager)

	bundles []func(*Manager) *Bundle
}

// NewBuilder creates a new rxport builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Logger sets the logger for the manager and its bus.
func (b *Builder) Logger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Context ties the session lifetime to ctx.
//
// Example:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	mngr := rxport.NewBuilder().Context(ctx).Init()
func (b *Builder) Context(ctx context.Context) *Builder {
	b.ctx = ctx
	return b
}

// Bundle adds a bundle to the builder.
// Bundles are built during Init, before ports added with Port.
func (b *Builder) Bundle(callback func(*Manager) *Bundle) *Builder {
	b.bundles = append(b.bundles, callback)
	return b
}

// Port adds a port opened during Init, in the order added.
func (b *Builder) Port(p Port) *Builder {
	b.ports = append(b.ports, p)
	return b
}

// PostInit adds a hook run after every port has opened.
func (b *Builder) PostInit(hook func(*Manager)) *Builder {
	b.hooks = append(b.hooks, hook)
	return b
}

// Init creates the manager, initializes its session, builds the bundles and
// opens the configured ports. Post-init hooks run last, bundle hooks first.
// Init panics like Open if a configured port is invalid.
func (b *Builder) Init() *Manager {
	var opts []ManagerOption
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.ctx != nil {
		opts = append(opts, WithContext(b.ctx))
	}

	m := NewManager(opts...)
	m.Initialize()

	var hooks []func(*Manager)
	for _, f := range b.bundles {
		bund := f(m)
		bund.build(m)
		hooks = append(hooks, bund.postInitHooks...)
	}

	for _, p := range b.ports {
		m.open(p)
	}

	hooks = append(hooks, b.hooks...)
	for _, hook := range hooks {
		hook(m)
	}

	return m
}
