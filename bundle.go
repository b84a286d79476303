package rxport

import (
	"github.com/df-mc/dragonfly/server/cmd"
)

// Bundle groups the ports, commands and hooks of one gameplay feature.
// Bundles are registered with the builder and opened in registration order.
type Bundle struct {
	name string

	// ports are opened on the manager, in the order added
	ports []Port

	// commands are registered with Dragonfly's command system
	commands []cmd.Command

	postInitHooks []func(*Manager)
}

// NewBundle creates a new bundle with the given name.
func NewBundle(name string) *Bundle {
	return &Bundle{name: name}
}

// Name returns the bundle name.
func (b *Bundle) Name() string {
	return b.name
}

// Port adds a port opened when the bundle is built.
func (b *Bundle) Port(p Port) *Bundle {
	b.ports = append(b.ports, p)
	return b
}

// Command registers a Dragonfly command for this bundle.
// Commands are registered with Dragonfly when the bundle is built.
func (b *Bundle) Command(command cmd.Command) *Bundle {
	b.commands = append(b.commands, command)
	return b
}

// PostInit adds a hook run after every bundle has been built.
func (b *Bundle) PostInit(hook func(*Manager)) *Bundle {
	b.postInitHooks = append(b.postInitHooks, hook)
	return b
}

// Build returns a callback function that returns this bundle.
// This allows for cleaner inline bundle initialization:
//
//	bund := rxport.NewBundle("chat").
//	    Port(&ChatFilterPort{Words: words}).
//	    Build()
//
//	mngr := rxport.NewBuilder().
//	    Bundle(bund).
//	    Init()
func (b *Bundle) Build() func(*Manager) *Bundle {
	return func(*Manager) *Bundle {
		return b
	}
}

// build registers the bundle's commands and opens its ports on m.
func (b *Bundle) build(m *Manager) {
	for _, c := range b.commands {
		cmd.Register(c)
	}
	for _, p := range b.ports {
		m.open(p)
	}

	m.logger.Debug("rxport: bundle built",
		"bundle", b.name,
		"ports", len(b.ports),
		"commands", len(b.commands))
}
