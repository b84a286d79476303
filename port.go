package rxport

import (
	"sync"

	"github.com/google/uuid"
)

// Port is a unit that, when opened, subscribes to a set of channels and
// releases all of them together when closed.
//
// Ports are plain structs embedding PortBase:
//
//	type ScorePort struct {
//	    rxport.PortBase
//	    Board *Scoreboard
//	}
//
//	func (p *ScorePort) Valid() bool { return p.Board != nil }
//
//	func (p *ScorePort) Bind(b *rxport.Binder) {
//	    rxport.On(b, ScoreChanged, func(score int) {
//	        p.Board.Set(score)
//	    })
//	}
//
// The registry keeps at most one instance per concrete port type, so a port
// type is usually a pointer to a named struct.
type Port interface {
	// Valid reports whether the port has everything it needs to open.
	Valid() bool

	// Bind subscribes the port to its channels. It runs once per Open.
	Bind(b *Binder)

	portBase() *PortBase
}

// PortBase carries the state shared by every port.
// Embed it by value; the zero value is a closed port.
type PortBase struct {
	mu     sync.Mutex
	id     uuid.UUID
	state  PortState
	subs   []*Subscription
	disarm func()
}

func (p *PortBase) portBase() *PortBase {
	return p
}

// ID returns the identifier assigned when the port first opened.
// It is uuid.Nil for a port that never opened.
func (p *PortBase) ID() uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// State returns the current state of the port.
func (p *PortBase) State() PortState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsOpen reports whether the port is open.
func (p *PortBase) IsOpen() bool {
	return p.State() == PortOpen
}

// IsClosed reports whether the port is closed.
func (p *PortBase) IsClosed() bool {
	return p.State() == PortClosed
}

// Subscriptions returns the number of subscriptions the port holds.
func (p *PortBase) Subscriptions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

// Close cancels every subscription made while opening and marks the port
// closed. Closing a closed port does nothing. The port stays in the registry.
func (p *PortBase) Close() {
	p.mu.Lock()
	if p.state == PortClosed {
		p.mu.Unlock()
		return
	}
	subs := p.subs
	disarm := p.disarm
	p.subs = nil
	p.disarm = nil
	p.state = PortClosed
	p.mu.Unlock()

	if disarm != nil {
		disarm()
	}
	for _, sub := range subs {
		_ = sub.Close()
	}
}

// markOpen stores the bound subscriptions and flips the port to open.
func (p *PortBase) markOpen(subs []*Subscription) uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id == uuid.Nil {
		p.id = uuid.New()
	}
	p.subs = subs
	p.state = PortOpen
	return p.id
}

// arm records the function that unhooks the port from the teardown signal.
func (p *PortBase) arm(disarm func()) {
	p.mu.Lock()
	if p.state == PortClosed {
		// Teardown already closed the port while arming
		p.mu.Unlock()
		disarm()
		return
	}
	p.disarm = disarm
	p.mu.Unlock()
}

// Binder collects the subscriptions a port makes in its Bind hook.
type Binder struct {
	bus  *Bus
	subs []*Subscription
}

// Bus returns the bus the port is opening on.
func (b *Binder) Bus() *Bus {
	return b.bus
}

// Register hands subscriptions to the port. They are closed with the port.
func (b *Binder) Register(subs ...*Subscription) {
	for _, sub := range subs {
		if sub != nil {
			b.subs = append(b.subs, sub)
		}
	}
}

// Defer registers fn to run when the port closes, after every subscription
// registered before it has been closed.
func (b *Binder) Defer(fn func()) {
	sub := newSubscription()
	sub.addRelease(fn)
	b.Register(sub)
}

// closeAll closes every subscription registered so far.
func (b *Binder) closeAll() {
	for _, sub := range b.subs {
		_ = sub.Close()
	}
	b.subs = nil
}

// On subscribes fn to notices n carrying P and registers the subscription
// with the port being opened.
func On[P any, N Notice](b *Binder, n N, fn func(P), opts ...SubscribeOption) *Subscription {
	sub := OfPayload[P](b.bus, n).Subscribe(fn, opts...)
	b.Register(sub)
	return sub
}

// OnNotice subscribes fn to payload-less notices n and registers the
// subscription with the port being opened.
func OnNotice[N Notice](b *Binder, n N, fn func(), opts ...SubscribeOption) *Subscription {
	sub := Of(b.bus, n).Subscribe(func(Unit) { fn() }, opts...)
	b.Register(sub)
	return sub
}
