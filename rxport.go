// Package rxport provides lifecycle-scoped notice channels and ports.
//
// rxport is a small publish/subscribe layer built around three ideas:
//   - A Bus with one broadcast channel per (notice, payload type) pair
//   - Ports that bundle subscriptions and release them together
//   - A teardown signal that completes every subscription still alive
//
// # Quick Start
//
// Declare notices as an integer enum:
//
//	type GameNotice uint8
//
//	const (
//	    RoundStarted GameNotice = iota
//	    ScoreChanged
//	)
//
// Write a port:
//
//	type ScorePort struct {
//	    rxport.PortBase
//	    Board *Scoreboard
//	}
//
//	func (p *ScorePort) Valid() bool { return p.Board != nil }
//
//	func (p *ScorePort) Bind(b *rxport.Binder) {
//	    rxport.On(b, ScoreChanged, func(score int) { p.Board.Set(score) })
//	    rxport.OnNotice(b, RoundStarted, p.Board.Reset)
//	}
//
// Initialize a manager and publish:
//
//	mngr := rxport.NewBuilder().
//	    Port(&ScorePort{Board: board}).
//	    Init()
//	defer mngr.Shutdown()
//
//	rxport.Publish(mngr.Bus(), RoundStarted)
//	_ = rxport.PublishWith(mngr.Bus(), ScoreChanged, 42)
//
// # Channels
//
// A channel is keyed by the notice value and the payload type, so
// ScoreChanged/int and ScoreChanged/string are independent. Channels are
// created on first use and never removed.
//
// # Ports
//
// Ports move between PortClosed and PortOpen. Opening calls Bind, marks the
// port open and records it in the Registry, replacing any earlier instance
// of the same type. Closing cancels the subscriptions made in Bind. The
// registry is only cleared by Manager.Initialize.
//
// # Teardown
//
// Manager.Shutdown fires the session Lifetime. Outstanding subscriptions
// complete, without error, and ports opened through the manager close.
package rxport

// Version is the rxport version.
const Version = "1.0.0"
