package rxport

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

// Bus routes notices to subscribers through one channel per
// (notice, payload type) pair. Channels are created on first use and live
// as long as the bus.
type Bus struct {
	mu       sync.RWMutex
	channels map[channelKey]channelInfo
	lifetime *Lifetime

	logger *slog.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithBusLogger sets the logger used by the bus.
func WithBusLogger(l *slog.Logger) BusOption {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithLifetime attaches the teardown signal at construction.
func WithLifetime(l *Lifetime) BusOption {
	return func(b *Bus) {
		b.lifetime = l
	}
}

// NewBus creates an empty bus. A Lifetime must be attached, either with
// WithLifetime or Attach, before any stream is requested.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		channels: make(map[channelKey]channelInfo),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach installs the teardown signal that completes every subscription
// created from now on. Existing subscriptions stay bound to the lifetime
// they were created under.
func (b *Bus) Attach(l *Lifetime) {
	b.mu.Lock()
	b.lifetime = l
	b.mu.Unlock()
}

// Lifetime returns the attached teardown signal, or nil.
func (b *Bus) Lifetime() *Lifetime {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lifetime
}

// ChannelInfo describes one channel for diagnostics.
type ChannelInfo struct {
	Notice      any
	Payload     reflect.Type
	Subscribers int
}

// String returns the channel as notice/payload.
func (i ChannelInfo) String() string {
	return fmt.Sprintf("%v/%s (%d subscribers)", i.Notice, i.Payload, i.Subscribers)
}

// Channels returns a snapshot of every channel created on the bus.
func (b *Bus) Channels() []ChannelInfo {
	b.mu.RLock()
	chans := make([]channelInfo, 0, len(b.channels))
	for _, c := range b.channels {
		chans = append(chans, c)
	}
	b.mu.RUnlock()

	infos := make([]ChannelInfo, 0, len(chans))
	for _, c := range chans {
		infos = append(infos, c.info())
	}
	return infos
}

// channelFor returns the channel for (n, P), creating it on first use.
func channelFor[P any, N Notice](b *Bus, n N) *channel[P] {
	key := keyOf[P](n)

	b.mu.RLock()
	c, ok := b.channels[key]
	b.mu.RUnlock()
	if ok {
		return c.(*channel[P])
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// Another caller may have created it between the two locks
	if c, ok := b.channels[key]; ok {
		return c.(*channel[P])
	}

	ch := newChannel[P](key)
	b.channels[key] = ch
	b.logger.Debug("rxport: channel created", "channel", key.String())
	return ch
}

// Publish sends a payload-less notice to every subscriber of (n, Unit).
//
// Concurrency:
// Subscribers run synchronously on the calling goroutine, in subscription
// order. A subscriber that publishes to the same channel is invoked
// recursively.
func Publish[N Notice](b *Bus, n N) {
	channelFor[Unit](b, n).next(Unit{})
}

// PublishWith sends payload to every subscriber of (n, P).
// A nil payload fails with ErrInvalidArgument before any subscriber runs.
func PublishWith[N Notice, P any](b *Bus, n N, payload P) error {
	if isNil(payload) {
		return fmt.Errorf("%w: nil payload for notice %v", ErrInvalidArgument, n)
	}
	channelFor[P](b, n).next(payload)
	return nil
}

// Of returns the stream of payload-less notices n.
// It panics with ErrUnavailable if the bus has no lifetime attached.
func Of[N Notice](b *Bus, n N) Stream[Unit] {
	return OfPayload[Unit](b, n)
}

// OfPayload returns the stream of notices n carrying payloads of type P.
// It panics with ErrUnavailable if the bus has no lifetime attached.
//
// Usage:
//
//	sub := rxport.OfPayload[int](bus, ScoreChanged).Subscribe(func(score int) {
//	    fmt.Println("score:", score)
//	})
//	defer sub.Close()
func OfPayload[P any, N Notice](b *Bus, n N) Stream[P] {
	life := b.Lifetime()
	if life == nil {
		panic(ErrUnavailable)
	}
	return Stream[P]{
		ch:   channelFor[P](b, n),
		life: life,
	}
}
