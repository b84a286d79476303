package rxport

import (
	"context"
	"slices"
	"sync"
)

// observer is one subscriber attached to a channel.
type observer[P any] struct {
	sub   *Subscription
	fn    func(P)
	until []context.Context
}

// expired reports whether any TakeUntil context of the observer is done.
func (o *observer[P]) expired() bool {
	for _, ctx := range o.until {
		if ctx.Err() != nil {
			return true
		}
	}
	return false
}

// channel is the broadcast subject for one (notice, payload type) pair.
type channel[P any] struct {
	key channelKey

	mu        sync.RWMutex
	observers []*observer[P]
}

func newChannel[P any](key channelKey) *channel[P] {
	return &channel[P]{key: key}
}

// attach appends an observer. Delivery follows attach order.
func (c *channel[P]) attach(o *observer[P]) {
	c.mu.Lock()
	c.observers = append(c.observers, o)
	c.mu.Unlock()
}

// detach removes an observer, keeping the order of the rest.
func (c *channel[P]) detach(o *observer[P]) {
	c.mu.Lock()
	c.observers = slices.DeleteFunc(c.observers, func(x *observer[P]) bool {
		return x == o
	})
	c.mu.Unlock()
}

// next delivers v to every observer attached at the time of the call.
// The lock is not held while callbacks run, so callbacks may publish,
// subscribe or close subscriptions, including on this channel.
func (c *channel[P]) next(v P) {
	c.mu.RLock()
	snapshot := slices.Clone(c.observers)
	c.mu.RUnlock()

	for _, o := range snapshot {
		if o.sub.Closed() {
			continue
		}
		if o.expired() {
			o.sub.complete()
			continue
		}
		o.fn(v)
	}
}

// subscribers returns the number of attached observers.
func (c *channel[P]) subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.observers)
}

// channelInfo is implemented by every channel[P] for type-erased access.
type channelInfo interface {
	info() ChannelInfo
}

func (c *channel[P]) info() ChannelInfo {
	return ChannelInfo{
		Notice:      c.key.notice,
		Payload:     c.key.payload,
		Subscribers: c.subscribers(),
	}
}
