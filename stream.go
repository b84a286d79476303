package rxport

import (
	"context"
)

// Stream is a lazy, unbounded sequence of notices from one channel.
// Nothing is attached until Subscribe is called, and every Subscribe call
// starts an independent subscription. All subscriptions complete when the
// bus lifetime tears down.
type Stream[P any] struct {
	ch    *channel[P]
	life  *Lifetime
	until []context.Context
}

// TakeUntil returns a stream whose subscriptions also complete when ctx is done.
func (s Stream[P]) TakeUntil(ctx context.Context) Stream[P] {
	until := make([]context.Context, 0, len(s.until)+1)
	until = append(until, s.until...)
	until = append(until, ctx)
	return Stream[P]{ch: s.ch, life: s.life, until: until}
}

// Subscribe attaches fn to the channel and returns the subscription handle.
// fn is called synchronously by Publish, in subscription order.
//
// If the lifetime already tore down, or a TakeUntil context is already done,
// the returned subscription is already completed. Subscribe panics with
// ErrUnavailable on a zero Stream, which has no channel or lifetime.
func (s Stream[P]) Subscribe(fn func(P), opts ...SubscribeOption) *Subscription {
	if s.ch == nil || s.life == nil {
		panic(ErrUnavailable)
	}

	sub := newSubscription()
	for _, opt := range opts {
		opt(sub)
	}

	o := &observer[P]{sub: sub, fn: fn, until: s.until}
	if s.life.Fired() || o.expired() {
		sub.complete()
		return sub
	}

	sub.detach = func() { s.ch.detach(o) }
	s.ch.attach(o)

	for _, ctx := range s.until {
		stop := context.AfterFunc(ctx, sub.complete)
		sub.addRelease(func() { stop() })
	}
	sub.addRelease(s.life.onTeardown(sub.complete))

	return sub
}
