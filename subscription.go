package rxport

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is an active attachment of a callback to a channel.
// Call Close to stop receiving notices. A subscription also ends on its own
// when the bus lifetime tears down or its TakeUntil context is done; in that
// case it completes and its OnCompleted callback runs.
type Subscription struct {
	id uuid.UUID

	closed atomic.Bool
	done   chan struct{}
	once   sync.Once

	// detach removes the observer from its channel
	detach func()

	// release unhooks the subscription from lifetime and context signals
	mu      sync.Mutex
	release []func()

	onCompleted func()
}

func newSubscription() *Subscription {
	return &Subscription{
		id:   uuid.New(),
		done: make(chan struct{}),
	}
}

// ID returns the unique identifier of the subscription.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Closed reports whether the subscription no longer receives notices.
func (s *Subscription) Closed() bool {
	return s.closed.Load()
}

// Done returns a channel closed once the subscription has ended and its
// completion callback, if any, has returned.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close detaches the subscription from its channel.
// The completion callback does not run. Close is idempotent and always
// returns nil.
func (s *Subscription) Close() error {
	s.end(false)
	return nil
}

// complete ends the subscription and runs its completion callback.
func (s *Subscription) complete() {
	s.end(true)
}

func (s *Subscription) end(completed bool) {
	s.once.Do(func() {
		s.closed.Store(true)
		if s.detach != nil {
			s.detach()
		}

		s.mu.Lock()
		release := s.release
		s.release = nil
		s.mu.Unlock()

		for _, fn := range release {
			fn()
		}
		if completed && s.onCompleted != nil {
			s.onCompleted()
		}
		close(s.done)
	})
}

// addRelease records fn to run when the subscription ends.
// If it already ended, fn runs immediately.
func (s *Subscription) addRelease(fn func()) {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		fn()
		return
	}
	s.release = append(s.release, fn)
	s.mu.Unlock()
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*Subscription)

// OnCompleted sets a callback run once when the subscription completes
// because the lifetime tore down or its TakeUntil context ended.
// It does not run on Close.
func OnCompleted(fn func()) SubscribeOption {
	return func(s *Subscription) {
		s.onCompleted = fn
	}
}
