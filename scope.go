package rxport

import (
	"sync"
)

// Scope owns a group of ports and closes them together.
// It gives ports a deterministic end of life: close the scope where the
// owner goes away instead of relying on the teardown signal.
//
//	scope := mngr.NewScope()
//	defer scope.Close()
//
//	rxport.OpenIn(scope, &HUDPort{HUD: hud})
//	rxport.OpenIn(scope, &AudioPort{Mixer: mixer})
type Scope struct {
	manager *Manager

	mu     sync.Mutex
	ports  []Port
	closed bool
}

// NewScope creates an empty scope whose ports open through m.
func (m *Manager) NewScope() *Scope {
	return &Scope{manager: m}
}

// OpenIn opens p through the scope's manager and hands it to the scope.
// A port opened into a closed scope is closed again immediately.
func OpenIn[P Port](s *Scope, p P) P {
	s.manager.open(p)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		p.portBase().Close()
		return p
	}
	s.ports = append(s.ports, p)
	s.mu.Unlock()

	return p
}

// Len returns the number of ports owned by the scope.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ports)
}

// Closed reports whether the scope has been closed.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close closes every owned port, most recently opened first.
// Calling Close more than once does nothing.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	ports := s.ports
	s.ports = nil
	s.mu.Unlock()

	for i := len(ports) - 1; i >= 0; i-- {
		ports[i].portBase().Close()
	}
}
