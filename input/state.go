package input

import "sync"

// Key identifies a physical key. The host maps its own key codes onto it.
type Key int

// State holds the set of currently pressed keys. Key events and the
// simulation step may run on different goroutines, so access is guarded.
type State struct {
	mu      sync.RWMutex
	pressed map[Key]bool
}

func NewState() *State {
	return &State{pressed: make(map[Key]bool)}
}

// Set records the pressed state of a key.
func (s *State) Set(k Key, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if down {
		s.pressed[k] = true
		return
	}
	delete(s.pressed, k)
}

func (s *State) Press(k Key)   { s.Set(k, true) }
func (s *State) Release(k Key) { s.Set(k, false) }

// Pressed reports whether k is currently held. A nil State has nothing held.
func (s *State) Pressed(k Key) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pressed[k]
}

// Reset releases every key.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.pressed)
}
