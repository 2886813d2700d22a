package session

import (
	"github.com/liftlog/liftlog-go/schema"
)

// Snapshot is a point-in-time view of the session handed to listeners.
// The user is a copy; mutating it does not touch session state.
type Snapshot struct {
	Status Status
	User   *schema.User
}

// Listener receives a snapshot whenever status or user changes.
type Listener func(Snapshot)

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing stops future notifications immediately and is always safe,
// including from within the listener itself.
func (s *Session) Subscribe(listener Listener) func() {
	id := s.nextListener.Add(1)
	s.listeners.Put(id, listener)
	return func() {
		s.listeners.Delete(id)
	}
}

// notify delivers the current snapshot to every subscribed listener. It is
// called after state mutations, outside the state lock, so listeners may
// call back into the session freely.
func (s *Session) notify(snapshot Snapshot) {
	for _, listener := range s.listeners.Values() {
		listener(snapshot)
	}
}
