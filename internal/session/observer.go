package session

import (
	"slices"
	"time"

	"github.com/quentinrf/sensor-panel/internal/domain"
)

// EventKind says what changed in a session
type EventKind string

const (
	EventColorChanged EventKind = "color_changed"
	EventLogAppended  EventKind = "log_appended"
)

// Event is published to observers after an accepted sample
type Event struct {
	Kind      EventKind
	SessionID string
	At        time.Time
	Color     domain.DisplayColor
	Entry     *domain.LogEntry // set for EventLogAppended; a copy of the stored entry
}

// Observer receives session events in acceptance order
// Notify runs while the session is locked: it must not call back into
// the session and should return quickly.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

// Subscribe registers an observer and returns a function removing it
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	_, unsubscribe = s.SubscribeSnapshot(o)
	return unsubscribe
}

// SubscribeSnapshot registers an observer and returns the display color at
// the moment of registration. Every event o receives happened after that color.
func (s *Session) SubscribeSnapshot(o Observer) (color domain.DisplayColor, unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o
	color = s.color
	s.mu.Unlock()

	var removed bool
	return color, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if removed {
			return
		}
		removed = true
		delete(s.observers, id)
	}
}

// publish must be called with s.mu held
func (s *Session) publish(e Event) {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	// Subscription order
	slices.Sort(ids)
	for _, id := range ids {
		ev := e
		if e.Entry != nil {
			ev.Entry = e.Entry.Clone()
		}
		s.observers[id].Notify(ev)
	}
}
