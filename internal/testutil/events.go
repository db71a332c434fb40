package testutil

import "sync"

// EventLog records the order in which fakes are called. Safe for concurrent use.
type EventLog struct {
	mu     sync.Mutex
	events []string
}

// Add appends an event.
func (l *EventLog) Add(event string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// Events returns a copy of the recorded events.
func (l *EventLog) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}
