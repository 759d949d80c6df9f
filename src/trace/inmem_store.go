package trace

import "sync"

// InmemStore keeps events in memory.
type InmemStore struct {
	sync.RWMutex
	events []Event
}

// NewInmemStore ...
func NewInmemStore() *InmemStore {
	return &InmemStore{
		events: []Event{},
	}
}

// Record implements Recorder.
func (s *InmemStore) Record(e Event) error {
	s.Lock()
	defer s.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events implements Store.
func (s *InmemStore) Events() ([]Event, error) {
	s.RLock()
	defer s.RUnlock()
	return append([]Event(nil), s.events...), nil
}

// Len implements Store.
func (s *InmemStore) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.events)
}

// Close implements Store.
func (s *InmemStore) Close() error {
	return nil
}
