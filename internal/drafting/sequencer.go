package drafting

import "sync"

// Sequencer issues monotonically increasing sequence numbers per key.
// Callers tag each outbound request with Next(key) and drop any response
// whose number is no longer the latest, so a slow earlier request can never
// overwrite the result of a later one.
type Sequencer struct {
	mu  sync.Mutex
	seq map[string]uint64
}

// NewSequencer returns an empty Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{seq: make(map[string]uint64)}
}

// Next increments and returns the sequence number for key.
func (s *Sequencer) Next(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[key]++
	return s.seq[key]
}

// IsLatest reports whether n is still the most recently issued number for key.
func (s *Sequencer) IsLatest(key string, n uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[key] == n
}
