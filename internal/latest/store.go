package latest

import "sync"

// Store keeps the most recent reading per broker subject.
// It provides command-query separation for sample access.
type Store struct {
	mu      sync.RWMutex
	samples map[string][]float32
}

// NewStore creates an empty latest-sample store.
func NewStore() *Store {
	return &Store{samples: make(map[string][]float32)}
}

// Set stores the latest reading for a subject (command).
// Earlier readings for the subject are replaced.
func (s *Store) Set(subject string, values []float32) {
	copied := make([]float32, len(values))
	copy(copied, values)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples[subject] = copied
}

// Get retrieves the latest reading for a subject (query).
// Returns nil if no reading has arrived yet.
func (s *Store) Get(subject string) []float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.samples[subject]
}

// Len returns how many subjects have at least one reading (query).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples)
}

// Vector assembles a flat measurement vector over the given subjects in
// order, widths[i] values per subject (query). Subjects without a reading
// yet, or with a reading of the wrong width, contribute zeros.
func (s *Store) Vector(subjects []string, widths []int) []float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, w := range widths {
		total += w
	}

	vector := make([]float32, total)
	base := 0
	for i, subject := range subjects {
		if sample := s.samples[subject]; len(sample) == widths[i] {
			copy(vector[base:], sample)
		}
		base += widths[i]
	}
	return vector
}
