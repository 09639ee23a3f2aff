package pricing

import (
	"math/rand"
	"sync"
)

// NewLockedRand returns a rand.Rand whose source is safe for concurrent use.
// The HTTP serve mode shares one generator across request goroutines, and a
// plain math/rand source is unsynchronized.
func NewLockedRand(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)})
}

// lockedSource guards a rand.Source64 with a mutex, the same way the
// math/rand global generator does.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}
