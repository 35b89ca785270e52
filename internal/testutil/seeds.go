// Package testutil holds helpers shared by package tests.
package testutil

import (
	"sync"

	"github.com/primait/avrogen/internal/random"
)

// SeedSequence hands out a reproducible series of random states, so a test
// can cover many seeds and still name the failing one.
//
// Thread-safety: all methods are safe for concurrent use.
type SeedSequence struct {
	mu    sync.Mutex
	start uint64
	next  uint64
}

// NewSeedSequence returns a sequence whose first seed is start.
func NewSeedSequence(start uint64) *SeedSequence {
	return &SeedSequence{start: start, next: start}
}

// Next returns the next seed and the state it produces.
func (s *SeedSequence) Next() (uint64, random.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed := s.next
	s.next++
	return seed, random.NewState(seed)
}

// Reset rewinds the sequence to its first seed.
func (s *SeedSequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = s.start
}
