package id

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID hands out random version 4 UUIDs.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Sequence is a deterministic generator for tests: prefix-1, prefix-2, ...
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func (s *Sequence) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.Prefix + "-" + strconv.Itoa(s.n)
}
