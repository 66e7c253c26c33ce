package agent

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cbwinslow/lazylocker/pkg/store"
)

// State is the agent's in-memory working set: the derived master key,
// the loaded store, and the session clock. Every request handler
// acquires Mu once for the duration of that request, per spec.md §5 —
// requests are small and infrequent, so a single coarse lock keeps
// startedAt/shouldStop reads coherent with store decryption without
// needing finer-grained synchronization.
type State struct {
	Mu        sync.Mutex
	Key       []byte
	Store     *store.SecretsStore
	StartedAt time.Time
	TTL       time.Duration

	shouldStop atomic.Bool
}

// NewState creates a fresh agent state with the clock starting now.
func NewState(key []byte, st *store.SecretsStore, ttl time.Duration) *State {
	return &State{
		Key:       key,
		Store:     st,
		StartedAt: time.Now(),
		TTL:       ttl,
	}
}

// Uptime returns how long the agent has been running.
func (s *State) Uptime() time.Duration {
	return time.Since(s.StartedAt)
}

// TTLRemaining returns the time left in the session; it can be
// negative once the session has expired.
func (s *State) TTLRemaining() time.Duration {
	return s.TTL - s.Uptime()
}

// Expired reports whether the session TTL has elapsed.
func (s *State) Expired() bool {
	return s.Uptime() > s.TTL
}

// ShouldStop reports whether the agent has been asked to wind down.
func (s *State) ShouldStop() bool {
	return s.shouldStop.Load()
}

// RequestStop marks the agent for shutdown on its next loop iteration.
func (s *State) RequestStop() {
	s.shouldStop.Store(true)
}
