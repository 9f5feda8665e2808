// Package appstate holds the process-wide runtime state shared by the
// HTTP handlers: server identity, store dialect and the last seed run.
// All mutation goes through the mutex; handlers only ever read snapshots.
package appstate

import (
	"sync"
	"time"
)

// State is the mutable application state. The zero value is usable.
type State struct {
	mu sync.RWMutex

	version   string
	dialect   string
	startedAt time.Time

	lastSeedAt    time.Time
	seededCatalog int
}

// New creates a State stamped with the server start time.
func New(version, dialect string) *State {
	return &State{
		version:   version,
		dialect:   dialect,
		startedAt: time.Now().UTC(),
	}
}

// Snapshot is a point-in-time copy of the state for handlers to render.
type Snapshot struct {
	Version       string    `json:"version"`
	Dialect       string    `json:"dialect"`
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	LastSeedAt    time.Time `json:"last_seed_at,omitzero"`
	SeededCatalog int       `json:"seeded_catalog"`
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Version:       s.version,
		Dialect:       s.dialect,
		StartedAt:     s.startedAt,
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		LastSeedAt:    s.lastSeedAt,
		SeededCatalog: s.seededCatalog,
	}
}

// RecordSeed notes that the template catalog was (re-)seeded with n
// templates.
func (s *State) RecordSeed(n int) {
	s.mu.Lock()
	s.lastSeedAt = time.Now().UTC()
	s.seededCatalog = n
	s.mu.Unlock()
}
