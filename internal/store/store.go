// Package store holds every in-memory registry of the operations backend:
// programs, findings, scans, activities, runs, logs, and artifacts. One
// Store instance is built at process start and injected into every
// component that needs it; nothing is persisted.
package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/bountyops/bountyops/pkg/types"
)

// ErrNotFound is returned when a referenced identifier does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidState is returned when an operation is not permitted in the
// record's current lifecycle state.
var ErrInvalidState = errors.New("invalid state")

// Store is the process-wide registry set. All access goes through its
// mutex; individual operations are single-step updates, so there are no
// transactions.
type Store struct {
	mu sync.RWMutex

	programs []types.Program
	findings []*types.Finding
	scans    map[string]*types.Scan

	activities []*types.Activity
	runs       map[string][]*types.Run
	logs       map[string][]types.LogEntry
	artifacts  map[string]*types.Artifact

	findingSeq int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		scans:     make(map[string]*types.Scan),
		runs:      make(map[string][]*types.Run),
		logs:      make(map[string][]types.LogEntry),
		artifacts: make(map[string]*types.Artifact),
	}
}

// Seed loads the program catalog and any pre-existing findings. Intended
// to be called once before the store is shared.
func (s *Store) Seed(programs []types.Program, findings []types.Finding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.programs = append(s.programs, programs...)
	for i := range findings {
		f := findings[i]
		f.Severity = types.ClampSeverity(f.Severity)
		s.findings = append(s.findings, &f)
	}
	s.findingSeq = len(s.findings)
}

// newID generates a fresh identifier. Extracted as a variable so tests
// can make IDs deterministic.
var newID = func() string { return uuid.NewString() }
