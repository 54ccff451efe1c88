package store

import (
	"fmt"
	"time"

	"github.com/bountyops/bountyops/pkg/types"
)

// AddFinding appends a new finding, assigning the next monotonic ID and
// clamping severity into [0, 10]. Returns the stored snapshot.
func (s *Store) AddFinding(f types.Finding) types.Finding {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.findingSeq++
	f.ID = fmt.Sprintf("f%d", s.findingSeq)
	f.Severity = types.ClampSeverity(f.Severity)
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now()
	}
	stored := f
	s.findings = append(s.findings, &stored)
	return f
}

// Findings returns findings in insertion order, optionally filtered by
// status.
func (s *Store) Findings(status string) []types.Finding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []types.Finding{}
	for _, f := range s.findings {
		if status != "" && string(f.Status) != status {
			continue
		}
		out = append(out, *f)
	}
	return out
}

// Finding returns the finding with the given ID.
func (s *Store) Finding(id string) (types.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.findings {
		if f.ID == id {
			return *f, nil
		}
	}
	return types.Finding{}, fmt.Errorf("finding %q: %w", id, ErrNotFound)
}

// ApproveFinding marks a finding approved for submission and stamps the
// approval time. Approving an already approved finding is idempotent on
// the status field.
func (s *Store) ApproveFinding(id string) (types.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.findings {
		if f.ID != id {
			continue
		}
		f.Status = types.FindingApproved
		now := time.Now()
		f.UpdatedAt = &now
		return *f, nil
	}
	return types.Finding{}, fmt.Errorf("finding %q: %w", id, ErrNotFound)
}
