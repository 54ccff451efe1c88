package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/bountyops/bountyops/pkg/types"
)

// CreateScan queues a new scan against a program. Fails if the program is
// unknown; this is the only scan operation that validates its reference.
func (s *Store) CreateScan(programID string) (types.Scan, error) {
	if _, err := s.Program(programID); err != nil {
		return types.Scan{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scan := &types.Scan{
		ID:        newID(),
		ProgramID: programID,
		Status:    types.ScanQueued,
		StartTime: time.Now(),
	}
	s.scans[scan.ID] = scan
	return *scan, nil
}

// Scan returns a snapshot of the scan with the given ID.
func (s *Store) Scan(id string) (types.Scan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scan, ok := s.scans[id]
	if !ok {
		return types.Scan{}, fmt.Errorf("scan %q: %w", id, ErrNotFound)
	}
	return *scan, nil
}

// Scans returns all scans sorted by start time descending.
func (s *Store) Scans() []types.Scan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Scan, 0, len(s.scans))
	for _, scan := range s.scans {
		out = append(out, *scan)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out
}

// StopScan requests a cooperative stop. The running simulation observes
// the status flag at its next stage boundary. Stopping an already
// terminal scan is a no-op.
func (s *Store) StopScan(id string) (types.Scan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[id]
	if !ok {
		return types.Scan{}, fmt.Errorf("scan %q: %w", id, ErrNotFound)
	}
	if !scan.Status.Terminal() {
		scan.Status = types.ScanStopped
	}
	return *scan, nil
}

// AdvanceScan moves a scan to the given stage status and progress,
// deriving the asset and vulnerability counters from progress. Progress
// never decreases. Returns the updated snapshot, or false if the scan is
// unknown or already terminal.
func (s *Store) AdvanceScan(id string, status types.ScanStatus, progress int) (types.Scan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[id]
	if !ok || scan.Status.Terminal() {
		return types.Scan{}, false
	}
	scan.Status = status
	if progress > scan.Progress {
		scan.Progress = progress
	}
	scan.AssetsFound = types.AssetsForProgress(scan.Progress)
	scan.VulnerabilitiesFound = types.VulnerabilitiesForProgress(scan.Progress)
	return *scan, true
}

// FailScan marks a scan as failed. Terminal scans are left untouched.
func (s *Store) FailScan(id string) (types.Scan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[id]
	if !ok {
		return types.Scan{}, false
	}
	if !scan.Status.Terminal() {
		scan.Status = types.ScanFailed
	}
	return *scan, true
}

// LinkScanActivity records the activity that tracks this scan.
func (s *Store) LinkScanActivity(id, activityID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	scan, ok := s.scans[id]
	if !ok {
		return false
	}
	scan.ActivityID = activityID
	return true
}
