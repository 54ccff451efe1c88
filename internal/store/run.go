package store

import (
	"time"

	"github.com/bountyops/bountyops/pkg/types"
)

// CreateRun appends a queued run to the activity's run list. If the
// activity was never initialized a list is created implicitly; the ledger
// normally guarantees this cannot happen.
func (s *Store) CreateRun(activityID, jobName, stepName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := &types.Run{
		ID:         newID(),
		ActivityID: activityID,
		JobName:    jobName,
		StepName:   stepName,
		Status:     types.RunQueued,
		StartTime:  time.Now(),
	}
	s.runs[activityID] = append(s.runs[activityID], run)
	return run.ID
}

// CompleteRun marks a run completed with the given conclusion and stamps
// its end time. Unknown activity or run IDs are a tolerated no-op; the
// returned bool reports whether the write landed.
func (s *Store) CompleteRun(activityID, runID string, conclusion types.Conclusion) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, run := range s.runs[activityID] {
		if run.ID != runID {
			continue
		}
		run.Status = types.RunCompleted
		run.Conclusion = conclusion
		now := time.Now()
		run.EndTime = &now
		secs := int(now.Sub(run.StartTime).Seconds())
		run.Duration = &secs
		return true
	}
	return false
}

// Runs returns snapshots of an activity's runs in creation order.
func (s *Store) Runs(activityID string) []types.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runSnapshots(activityID)
}

// runSnapshots copies the run list. Caller must hold the lock.
func (s *Store) runSnapshots(activityID string) []types.Run {
	runs := s.runs[activityID]
	out := make([]types.Run, len(runs))
	for i, r := range runs {
		out[i] = *r
	}
	return out
}
