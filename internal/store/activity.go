package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/bountyops/bountyops/pkg/types"
)

// ActivityFilter selects activities for listing. Empty fields match
// everything; supplied fields are combined with AND.
type ActivityFilter struct {
	Type      string
	Status    string
	ProgramID string
	Limit     int
	Offset    int
}

// ActivityPage is one page of a filtered activity listing.
type ActivityPage struct {
	Activities []types.Activity `json:"activities"`
	Total      int              `json:"total"`
	HasMore    bool             `json:"hasMore"`
}

// ActivityDetail bundles an activity with its runs, logs, and resolved
// artifacts for detail views.
type ActivityDetail struct {
	Activity  types.Activity   `json:"activity"`
	Runs      []types.Run      `json:"runs"`
	Logs      []types.LogEntry `json:"logs"`
	Artifacts []types.Artifact `json:"artifacts"`
}

// CreateActivity allocates a new tracked activity in the queued state and
// initializes its run and log sequences. Pure allocation; cannot fail.
func (s *Store) CreateActivity(activityType, title, programID, triggeredBy string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &types.Activity{
		ID:          newID(),
		Type:        activityType,
		Title:       title,
		ProgramID:   programID,
		TriggeredBy: triggeredBy,
		Status:      types.ActivityQueued,
		StartTime:   time.Now(),
		Artifacts:   []string{},
	}
	s.activities = append(s.activities, a)
	s.runs[a.ID] = []*types.Run{}
	s.logs[a.ID] = []types.LogEntry{}
	return a.ID
}

// UpdateActivityStatus transitions an activity. A terminal status stamps
// the end time and whole-second duration. Unknown IDs are a tolerated
// no-op; the returned bool reports whether the update landed.
func (s *Store) UpdateActivityStatus(id string, status types.ActivityStatus, conclusion types.Conclusion) (types.Activity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findActivity(id)
	if a == nil {
		return types.Activity{}, false
	}
	a.Status = status
	if conclusion != "" {
		a.Conclusion = conclusion
	}
	if status.Terminal() {
		now := time.Now()
		a.EndTime = &now
		secs := int(now.Sub(a.StartTime).Seconds())
		a.Duration = &secs
	}
	return s.activitySnapshot(a), true
}

// Activity returns a snapshot of one activity with its run count
// computed from the run index.
func (s *Store) Activity(id string) (types.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.findActivity(id)
	if a == nil {
		return types.Activity{}, fmt.Errorf("activity %q: %w", id, ErrNotFound)
	}
	return s.activitySnapshot(a), nil
}

// ListActivities filters, sorts, and paginates the activity ledger.
// Results are ordered by start time descending with insertion order
// breaking ties.
func (s *Store) ListActivities(f ActivityFilter) ActivityPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]types.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if f.ProgramID != "" && a.ProgramID != f.ProgramID {
			continue
		}
		matched = append(matched, s.activitySnapshot(a))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].StartTime.After(matched[j].StartTime)
	})

	total := len(matched)
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	page := []types.Activity{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = matched[offset:end]
	}

	return ActivityPage{
		Activities: page,
		Total:      total,
		HasMore:    offset+limit < total,
	}
}

// CancelActivity cancels a queued or in-progress activity, recording an
// informational log line. Terminal activities cannot be cancelled.
func (s *Store) CancelActivity(id string) (types.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findActivity(id)
	if a == nil {
		return types.Activity{}, fmt.Errorf("activity %q: %w", id, ErrNotFound)
	}
	if a.Status != types.ActivityQueued && a.Status != types.ActivityInProgress {
		return types.Activity{}, fmt.Errorf("activity %q is %s: %w", id, a.Status, ErrInvalidState)
	}

	a.Status = types.ActivityCancelled
	a.Conclusion = types.ConclusionCancelled
	now := time.Now()
	a.EndTime = &now
	secs := int(now.Sub(a.StartTime).Seconds())
	a.Duration = &secs

	s.logs[id] = append(s.logs[id], types.LogEntry{
		Timestamp: now,
		Level:     types.LogInfo,
		Message:   "Activity cancelled by user",
	})
	return s.activitySnapshot(a), nil
}

// Detail returns an activity together with its runs, logs, and resolved
// artifacts.
func (s *Store) Detail(id string) (ActivityDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.findActivity(id)
	if a == nil {
		return ActivityDetail{}, fmt.Errorf("activity %q: %w", id, ErrNotFound)
	}

	d := ActivityDetail{
		Activity:  s.activitySnapshot(a),
		Runs:      s.runSnapshots(id),
		Logs:      append([]types.LogEntry{}, s.logs[id]...),
		Artifacts: s.resolveArtifacts(a),
	}
	return d, nil
}

// findActivity locates an activity by ID. Caller must hold the lock.
func (s *Store) findActivity(id string) *types.Activity {
	for _, a := range s.activities {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// activitySnapshot copies an activity with its run count derived from the
// run index at read time. Caller must hold the lock.
func (s *Store) activitySnapshot(a *types.Activity) types.Activity {
	out := *a
	out.Artifacts = append([]string{}, a.Artifacts...)
	out.RunCount = len(s.runs[a.ID])
	return out
}
