package store

import (
	"fmt"
	"time"

	"github.com/bountyops/bountyops/pkg/types"
)

// AppendLog appends a timestamped log line to the activity's sequence.
// The append always lands, even for an unknown activity (a fresh sequence
// is created); losing an audit line is worse than tracking an orphan. The
// returned bool reports whether the activity was known.
func (s *Store) AppendLog(activityID string, level types.LogLevel, message, runID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs[activityID] = append(s.logs[activityID], types.LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		RunID:     runID,
	})
	return s.findActivity(activityID) != nil
}

// Logs returns an activity's log sequence, optionally filtered to one
// run. Fails if the activity never had a sequence initialized.
func (s *Store) Logs(activityID, runID string) ([]types.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.logs[activityID]
	if !ok {
		return nil, fmt.Errorf("activity %q: %w", activityID, ErrNotFound)
	}
	if runID == "" {
		return append([]types.LogEntry{}, entries...), nil
	}

	out := []types.LogEntry{}
	for _, e := range entries {
		if e.RunID == runID {
			out = append(out, e)
		}
	}
	return out, nil
}
