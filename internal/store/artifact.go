package store

import (
	"fmt"
	"time"

	"github.com/bountyops/bountyops/pkg/types"
)

// AddArtifact stores an immutable blob in the artifact index and links it
// to the owning activity. The store insertion always succeeds; linking is
// skipped silently when the activity is unknown.
func (s *Store) AddArtifact(activityID, name, content string, artifactType types.ArtifactType, runID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	art := &types.Artifact{
		ID:        newID(),
		Name:      name,
		Type:      artifactType,
		Content:   content,
		Size:      len(content),
		CreatedAt: time.Now(),
		RunID:     runID,
	}
	s.artifacts[art.ID] = art

	if a := s.findActivity(activityID); a != nil {
		a.Artifacts = append(a.Artifacts, art.ID)
	}
	return art.ID
}

// Artifact returns the artifact with the given ID.
func (s *Store) Artifact(id string) (types.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	art, ok := s.artifacts[id]
	if !ok {
		return types.Artifact{}, fmt.Errorf("artifact %q: %w", id, ErrNotFound)
	}
	return *art, nil
}

// ActivityArtifacts resolves an activity's artifact ID list against the
// global index. Unresolvable IDs are dropped.
func (s *Store) ActivityArtifacts(activityID string) ([]types.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.findActivity(activityID)
	if a == nil {
		return nil, fmt.Errorf("activity %q: %w", activityID, ErrNotFound)
	}
	return s.resolveArtifacts(a), nil
}

// resolveArtifacts maps artifact IDs to records, skipping dangling IDs.
// Caller must hold the lock.
func (s *Store) resolveArtifacts(a *types.Activity) []types.Artifact {
	out := []types.Artifact{}
	for _, id := range a.Artifacts {
		if art, ok := s.artifacts[id]; ok {
			out = append(out, *art)
		}
	}
	return out
}
