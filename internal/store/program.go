package store

import (
	"fmt"

	"github.com/bountyops/bountyops/pkg/types"
)

// Programs returns the full program catalog in load order.
func (s *Store) Programs() []types.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Program, len(s.programs))
	copy(out, s.programs)
	return out
}

// Program returns the program with the given ID.
func (s *Store) Program(id string) (types.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.programs {
		if p.ID == id {
			return p, nil
		}
	}
	return types.Program{}, fmt.Errorf("program %q: %w", id, ErrNotFound)
}
