package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"animated_gauge/internal/models"
)

// StateMemory keeps the latest snapshot per entity.
type StateMemory struct {
	mu     sync.RWMutex
	states map[string]models.EntityState
}

func NewStateMemory() *StateMemory {
	return &StateMemory{states: make(map[string]models.EntityState)}
}

// Save replaces the entity's snapshot. A zero LastUpdated is stamped with now.
func (r *StateMemory) Save(ctx context.Context, s models.EntityState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.LastUpdated.IsZero() {
		s.LastUpdated = time.Now().UTC()
	} else {
		s.LastUpdated = s.LastUpdated.UTC()
	}

	r.mu.Lock()
	r.states[s.EntityID] = s
	r.mu.Unlock()
	return nil
}

// Load returns the latest snapshot or ErrNotFound.
func (r *StateMemory) Load(ctx context.Context, entityID string) (models.EntityState, error) {
	if err := ctx.Err(); err != nil {
		return models.EntityState{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.states[entityID]
	if !ok {
		return models.EntityState{}, ErrNotFound
	}
	return s, nil
}

// List returns all snapshots ordered by entity id.
func (r *StateMemory) List(ctx context.Context) ([]models.EntityState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]models.EntityState, 0, len(r.states))
	for _, s := range r.states {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })
	return out, nil
}
