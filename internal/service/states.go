package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"animated_gauge/internal/models"
	"animated_gauge/internal/repository"
)

// State hub errors.
var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrInvalidState   = errors.New("invalid entity state")
)

// StateService stores the latest snapshot per entity and pushes every
// published snapshot to the entity's subscribers.
type StateService struct {
	repo repository.StateRepo
	hub  *broadcaster[models.EntityState]
}

func NewStateService(repo repository.StateRepo) *StateService {
	return &StateService{
		repo: repo,
		hub:  newBroadcaster[models.EntityState](),
	}
}

// Publish stores st and notifies subscribers. The stored snapshot is returned.
func (s *StateService) Publish(ctx context.Context, st models.EntityState) (models.EntityState, error) {
	st.EntityID = strings.TrimSpace(st.EntityID)
	if st.EntityID == "" {
		return models.EntityState{}, fmt.Errorf("%w: entity_id is required", ErrInvalidState)
	}
	if err := s.repo.Save(ctx, st); err != nil {
		return models.EntityState{}, fmt.Errorf("save state: %w", err)
	}
	stored, err := s.repo.Load(ctx, st.EntityID)
	if err != nil {
		return models.EntityState{}, fmt.Errorf("load state: %w", err)
	}
	s.hub.publish(stored.EntityID, stored)
	return stored, nil
}

// Latest returns the newest snapshot of entityID.
func (s *StateService) Latest(ctx context.Context, entityID string) (models.EntityState, error) {
	st, err := s.repo.Load(ctx, entityID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.EntityState{}, fmt.Errorf("%w: %q", ErrEntityNotFound, entityID)
	}
	if err != nil {
		return models.EntityState{}, fmt.Errorf("load state: %w", err)
	}
	return st, nil
}

func (s *StateService) All(ctx context.Context) ([]models.EntityState, error) {
	return s.repo.List(ctx)
}

// SubscribeState delivers future snapshots of entityID. Callers must Close it.
func (s *StateService) SubscribeState(entityID string) *Subscription[models.EntityState] {
	return s.hub.subscribe(entityID)
}
