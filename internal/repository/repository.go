package repository

import (
	"context"
	"errors"

	"animated_gauge/internal/models"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

type StateRepo interface {
	Save(ctx context.Context, s models.EntityState) error
	Load(ctx context.Context, entityID string) (models.EntityState, error)
	List(ctx context.Context) ([]models.EntityState, error)
}

type CardRepo interface {
	Put(ctx context.Context, c models.Card) error
	Get(ctx context.Context, id string) (models.Card, error)
	List(ctx context.Context) ([]models.Card, error)
}

type Repository struct {
	StateRepo StateRepo
	CardRepo  CardRepo
}

// NewRepository returns process-local stores. Nothing survives a restart.
func NewRepository() *Repository {
	return &Repository{
		StateRepo: NewStateMemory(),
		CardRepo:  NewCardMemory(),
	}
}
