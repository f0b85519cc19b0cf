package repository

import (
	"context"
	"sync"

	"animated_gauge/internal/models"
)

// CardMemory keeps card definitions in registration order.
type CardMemory struct {
	mu    sync.RWMutex
	order []string
	cards map[string]models.Card
}

func NewCardMemory() *CardMemory {
	return &CardMemory{cards: make(map[string]models.Card)}
}

// Put inserts or replaces a card. Replacing keeps the original position.
func (r *CardMemory) Put(ctx context.Context, c models.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cards[c.ID]; !ok {
		r.order = append(r.order, c.ID)
	}
	r.cards[c.ID] = c
	return nil
}

// Get returns the card or ErrNotFound.
func (r *CardMemory) Get(ctx context.Context, id string) (models.Card, error) {
	if err := ctx.Err(); err != nil {
		return models.Card{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cards[id]
	if !ok {
		return models.Card{}, ErrNotFound
	}
	return c, nil
}

func (r *CardMemory) List(ctx context.Context) ([]models.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Card, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.cards[id])
	}
	return out, nil
}
