package service

import (
	"context"
	"errors"
	"math"

	"animated_gauge/internal/card"
	"animated_gauge/internal/gauge"
	"animated_gauge/internal/locale"
	"animated_gauge/internal/models"
	"animated_gauge/internal/render"
)

// Snapshot is a static render of a card at the entity's raw value.
type Snapshot struct {
	Card     models.Card         `json:"card"`
	CardSize int                 `json:"card_size"`
	State    *models.EntityState `json:"state,omitempty"`
	Scene    gauge.Scene         `json:"scene"`
	SVG      string              `json:"svg"`
}

// RenderService composes scenes outside of any animation.
type RenderService struct {
	cards  Cards
	states States
}

func NewRenderService(cards Cards, states States) *RenderService {
	return &RenderService{cards: cards, states: states}
}

// Snapshot renders card cardID. A missing entity state renders as unavailable.
// Texts follow lang, then acceptLanguage (see locale.Lookup).
func (s *RenderService) Snapshot(ctx context.Context, cardID, lang, acceptLanguage string) (Snapshot, error) {
	c, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return Snapshot{}, err
	}

	var sample *models.EntityState
	st, err := s.states.Latest(ctx, c.Config.Entity)
	switch {
	case err == nil:
		sample = &st
	case !errors.Is(err, ErrEntityNotFound):
		return Snapshot{}, err
	}

	strs := locale.Lookup(lang, acceptLanguage)
	scene := gauge.Compose(c.Config, math.NaN(), sample, strs.NoData)
	return Snapshot{
		Card:     c,
		CardSize: card.Size,
		State:    sample,
		Scene:    scene,
		SVG:      render.SVG(scene),
	}, nil
}
