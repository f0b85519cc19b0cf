package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"animated_gauge/internal/config"
	"animated_gauge/internal/models"
	"animated_gauge/internal/repository"
)

// Card registry errors.
var (
	ErrCardNotFound  = errors.New("card not found")
	ErrInvalidConfig = errors.New("invalid card config")
)

// Stub card defaults, used when no card is configured.
const (
	StubCardID = "default"
	stubEntity = "sensor.temperature"
	stubDomain = "sensor."
	stubMin    = 0.0
	stubMax    = 100.0
)

// CardService is the card registry. Replacing a config is atomic: readers
// see the old or the new config, and subscribers receive the new one.
type CardService struct {
	repo repository.CardRepo
	hub  *broadcaster[models.Card]
}

func NewCardService(repo repository.CardRepo) *CardService {
	return &CardService{
		repo: repo,
		hub:  newBroadcaster[models.Card](),
	}
}

func (s *CardService) List(ctx context.Context) ([]models.Card, error) {
	return s.repo.List(ctx)
}

func (s *CardService) Get(ctx context.Context, id string) (models.Card, error) {
	c, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Card{}, fmt.Errorf("%w: %q", ErrCardNotFound, id)
	}
	if err != nil {
		return models.Card{}, fmt.Errorf("load card: %w", err)
	}
	return c, nil
}

// Register stores already validated cards, typically from the config file.
func (s *CardService) Register(ctx context.Context, cards ...models.Card) error {
	for _, c := range cards {
		if err := s.repo.Put(ctx, c); err != nil {
			return fmt.Errorf("register card %q: %w", c.ID, err)
		}
		s.hub.publish(c.ID, c)
	}
	return nil
}

// Replace validates raw and swaps the card's config as a whole. The card must exist.
func (s *CardService) Replace(ctx context.Context, id string, raw map[string]any) (models.Card, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.Card{}, err
	}
	cfg, err := config.ParseCard(raw)
	if err != nil {
		return models.Card{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c := models.Card{ID: id, Config: cfg}
	if err := s.repo.Put(ctx, c); err != nil {
		return models.Card{}, fmt.Errorf("store card: %w", err)
	}
	s.hub.publish(id, c)
	return c, nil
}

// SubscribeCard delivers future configs of card id. Callers must Close it.
func (s *CardService) SubscribeCard(id string) *Subscription[models.Card] {
	return s.hub.subscribe(id)
}

// StubConfig is the starter config offered when nothing is configured: the
// first sensor entity, or sensor.temperature when there is none.
func StubConfig(entities []string) models.GaugeConfig {
	entity := stubEntity
	for _, e := range entities {
		if strings.HasPrefix(e, stubDomain) {
			entity = e
			break
		}
	}
	cfg, err := config.ParseCard(map[string]any{
		"entity": entity,
		"min":    stubMin,
		"max":    stubMax,
	})
	if err != nil {
		// the stub always carries an entity and a valid range
		panic(err)
	}
	return cfg
}
