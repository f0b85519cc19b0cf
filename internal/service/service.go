package service

import (
	"context"
	"time"

	"animated_gauge/internal/config"
	"animated_gauge/internal/models"
	"animated_gauge/internal/repository"
)

// Authorization issues and checks bearer tokens for the write endpoints.
type Authorization interface {
	GenerateToken(clientSecret string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Cards is the registry of configured gauge cards.
type Cards interface {
	List(ctx context.Context) ([]models.Card, error)
	Get(ctx context.Context, id string) (models.Card, error)
	Register(ctx context.Context, cards ...models.Card) error
	Replace(ctx context.Context, id string, raw map[string]any) (models.Card, error)
	SubscribeCard(id string) *Subscription[models.Card]
}

// States is the live entity state hub.
type States interface {
	Publish(ctx context.Context, st models.EntityState) (models.EntityState, error)
	Latest(ctx context.Context, entityID string) (models.EntityState, error)
	All(ctx context.Context) ([]models.EntityState, error)
	SubscribeState(entityID string) *Subscription[models.EntityState]
}

// Renderer produces static renders of a card at the entity's raw value.
type Renderer interface {
	Snapshot(ctx context.Context, cardID, lang, acceptLanguage string) (Snapshot, error)
}

// Simulator runs the demo state source until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Cards
	States
	Renderer
	Simulator
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg *config.Config) *Service {
	states := NewStateService(repos.StateRepo)
	cards := NewCardService(repos.CardRepo)
	return &Service{
		Cards:         cards,
		States:        states,
		Renderer:      NewRenderService(cards, states),
		Simulator:     NewSimulatorService(states, cfg.Simulator.Entities),
		Authorization: NewAuthService(cfg.Auth),
	}
}
