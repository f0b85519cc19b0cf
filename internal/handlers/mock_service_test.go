package handlers

import (
	"context"
	"net/http"
	"testing"

	"animated_gauge/internal/config"
	"animated_gauge/internal/models"
	"animated_gauge/internal/repository"
	"animated_gauge/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	genTokenToken string
	genTokenErr   error
	parseSubject  string
	parseErr      error

	lastGenSecret  string
	lastParseToken string
}

func (m *mockAuth) GenerateToken(clientSecret string) (string, error) {
	m.lastGenSecret = clientSecret
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseSubject, m.parseErr
}

// mockCards fails every call with err.
type mockCards struct {
	err error
}

func (m *mockCards) List(ctx context.Context) ([]models.Card, error) {
	return nil, m.err
}
func (m *mockCards) Get(ctx context.Context, id string) (models.Card, error) {
	return models.Card{}, m.err
}
func (m *mockCards) Register(ctx context.Context, cards ...models.Card) error {
	return m.err
}
func (m *mockCards) Replace(ctx context.Context, id string, raw map[string]any) (models.Card, error) {
	return models.Card{}, m.err
}
func (m *mockCards) SubscribeCard(id string) *service.Subscription[models.Card] {
	return nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// newTestServices wires the real in-memory services with a mocked auth and
// one card "boiler" bound to sensor.boiler (range 0..100).
func newTestServices(t *testing.T, auth *mockAuth) *service.Service {
	t.Helper()
	s := service.NewService(repository.NewRepository(), &config.Config{})
	s.Authorization = auth

	cfg, err := config.ParseCard(map[string]any{"entity": "sensor.boiler", "unit": "°C"})
	if err != nil {
		t.Fatalf("parse card: %v", err)
	}
	if err := s.Cards.Register(context.Background(), models.Card{ID: "boiler", Config: cfg}); err != nil {
		t.Fatalf("register card: %v", err)
	}
	return s
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
