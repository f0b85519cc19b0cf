package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"animated_gauge/internal/config"
	"animated_gauge/internal/handlers"
	"animated_gauge/internal/logger"
	"animated_gauge/internal/models"
	"animated_gauge/internal/repository"
	"animated_gauge/internal/server"
	"animated_gauge/internal/service"
)

// @title        Animated Gauge API
// @version      1.0
// @description  Gauge cards rendered as SVG and streamed as animated frames.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	// load config.yml
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	// wire dependencies
	repos := repository.NewRepository()
	services := service.NewService(repos, cfg)
	if err := registerCards(services, cfg, log); err != nil {
		log.Fatalw("invalid card configuration", "err", err)
	}

	apiHandler := handlers.NewHandler(services, log)
	apiHandler.SetFrameInterval(cfg.FrameInterval)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start simulator (via composed service)
	if cfg.Simulator.Enabled {
		log.Infow("simulator_started", "entities", len(cfg.Simulator.Entities), "tick", cfg.Simulator.Tick)
		go services.Simulator.Run(ctx, cfg.Simulator.Tick)
	}

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.InitRoutes(), cfg.Server)
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, cfg.Server.ShutdownTimeout, log)
}

// registerCards loads the configured cards; with none configured it offers
// a stub card bound to the first simulated sensor.
func registerCards(services *service.Service, cfg *config.Config, log *logger.Logger) error {
	cards, err := config.ParseCards(cfg.Cards)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		entities := make([]string, 0, len(cfg.Simulator.Entities))
		for _, e := range cfg.Simulator.Entities {
			entities = append(entities, e.Entity)
		}
		stub := service.StubConfig(entities)
		cards = append(cards, models.Card{ID: service.StubCardID, Config: stub})
		log.Infow("no cards configured; using stub card", "card", service.StubCardID, "entity", stub.Entity)
	}
	for _, c := range cards {
		log.Debugw("card_registered", "card", c.ID, "entity", c.Config.Entity)
	}
	return services.Cards.Register(context.Background(), cards...)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	if err := srv.Listen(); err != nil {
		log.Fatalw("error starting server", "err", err)
	}
	log.Infow("server_listening", "addr", srv.Addr())
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalw("error running server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
