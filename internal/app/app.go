package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/database"
	"github.com/forkcast/forkcast/internal/handlers"
	"github.com/forkcast/forkcast/internal/messaging"
	"github.com/forkcast/forkcast/internal/middleware"
	"github.com/forkcast/forkcast/internal/providers"
	"github.com/forkcast/forkcast/internal/services"
	"github.com/forkcast/forkcast/internal/store"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	db       *database.Database
	bus      *messaging.EventBus
	registry *providers.Registry
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	app.bus = messaging.NewEventBus(cfg, app.logger)

	adapters, registry, err := buildAdapters(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}
	app.registry = registry
	registry.Start()

	svc, err := services.New(cfg, app.logger, db, adapters)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = svc

	profiles := store.NewProfileStore(db.PG, app.logger)
	app.handlers = handlers.New(app.logger, svc, adapters.Search, profiles, app.bus)

	app.setupRouter()

	return app, nil
}

// buildAdapters constructs every provider client from configuration and
// registers each for health probing.
func buildAdapters(cfg *config.Config, logger *logrus.Logger) (services.Adapters, *providers.Registry, error) {
	registry := providers.NewRegistry(logger)

	weather, err := providers.NewWeatherAdapter(cfg.Providers.Weather, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	events, err := providers.NewEventsAdapter(cfg.Providers.Events, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	sentiment, err := providers.NewSentimentAdapter(cfg.Providers.Sentiment, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	economic, err := providers.NewEconomicAdapter(cfg.Providers.Economic, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	health, err := providers.NewHealthTrendAdapter(cfg.Providers.Health, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	demographics, err := providers.NewDemographicsAdapter(cfg.Providers.Demographics, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	temporal, err := providers.NewTemporalAdapter(cfg.Providers.Temporal, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	media, err := providers.NewMediaAdapter(cfg.Providers.Media, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	social, err := providers.NewSocialAdapter(cfg.Providers.Social, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	places, err := providers.NewPlacesAdapter(cfg.Providers.Places, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}
	narrative, err := providers.NewNarrativeAdapter(cfg.Providers.Narrative, logger)
	if err != nil {
		return services.Adapters{}, nil, err
	}

	for name, p := range map[string]providers.Pinger{
		"weather":      weather,
		"events":       events,
		"sentiment":    sentiment,
		"economic":     economic,
		"health":       health,
		"demographics": demographics,
		"temporal":     temporal,
		"media":        media,
		"social":       social,
		"places":       places,
		"narrative":    narrative,
	} {
		registry.Register(name, p)
	}

	return services.Adapters{
		Signals: services.SignalProviders{
			Weather:      weather,
			Events:       events,
			Sentiment:    sentiment,
			Economic:     economic,
			Health:       health,
			Demographics: demographics,
			Temporal:     temporal,
			Media:        media,
			Social:       social,
		},
		Search:    places,
		Narrative: narrative,
		Registry:  registry,
	}, registry, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	a.registry.Stop()

	if err := a.bus.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing event bus")
	}

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		return err
	}

	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	router.GET("/health", a.handlers.Health.Check)

	if a.config.Monitoring.Enabled {
		router.GET(a.config.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api/v1")
	{
		api.Use(middleware.Auth(a.services.Auth, a.logger))

		api.POST("/recommendations", a.handlers.Recommendation.Recommend)
		api.POST("/feedback", a.handlers.Recommendation.Feedback)

		admin := api.Group("/admin")
		{
			admin.Use(middleware.RequireAdmin())
			admin.GET("/algorithm/weights", a.handlers.Admin.GetWeights)
			admin.PUT("/algorithm/weights", a.handlers.Admin.UpdateWeights)
		}
	}

	a.router = router
}
