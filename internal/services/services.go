package services

import (
	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/database"
	"github.com/forkcast/forkcast/internal/providers"
)

type Services struct {
	Auth         *AuthService
	Intelligence *IntelligenceService
	Weights      *WeightStore
	Scorer       *ScorerService
	Composer     *ComposerService
	Registry     *providers.Registry
}

// Adapters groups every external collaborator the service layer consumes.
type Adapters struct {
	Signals   SignalProviders
	Search    providers.RestaurantSearchProvider
	Narrative providers.NarrativeGenerator
	Registry  *providers.Registry
}

func New(cfg *config.Config, logger *logrus.Logger, db *database.Database, adapters Adapters) (*Services, error) {
	authService := NewAuthService(cfg, logger, db.Redis)

	normalizer := NewFactorNormalizer(cfg.Scoring.Heuristics)
	intelligence := NewIntelligenceService(adapters.Signals, normalizer, db.Redis, cfg, logger)

	weights := NewWeightStore(cfg.Scoring.Weights, logger)
	scorer := NewScorerService(cfg.Scoring.Heuristics, logger)
	composer := NewComposerService(adapters.Narrative, cfg.Scoring.TopK, logger)

	return &Services{
		Auth:         authService,
		Intelligence: intelligence,
		Weights:      weights,
		Scorer:       scorer,
		Composer:     composer,
		Registry:     adapters.Registry,
	}, nil
}
