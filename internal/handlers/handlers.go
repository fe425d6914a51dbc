package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/messaging"
	"github.com/forkcast/forkcast/internal/providers"
	"github.com/forkcast/forkcast/internal/services"
	"github.com/forkcast/forkcast/internal/store"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Admin          *AdminHandler
}

func New(
	logger *logrus.Logger,
	svc *services.Services,
	search providers.RestaurantSearchProvider,
	profiles *store.ProfileStore,
	bus *messaging.EventBus,
) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(logger, svc.Registry),
		Recommendation: NewRecommendationHandler(svc, search, profiles, bus, logger),
		Admin:          NewAdminHandler(svc.Weights, logger),
	}
}
