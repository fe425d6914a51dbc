package providers

import (
	"context"

	"github.com/forkcast/forkcast/pkg/models"
)

// The intelligence pipeline consumes every external source through one of
// these interfaces. Each call either delivers a fully parsed payload or an
// error; partial payloads never cross this boundary.

type WeatherProvider interface {
	Get(ctx context.Context, loc models.Location) (*models.WeatherPayload, error)
}

type EventProvider interface {
	Get(ctx context.Context, loc models.Location, radiusKm float64) (*models.EventPayload, error)
}

type SentimentProvider interface {
	Get(ctx context.Context, loc models.Location) (*models.SentimentPayload, error)
}

type EconomicProvider interface {
	Get(ctx context.Context) (*models.EconomicPayload, error)
}

type HealthProvider interface {
	Get(ctx context.Context, loc models.Location) (*models.HealthPayload, error)
}

type DemographicsProvider interface {
	Get(ctx context.Context, loc models.Location) (*models.DemographicsPayload, error)
}

type TemporalProvider interface {
	Get(ctx context.Context, timezone string) (*models.TemporalPayload, error)
}

type MediaProvider interface {
	Get(ctx context.Context, loc models.Location) (*models.MediaPayload, error)
}

type SocialPlatformProvider interface {
	Get(ctx context.Context, loc models.Location, preferences []string) (*models.SocialPayload, error)
}

type RestaurantSearchProvider interface {
	Search(ctx context.Context, query string, loc models.Location, radiusM float64) ([]models.RestaurantCandidate, error)
}

// NarrativeGenerator produces the optional AI summary for a ranked set.
// Callers must tolerate failure; the composer falls back to a template.
type NarrativeGenerator interface {
	Summarize(ctx context.Context, set *models.RankedRecommendationSet, req *models.SignalRequest) (string, error)
}
