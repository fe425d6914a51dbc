package providers

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// TemporalAdapter wraps the time-of-day dining behavior API.
type TemporalAdapter struct {
	*httpClient
}

func NewTemporalAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*TemporalAdapter, error) {
	c, err := newHTTPClient("temporal", cfg, temporalSchema, logger)
	if err != nil {
		return nil, err
	}
	return &TemporalAdapter{httpClient: c}, nil
}

func (a *TemporalAdapter) Get(ctx context.Context, timezone string) (*models.TemporalPayload, error) {
	q := url.Values{}
	if timezone == "" {
		timezone = "UTC"
	}
	q.Set("tz", timezone)

	var payload models.TemporalPayload
	if err := a.getJSON(ctx, "/v1/dining/patterns", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
