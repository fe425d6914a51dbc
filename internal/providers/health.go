package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// HealthTrendAdapter wraps the public-health surveillance API.
type HealthTrendAdapter struct {
	*httpClient
}

func NewHealthTrendAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*HealthTrendAdapter, error) {
	c, err := newHTTPClient("health", cfg, healthSchema, logger)
	if err != nil {
		return nil, err
	}
	return &HealthTrendAdapter{httpClient: c}, nil
}

func (a *HealthTrendAdapter) Get(ctx context.Context, loc models.Location) (*models.HealthPayload, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 6, 64))
	q.Set("lng", strconv.FormatFloat(loc.Lng, 'f', 6, 64))

	var payload models.HealthPayload
	if err := a.getJSON(ctx, "/v1/trends/regional", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
