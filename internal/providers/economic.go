package providers

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// EconomicAdapter wraps the macro-indicator API. National scope, so no
// location parameters.
type EconomicAdapter struct {
	*httpClient
}

func NewEconomicAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*EconomicAdapter, error) {
	c, err := newHTTPClient("economic", cfg, economicSchema, logger)
	if err != nil {
		return nil, err
	}
	return &EconomicAdapter{httpClient: c}, nil
}

func (a *EconomicAdapter) Get(ctx context.Context) (*models.EconomicPayload, error) {
	var payload models.EconomicPayload
	if err := a.getJSON(ctx, "/v1/indicators/current", url.Values{}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
