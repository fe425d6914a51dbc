package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// WeatherAdapter wraps the current-conditions endpoint of the weather API.
type WeatherAdapter struct {
	*httpClient
}

func NewWeatherAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*WeatherAdapter, error) {
	c, err := newHTTPClient("weather", cfg, weatherSchema, logger)
	if err != nil {
		return nil, err
	}
	return &WeatherAdapter{httpClient: c}, nil
}

func (a *WeatherAdapter) Get(ctx context.Context, loc models.Location) (*models.WeatherPayload, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 6, 64))
	q.Set("lng", strconv.FormatFloat(loc.Lng, 'f', 6, 64))

	var payload models.WeatherPayload
	if err := a.getJSON(ctx, "/v1/conditions", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
