package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// MediaAdapter wraps the food-media buzz API (articles, reviews, shows).
type MediaAdapter struct {
	*httpClient
}

func NewMediaAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*MediaAdapter, error) {
	c, err := newHTTPClient("media", cfg, mediaSchema, logger)
	if err != nil {
		return nil, err
	}
	return &MediaAdapter{httpClient: c}, nil
}

func (a *MediaAdapter) Get(ctx context.Context, loc models.Location) (*models.MediaPayload, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 6, 64))
	q.Set("lng", strconv.FormatFloat(loc.Lng, 'f', 6, 64))
	q.Set("category", "food")

	var payload models.MediaPayload
	if err := a.getJSON(ctx, "/v1/buzz", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
