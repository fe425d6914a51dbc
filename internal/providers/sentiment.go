package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// SentimentAdapter wraps the dining-sentiment aggregation API.
type SentimentAdapter struct {
	*httpClient
}

func NewSentimentAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*SentimentAdapter, error) {
	c, err := newHTTPClient("sentiment", cfg, sentimentSchema, logger)
	if err != nil {
		return nil, err
	}
	return &SentimentAdapter{httpClient: c}, nil
}

func (a *SentimentAdapter) Get(ctx context.Context, loc models.Location) (*models.SentimentPayload, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 6, 64))
	q.Set("lng", strconv.FormatFloat(loc.Lng, 'f', 6, 64))
	q.Set("topic", "dining")

	var payload models.SentimentPayload
	if err := a.getJSON(ctx, "/v1/sentiment", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
