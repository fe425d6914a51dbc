package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// EventsAdapter wraps the local-events discovery API.
type EventsAdapter struct {
	*httpClient
}

func NewEventsAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*EventsAdapter, error) {
	c, err := newHTTPClient("events", cfg, eventsSchema, logger)
	if err != nil {
		return nil, err
	}
	return &EventsAdapter{httpClient: c}, nil
}

func (a *EventsAdapter) Get(ctx context.Context, loc models.Location, radiusKm float64) (*models.EventPayload, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 6, 64))
	q.Set("lng", strconv.FormatFloat(loc.Lng, 'f', 6, 64))
	q.Set("radius_km", strconv.FormatFloat(radiusKm, 'f', 1, 64))

	var payload models.EventPayload
	if err := a.getJSON(ctx, "/v1/events/nearby", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
