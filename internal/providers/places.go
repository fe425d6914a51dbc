package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// PlacesAdapter wraps the restaurant search API and returns parsed
// candidates ready for scoring.
type PlacesAdapter struct {
	*httpClient
}

type placesResponse struct {
	Results []models.RestaurantCandidate `json:"results"`
}

func NewPlacesAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*PlacesAdapter, error) {
	c, err := newHTTPClient("places", cfg, placesSchema, logger)
	if err != nil {
		return nil, err
	}
	return &PlacesAdapter{httpClient: c}, nil
}

func (a *PlacesAdapter) Search(ctx context.Context, query string, loc models.Location, radiusM float64) ([]models.RestaurantCandidate, error) {
	q := url.Values{}
	if query == "" {
		query = "restaurant"
	}
	q.Set("query", query)
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 6, 64))
	q.Set("lng", strconv.FormatFloat(loc.Lng, 'f', 6, 64))
	q.Set("radius", strconv.FormatFloat(radiusM, 'f', 0, 64))

	var resp placesResponse
	if err := a.getJSON(ctx, "/v1/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
