package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// DemographicsAdapter wraps the neighborhood census/demographics API.
type DemographicsAdapter struct {
	*httpClient
}

func NewDemographicsAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*DemographicsAdapter, error) {
	c, err := newHTTPClient("demographics", cfg, demographicsSchema, logger)
	if err != nil {
		return nil, err
	}
	return &DemographicsAdapter{httpClient: c}, nil
}

func (a *DemographicsAdapter) Get(ctx context.Context, loc models.Location) (*models.DemographicsPayload, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 6, 64))
	q.Set("lng", strconv.FormatFloat(loc.Lng, 'f', 6, 64))

	var payload models.DemographicsPayload
	if err := a.getJSON(ctx, "/v1/area/profile", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
