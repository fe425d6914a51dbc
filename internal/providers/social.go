package providers

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// SocialAdapter wraps the cross-platform social aggregation API. It is the
// only signal adapter that forwards user preferences upstream, so trending
// keywords come back pre-filtered to relevant cuisines.
type SocialAdapter struct {
	*httpClient
}

func NewSocialAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*SocialAdapter, error) {
	c, err := newHTTPClient("social", cfg, socialSchema, logger)
	if err != nil {
		return nil, err
	}
	return &SocialAdapter{httpClient: c}, nil
}

func (a *SocialAdapter) Get(ctx context.Context, loc models.Location, preferences []string) (*models.SocialPayload, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 6, 64))
	q.Set("lng", strconv.FormatFloat(loc.Lng, 'f', 6, 64))
	if len(preferences) > 0 {
		q.Set("interests", strings.Join(preferences, ","))
	}

	var payload models.SocialPayload
	if err := a.getJSON(ctx, "/v1/trends/dining", q, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
