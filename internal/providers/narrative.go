package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// NarrativeAdapter wraps the AI-insight collaborator that turns a ranked set
// into a short natural-language summary. Every caller must treat a failure
// here as recoverable.
type NarrativeAdapter struct {
	*httpClient
}

type narrativeRequest struct {
	Prompt     string   `json:"prompt"`
	Highlights []string `json:"highlights,omitempty"`
	MealPeriod string   `json:"meal_period,omitempty"`
}

type narrativeResponse struct {
	Narrative string `json:"narrative"`
}

func NewNarrativeAdapter(cfg config.ProviderConfig, logger *logrus.Logger) (*NarrativeAdapter, error) {
	c, err := newHTTPClient("narrative", cfg, narrativeSchema, logger)
	if err != nil {
		return nil, err
	}
	return &NarrativeAdapter{httpClient: c}, nil
}

func (a *NarrativeAdapter) Summarize(ctx context.Context, set *models.RankedRecommendationSet, req *models.SignalRequest) (string, error) {
	names := make([]string, 0, 3)
	for i, c := range set.Candidates {
		if i == 3 {
			break
		}
		names = append(names, c.Name)
	}

	body := narrativeRequest{
		Prompt: fmt.Sprintf(
			"Summarize in two sentences why these restaurants suit the diner right now: %s",
			strings.Join(names, ", ")),
		Highlights: names,
	}
	if set.Summary != nil {
		body.MealPeriod = set.Summary.NarrativeContext
	}

	var resp narrativeResponse
	if err := a.postJSON(ctx, "/v1/summarize", body, &resp); err != nil {
		return "", err
	}
	return resp.Narrative, nil
}

func (c *httpClient) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s provider: encode request: %w", c.name, err)
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	})
	if err != nil {
		return fmt.Errorf("%s provider: %w", c.name, err)
	}

	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%s provider: validate payload: %w", c.name, err)
	}
	if !result.Valid() {
		return fmt.Errorf("%s provider: payload failed schema validation: %s",
			c.name, result.Errors()[0].String())
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s provider: decode payload: %w", c.name, err)
	}
	return nil
}
