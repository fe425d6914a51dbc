package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"github.com/xeipuuv/gojsonschema"

	"github.com/forkcast/forkcast/internal/config"
)

// httpClient is the shared transport for all provider adapters: one HTTP
// client with the adapter's timeout, a circuit breaker, and JSON-schema
// validation of every response body before it is unmarshaled.
type httpClient struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	schema  *gojsonschema.Schema
	logger  *logrus.Logger
}

func newHTTPClient(name string, cfg config.ProviderConfig, schemaJSON string, logger *logrus.Logger) (*httpClient, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile %s payload schema: %w", name, err)
	}

	maxFailures := cfg.Breaker.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    name,
		Timeout: cfg.Breaker.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"provider": name,
				"from":     from.String(),
				"to":       to.String(),
			}).Warn("Provider circuit breaker state changed")
		},
	})

	return &httpClient{
		name:    name,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		schema:  schema,
		logger:  logger,
	}, nil
}

// getJSON fetches path with query parameters, validates the body against the
// adapter's schema, and unmarshals it into out.
func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, path, query)
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

func (c *httpClient) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, err
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
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
}

// Ping probes the provider endpoint for the health registry.
func (c *httpClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
