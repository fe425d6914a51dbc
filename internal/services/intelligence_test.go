package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// One stub per provider interface. Each returns a fixed payload or a fixed
// error, standing in for the HTTP adapters.

type stubWeather struct {
	p   *models.WeatherPayload
	err error
}

func (s stubWeather) Get(context.Context, models.Location) (*models.WeatherPayload, error) {
	return s.p, s.err
}

type stubEvents struct {
	p   *models.EventPayload
	err error
}

func (s stubEvents) Get(context.Context, models.Location, float64) (*models.EventPayload, error) {
	return s.p, s.err
}

type stubSentiment struct {
	p   *models.SentimentPayload
	err error
}

func (s stubSentiment) Get(context.Context, models.Location) (*models.SentimentPayload, error) {
	return s.p, s.err
}

type stubEconomic struct {
	p   *models.EconomicPayload
	err error
}

func (s stubEconomic) Get(context.Context) (*models.EconomicPayload, error) {
	return s.p, s.err
}

type stubHealth struct {
	p   *models.HealthPayload
	err error
}

func (s stubHealth) Get(context.Context, models.Location) (*models.HealthPayload, error) {
	return s.p, s.err
}

type stubDemographics struct {
	p   *models.DemographicsPayload
	err error
}

func (s stubDemographics) Get(context.Context, models.Location) (*models.DemographicsPayload, error) {
	return s.p, s.err
}

type stubTemporal struct {
	p   *models.TemporalPayload
	err error
}

func (s stubTemporal) Get(context.Context, string) (*models.TemporalPayload, error) {
	return s.p, s.err
}

type stubMedia struct {
	p   *models.MediaPayload
	err error
}

func (s stubMedia) Get(context.Context, models.Location) (*models.MediaPayload, error) {
	return s.p, s.err
}

type stubSocial struct {
	p   *models.SocialPayload
	err error
}

func (s stubSocial) Get(context.Context, models.Location, []string) (*models.SocialPayload, error) {
	return s.p, s.err
}

func healthySignals() SignalProviders {
	return SignalProviders{
		Weather:   stubWeather{p: &models.WeatherPayload{TempC: 21, Condition: "clear"}},
		Events:    stubEvents{p: &models.EventPayload{EventCount: 2, DemandMultiplier: 1.1}},
		Sentiment: stubSentiment{p: &models.SentimentPayload{Polarity: 0.6, MentionCount: 40}},
		Economic:  stubEconomic{p: &models.EconomicPayload{ConsumerConfidence: 104, UnemploymentRate: 4.0}},
		Health:    stubHealth{p: &models.HealthPayload{RiskLevel: "low"}},
		Demographics: stubDemographics{
			p: &models.DemographicsPayload{MedianIncome: 72000, DiningIndex: 6},
		},
		Temporal: stubTemporal{
			p: &models.TemporalPayload{LocalHour: 19, MealPeriod: "dinner", IsWeekend: true, IsPeakHour: true},
		},
		Media: stubMedia{
			p: &models.MediaPayload{ArticleCount: 12, TrendingTopics: []string{"ramen"}},
		},
		Social: stubSocial{
			p: &models.SocialPayload{
				TrendingKeywords: []string{"korean"},
				EngagementScore:  0.7,
				VenuePopularity:  map[string]float64{"venue-1": 0.4},
			},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Scoring: config.ScoringConfig{
			Weights: config.WeightsConfig{
				SocialTrends:        0.25,
				PersonalPreferences: 0.20,
				ContextualFactors:   0.15,
				LocationRelevance:   0.15,
				RatingQuality:       0.15,
				PriceMatch:          0.10,
			},
			Heuristics: testHeuristics(),
			TopK:       3,
		},
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestIntelligence(p SignalProviders) *IntelligenceService {
	cfg := testConfig()
	return NewIntelligenceService(p, NewFactorNormalizer(cfg.Scoring.Heuristics), nil, cfg, quietLogger())
}

func intelRequest() *models.SignalRequest {
	return &models.SignalRequest{
		Location: &models.Location{Lat: 40.73, Lng: -73.99},
		RadiusM:  5000,
		Timezone: "America/New_York",
	}
}

func TestAggregate_RejectsMissingLocation(t *testing.T) {
	svc := newTestIntelligence(healthySignals())

	_, _, err := svc.Aggregate(context.Background(), &models.SignalRequest{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, _, err = svc.Aggregate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAggregate_AllProvidersHealthy(t *testing.T) {
	svc := newTestIntelligence(healthySignals())

	summary, scoringCtx, err := svc.Aggregate(context.Background(), intelRequest())
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Len(t, summary.Factors, len(models.FactorNames))
	for _, name := range models.FactorNames {
		v, ok := summary.Factors[name]
		require.True(t, ok, "factor %s missing", name)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Empty(t, summary.FailedSignals)
	assert.GreaterOrEqual(t, summary.ConfidenceScore, 10)
	assert.LessOrEqual(t, summary.ConfidenceScore, 100)
	assert.False(t, summary.GeneratedAt.IsZero())

	require.NotNil(t, scoringCtx)
	assert.Equal(t, "dinner", scoringCtx.MealPeriod)
	assert.True(t, scoringCtx.IsWeekend)
	assert.Equal(t, []string{"korean", "ramen"}, scoringCtx.TrendingKeywords)
	assert.Equal(t, map[string]float64{"venue-1": 0.4}, scoringCtx.VenuePopularity)
}

func TestAggregate_FailuresAreIsolated(t *testing.T) {
	providerErr := errors.New("upstream timeout")
	signals := healthySignals()
	signals.Weather = stubWeather{err: providerErr}
	signals.Economic = stubEconomic{err: providerErr}
	signals.Media = stubMedia{err: providerErr}

	healthy := newTestIntelligence(healthySignals())
	degraded := newTestIntelligence(signals)

	full, _, err := healthy.Aggregate(context.Background(), intelRequest())
	require.NoError(t, err)

	partial, scoringCtx, err := degraded.Aggregate(context.Background(), intelRequest())
	require.NoError(t, err, "provider failures must not fail the run")

	// All nine factors are still present; the failed ones fall back to the
	// neutral default.
	assert.Len(t, partial.Factors, len(models.FactorNames))
	assert.Equal(t, models.NeutralFactor, partial.Factors[models.FactorWeather])
	assert.Equal(t, models.NeutralFactor, partial.Factors[models.FactorEconomic])
	assert.Equal(t, models.NeutralFactor, partial.Factors[models.FactorMedia])

	require.Len(t, partial.FailedSignals, 3)
	assert.Equal(t, models.FactorEconomic, partial.FailedSignals[0].Signal)
	assert.Equal(t, models.FactorMedia, partial.FailedSignals[1].Signal)
	assert.Equal(t, models.FactorWeather, partial.FailedSignals[2].Signal)
	for _, f := range partial.FailedSignals {
		assert.Equal(t, providerErr.Error(), f.Reason)
	}

	assert.Less(t, partial.ConfidenceScore, full.ConfidenceScore)

	// Media failed, so only the social keywords survive.
	assert.Equal(t, []string{"korean"}, scoringCtx.TrendingKeywords)
}

func TestAggregate_EmptyPayloadCountsAsFailure(t *testing.T) {
	signals := healthySignals()
	signals.Sentiment = stubSentiment{} // nil payload, nil error

	svc := newTestIntelligence(signals)
	summary, _, err := svc.Aggregate(context.Background(), intelRequest())
	require.NoError(t, err)

	require.Len(t, summary.FailedSignals, 1)
	assert.Equal(t, models.FactorSentiment, summary.FailedSignals[0].Signal)
	assert.Equal(t, models.NeutralFactor, summary.Factors[models.FactorSentiment])
}

func TestAggregate_DeterministicAcrossRuns(t *testing.T) {
	// Goroutine completion order varies between runs; the settled output must
	// not.
	svc := newTestIntelligence(healthySignals())
	req := intelRequest()

	first, firstCtx, err := svc.Aggregate(context.Background(), req)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, againCtx, err := svc.Aggregate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first.Factors, again.Factors)
		assert.Equal(t, first.ConfidenceScore, again.ConfidenceScore)
		assert.Equal(t, first.NarrativeContext, again.NarrativeContext)
		assert.Equal(t, first.FailedSignals, again.FailedSignals)
		assert.Equal(t, firstCtx, againCtx)
	}
}

func TestAggregate_CancelledContext(t *testing.T) {
	svc := newTestIntelligence(healthySignals())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Aggregate(ctx, intelRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummaryCacheKey_CoversScoringInputs(t *testing.T) {
	svc := newTestIntelligence(healthySignals())

	base := intelRequest()
	base.Preferences = []string{"italian"}

	withOtherPrefs := intelRequest()
	withOtherPrefs.Preferences = []string{"sushi"}

	withOtherTZ := intelRequest()
	withOtherTZ.Preferences = []string{"italian"}
	withOtherTZ.Timezone = "Europe/Berlin"

	// Preference-filtered social signals and timezone-derived meal context
	// both land in the cached value, so they must separate keys.
	assert.NotEqual(t, svc.summaryCacheKey(base), svc.summaryCacheKey(withOtherPrefs))
	assert.NotEqual(t, svc.summaryCacheKey(base), svc.summaryCacheKey(withOtherTZ))

	// Preference order is irrelevant to the providers, so it must not split
	// the cache.
	a := intelRequest()
	a.Preferences = []string{"sushi", "italian"}
	b := intelRequest()
	b.Preferences = []string{"italian", "sushi"}
	assert.Equal(t, svc.summaryCacheKey(a), svc.summaryCacheKey(b))
	assert.Equal(t, []string{"sushi", "italian"}, a.Preferences, "key derivation must not reorder the request")
}

func TestConfidence_Properties(t *testing.T) {
	svc := newTestIntelligence(healthySignals())

	neutral := map[string]float64{}
	strong := map[string]float64{}
	for _, name := range models.FactorNames {
		neutral[name] = models.NeutralFactor
		strong[name] = 0.95
	}

	// Compare below the 1.0 ceiling so the clamp cannot mask the ordering.
	strongPartial := svc.confidence(strong, 3, 9)
	neutralPartial := svc.confidence(neutral, 3, 9)
	neutralWorse := svc.confidence(neutral, 2, 9)

	assert.Greater(t, strongPartial, neutralPartial, "high factors earn the bonus")
	assert.Greater(t, neutralPartial, neutralWorse, "success ratio drives confidence")

	allHealthy := svc.confidence(neutral, 9, 9)
	assert.Equal(t, 100, allHealthy)

	for _, c := range []int{strongPartial, neutralPartial, neutralWorse, allHealthy} {
		assert.GreaterOrEqual(t, c, 10)
		assert.LessOrEqual(t, c, 100)
	}

	assert.Equal(t, 10, svc.confidence(nil, 0, 0))
}
