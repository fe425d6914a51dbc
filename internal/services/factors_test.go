package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

func testHeuristics() config.HeuristicsConfig {
	return config.HeuristicsConfig{
		TrendingBonus:       30,
		PreferenceBonus:     25,
		HistoryBonus:        15,
		ComfortTempC:        20,
		HighFactorThreshold: 0.8,
	}
}

func TestFactorNormalizer_NilPayloadsDefaultToNeutral(t *testing.T) {
	n := NewFactorNormalizer(testHeuristics())

	assert.Equal(t, models.NeutralFactor, n.Weather(nil))
	assert.Equal(t, models.NeutralFactor, n.Events(nil))
	assert.Equal(t, models.NeutralFactor, n.Sentiment(nil))
	assert.Equal(t, models.NeutralFactor, n.Economic(nil))
	assert.Equal(t, models.NeutralFactor, n.Health(nil))
	assert.Equal(t, models.NeutralFactor, n.Demographics(nil))
	assert.Equal(t, models.NeutralFactor, n.Temporal(nil))
	assert.Equal(t, models.NeutralFactor, n.Media(nil))
	assert.Equal(t, models.NeutralFactor, n.Social(nil))
}

func TestFactorNormalizer_OutputsAlwaysBounded(t *testing.T) {
	n := NewFactorNormalizer(testHeuristics())

	scores := []float64{
		n.Weather(&models.WeatherPayload{TempC: -40, PrecipChance: 1, SevereWarning: true}),
		n.Weather(&models.WeatherPayload{TempC: 55, PrecipChance: 1, SevereWarning: true}),
		n.Events(&models.EventPayload{DemandMultiplier: 9, LargestAttendance: 2000000}),
		n.Events(&models.EventPayload{DemandMultiplier: 0.01}),
		n.Sentiment(&models.SentimentPayload{Polarity: 1, ViralPosts: 500}),
		n.Sentiment(&models.SentimentPayload{Polarity: -1}),
		n.Economic(&models.EconomicPayload{ConsumerConfidence: 250, UnemploymentRate: 0}),
		n.Economic(&models.EconomicPayload{ConsumerConfidence: 0, UnemploymentRate: 25}),
		n.Health(&models.HealthPayload{RiskLevel: "high", FluActivity: 100, AdvisoryCount: 40}),
		n.Demographics(&models.DemographicsPayload{MedianIncome: 1e7, DiningIndex: 100}),
		n.Temporal(&models.TemporalPayload{IsPeakHour: true, IsWeekend: true, MealPeriod: "dinner"}),
		n.Media(&models.MediaPayload{ArticleCount: 10000, ViralMentions: 10000}),
		n.Social(&models.SocialPayload{EngagementScore: 1, TrendingKeywords: make([]string, 50)}),
	}

	for i, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0, "score %d below range", i)
		assert.LessOrEqual(t, s, 1.0, "score %d above range", i)
	}
}

func TestFactorNormalizer_Deterministic(t *testing.T) {
	n := NewFactorNormalizer(testHeuristics())

	payload := &models.WeatherPayload{TempC: 33, PrecipChance: 0.4, SevereWarning: false}
	first := n.Weather(payload)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, n.Weather(payload))
	}
}

func TestFactorNormalizer_DomainHeuristics(t *testing.T) {
	n := NewFactorNormalizer(testHeuristics())

	t.Run("temperature extremity raises weather factor", func(t *testing.T) {
		mild := n.Weather(&models.WeatherPayload{TempC: 20})
		extreme := n.Weather(&models.WeatherPayload{TempC: -10})
		assert.Greater(t, extreme, mild)
	})

	t.Run("demand multiplier maps into events factor", func(t *testing.T) {
		quiet := n.Events(&models.EventPayload{DemandMultiplier: 1.0})
		busy := n.Events(&models.EventPayload{DemandMultiplier: 1.6})
		assert.Greater(t, busy, quiet)
	})

	t.Run("polarity moves sentiment factor", func(t *testing.T) {
		negative := n.Sentiment(&models.SentimentPayload{Polarity: -0.8})
		positive := n.Sentiment(&models.SentimentPayload{Polarity: 0.8})
		assert.Greater(t, positive, negative)
		assert.Less(t, negative, models.NeutralFactor)
	})

	t.Run("confidence up and unemployment down raise economic factor", func(t *testing.T) {
		weak := n.Economic(&models.EconomicPayload{ConsumerConfidence: 80, UnemploymentRate: 8})
		strong := n.Economic(&models.EconomicPayload{ConsumerConfidence: 120, UnemploymentRate: 3})
		assert.Greater(t, strong, weak)
	})

	t.Run("health risk lowers factor", func(t *testing.T) {
		low := n.Health(&models.HealthPayload{RiskLevel: "low"})
		high := n.Health(&models.HealthPayload{RiskLevel: "high"})
		assert.Greater(t, low, high)
	})
}
