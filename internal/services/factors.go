package services

import (
	"math"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// FactorNormalizer converts raw signal payloads into comparable [0,1] factor
// scores. Every method is pure: the same payload always produces the same
// score, and a nil payload produces exactly the neutral default. The bonus
// and slope constants are empirically tuned and come from configuration.
type FactorNormalizer struct {
	cfg config.HeuristicsConfig
}

func NewFactorNormalizer(cfg config.HeuristicsConfig) *FactorNormalizer {
	return &FactorNormalizer{cfg: cfg}
}

func clampFactor(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Weather scores how strongly current conditions push diners toward a
// recommendation. Temperature extremity raises the factor, as do imminent
// precipitation and severe-weather warnings.
func (n *FactorNormalizer) Weather(p *models.WeatherPayload) float64 {
	if p == nil {
		return models.NeutralFactor
	}

	score := models.NeutralFactor
	extremity := math.Abs(p.TempC-n.cfg.ComfortTempC) / 50.0
	score += math.Min(0.3, extremity)
	score += 0.15 * clampFactor(p.PrecipChance)
	if p.SevereWarning {
		score += 0.1
	}
	return clampFactor(score)
}

// Events maps the event-driven demand multiplier linearly into the factor,
// with a cap on the crowd-size contribution.
func (n *FactorNormalizer) Events(p *models.EventPayload) float64 {
	if p == nil {
		return models.NeutralFactor
	}

	score := models.NeutralFactor
	if p.DemandMultiplier > 0 {
		score += (p.DemandMultiplier - 1.0) * 0.5
	}
	score += math.Min(0.2, float64(p.LargestAttendance)/100000.0*0.2)
	return clampFactor(score)
}

// Sentiment shifts with polarity and gets a bounded viral-content boost.
func (n *FactorNormalizer) Sentiment(p *models.SentimentPayload) float64 {
	if p == nil {
		return models.NeutralFactor
	}

	score := models.NeutralFactor + p.Polarity*0.4
	score += math.Min(0.1, float64(p.ViralPosts)*0.02)
	return clampFactor(score)
}

// Economic moves directly with consumer confidence (index 100 is neutral)
// and inversely with unemployment (4 percent taken as baseline).
func (n *FactorNormalizer) Economic(p *models.EconomicPayload) float64 {
	if p == nil {
		return models.NeutralFactor
	}

	score := models.NeutralFactor
	score += (p.ConsumerConfidence - 100.0) / 200.0
	score -= (p.UnemploymentRate - 4.0) * 0.05
	return clampFactor(score)
}

// Health lowers the factor as public-health risk rises.
func (n *FactorNormalizer) Health(p *models.HealthPayload) float64 {
	if p == nil {
		return models.NeutralFactor
	}

	score := models.NeutralFactor
	switch p.RiskLevel {
	case "low":
		score += 0.2
	case "high":
		score -= 0.3
	}
	score -= math.Min(0.1, p.FluActivity/10.0*0.1)
	score -= 0.02 * float64(p.AdvisoryCount)
	return clampFactor(score)
}

// Demographics rewards dense dining neighborhoods and above-baseline income.
func (n *FactorNormalizer) Demographics(p *models.DemographicsPayload) float64 {
	if p == nil {
		return models.NeutralFactor
	}

	score := models.NeutralFactor
	score += math.Min(0.2, p.DiningIndex/10.0*0.2)
	income := (p.MedianIncome - 60000.0) / 200000.0
	score += math.Max(-0.15, math.Min(0.15, income))
	return clampFactor(score)
}

// Temporal rewards peak dining windows.
func (n *FactorNormalizer) Temporal(p *models.TemporalPayload) float64 {
	if p == nil {
		return models.NeutralFactor
	}

	score := models.NeutralFactor
	if p.IsPeakHour {
		score += 0.2
	}
	if p.IsWeekend {
		score += 0.1
	}
	switch p.MealPeriod {
	case "breakfast", "lunch", "dinner":
		score += 0.1
	}
	return clampFactor(score)
}

// Media adds bounded contributions from article volume and viral mentions.
func (n *FactorNormalizer) Media(p *models.MediaPayload) float64 {
	if p == nil {
		return models.NeutralFactor
	}

	score := models.NeutralFactor
	score += math.Min(0.2, float64(p.ArticleCount)*0.01)
	score += math.Min(0.2, float64(p.ViralMentions)*0.05)
	return clampFactor(score)
}

// Social blends platform engagement with the breadth of trending keywords.
func (n *FactorNormalizer) Social(p *models.SocialPayload) float64 {
	if p == nil {
		return models.NeutralFactor
	}

	score := models.NeutralFactor
	score += clampFactor(p.EngagementScore) * 0.3
	score += math.Min(0.2, float64(len(p.TrendingKeywords))*0.05)
	return clampFactor(score)
}
