package models

import "time"

// Factor names, one per intelligence domain. The aggregation pipeline keys
// every factor map with these constants.
const (
	FactorWeather     = "weather"
	FactorEvents      = "events"
	FactorSentiment   = "sentiment"
	FactorEconomic    = "economic"
	FactorHealth      = "health"
	FactorDemographic = "demographic"
	FactorTemporal    = "temporal"
	FactorMedia       = "media"
	FactorSocial      = "social"
)

// FactorNames lists all intelligence factors in canonical order.
var FactorNames = []string{
	FactorWeather, FactorEvents, FactorSentiment, FactorEconomic,
	FactorHealth, FactorDemographic, FactorTemporal, FactorMedia, FactorSocial,
}

// NeutralFactor is the default score used when a signal provider fails or
// returns no payload. Empirically chosen; do not derive a "better" value.
const NeutralFactor = 0.5

// PartyMode describes how the user intends to eat.
type PartyMode string

const (
	ModeDelivery PartyMode = "delivery"
	ModeDineOut  PartyMode = "dine_out"
)

// Location is an already-geocoded point plus the free text it came from.
type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Text string  `json:"text,omitempty"`
}

// SignalRequest is the immutable per-request context handed to the
// aggregation pipeline. Constructed once per recommendation request.
type SignalRequest struct {
	Location    *Location `json:"location"`
	RadiusM     float64   `json:"radius_m"`
	Preferences []string  `json:"preferences,omitempty"`
	Budget      string    `json:"budget,omitempty"` // "$".."$$$$"
	Mode        PartyMode `json:"mode,omitempty"`
	Timezone    string    `json:"timezone,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// IntelligenceSummary is the settled output of one aggregation run: all nine
// factors, a 0-100 confidence, and diagnostics for any provider that failed.
// Immutable after construction; never shared across requests.
type IntelligenceSummary struct {
	Factors          map[string]float64 `json:"factors"`
	ConfidenceScore  int                `json:"confidence_score"`
	NarrativeContext string             `json:"narrative_context,omitempty"`
	FailedSignals    []SignalFailure    `json:"failed_signals,omitempty"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// SignalFailure records one provider that did not deliver a payload.
type SignalFailure struct {
	Signal string `json:"signal"`
	Reason string `json:"reason"`
}

// WeatherPayload is the parsed weather snapshot for the request location.
type WeatherPayload struct {
	TempC         float64 `json:"temp_c"`
	Condition     string  `json:"condition"` // clear, rain, snow, ...
	PrecipChance  float64 `json:"precip_chance"`
	WindKph       float64 `json:"wind_kph"`
	FeelsLikeC    float64 `json:"feels_like_c"`
	SevereWarning bool    `json:"severe_warning"`
}

// EventPayload summarizes local events near the request location.
type EventPayload struct {
	EventCount        int     `json:"event_count"`
	LargestAttendance int     `json:"largest_attendance"`
	DemandMultiplier  float64 `json:"demand_multiplier"`
	Categories        []string `json:"categories,omitempty"`
}

// SentimentPayload carries aggregate social sentiment around dining.
type SentimentPayload struct {
	Polarity     float64 `json:"polarity"` // [-1, 1]
	MentionCount int     `json:"mention_count"`
	ViralPosts   int     `json:"viral_posts"`
}

// EconomicPayload holds macro indicators relevant to discretionary spend.
type EconomicPayload struct {
	ConsumerConfidence float64 `json:"consumer_confidence"` // index, ~100 neutral
	UnemploymentRate   float64 `json:"unemployment_rate"`   // percent
	InflationRate      float64 `json:"inflation_rate"`      // percent
}

// HealthPayload carries public-health trend data for the area.
type HealthPayload struct {
	RiskLevel     string  `json:"risk_level"` // low, moderate, high
	FluActivity   float64 `json:"flu_activity"`
	AdvisoryCount int     `json:"advisory_count"`
}

// DemographicsPayload describes the neighborhood around the location.
type DemographicsPayload struct {
	MedianIncome     float64 `json:"median_income"`
	PopulationDensity float64 `json:"population_density"`
	DiningIndex      float64 `json:"dining_index"` // restaurants per 1k residents
}

// TemporalPayload captures time-of-day dining behavior for the timezone.
type TemporalPayload struct {
	LocalHour  int    `json:"local_hour"`
	DayOfWeek  string `json:"day_of_week"`
	MealPeriod string `json:"meal_period"` // breakfast, lunch, dinner, late_night
	IsWeekend  bool   `json:"is_weekend"`
	IsPeakHour bool   `json:"is_peak_hour"`
}

// MediaPayload summarizes food-media buzz (articles, reviews, shows).
type MediaPayload struct {
	ArticleCount  int      `json:"article_count"`
	ViralMentions int      `json:"viral_mentions"`
	TrendingTopics []string `json:"trending_topics,omitempty"`
}

// SocialPayload carries cross-platform social signals: trending cuisines and
// relative venue crowding.
type SocialPayload struct {
	TrendingKeywords []string           `json:"trending_keywords,omitempty"`
	PlatformReach    int                `json:"platform_reach"`
	EngagementScore  float64            `json:"engagement_score"` // [0,1]
	VenuePopularity  map[string]float64 `json:"venue_popularity,omitempty"`
}

// ScoringContext is the contextual data the candidate scorer consumes. The
// aggregation run is the only place that sees raw payloads, so it assembles
// this alongside the summary.
type ScoringContext struct {
	MealPeriod       string             `json:"meal_period,omitempty"`
	IsWeekend        bool               `json:"is_weekend"`
	TrendingKeywords []string           `json:"trending_keywords,omitempty"`
	VenuePopularity  map[string]float64 `json:"venue_popularity,omitempty"`
}
