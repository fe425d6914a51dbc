package models

// RestaurantCandidate is a restaurant returned by the search collaborator,
// eligible for scoring. Attributes come straight from the search payload.
type RestaurantCandidate struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PriceLevel       int      `json:"price_level"` // 1..4, 0 when unknown
	DistanceM        float64  `json:"distance_m"`
	Types            []string `json:"types,omitempty"` // cuisine / venue tags
	OpenNow          bool     `json:"open_now"`
	Delivery         bool     `json:"delivery"`
	DineIn           bool     `json:"dine_in"`
	Popularity       float64  `json:"popularity"` // [0,1] current crowding, 0 unknown
}

// SubScores holds the six per-candidate component scores, each 0-100.
type SubScores struct {
	SocialTrends        float64 `json:"social_trends"`
	PersonalPreferences float64 `json:"personal_preferences"`
	ContextualFactors   float64 `json:"contextual_factors"`
	LocationRelevance   float64 `json:"location_relevance"`
	RatingQuality       float64 `json:"rating_quality"`
	PriceMatch          float64 `json:"price_match"`
}

// ScoredCandidate is a candidate plus its computed scores and justification.
// Derived per request, never cached.
type ScoredCandidate struct {
	RestaurantCandidate

	Scores          SubScores `json:"scores"`
	ConfidenceScore float64   `json:"confidence_score"` // weighted sum, 0-100
	ReasonTags      []string  `json:"reason_tags"`
	IsTrending      bool      `json:"is_trending"`
}

// RankedRecommendationSet is the ordered scoring output for one request.
type RankedRecommendationSet struct {
	Candidates        []ScoredCandidate    `json:"candidates"` // descending confidence
	OverallConfidence float64              `json:"overall_confidence"`
	Summary           *IntelligenceSummary `json:"summary,omitempty"`
}
