package models

import "math"

// WeightTolerance is the allowed deviation of a weight set's sum from 1.0.
const WeightTolerance = 0.01

// AlgorithmWeights is one immutable version of the candidate-scoring model.
// Replacements swap the whole value; fields are never patched in place.
type AlgorithmWeights struct {
	SocialTrends        float64 `json:"social_trends" mapstructure:"social_trends"`
	PersonalPreferences float64 `json:"personal_preferences" mapstructure:"personal_preferences"`
	ContextualFactors   float64 `json:"contextual_factors" mapstructure:"contextual_factors"`
	LocationRelevance   float64 `json:"location_relevance" mapstructure:"location_relevance"`
	RatingQuality       float64 `json:"rating_quality" mapstructure:"rating_quality"`
	PriceMatch          float64 `json:"price_match" mapstructure:"price_match"`

	Version int `json:"version"`
}

// PartialWeights is an admin update: nil fields keep their current value.
type PartialWeights struct {
	SocialTrends        *float64 `json:"social_trends,omitempty"`
	PersonalPreferences *float64 `json:"personal_preferences,omitempty"`
	ContextualFactors   *float64 `json:"contextual_factors,omitempty"`
	LocationRelevance   *float64 `json:"location_relevance,omitempty"`
	RatingQuality       *float64 `json:"rating_quality,omitempty"`
	PriceMatch          *float64 `json:"price_match,omitempty"`
}

// Sum returns the total of all component weights.
func (w AlgorithmWeights) Sum() float64 {
	return w.SocialTrends + w.PersonalPreferences + w.ContextualFactors +
		w.LocationRelevance + w.RatingQuality + w.PriceMatch
}

// Valid reports whether the weight set sums to 1.0 within tolerance.
func (w AlgorithmWeights) Valid() bool {
	return math.Abs(w.Sum()-1.0) <= WeightTolerance
}

// Merge overlays the non-nil fields of p onto a copy of w.
func (w AlgorithmWeights) Merge(p PartialWeights) AlgorithmWeights {
	out := w
	if p.SocialTrends != nil {
		out.SocialTrends = *p.SocialTrends
	}
	if p.PersonalPreferences != nil {
		out.PersonalPreferences = *p.PersonalPreferences
	}
	if p.ContextualFactors != nil {
		out.ContextualFactors = *p.ContextualFactors
	}
	if p.LocationRelevance != nil {
		out.LocationRelevance = *p.LocationRelevance
	}
	if p.RatingQuality != nil {
		out.RatingQuality = *p.RatingQuality
	}
	if p.PriceMatch != nil {
		out.PriceMatch = *p.PriceMatch
	}
	return out
}

// DefaultWeights returns the seed weight distribution used at process start.
func DefaultWeights() AlgorithmWeights {
	return AlgorithmWeights{
		SocialTrends:        0.25,
		PersonalPreferences: 0.20,
		ContextualFactors:   0.15,
		LocationRelevance:   0.15,
		RatingQuality:       0.15,
		PriceMatch:          0.10,
		Version:             1,
	}
}
