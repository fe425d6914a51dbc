package models

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationRequest is the inbound API payload for one recommendation run.
type RecommendationRequest struct {
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Query       string     `json:"query,omitempty"`
	Location    *Location  `json:"location" binding:"required"`
	RadiusM     float64    `json:"radius_m" binding:"omitempty,min=100,max=50000"`
	Preferences []string   `json:"preferences,omitempty" binding:"omitempty,max=10"`
	Budget      string     `json:"budget,omitempty" binding:"omitempty,oneof=$ $$ $$$ $$$$"`
	Mode        PartyMode  `json:"mode,omitempty" binding:"omitempty,oneof=delivery dine_out"`
	Timezone    string     `json:"timezone,omitempty"`
}

// RecommendationResponse is the API envelope assembled by the composer.
type RecommendationResponse struct {
	RequestID       uuid.UUID            `json:"request_id"`
	Primary         []ScoredCandidate    `json:"primary"` // top-K for display
	TotalCandidates int                  `json:"total_candidates"`
	OverallConfidence float64            `json:"overall_confidence"`
	Narrative       string               `json:"narrative"`
	NarrativeSource string               `json:"narrative_source"` // "ai" or "template"
	Intelligence    *IntelligenceSummary `json:"intelligence"`
	GeneratedAt     time.Time            `json:"generated_at"`
}

// RecommendationEvent is published to the event bus for every impression and
// every piece of user feedback.
type RecommendationEvent struct {
	EventType    string     `json:"event_type"` // impression, feedback
	RequestID    uuid.UUID  `json:"request_id"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	RestaurantID string     `json:"restaurant_id,omitempty"`
	Feedback     string     `json:"feedback,omitempty"` // positive, negative, not_relevant
	Confidence   float64    `json:"confidence,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}

// FeedbackRequest is the inbound payload for recommendation feedback.
type FeedbackRequest struct {
	RequestID    uuid.UUID  `json:"request_id" binding:"required"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	RestaurantID string     `json:"restaurant_id" binding:"required"`
	Feedback     string     `json:"feedback" binding:"required,oneof=positive negative not_relevant"`
}
