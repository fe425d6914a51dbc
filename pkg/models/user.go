package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the stored dining profile for a known user. The scorer only
// consumes HistoricalTags; the rest is kept for the profile API.
type UserProfile struct {
	UserID          uuid.UUID  `json:"user_id"`
	HistoricalTags  []string   `json:"historical_tags,omitempty"` // tags of past recommendations
	FavoriteCuisines []string  `json:"favorite_cuisines,omitempty"`
	ImpressionCount int        `json:"impression_count"`
	LastSeen        *time.Time `json:"last_seen,omitempty"`
}
