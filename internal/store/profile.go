package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/pkg/models"
)

// Querier is the subset of pgxpool.Pool the profile store uses, narrowed so
// tests can substitute a pgxmock pool.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ProfileStore persists per-user dining history: which cuisine tags the user
// has been shown and interacted with. The scorer feeds HistoricalTags into
// the personalPreferences subscore.
type ProfileStore struct {
	db     Querier
	logger *logrus.Logger
}

func NewProfileStore(db Querier, logger *logrus.Logger) *ProfileStore {
	return &ProfileStore{db: db, logger: logger}
}

// GetProfile loads a user's dining profile. A missing user is not an error;
// it returns nil so anonymous scoring proceeds without preference history.
func (s *ProfileStore) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	profile := &models.UserProfile{UserID: userID}

	row := s.db.QueryRow(ctx,
		`SELECT historical_tags, favorite_cuisines, impression_count, last_seen
		 FROM user_profiles WHERE user_id = $1`, userID)

	err := row.Scan(&profile.HistoricalTags, &profile.FavoriteCuisines,
		&profile.ImpressionCount, &profile.LastSeen)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load profile %s: %w", userID, err)
	}
	return profile, nil
}

// RecordImpression appends the tags of a shown recommendation to the user's
// history and bumps the impression count.
func (s *ProfileStore) RecordImpression(ctx context.Context, userID uuid.UUID, tags []string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(ctx,
		`INSERT INTO user_profiles (user_id, historical_tags, impression_count, last_seen)
		 VALUES ($1, $2, 1, $3)
		 ON CONFLICT (user_id) DO UPDATE SET
		   historical_tags = (
		     SELECT ARRAY(SELECT DISTINCT unnest(user_profiles.historical_tags || $2))
		   ),
		   impression_count = user_profiles.impression_count + 1,
		   last_seen = $3`,
		userID, tags, now)
	if err != nil {
		return fmt.Errorf("record impression for %s: %w", userID, err)
	}
	return nil
}
