package services

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// WeightStore holds the active algorithm weight snapshot. Readers take the
// current pointer without blocking; the single admin writer validates a
// merged candidate and swaps the pointer atomically, so no request ever
// observes a torn weight set.
type WeightStore struct {
	active atomic.Pointer[models.AlgorithmWeights]
	mu     sync.Mutex // serializes writers only
	logger *logrus.Logger
}

// NewWeightStore seeds the store from configuration, falling back to the
// built-in defaults when the configured set does not satisfy the invariant.
func NewWeightStore(cfg config.WeightsConfig, logger *logrus.Logger) *WeightStore {
	seed := models.AlgorithmWeights{
		SocialTrends:        cfg.SocialTrends,
		PersonalPreferences: cfg.PersonalPreferences,
		ContextualFactors:   cfg.ContextualFactors,
		LocationRelevance:   cfg.LocationRelevance,
		RatingQuality:       cfg.RatingQuality,
		PriceMatch:          cfg.PriceMatch,
		Version:             1,
	}
	if !seed.Valid() {
		logger.WithField("sum", seed.Sum()).Warn("Configured weights invalid, seeding defaults")
		seed = models.DefaultWeights()
	}

	s := &WeightStore{logger: logger}
	s.active.Store(&seed)
	activeWeightVersion.Set(float64(seed.Version))
	return s
}

// Get returns the active snapshot. The returned value is a copy; callers can
// hold it for the duration of a scoring run without re-reading.
func (s *WeightStore) Get() models.AlgorithmWeights {
	return *s.active.Load()
}

// Replace merges the partial update over the current snapshot, validates the
// sum invariant, and atomically activates the merged set as a new version.
// On rejection the previous snapshot remains active and is returned alongside
// the error.
func (s *WeightStore) Replace(partial models.PartialWeights) (models.AlgorithmWeights, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.active.Load()
	merged := current.Merge(partial)
	if !merged.Valid() {
		return *current, &WeightValidationError{Sum: merged.Sum()}
	}

	merged.Version = current.Version + 1
	s.active.Store(&merged)
	activeWeightVersion.Set(float64(merged.Version))

	s.logger.WithFields(logrus.Fields{
		"version": merged.Version,
		"sum":     merged.Sum(),
	}).Info("Algorithm weights replaced")

	return merged, nil
}
