package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/providers"
	"github.com/forkcast/forkcast/pkg/models"
)

// SignalProviders bundles the nine intelligence collaborators consumed by
// the aggregation run.
type SignalProviders struct {
	Weather      providers.WeatherProvider
	Events       providers.EventProvider
	Sentiment    providers.SentimentProvider
	Economic     providers.EconomicProvider
	Health       providers.HealthProvider
	Demographics providers.DemographicsProvider
	Temporal     providers.TemporalProvider
	Media        providers.MediaProvider
	Social       providers.SocialPlatformProvider
}

// IntelligenceService fans out to every signal provider, normalizes whatever
// comes back, and folds the results into a single summary. No provider
// failure is fatal; the corresponding factor falls back to the neutral
// default and the failure is recorded on the summary.
type IntelligenceService struct {
	providers  SignalProviders
	normalizer *FactorNormalizer
	redis      *redis.Client
	cfg        *config.Config
	logger     *logrus.Logger
}

// signalOutcome is the settled result of one provider call. Factor is always
// populated: with the normalized score on success, with the neutral default
// on failure.
type signalOutcome struct {
	signal string
	factor float64
	err    error

	// raw context observed by some providers, fed into ScoringContext.
	mealPeriod string
	isWeekend  bool
	trending   []string
	popularity map[string]float64
}

func NewIntelligenceService(
	p SignalProviders,
	normalizer *FactorNormalizer,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *logrus.Logger,
) *IntelligenceService {
	return &IntelligenceService{
		providers:  p,
		normalizer: normalizer,
		redis:      redisClient,
		cfg:        cfg,
		logger:     logger,
	}
}

// Aggregate runs the nine-way fan-out and joins on all providers settling.
// It returns the immutable summary together with the scoring context the
// providers observed. The only fatal condition is a missing location.
func (s *IntelligenceService) Aggregate(ctx context.Context, req *models.SignalRequest) (*models.IntelligenceSummary, *models.ScoringContext, error) {
	if req == nil || req.Location == nil {
		return nil, nil, ErrInvalidRequest
	}

	start := time.Now()
	defer func() { aggregationDuration.Observe(time.Since(start).Seconds()) }()

	if summary, scoringCtx, err := s.cachedSummary(ctx, req); err == nil {
		summaryCacheHits.WithLabelValues("hit").Inc()
		return summary, scoringCtx, nil
	}
	summaryCacheHits.WithLabelValues("miss").Inc()

	outcomes := s.collectSignals(ctx, req)

	// The join barrier has settled; a cancelled request must not produce a
	// partially assembled summary.
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}

	factors := make(map[string]float64, len(outcomes))
	scoringCtx := &models.ScoringContext{}
	var failures []models.SignalFailure
	successes := 0

	for _, o := range outcomes {
		factors[o.signal] = o.factor
		if o.err != nil {
			signalResults.WithLabelValues(o.signal, "failure").Inc()
			failures = append(failures, models.SignalFailure{Signal: o.signal, Reason: o.err.Error()})
			s.logger.WithFields(logrus.Fields{
				"signal": o.signal,
				"error":  o.err,
			}).Warn("Signal provider failed, using neutral factor")
			continue
		}
		signalResults.WithLabelValues(o.signal, "success").Inc()
		successes++

		if o.mealPeriod != "" {
			scoringCtx.MealPeriod = o.mealPeriod
			scoringCtx.IsWeekend = o.isWeekend
		}
		if len(o.trending) > 0 {
			scoringCtx.TrendingKeywords = append(scoringCtx.TrendingKeywords, o.trending...)
		}
		if len(o.popularity) > 0 {
			scoringCtx.VenuePopularity = o.popularity
		}
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Signal < failures[j].Signal })
	sort.Strings(scoringCtx.TrendingKeywords)

	summary := &models.IntelligenceSummary{
		Factors:          factors,
		ConfidenceScore:  s.confidence(factors, successes, len(outcomes)),
		NarrativeContext: s.narrativeContext(factors, scoringCtx),
		FailedSignals:    failures,
		GeneratedAt:      time.Now().UTC(),
	}

	s.cacheSummary(ctx, req, summary, scoringCtx)

	s.logger.WithFields(logrus.Fields{
		"confidence": summary.ConfidenceScore,
		"failed":     len(failures),
		"latency":    time.Since(start),
	}).Debug("Intelligence aggregation settled")

	return summary, scoringCtx, nil
}

// collectSignals launches all provider calls at once and waits for every one
// of them to settle. Aggregation is commutative: completion order cannot
// change the result.
func (s *IntelligenceService) collectSignals(ctx context.Context, req *models.SignalRequest) []signalOutcome {
	loc := *req.Location
	radiusKm := req.RadiusM / 1000.0

	tasks := map[string]func() signalOutcome{
		models.FactorWeather: func() signalOutcome {
			p, err := s.providers.Weather.Get(ctx, loc)
			return settle(models.FactorWeather, s.normalizer.Weather(p), p, err)
		},
		models.FactorEvents: func() signalOutcome {
			p, err := s.providers.Events.Get(ctx, loc, radiusKm)
			return settle(models.FactorEvents, s.normalizer.Events(p), p, err)
		},
		models.FactorSentiment: func() signalOutcome {
			p, err := s.providers.Sentiment.Get(ctx, loc)
			return settle(models.FactorSentiment, s.normalizer.Sentiment(p), p, err)
		},
		models.FactorEconomic: func() signalOutcome {
			p, err := s.providers.Economic.Get(ctx)
			return settle(models.FactorEconomic, s.normalizer.Economic(p), p, err)
		},
		models.FactorHealth: func() signalOutcome {
			p, err := s.providers.Health.Get(ctx, loc)
			return settle(models.FactorHealth, s.normalizer.Health(p), p, err)
		},
		models.FactorDemographic: func() signalOutcome {
			p, err := s.providers.Demographics.Get(ctx, loc)
			return settle(models.FactorDemographic, s.normalizer.Demographics(p), p, err)
		},
		models.FactorTemporal: func() signalOutcome {
			p, err := s.providers.Temporal.Get(ctx, req.Timezone)
			o := settle(models.FactorTemporal, s.normalizer.Temporal(p), p, err)
			if err == nil && p != nil {
				o.mealPeriod = p.MealPeriod
				o.isWeekend = p.IsWeekend
			}
			return o
		},
		models.FactorMedia: func() signalOutcome {
			p, err := s.providers.Media.Get(ctx, loc)
			o := settle(models.FactorMedia, s.normalizer.Media(p), p, err)
			if err == nil && p != nil {
				o.trending = p.TrendingTopics
			}
			return o
		},
		models.FactorSocial: func() signalOutcome {
			p, err := s.providers.Social.Get(ctx, loc, req.Preferences)
			o := settle(models.FactorSocial, s.normalizer.Social(p), p, err)
			if err == nil && p != nil {
				o.trending = p.TrendingKeywords
				o.popularity = p.VenuePopularity
			}
			return o
		},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	outcomes := make([]signalOutcome, 0, len(tasks))

	for name, task := range tasks {
		wg.Add(1)
		go func(name string, task func() signalOutcome) {
			defer wg.Done()
			o := task()
			mu.Lock()
			outcomes = append(outcomes, o)
			mu.Unlock()
		}(name, task)
	}

	wg.Wait()
	return outcomes
}

// settle neutralizes a failed provider call: the factor always carries a
// usable value.
func settle[T any](signal string, factor float64, payload *T, err error) signalOutcome {
	if err != nil || payload == nil {
		if err == nil {
			err = fmt.Errorf("empty payload")
		}
		return signalOutcome{signal: signal, factor: models.NeutralFactor, err: err}
	}
	return signalOutcome{signal: signal, factor: factor}
}

// confidence blends a fixed baseline, the provider success ratio, and the
// mean factor score, with a bonus when three or more factors run high. The
// result is clamped to [0.1, 1.0] and expressed on a 0-100 scale.
func (s *IntelligenceService) confidence(factors map[string]float64, successes, total int) int {
	if total == 0 {
		return 10
	}

	values := make([]float64, 0, len(factors))
	high := 0
	threshold := s.cfg.Scoring.Heuristics.HighFactorThreshold
	for _, v := range factors {
		values = append(values, v)
		if v > threshold {
			high++
		}
	}

	conf := models.NeutralFactor*0.6 +
		(float64(successes)/float64(total))*0.6 +
		stat.Mean(values, nil)*0.4
	if high >= 3 {
		conf += 0.1
	}
	conf = math.Max(0.1, math.Min(1.0, conf))

	return int(math.Round(conf * 100))
}

// narrativeContext is a short free-text description of what is driving the
// factors, consumed by the composer's template fallback.
func (s *IntelligenceService) narrativeContext(factors map[string]float64, scoringCtx *models.ScoringContext) string {
	drivers := make([]string, 0, 3)
	for _, name := range models.FactorNames {
		if factors[name] > s.cfg.Scoring.Heuristics.HighFactorThreshold {
			drivers = append(drivers, name)
		}
	}

	var b strings.Builder
	if scoringCtx.MealPeriod != "" {
		b.WriteString(scoringCtx.MealPeriod)
		if scoringCtx.IsWeekend {
			b.WriteString(" on a weekend")
		}
	}
	if len(drivers) > 0 {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString("strong ")
		b.WriteString(strings.Join(drivers, ", "))
		b.WriteString(" signals")
	}
	return b.String()
}

// Cache operations. Requests with the same location, preferences, and
// timezone within the TTL share one aggregation run.

type cachedAggregation struct {
	Summary    *models.IntelligenceSummary `json:"summary"`
	ScoringCtx *models.ScoringContext      `json:"scoring_ctx"`
}

// summaryCacheKey covers every request field the cached summary and scoring
// context depend on: the social provider filters by preferences and the
// temporal provider observes the timezone, so both belong in the key.
func (s *IntelligenceService) summaryCacheKey(req *models.SignalRequest) string {
	prefs := append([]string(nil), req.Preferences...)
	sort.Strings(prefs)
	return fmt.Sprintf("intel:%.3f:%.3f:%.0f:%s:%s:%s",
		req.Location.Lat, req.Location.Lng, req.RadiusM, req.Mode,
		req.Timezone, strings.Join(prefs, ","))
}

func (s *IntelligenceService) cachedSummary(ctx context.Context, req *models.SignalRequest) (*models.IntelligenceSummary, *models.ScoringContext, error) {
	if s.redis == nil {
		return nil, nil, fmt.Errorf("cache not available")
	}

	raw, err := s.redis.Get(ctx, s.summaryCacheKey(req)).Result()
	if err != nil {
		return nil, nil, err
	}

	var cached cachedAggregation
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, nil, err
	}
	if cached.Summary == nil {
		return nil, nil, fmt.Errorf("empty cache entry")
	}
	if cached.ScoringCtx == nil {
		cached.ScoringCtx = &models.ScoringContext{}
	}
	return cached.Summary, cached.ScoringCtx, nil
}

func (s *IntelligenceService) cacheSummary(ctx context.Context, req *models.SignalRequest, summary *models.IntelligenceSummary, scoringCtx *models.ScoringContext) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(cachedAggregation{Summary: summary, ScoringCtx: scoringCtx})
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, s.summaryCacheKey(req), data, s.cfg.Redis.SummaryTTL).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to cache intelligence summary")
	}
}
