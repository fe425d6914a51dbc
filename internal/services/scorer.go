package services

import (
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/pkg/models"
)

// Budget tiers map "$" through "$$$$" onto price levels 1..4.
var budgetLevels = map[string]int{
	"$": 1, "$$": 2, "$$$": 3, "$$$$": 4,
}

// ScorerService computes the six candidate subscores, combines them under
// the active weight snapshot, and produces the final ranking. Every rule is
// deterministic: identical inputs always yield the identical order.
type ScorerService struct {
	heuristics config.HeuristicsConfig
	logger     *logrus.Logger
}

func NewScorerService(heuristics config.HeuristicsConfig, logger *logrus.Logger) *ScorerService {
	return &ScorerService{heuristics: heuristics, logger: logger}
}

// ScoreAndRank scores every candidate against one weight snapshot and sorts
// by descending confidence with deterministic tie-breaks: higher rating
// quality first, then shorter distance. An empty candidate list is not an
// error; it yields an empty set with zero overall confidence.
func (s *ScorerService) ScoreAndRank(
	candidates []models.RestaurantCandidate,
	req *models.SignalRequest,
	profile *models.UserProfile,
	scoringCtx *models.ScoringContext,
	summary *models.IntelligenceSummary,
	weights models.AlgorithmWeights,
) *models.RankedRecommendationSet {
	if scoringCtx == nil {
		scoringCtx = &models.ScoringContext{}
	}

	scored := make([]models.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, s.scoreCandidate(c, req, profile, scoringCtx, weights))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].ConfidenceScore != scored[j].ConfidenceScore {
			return scored[i].ConfidenceScore > scored[j].ConfidenceScore
		}
		if scored[i].Scores.RatingQuality != scored[j].Scores.RatingQuality {
			return scored[i].Scores.RatingQuality > scored[j].Scores.RatingQuality
		}
		return scored[i].DistanceM < scored[j].DistanceM
	})

	return &models.RankedRecommendationSet{
		Candidates:        scored,
		OverallConfidence: overallConfidence(scored),
		Summary:           summary,
	}
}

func (s *ScorerService) scoreCandidate(
	c models.RestaurantCandidate,
	req *models.SignalRequest,
	profile *models.UserProfile,
	scoringCtx *models.ScoringContext,
	weights models.AlgorithmWeights,
) models.ScoredCandidate {
	sub := models.SubScores{
		SocialTrends:        s.socialTrends(c, scoringCtx),
		PersonalPreferences: s.personalPreferences(c, req, profile),
		ContextualFactors:   s.contextualFactors(c, req, scoringCtx),
		LocationRelevance:   locationRelevance(c.DistanceM, req.RadiusM),
		RatingQuality:       ratingQuality(c),
		PriceMatch:          priceMatch(c, req.Budget),
	}

	confidence := sub.SocialTrends*weights.SocialTrends +
		sub.PersonalPreferences*weights.PersonalPreferences +
		sub.ContextualFactors*weights.ContextualFactors +
		sub.LocationRelevance*weights.LocationRelevance +
		sub.RatingQuality*weights.RatingQuality +
		sub.PriceMatch*weights.PriceMatch

	return models.ScoredCandidate{
		RestaurantCandidate: c,
		Scores:              sub,
		ConfidenceScore:     confidence,
		ReasonTags:          reasonTags(sub),
		IsTrending:          sub.SocialTrends > 70,
	}
}

// socialTrends starts neutral, rewards a cuisine tag that is currently
// trending, and adds an inverse-popularity term: emptier venues score
// higher.
func (s *ScorerService) socialTrends(c models.RestaurantCandidate, scoringCtx *models.ScoringContext) float64 {
	score := 50.0
	if matchesAny(c.Types, scoringCtx.TrendingKeywords) {
		score += s.heuristics.TrendingBonus
	}

	popularity := c.Popularity
	if p, ok := scoringCtx.VenuePopularity[c.ID]; ok {
		popularity = p
	}
	score += 20.0 * (1.0 - clampFactor(popularity))

	return math.Min(100, score)
}

// personalPreferences rewards requested-cuisine matches and overlap with the
// user's historical recommendation tags.
func (s *ScorerService) personalPreferences(c models.RestaurantCandidate, req *models.SignalRequest, profile *models.UserProfile) float64 {
	score := 50.0
	if matchesAny(c.Types, req.Preferences) {
		score += s.heuristics.PreferenceBonus
	}
	if profile != nil && matchesAny(c.Types, profile.HistoricalTags) {
		score += s.heuristics.HistoryBonus
	}
	return math.Min(100, score)
}

// contextualFactors rewards meal-time tag alignment, weekend bar visits, and
// a candidate that supports the requested party mode.
func (s *ScorerService) contextualFactors(c models.RestaurantCandidate, req *models.SignalRequest, scoringCtx *models.ScoringContext) float64 {
	score := 50.0

	switch scoringCtx.MealPeriod {
	case "breakfast":
		if hasTag(c.Types, "breakfast") || hasTag(c.Types, "cafe") {
			score += 30
		}
	case "lunch":
		if hasTag(c.Types, "lunch") || hasTag(c.Types, "casual") {
			score += 20
		}
	case "dinner":
		if hasTag(c.Types, "dinner") || hasTag(c.Types, "fine_dining") {
			score += 15
		}
	}

	if scoringCtx.IsWeekend && hasTag(c.Types, "bar") {
		score += 10
	}

	switch req.Mode {
	case models.ModeDelivery:
		if c.Delivery {
			score += 20
		}
	case models.ModeDineOut:
		if c.DineIn {
			score += 15
		}
	}

	return math.Min(100, score)
}

// locationRelevance falls off quadratically: near candidates are strongly
// preferred over what a linear falloff would give.
func locationRelevance(distanceM, maxDistanceM float64) float64 {
	if distanceM <= 0 {
		return 100
	}
	if maxDistanceM <= 0 || distanceM >= maxDistanceM {
		return 0
	}
	frac := 1.0 - distanceM/maxDistanceM
	return 100 * frac * frac
}

// ratingQuality scales the star rating and rewards substantial review
// volume. A candidate with no rating scores zero.
func ratingQuality(c models.RestaurantCandidate) float64 {
	if c.Rating <= 0 {
		return 0
	}
	score := (c.Rating / 5.0) * 100.0
	if c.UserRatingsTotal > 100 {
		score += 10
	} else if c.UserRatingsTotal > 50 {
		score += 5
	}
	return math.Min(100, score)
}

// priceMatch penalizes each tier of distance between the candidate's price
// level and the requested budget by 25 points. Without a stated budget the
// score stays neutral.
func priceMatch(c models.RestaurantCandidate, budget string) float64 {
	level, ok := budgetLevels[budget]
	if !ok || c.PriceLevel == 0 {
		return 50
	}
	diff := math.Abs(float64(c.PriceLevel - level))
	return math.Max(0, 100-25*diff)
}

// reasonTags collects a human-readable justification for every subscore
// crossing its threshold, with a generic fallback when nothing stands out.
func reasonTags(sub models.SubScores) []string {
	var tags []string
	if sub.SocialTrends > 80 {
		tags = append(tags, "Currently trending")
	}
	if sub.PersonalPreferences > 80 {
		tags = append(tags, "Matches your preferences")
	}
	if sub.RatingQuality > 90 {
		tags = append(tags, "Highly rated")
	}
	if sub.LocationRelevance > 90 {
		tags = append(tags, "Very convenient location")
	}
	if sub.PriceMatch > 95 {
		tags = append(tags, "Perfect budget match")
	}
	if len(tags) == 0 {
		tags = append(tags, "Good overall match")
	}
	return tags
}

// overallConfidence is the mean confidence of the top three ranked
// candidates, zero for an empty set.
func overallConfidence(scored []models.ScoredCandidate) float64 {
	if len(scored) == 0 {
		return 0
	}
	n := len(scored)
	if n > 3 {
		n = 3
	}
	top := make([]float64, n)
	for i := 0; i < n; i++ {
		top[i] = scored[i].ConfidenceScore
	}
	return stat.Mean(top, nil)
}

func matchesAny(tags, wanted []string) bool {
	for _, w := range wanted {
		if hasTag(tags, w) {
			return true
		}
	}
	return false
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
