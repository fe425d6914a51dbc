package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forkcast/forkcast/internal/providers"
	"github.com/forkcast/forkcast/pkg/models"
)

// ComposerService assembles the response envelope from a ranked set: the
// top-K candidates for primary display, the intelligence summary, and a
// narrative. The AI narrative collaborator is optional; when it fails or is
// absent the composer always falls back to a deterministic template, so a
// response is produced no matter what.
type ComposerService struct {
	narrative providers.NarrativeGenerator
	topK      int
	logger    *logrus.Logger
}

func NewComposerService(narrative providers.NarrativeGenerator, topK int, logger *logrus.Logger) *ComposerService {
	if topK <= 0 {
		topK = 3
	}
	return &ComposerService{
		narrative: narrative,
		topK:      topK,
		logger:    logger,
	}
}

// Compose builds the final response for one request.
func (c *ComposerService) Compose(ctx context.Context, set *models.RankedRecommendationSet, req *models.SignalRequest) *models.RecommendationResponse {
	primary := set.Candidates
	if len(primary) > c.topK {
		primary = primary[:c.topK]
	}

	narrative, source := c.buildNarrative(ctx, set, req)

	return &models.RecommendationResponse{
		RequestID:         uuid.New(),
		Primary:           primary,
		TotalCandidates:   len(set.Candidates),
		OverallConfidence: set.OverallConfidence,
		Narrative:         narrative,
		NarrativeSource:   source,
		Intelligence:      set.Summary,
		GeneratedAt:       time.Now().UTC(),
	}
}

func (c *ComposerService) buildNarrative(ctx context.Context, set *models.RankedRecommendationSet, req *models.SignalRequest) (string, string) {
	if c.narrative != nil && len(set.Candidates) > 0 {
		text, err := c.narrative.Summarize(ctx, set, req)
		if err == nil && text != "" {
			return text, "ai"
		}
		if err != nil {
			c.logger.WithError(err).Warn("Narrative generator failed, using template")
		}
	}
	return c.templateNarrative(set), "template"
}

// templateNarrative is the mandatory fallback: built only from the ranked
// set and the summary's context, so it is reproducible in tests.
func (c *ComposerService) templateNarrative(set *models.RankedRecommendationSet) string {
	if len(set.Candidates) == 0 {
		return "No restaurants matched your request. Try widening the search radius."
	}

	top := set.Candidates[0]
	var b strings.Builder
	fmt.Fprintf(&b, "%s leads your matches", top.Name)

	if len(top.Types) > 0 {
		// cases.Caser carries transform state, so build one per call instead
		// of sharing it across in-flight requests.
		titler := cases.Title(language.English)
		fmt.Fprintf(&b, " (%s)", titler.String(strings.ReplaceAll(top.Types[0], "_", " ")))
	}
	if set.Summary != nil && set.Summary.NarrativeContext != "" {
		fmt.Fprintf(&b, " for %s", set.Summary.NarrativeContext)
	}
	fmt.Fprintf(&b, " with %.0f%% confidence.", top.ConfidenceScore)

	if len(set.Candidates) > 1 {
		fmt.Fprintf(&b, " %d more options are ranked below it.", len(set.Candidates)-1)
	}
	return b.String()
}
