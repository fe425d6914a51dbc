package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/forkcast/pkg/models"
)

type stubNarrative struct {
	text string
	err  error
}

func (s stubNarrative) Summarize(context.Context, *models.RankedRecommendationSet, *models.SignalRequest) (string, error) {
	return s.text, s.err
}

func rankedSet(n int) *models.RankedRecommendationSet {
	set := &models.RankedRecommendationSet{OverallConfidence: 78.5}
	for i := 0; i < n; i++ {
		set.Candidates = append(set.Candidates, models.ScoredCandidate{
			RestaurantCandidate: models.RestaurantCandidate{
				ID:    string(rune('a' + i)),
				Name:  "Place " + string(rune('A'+i)),
				Types: []string{"fine_dining"},
			},
			ConfidenceScore: 90 - float64(i)*5,
		})
	}
	return set
}

func TestCompose_UsesAINarrativeWhenAvailable(t *testing.T) {
	c := NewComposerService(stubNarrative{text: "A balmy evening calls for pasta."}, 3, quietLogger())

	resp := c.Compose(context.Background(), rankedSet(2), intelRequest())

	assert.Equal(t, "A balmy evening calls for pasta.", resp.Narrative)
	assert.Equal(t, "ai", resp.NarrativeSource)
}

func TestCompose_FallsBackToTemplateOnNarrativeFailure(t *testing.T) {
	tests := []struct {
		name      string
		narrative stubNarrative
	}{
		{"generator error", stubNarrative{err: errors.New("model unavailable")}},
		{"empty output", stubNarrative{text: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposerService(tt.narrative, 3, quietLogger())

			resp := c.Compose(context.Background(), rankedSet(2), intelRequest())

			assert.Equal(t, "template", resp.NarrativeSource)
			assert.NotEmpty(t, resp.Narrative)
			assert.Contains(t, resp.Narrative, "Place A")
		})
	}
}

func TestCompose_NilGeneratorStillProducesResponse(t *testing.T) {
	c := NewComposerService(nil, 3, quietLogger())

	resp := c.Compose(context.Background(), rankedSet(1), intelRequest())

	assert.Equal(t, "template", resp.NarrativeSource)
	assert.Contains(t, resp.Narrative, "Place A")
	assert.Contains(t, resp.Narrative, "Fine Dining")
	assert.Contains(t, resp.Narrative, "90% confidence")
}

func TestCompose_TruncatesToTopK(t *testing.T) {
	c := NewComposerService(nil, 3, quietLogger())

	resp := c.Compose(context.Background(), rankedSet(5), intelRequest())

	assert.Len(t, resp.Primary, 3)
	assert.Equal(t, 5, resp.TotalCandidates)
	assert.Equal(t, "Place A", resp.Primary[0].Name)
	assert.Equal(t, 78.5, resp.OverallConfidence)
	assert.NotEqual(t, "", resp.RequestID.String())
}

func TestCompose_EmptySet(t *testing.T) {
	// The AI collaborator is never consulted for an empty set.
	c := NewComposerService(stubNarrative{text: "should not appear"}, 3, quietLogger())

	resp := c.Compose(context.Background(), &models.RankedRecommendationSet{}, intelRequest())

	assert.Empty(t, resp.Primary)
	assert.Equal(t, 0, resp.TotalCandidates)
	assert.Equal(t, "template", resp.NarrativeSource)
	assert.Contains(t, resp.Narrative, "No restaurants matched")
}

func TestCompose_SafeUnderConcurrentRequests(t *testing.T) {
	// One composer serves every in-flight request; the template path must not
	// share mutable state between them. Run with -race.
	c := NewComposerService(nil, 3, quietLogger())
	set := rankedSet(3)
	req := intelRequest()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				resp := c.Compose(context.Background(), set, req)
				if resp.NarrativeSource != "template" {
					t.Errorf("unexpected narrative source %q", resp.NarrativeSource)
					return
				}
				if !strings.Contains(resp.Narrative, "Fine Dining") {
					t.Errorf("unexpected narrative %q", resp.Narrative)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestTemplateNarrative_MentionsRemainingOptions(t *testing.T) {
	c := NewComposerService(nil, 3, quietLogger())

	text := c.templateNarrative(rankedSet(4))
	assert.Contains(t, text, "3 more options")

	solo := c.templateNarrative(rankedSet(1))
	require.NotContains(t, solo, "more options")
}
