package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/messaging"
	"github.com/forkcast/forkcast/internal/middleware"
	"github.com/forkcast/forkcast/internal/providers"
	"github.com/forkcast/forkcast/internal/services"
	"github.com/forkcast/forkcast/internal/store"
	"github.com/forkcast/forkcast/pkg/models"
)

const defaultRadiusM = 5000

type RecommendationHandler struct {
	svc      *services.Services
	search   providers.RestaurantSearchProvider
	profiles *store.ProfileStore
	bus      *messaging.EventBus
	logger   *logrus.Logger
}

func NewRecommendationHandler(
	svc *services.Services,
	search providers.RestaurantSearchProvider,
	profiles *store.ProfileStore,
	bus *messaging.EventBus,
	logger *logrus.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		svc:      svc,
		search:   search,
		profiles: profiles,
		bus:      bus,
		logger:   logger,
	}
}

// Recommend runs the full pipeline: search candidates, aggregate the
// intelligence signals, score and rank against the active weights, compose
// the response, and record the impression.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	if req.RadiusM == 0 {
		req.RadiusM = defaultRadiusM
	}

	signalReq := &models.SignalRequest{
		Location:    req.Location,
		RadiusM:     req.RadiusM,
		Preferences: req.Preferences,
		Budget:      req.Budget,
		Mode:        req.Mode,
		Timezone:    req.Timezone,
		RequestedAt: time.Now().UTC(),
	}

	ctx := c.Request.Context()

	// Candidate search and signal aggregation are independent collaborator
	// calls; aggregation already fans out internally, so run them in
	// sequence and keep the handler simple.
	candidates, err := h.search.Search(ctx, req.Query, *req.Location, req.RadiusM)
	if err != nil {
		h.logger.WithError(err).Error("Restaurant search failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": gin.H{
				"code":    "SEARCH_UNAVAILABLE",
				"message": "Restaurant search is temporarily unavailable",
			},
		})
		return
	}

	summary, scoringCtx, err := h.svc.Intelligence.Aggregate(ctx, signalReq)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": err.Error(),
				},
			})
			return
		}
		h.logger.WithError(err).Error("Intelligence aggregation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "AGGREGATION_FAILED",
				"message": "Failed to aggregate intelligence signals",
			},
		})
		return
	}

	var profile *models.UserProfile
	if req.UserID != nil && h.profiles != nil {
		profile, err = h.profiles.GetProfile(ctx, *req.UserID)
		if err != nil {
			h.logger.WithError(err).Warn("Failed to load user profile")
		}
	}

	weights := h.svc.Weights.Get()
	ranked := h.svc.Scorer.ScoreAndRank(candidates, signalReq, profile, scoringCtx, summary, weights)
	response := h.svc.Composer.Compose(ctx, ranked, signalReq)

	h.recordImpression(c, &req, response)

	c.JSON(http.StatusOK, response)
}

// Feedback records a user's verdict on a previously shown recommendation.
func (h *RecommendationHandler) Feedback(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_FEEDBACK",
				"message": err.Error(),
			},
		})
		return
	}

	userID := req.UserID
	if userID == nil {
		if id, ok := middleware.GetUserFromContext(c); ok {
			userID = &id
		}
	}

	if h.bus != nil {
		h.bus.PublishAsync(&models.RecommendationEvent{
			EventType:    "feedback",
			RequestID:    req.RequestID,
			UserID:       userID,
			RestaurantID: req.RestaurantID,
			Feedback:     req.Feedback,
		})
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}

func (h *RecommendationHandler) recordImpression(c *gin.Context, req *models.RecommendationRequest, resp *models.RecommendationResponse) {
	if h.bus != nil {
		for _, cand := range resp.Primary {
			h.bus.PublishAsync(&models.RecommendationEvent{
				EventType:    "impression",
				RequestID:    resp.RequestID,
				UserID:       req.UserID,
				RestaurantID: cand.ID,
				Confidence:   cand.ConfidenceScore,
			})
		}
	}

	if req.UserID != nil && h.profiles != nil && len(resp.Primary) > 0 {
		var tags []string
		for _, cand := range resp.Primary {
			tags = append(tags, cand.Types...)
		}
		if err := h.profiles.RecordImpression(c.Request.Context(), *req.UserID, tags); err != nil {
			h.logger.WithError(err).Warn("Failed to record impression")
		}
	}
}
