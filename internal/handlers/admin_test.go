package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/forkcast/internal/config"
	"github.com/forkcast/forkcast/internal/services"
	"github.com/forkcast/forkcast/pkg/models"
)

func adminRouter(t *testing.T) (*gin.Engine, *services.WeightStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := services.NewWeightStore(config.WeightsConfig{
		SocialTrends:        0.25,
		PersonalPreferences: 0.20,
		ContextualFactors:   0.15,
		LocationRelevance:   0.15,
		RatingQuality:       0.15,
		PriceMatch:          0.10,
	}, logger)

	h := NewAdminHandler(store, logger)
	router := gin.New()
	router.GET("/admin/algorithm/weights", h.GetWeights)
	router.PUT("/admin/algorithm/weights", h.UpdateWeights)
	return router, store
}

func TestGetWeights(t *testing.T) {
	router, _ := adminRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/algorithm/weights", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got models.AlgorithmWeights
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0.25, got.SocialTrends)
	assert.Equal(t, 1, got.Version)
}

func TestUpdateWeights_ValidPartialUpdate(t *testing.T) {
	router, store := adminRouter(t)

	// Shift weight from social trends to personal preferences; the sum stays
	// at 1.0 and untouched fields keep their values.
	body := bytes.NewBufferString(`{"social_trends": 0.15, "personal_preferences": 0.30}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/algorithm/weights", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got models.AlgorithmWeights
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0.15, got.SocialTrends)
	assert.Equal(t, 0.30, got.PersonalPreferences)
	assert.Equal(t, 0.15, got.ContextualFactors)
	assert.Equal(t, 2, got.Version)

	assert.Equal(t, got, store.Get())
}

func TestUpdateWeights_RejectsBadSum(t *testing.T) {
	router, store := adminRouter(t)
	before := store.Get()

	// 0.30 instead of 0.25 pushes the sum to 1.05.
	body := bytes.NewBufferString(`{"social_trends": 0.30}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/algorithm/weights", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Error struct {
			Code    string  `json:"code"`
			Message string  `json:"message"`
			Sum     float64 `json:"sum"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "WEIGHT_VALIDATION_FAILED", envelope.Error.Code)
	assert.InDelta(t, 1.05, envelope.Error.Sum, 1e-9)
	assert.Contains(t, envelope.Error.Message, "must sum to 1.0")

	// The active snapshot is untouched.
	assert.Equal(t, before, store.Get())
}

func TestUpdateWeights_RejectsMalformedBody(t *testing.T) {
	router, _ := adminRouter(t)

	body := bytes.NewBufferString(`{"social_trends": "a lot"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/algorithm/weights", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_WEIGHTS", envelope.Error.Code)
}
