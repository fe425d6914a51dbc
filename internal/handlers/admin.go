package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/forkcast/forkcast/internal/services"
	"github.com/forkcast/forkcast/pkg/models"
)

// AdminHandler exposes the algorithm weight configuration. Updates are
// partial: fields omitted from the body keep their current value.
type AdminHandler struct {
	weights *services.WeightStore
	logger  *logrus.Logger
}

func NewAdminHandler(weights *services.WeightStore, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		weights: weights,
		logger:  logger,
	}
}

// GetWeights returns the active weight snapshot.
func (h *AdminHandler) GetWeights(c *gin.Context) {
	c.JSON(http.StatusOK, h.weights.Get())
}

// UpdateWeights merges the partial body over the current snapshot and
// activates it if the sum invariant holds. A rejected update reports the
// computed sum and leaves the previous snapshot active.
func (h *AdminHandler) UpdateWeights(c *gin.Context) {
	var partial models.PartialWeights
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_WEIGHTS",
				"message": err.Error(),
			},
		})
		return
	}

	updated, err := h.weights.Replace(partial)
	if err != nil {
		var validationErr *services.WeightValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "WEIGHT_VALIDATION_FAILED",
					"message": validationErr.Error(),
					"sum":     validationErr.Sum,
				},
			})
			return
		}
		h.logger.WithError(err).Error("Weight update failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "WEIGHT_UPDATE_FAILED",
				"message": "Failed to update algorithm weights",
			},
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}
