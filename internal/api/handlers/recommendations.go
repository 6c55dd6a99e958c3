package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/td-scout/internal/services"
	"github.com/jstittsworth/td-scout/pkg/utils"
)

type RecommendationHandler struct {
	service *services.RecommendationService
	logger  *logrus.Logger
}

func NewRecommendationHandler(service *services.RecommendationService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		logger:  logger,
	}
}

// GetRecommendations returns the cached list for a week, generating it
// on a cache miss so the read path always answers.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	week, err := strconv.Atoi(c.Query("week"))
	if err != nil || week < 1 || week > 18 {
		utils.SendValidationError(c, "invalid week", "week must be between 1 and 18")
		return
	}
	profile := c.DefaultQuery("profile", "")

	if result, ok := h.service.GetCached(c.Request.Context(), week, profile); ok {
		utils.SendSuccess(c, result)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), services.GenerateRequest{
		Week:          week,
		WeightProfile: profile,
	})
	if err != nil {
		h.logger.Errorf("Failed to generate recommendations for week %d: %v", week, err)
		utils.SendInternalError(c, "failed to generate recommendations")
		return
	}

	utils.SendSuccess(c, result)
}

// GenerateRecommendations forces a fresh run, bypassing the cache.
func (h *RecommendationHandler) GenerateRecommendations(c *gin.Context) {
	var req services.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "invalid request", err.Error())
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("Recommendation run failed for week %d: %v", req.Week, err)
		utils.SendInternalError(c, "recommendation run failed")
		return
	}

	c.JSON(http.StatusCreated, utils.Response{Success: true, Data: result})
}

// GetRuns lists recent recommendation runs for auditing.
func (h *RecommendationHandler) GetRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	runs, err := h.service.History(limit)
	if err != nil {
		h.logger.Errorf("Failed to load run history: %v", err)
		utils.SendInternalError(c, "failed to load run history")
		return
	}

	utils.SendSuccess(c, runs)
}
