package handlers

import (
	"errors"
	"time"

	"carbon-footprint/internal/dto"
	"carbon-footprint/internal/service"
	"carbon-footprint/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	recService *service.RecommendationService
	logger     *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		logger:     logger,
	}
}

// GetRecommendations godoc
// @Summary Get recommendations
// @Description Regenerates technology upgrades matched to incentive programs and adds lifestyle adjustments from the latest calculation
// @Tags recommendations
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.RecommendationsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{session_id}/recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c *fiber.Ctx) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return badSession(c)
	}

	set, err := h.recService.Recommendations(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return sessionNotFound(c)
		}
		logger.Session(h.logger, sessionID.String()).Error("Failed to get recommendations", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(dto.NewRecommendationsResponse(set))
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
