package handlers

import (
	"errors"

	"carbon-footprint/internal/dto"
	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/service"
	"carbon-footprint/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CalculationHandler struct {
	calcService *service.CalculationService
	logger      *zap.Logger
}

func NewCalculationHandler(calcService *service.CalculationService, logger *zap.Logger) *CalculationHandler {
	return &CalculationHandler{
		calcService: calcService,
		logger:      logger,
	}
}

// Calculate godoc
// @Summary Calculate the carbon footprint
// @Description Computes the footprint from stored answers and replaces any earlier calculation
// @Tags calculations
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.CalculateResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{session_id}/calculate [post]
func (h *CalculationHandler) Calculate(c *fiber.Ctx) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return badSession(c)
	}

	res, err := h.calcService.Calculate(c.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return sessionNotFound(c)
		case errors.Is(err, emissions.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Session(h.logger, sessionID.String()).Error("Failed to calculate footprint", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(dto.NewCalculateResponse(res))
}

// GetCalculation godoc
// @Summary Get the latest calculation
// @Tags calculations
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.CalculationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{session_id}/calculation [get]
func (h *CalculationHandler) GetCalculation(c *fiber.Ctx) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return badSession(c)
	}

	calc, err := h.calcService.Latest(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrNoCalculation) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No calculations found for session",
			})
		}
		logger.Session(h.logger, sessionID.String()).Error("Failed to get calculation", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(dto.NewCalculationResponse(calc))
}
