package handlers

import (
	"errors"

	"carbon-footprint/internal/dto"
	"carbon-footprint/internal/service"
	"carbon-footprint/pkg/logger"
	"carbon-footprint/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionHandler struct {
	sessionService *service.SessionService
	logger         *zap.Logger
}

func NewSessionHandler(sessionService *service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// GetSession godoc
// @Summary Get or create a session
// @Description Returns the session, creating it on first use
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string
// @Router /sessions/{session_id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return badSession(c)
	}

	s, err := h.sessionService.GetOrCreate(c.Context(), sessionID)
	if err != nil {
		logger.Session(h.logger, sessionID.String()).Error("Failed to get session", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(dto.NewSessionResponse(s))
}

// GetStatus godoc
// @Summary Get session progress
// @Description Lightweight progress summary for welcome messages
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.SessionStatusResponse
// @Failure 400 {object} map[string]string
// @Router /sessions/{session_id}/status [get]
func (h *SessionHandler) GetStatus(c *fiber.Ctx) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return badSession(c)
	}

	status, err := h.sessionService.Status(c.Context(), sessionID)
	if err != nil {
		logger.Session(h.logger, sessionID.String()).Error("Failed to get session status", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(dto.NewSessionStatusResponse(status))
}

// SaveResponses godoc
// @Summary Store survey answers
// @Description Stores typed answers; omitted fields keep their stored values
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Param request body dto.SaveResponsesRequest true "Answers by section"
// @Success 200 {object} dto.ResponsesResponse
// @Failure 400 {object} map[string]string
// @Router /sessions/{session_id}/responses [put]
func (h *SessionHandler) SaveResponses(c *fiber.Ctx) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return badSession(c)
	}

	var req dto.SaveResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	merged, err := h.sessionService.SaveResponses(c.Context(), sessionID, &req)
	if err != nil {
		logger.Session(h.logger, sessionID.String()).Error("Failed to save responses", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(dto.ResponsesResponse{
		SessionID:   sessionID.String(),
		Responses:   merged,
		ProgressPct: merged.Progress(),
	})
}

// GetResponses godoc
// @Summary Get survey answers
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.ResponsesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{session_id}/responses [get]
func (h *SessionHandler) GetResponses(c *fiber.Ctx) error {
	sessionID, err := getSessionID(c)
	if err != nil {
		return badSession(c)
	}

	r, err := h.sessionService.Responses(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return sessionNotFound(c)
		}
		logger.Session(h.logger, sessionID.String()).Error("Failed to get responses", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(dto.ResponsesResponse{
		SessionID:   sessionID.String(),
		Responses:   r,
		ProgressPct: r.Progress(),
	})
}

func getSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(middleware.SessionIDKey).(string)
	if !ok {
		return uuid.Nil, fiber.ErrBadRequest
	}
	return uuid.Parse(raw)
}

func badSession(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid session ID format",
	})
}

func sessionNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Session not found",
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
