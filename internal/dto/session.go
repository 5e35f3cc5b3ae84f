package dto

import (
	"time"

	"carbon-footprint/internal/models"
	"carbon-footprint/internal/service"
	"carbon-footprint/internal/survey"
)

type SessionResponse struct {
	SessionID      string `json:"session_id"`
	CurrentSection string `json:"current_section"`
	ProgressPct    int    `json:"progress_pct"`
	Completed      bool   `json:"completed"`
	CreatedAt      string `json:"created_at"`
	LastActive     string `json:"last_active"`
}

type SessionStatusResponse struct {
	CurrentSection   string  `json:"current_section"`
	UserName         *string `json:"user_name"`
	UserInitials     string  `json:"user_initials"`
	NextMissingField *string `json:"next_missing_field"`
	ProgressPct      int     `json:"progress_pct"`
}

// SaveResponsesRequest carries typed answers; omitted fields keep their
// stored values.
type SaveResponsesRequest = survey.Responses

type ResponsesResponse struct {
	SessionID   string            `json:"session_id"`
	Responses   *survey.Responses `json:"responses"`
	ProgressPct int               `json:"progress_pct"`
}

func NewSessionResponse(s *models.Session) SessionResponse {
	return SessionResponse{
		SessionID:      s.ID.String(),
		CurrentSection: s.CurrentSection,
		ProgressPct:    s.ProgressPct,
		Completed:      s.Completed,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		LastActive:     s.LastActive.Format(time.RFC3339),
	}
}

func NewSessionStatusResponse(s *service.SessionStatus) SessionStatusResponse {
	return SessionStatusResponse{
		CurrentSection:   s.CurrentSection,
		UserName:         s.UserName,
		UserInitials:     s.UserInitials,
		NextMissingField: s.NextMissingField,
		ProgressPct:      s.ProgressPct,
	}
}
