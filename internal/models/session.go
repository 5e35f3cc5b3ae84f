package models

import (
	"time"

	"github.com/google/uuid"
)

// SectionResults marks a session whose survey is complete.
const SectionResults = "results"

type Session struct {
	ID             uuid.UUID `db:"session_id"`
	CurrentSection string    `db:"current_section"`
	ProgressPct    int       `db:"progress_pct"`
	Completed      bool      `db:"completed"`
	CreatedAt      time.Time `db:"created_at"`
	LastActive     time.Time `db:"last_active"`
}

type SurveyResponse struct {
	ID            int64     `db:"id"`
	SessionID     uuid.UUID `db:"session_id"`
	Section       string    `db:"section"`
	QuestionKey   string    `db:"question_key"`
	ResponseValue string    `db:"response_value"`
	ResponseType  string    `db:"response_type"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
