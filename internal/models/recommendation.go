package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProgramReference = errors.New("recommendation must reference exactly one program")

const maxPriorityScore = 100

// Recommendation is a persisted technology upgrade tied to exactly one
// federal or state program.
type Recommendation struct {
	ID               int64     `db:"id"`
	SessionID        uuid.UUID `db:"session_id"`
	Text             string    `db:"recommendation_text"`
	Category         string    `db:"category"`
	PriorityScore    int       `db:"priority_score"`
	CO2SavingsKg     int       `db:"co2_savings_kg"`
	FederalProgramID *int64    `db:"federal_program_id"`
	StateProgramID   *int64    `db:"state_program_id"`
	CreatedAt        time.Time `db:"created_at"`
}

// NewRecommendation links text and savings to a program, setting the
// matching program column and deriving the priority score.
func NewRecommendation(sessionID uuid.UUID, text, category string, co2SavingsKg int, program *Program) (*Recommendation, error) {
	if program == nil {
		return nil, ErrProgramReference
	}
	rec := &Recommendation{
		SessionID:     sessionID,
		Text:          text,
		Category:      category,
		PriorityScore: PriorityScore(co2SavingsKg),
		CO2SavingsKg:  co2SavingsKg,
	}
	id := program.ID
	if program.Federal {
		rec.FederalProgramID = &id
	} else {
		rec.StateProgramID = &id
	}
	return rec, nil
}

// PriorityScore maps savings to 0..100 at one point per 50 kg.
func PriorityScore(co2SavingsKg int) int {
	if co2SavingsKg <= 0 {
		return 0
	}
	return min(co2SavingsKg/50, maxPriorityScore)
}

// Validate checks that exactly one program column is set.
func (r *Recommendation) Validate() error {
	if (r.FederalProgramID == nil) == (r.StateProgramID == nil) {
		return ErrProgramReference
	}
	return nil
}

// RecommendationWithProgram is a stored recommendation joined with its program.
type RecommendationWithProgram struct {
	Recommendation
	Program *Program
}
