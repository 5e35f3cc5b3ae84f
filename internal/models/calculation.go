package models

import (
	"time"

	"carbon-footprint/internal/emissions"

	"github.com/google/uuid"
)

type Calculation struct {
	ID              int64     `db:"id"`
	SessionID       uuid.UUID `db:"session_id"`
	TotalKg         float64   `db:"total_annual_co2_kg"`
	HomeKg          float64   `db:"home_emissions"`
	TransportKg     float64   `db:"transport_emissions"`
	ConsumptionKg   float64   `db:"consumption_emissions"`
	CalculationDate time.Time `db:"calculation_date"`
}

// BreakdownEntry is one persisted line of a calculation.
type BreakdownEntry struct {
	ID            int64          `db:"id"`
	SessionID     uuid.UUID      `db:"session_id"`
	CalculationID int64          `db:"calculation_id"`
	Kind          emissions.Kind `db:"source_kind"`
	Source        string         `db:"emission_source"`
	Value         float64        `db:"value"`
	Units         string         `db:"units"`
	Method        string         `db:"calculation_method"`
	CreatedAt     time.Time      `db:"created_at"`
}

// EntryKind returns the stored kind, or the kind implied by the label for
// rows written without one.
func (b *BreakdownEntry) EntryKind() emissions.Kind {
	if b.Kind != "" {
		return b.Kind
	}
	return emissions.KindFromLabel(b.Source)
}
