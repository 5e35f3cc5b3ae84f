package repository

import (
	"context"
	"errors"
	"fmt"

	"carbon-footprint/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CalculationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCalculationRepository(db *pgxpool.Pool, logger *zap.Logger) *CalculationRepository {
	return &CalculationRepository{
		db:     db,
		logger: logger,
	}
}

// Save upserts the session's calculation and replaces its breakdown rows in
// one transaction. calc.ID and each entry's CalculationID are set on success.
func (r *CalculationRepository) Save(ctx context.Context, calc *models.Calculation, entries []*models.BreakdownEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	sql, args, err := upsertCalculationQuery(calc).ToSql()
	if err != nil {
		return err
	}
	if err := tx.QueryRow(ctx, sql, args...).Scan(&calc.ID); err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}

	sql, args, err = squirrel.Delete("calculation_breakdowns").
		Where(squirrel.Eq{"session_id": calc.SessionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete breakdowns: %w", err)
	}
	r.logger.Debug("Deleted previous breakdowns",
		zap.String("session_id", calc.SessionID.String()),
		zap.Int64("count", tag.RowsAffected()),
	)

	if len(entries) > 0 {
		for _, e := range entries {
			e.SessionID = calc.SessionID
			e.CalculationID = calc.ID
		}
		sql, args, err = insertBreakdownsQuery(entries).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert breakdowns: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *CalculationRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) (*models.Calculation, error) {
	query := squirrel.Select("id", "session_id", "total_annual_co2_kg", "home_emissions", "transport_emissions", "consumption_emissions", "calculation_date").
		From("carbon_calculations").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("calculation_date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var c models.Calculation
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&c.ID, &c.SessionID, &c.TotalKg, &c.HomeKg, &c.TransportKg, &c.ConsumptionKg, &c.CalculationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

// LatestBreakdown returns the entries of the most recent calculation of
// the session, or none when nothing was calculated.
func (r *CalculationRepository) LatestBreakdown(ctx context.Context, sessionID uuid.UUID) ([]*models.BreakdownEntry, error) {
	sql, args, err := squirrel.Select("calculation_id").
		From("calculation_breakdowns").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("id DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var calculationID int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&calculationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	sql, args, err = squirrel.Select("id", "session_id", "calculation_id", "source_kind", "emission_source", "value", "units", "calculation_method", "created_at").
		From("calculation_breakdowns").
		Where(squirrel.Eq{"session_id": sessionID, "calculation_id": calculationID}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.BreakdownEntry
	for rows.Next() {
		var e models.BreakdownEntry
		if err := rows.Scan(
			&e.ID, &e.SessionID, &e.CalculationID, &e.Kind, &e.Source, &e.Value, &e.Units, &e.Method, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

func upsertCalculationQuery(c *models.Calculation) squirrel.InsertBuilder {
	return squirrel.Insert("carbon_calculations").
		Columns("session_id", "total_annual_co2_kg", "home_emissions", "transport_emissions", "consumption_emissions", "calculation_date").
		Values(c.SessionID, c.TotalKg, c.HomeKg, c.TransportKg, c.ConsumptionKg, c.CalculationDate).
		Suffix("ON CONFLICT (session_id) DO UPDATE SET " +
			"total_annual_co2_kg = EXCLUDED.total_annual_co2_kg, " +
			"home_emissions = EXCLUDED.home_emissions, " +
			"transport_emissions = EXCLUDED.transport_emissions, " +
			"consumption_emissions = EXCLUDED.consumption_emissions, " +
			"calculation_date = EXCLUDED.calculation_date " +
			"RETURNING id").
		PlaceholderFormat(squirrel.Dollar)
}

func insertBreakdownsQuery(entries []*models.BreakdownEntry) squirrel.InsertBuilder {
	builder := squirrel.Insert("calculation_breakdowns").
		Columns("session_id", "calculation_id", "source_kind", "emission_source", "value", "units", "calculation_method").
		PlaceholderFormat(squirrel.Dollar)

	for _, e := range entries {
		builder = builder.Values(e.SessionID, e.CalculationID, string(e.Kind), e.Source, e.Value, e.Units, e.Method)
	}
	return builder
}
