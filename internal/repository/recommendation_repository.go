package repository

import (
	"context"
	"fmt"

	"carbon-footprint/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type RecommendationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecommendationRepository(db *pgxpool.Pool, logger *zap.Logger) *RecommendationRepository {
	return &RecommendationRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceForSession deletes every recommendation of the session and inserts
// recs in their place, atomically. An empty recs only deletes.
func (r *RecommendationRepository) ReplaceForSession(ctx context.Context, sessionID uuid.UUID, recs []*models.Recommendation) error {
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	sql, args, err := deleteRecommendationsQuery(sessionID).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete recommendations: %w", err)
	}

	if len(recs) > 0 {
		sql, args, err = insertRecommendationsQuery(sessionID, recs).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert recommendations: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *RecommendationRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	sql, args, err := deleteRecommendationsQuery(sessionID).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListBySession returns the session's recommendations joined with their
// program, highest priority first.
func (r *RecommendationRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.RecommendationWithProgram, error) {
	sql, args, err := listRecommendationsQuery(sessionID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.RecommendationWithProgram
	for rows.Next() {
		var (
			rec models.RecommendationWithProgram
			p   models.Program
		)
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.Text, &rec.Category, &rec.PriorityScore, &rec.CO2SavingsKg,
			&rec.FederalProgramID, &rec.StateProgramID, &rec.CreatedAt,
			&p.ID, &p.Name, &p.Summary, &p.ProgramType, &p.WebsiteURL, &p.IncentiveSummary, &p.CredibilityBoost, &p.State,
		); err != nil {
			return nil, err
		}
		p.Federal = rec.FederalProgramID != nil
		rec.Program = &p
		out = append(out, &rec)
	}

	return out, rows.Err()
}

func deleteRecommendationsQuery(sessionID uuid.UUID) squirrel.DeleteBuilder {
	return squirrel.Delete("recommendations").
		Where(squirrel.Eq{"session_id": sessionID}).
		PlaceholderFormat(squirrel.Dollar)
}

func insertRecommendationsQuery(sessionID uuid.UUID, recs []*models.Recommendation) squirrel.InsertBuilder {
	builder := squirrel.Insert("recommendations").
		Columns("session_id", "recommendation_text", "category", "priority_score", "co2_savings_kg", "federal_program_id", "state_program_id").
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range recs {
		builder = builder.Values(sessionID, rec.Text, rec.Category, rec.PriorityScore, rec.CO2SavingsKg, rec.FederalProgramID, rec.StateProgramID)
	}
	return builder
}

func listRecommendationsQuery(sessionID uuid.UUID) squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.session_id", "r.recommendation_text", "r.category", "r.priority_score", "r.co2_savings_kg",
		"r.federal_program_id", "r.state_program_id", "r.created_at",
		"COALESCE(f.id, s.id)",
		"COALESCE(f.name, s.name, '')",
		"COALESCE(f.summary, s.summary, '')",
		"COALESCE(f.program_type, s.program_type, '')",
		"COALESCE(f.website_url, s.website_url, '')",
		"COALESCE(f.incentive_summary, s.incentive_summary, '')",
		"COALESCE(f.credibility_boost, s.credibility_boost, FALSE)",
		"COALESCE(s.state, '')",
	).
		From("recommendations r").
		LeftJoin("federal_programs f ON f.id = r.federal_program_id").
		LeftJoin("state_programs s ON s.id = r.state_program_id").
		Where(squirrel.Eq{"r.session_id": sessionID}).
		OrderBy("r.priority_score DESC", "r.id").
		PlaceholderFormat(squirrel.Dollar)
}
