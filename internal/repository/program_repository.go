package repository

import (
	"context"
	"fmt"
	"strings"

	"carbon-footprint/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProgramRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProgramRepository(db *pgxpool.Pool, logger *zap.Logger) *ProgramRepository {
	return &ProgramRepository{
		db:     db,
		logger: logger,
	}
}

// FindByTechnologies returns federal programs tagged with any of the
// technologies, followed by the state's programs tagged with any of them.
// Each group is ordered by id.
func (r *ProgramRepository) FindByTechnologies(ctx context.Context, state string, technologies []string) ([]*models.Program, error) {
	if len(technologies) == 0 {
		return nil, nil
	}

	federal, err := r.find(ctx, programsQuery(true, "", technologies), true)
	if err != nil {
		return nil, fmt.Errorf("failed to query federal programs: %w", err)
	}
	statePrograms, err := r.find(ctx, programsQuery(false, state, technologies), false)
	if err != nil {
		return nil, fmt.Errorf("failed to query state programs: %w", err)
	}

	return append(federal, statePrograms...), nil
}

// Upsert inserts or updates a program by name (and state) and replaces its
// technology tags.
func (r *ProgramRepository) Upsert(ctx context.Context, p *models.Program) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	table, techTable := programTables(p.Federal)

	sql, args, err := upsertProgramQuery(p).ToSql()
	if err != nil {
		return err
	}
	if err := tx.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", table, err)
	}

	sql, args, err = squirrel.Delete(techTable).
		Where(squirrel.Eq{"program_id": p.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(p.Technologies) > 0 {
		builder := squirrel.Insert(techTable).
			Columns("program_id", "technology_category").
			PlaceholderFormat(squirrel.Dollar)
		for _, tech := range p.Technologies {
			builder = builder.Values(p.ID, tech)
		}
		sql, args, err = builder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ProgramRepository) find(ctx context.Context, query squirrel.SelectBuilder, federal bool) ([]*models.Program, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		p := models.Program{Federal: federal}
		if err := rows.Scan(
			&p.ID, &p.State, &p.Name, &p.Summary, &p.ProgramType, &p.WebsiteURL, &p.IncentiveSummary, &p.CredibilityBoost, &p.CreatedAt, &p.Technologies,
		); err != nil {
			return nil, err
		}
		programs = append(programs, &p)
	}

	return programs, rows.Err()
}

func programTables(federal bool) (table, techTable string) {
	if federal {
		return "federal_programs", "federal_program_technologies"
	}
	return "state_programs", "state_program_technologies"
}

func programsQuery(federal bool, state string, technologies []string) squirrel.SelectBuilder {
	table, techTable := programTables(federal)

	stateColumn := "'' AS state"
	if !federal {
		stateColumn = "p.state"
	}

	// t aggregates every tag of the program; m only filters on the requested ones.
	matching := squirrel.Select("1").
		From(techTable + " m").
		Where("m.program_id = p.id").
		Where(squirrel.Eq{"m.technology_category": technologies})

	query := squirrel.Select(
		"p.id", stateColumn, "p.name", "p.summary", "p.program_type", "p.website_url",
		"p.incentive_summary", "p.credibility_boost", "p.created_at",
		"array_agg(t.technology_category ORDER BY t.technology_category)",
	).
		From(table + " p").
		Join(techTable + " t ON t.program_id = p.id").
		Where(squirrel.Expr("EXISTS (?)", matching)).
		GroupBy("p.id").
		OrderBy("p.id").
		PlaceholderFormat(squirrel.Dollar)

	if !federal {
		query = query.Where(squirrel.Eq{"p.state": strings.ToUpper(state)})
	}
	return query
}

func upsertProgramQuery(p *models.Program) squirrel.InsertBuilder {
	table, _ := programTables(p.Federal)

	columns := []string{"name", "summary", "program_type", "website_url", "incentive_summary", "credibility_boost"}
	values := []interface{}{p.Name, p.Summary, string(p.ProgramType), p.WebsiteURL, p.IncentiveSummary, p.CredibilityBoost}
	conflict := "(name)"
	if !p.Federal {
		columns = append([]string{"state"}, columns...)
		values = append([]interface{}{strings.ToUpper(p.State)}, values...)
		conflict = "(state, name)"
	}

	return squirrel.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT " + conflict + " DO UPDATE SET " +
			"summary = EXCLUDED.summary, program_type = EXCLUDED.program_type, " +
			"website_url = EXCLUDED.website_url, incentive_summary = EXCLUDED.incentive_summary, " +
			"credibility_boost = EXCLUDED.credibility_boost " +
			"RETURNING id").
		PlaceholderFormat(squirrel.Dollar)
}
