package repository

import (
	"context"
	"errors"
	"time"

	"carbon-footprint/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

var sessionColumns = []string{"session_id", "current_section", "progress_pct", "completed", "created_at", "last_active"}

type SessionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSessionRepository(db *pgxpool.Pool, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	query := squirrel.Insert("sessions").
		Columns(sessionColumns...).
		Values(s.ID, s.CurrentSection, s.ProgressPct, s.Completed, s.CreatedAt, s.LastActive).
		Suffix("ON CONFLICT (session_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	query := squirrel.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"session_id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var s models.Session
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.CurrentSection, &s.ProgressPct, &s.Completed, &s.CreatedAt, &s.LastActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &s, nil
}

// Touch records activity on the session.
func (r *SessionRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.update(ctx, id, map[string]interface{}{"last_active": at})
}

func (r *SessionRepository) UpdateProgress(ctx context.Context, id uuid.UUID, section string, pct int, completed bool) error {
	return r.update(ctx, id, map[string]interface{}{
		"current_section": section,
		"progress_pct":    pct,
		"completed":       completed,
		"last_active":     time.Now().UTC(),
	})
}

func (r *SessionRepository) update(ctx context.Context, id uuid.UUID, set map[string]interface{}) error {
	query := squirrel.Update("sessions").
		SetMap(set).
		Where(squirrel.Eq{"session_id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
