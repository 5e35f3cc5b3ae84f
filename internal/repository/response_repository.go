package repository

import (
	"context"
	"time"

	"carbon-footprint/internal/models"
	"carbon-footprint/internal/survey"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ResponseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewResponseRepository(db *pgxpool.Pool, logger *zap.Logger) *ResponseRepository {
	return &ResponseRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores the records, replacing earlier answers to the same question.
func (r *ResponseRepository) Upsert(ctx context.Context, sessionID uuid.UUID, records []survey.Record) error {
	if len(records) == 0 {
		return nil
	}

	sql, args, err := upsertResponsesQuery(sessionID, records, time.Now().UTC()).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ResponseRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.SurveyResponse, error) {
	query := squirrel.Select("id", "session_id", "section", "question_key", "response_value", "response_type", "created_at", "updated_at").
		From("user_responses").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []*models.SurveyResponse
	for rows.Next() {
		var resp models.SurveyResponse
		if err := rows.Scan(
			&resp.ID, &resp.SessionID, &resp.Section, &resp.QuestionKey, &resp.ResponseValue, &resp.ResponseType, &resp.CreatedAt, &resp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		responses = append(responses, &resp)
	}

	return responses, rows.Err()
}

func upsertResponsesQuery(sessionID uuid.UUID, records []survey.Record, now time.Time) squirrel.InsertBuilder {
	builder := squirrel.Insert("user_responses").
		Columns("session_id", "section", "question_key", "response_value", "response_type", "created_at", "updated_at").
		Suffix("ON CONFLICT (session_id, section, question_key) DO UPDATE SET " +
			"response_value = EXCLUDED.response_value, response_type = EXCLUDED.response_type, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range records {
		builder = builder.Values(sessionID, string(rec.Section), rec.QuestionKey, rec.Value, string(rec.Type), now, now)
	}
	return builder
}

// ToRecords converts stored rows to survey records.
func ToRecords(responses []*models.SurveyResponse) []survey.Record {
	records := make([]survey.Record, 0, len(responses))
	for _, resp := range responses {
		records = append(records, survey.Record{
			Section:     survey.Section(resp.Section),
			QuestionKey: resp.QuestionKey,
			Value:       resp.ResponseValue,
			Type:        survey.ResponseType(resp.ResponseType),
		})
	}
	return records
}
