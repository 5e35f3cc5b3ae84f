package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carbon-footprint/internal/models"
	"carbon-footprint/internal/repository"
	"carbon-footprint/internal/survey"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateProgress(ctx context.Context, id uuid.UUID, section string, pct int, completed bool) error
}

type ResponseStore interface {
	Upsert(ctx context.Context, sessionID uuid.UUID, records []survey.Record) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.SurveyResponse, error)
}

// SessionStatus summarizes survey progress for a session.
type SessionStatus struct {
	CurrentSection   string
	UserName         *string
	UserInitials     string
	NextMissingField *string
	ProgressPct      int
}

type SessionService struct {
	sessions  SessionStore
	responses ResponseStore
	logger    *zap.Logger
	now       func() time.Time
}

func NewSessionService(sessions SessionStore, responses ResponseStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:  sessions,
		responses: responses,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate returns the session, creating it on first use and recording
// activity otherwise.
func (s *SessionService) GetOrCreate(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	switch {
	case err == nil:
		sess.LastActive = s.now()
		if err := s.sessions.Touch(ctx, id, sess.LastActive); err != nil {
			return nil, fmt.Errorf("failed to touch session: %w", err)
		}
		return sess, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	now := s.now()
	sess = &models.Session{
		ID:             id,
		CurrentSection: string(survey.SectionIntroduction),
		CreatedAt:      now,
		LastActive:     now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Session created", zap.String("session_id", id.String()))
	return sess, nil
}

// Responses returns the typed survey answers of an existing session.
func (s *SessionService) Responses(ctx context.Context, id uuid.UUID) (*survey.Responses, error) {
	if _, err := s.sessions.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s.load(ctx, id)
}

// SaveResponses stores the answered fields of update, keeping earlier
// answers to other questions, and refreshes session progress. It returns
// the merged answers.
func (s *SessionService) SaveResponses(ctx context.Context, id uuid.UUID, update *survey.Responses) (*survey.Responses, error) {
	if _, err := s.GetOrCreate(ctx, id); err != nil {
		return nil, err
	}

	records := update.Records()
	for i := range records {
		records[i].Value = cleanAnswer(records[i].Value)
	}
	if err := s.responses.Upsert(ctx, id, records); err != nil {
		return nil, fmt.Errorf("failed to save responses: %w", err)
	}

	merged, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	section, completed := currentSection(merged)
	if err := s.sessions.UpdateProgress(ctx, id, section, merged.Progress(), completed); err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	s.logger.Info("Responses saved",
		zap.String("session_id", id.String()),
		zap.Int("fields", len(records)),
		zap.Int("progress_pct", merged.Progress()),
	)
	return merged, nil
}

// Status reports progress. Unknown sessions get the initial status.
func (s *SessionService) Status(ctx context.Context, id uuid.UUID) (*SessionStatus, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			first := survey.CriticalFields[0]
			return &SessionStatus{
				CurrentSection:   string(survey.SectionIntroduction),
				NextMissingField: &first,
			}, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	status := &SessionStatus{
		CurrentSection: sess.CurrentSection,
		ProgressPct:    r.Progress(),
	}
	if name := strings.TrimSpace(survey.Or(r.Introduction.Name, "")); name != "" {
		first := strings.Fields(name)[0]
		status.UserName = &first
		status.UserInitials = initials(name)
	}
	if _, key, ok := r.NextMissing(); ok && !sess.Completed {
		status.NextMissingField = &key
	}

	if status.ProgressPct != sess.ProgressPct {
		section, completed := currentSection(r)
		if err := s.sessions.UpdateProgress(ctx, id, section, status.ProgressPct, completed); err != nil {
			s.logger.Warn("Failed to update session progress", zap.String("session_id", id.String()), zap.Error(err))
		}
	}
	return status, nil
}

func (s *SessionService) load(ctx context.Context, id uuid.UUID) (*survey.Responses, error) {
	rows, err := s.responses.ListBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	r, err := survey.FromRecords(repository.ToRecords(rows))
	if err != nil {
		return nil, err
	}
	return r, nil
}

// currentSection is the section of the first unanswered critical field, or
// results once all are answered.
func currentSection(r *survey.Responses) (string, bool) {
	section, _, ok := r.NextMissing()
	if !ok {
		return models.SectionResults, true
	}
	return string(section), false
}

// initials takes the first letters of the first and last words of a name.
func initials(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, ",", " "))
	switch len(words) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(firstRune(words[0]))
	}
	return strings.ToUpper(firstRune(words[0]) + firstRune(words[len(words)-1]))
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
