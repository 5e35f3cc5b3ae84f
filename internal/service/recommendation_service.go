package service

import (
	"context"
	"errors"
	"fmt"

	"carbon-footprint/internal/models"
	"carbon-footprint/internal/survey"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	NoInsightsMessage = "Great job! Your energy usage appears efficient. Consider exploring additional energy-saving opportunities like LED lighting upgrades or smart thermostats."
	FallbackMessage   = "Consider exploring energy efficiency improvements to reduce your carbon footprint and save on utility costs."

	programsSuffix = ". The programs below can help cover the cost."
	topPrograms    = 3
	maxInsights    = 3
)

type RecommendationStore interface {
	ReplaceForSession(ctx context.Context, sessionID uuid.UUID, recs []*models.Recommendation) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.RecommendationWithProgram, error)
}

// ResponsesLoader returns the stored survey answers of a session.
type ResponsesLoader interface {
	Responses(ctx context.Context, sessionID uuid.UUID) (*survey.Responses, error)
}

// RecommendationSet is everything shown on the results page.
type RecommendationSet struct {
	Technology []*models.RecommendationWithProgram
	Lifestyle  []LifestyleRecommendation
}

type RecommendationService struct {
	analyzer     *DiagnosticAnalyzer
	matcher      *ProgramMatcher
	lifestyle    *LifestyleAnalyzer
	store        RecommendationStore
	responses    ResponsesLoader
	defaultState string
	logger       *zap.Logger
}

func NewRecommendationService(
	analyzer *DiagnosticAnalyzer,
	matcher *ProgramMatcher,
	lifestyle *LifestyleAnalyzer,
	store RecommendationStore,
	responses ResponsesLoader,
	defaultState string,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		analyzer:     analyzer,
		matcher:      matcher,
		lifestyle:    lifestyle,
		store:        store,
		responses:    responses,
		defaultState: defaultState,
		logger:       logger,
	}
}

// GenerateDiagnostic replaces the session's stored technology
// recommendations with a fresh set and returns their texts. The top insight
// is linked to up to three programs, the next two to one program each. It
// never fails: errors yield FallbackMessage.
func (s *RecommendationService) GenerateDiagnostic(ctx context.Context, sessionID uuid.UUID, r *survey.Responses) (texts []string) {
	defer func() {
		if p := recover(); p != nil {
			s.fail(ctx, sessionID, fmt.Errorf("panic: %v", p))
			texts = []string{FallbackMessage}
		}
	}()

	texts, err := s.generate(ctx, sessionID, r)
	if err != nil {
		s.fail(ctx, sessionID, err)
		return []string{FallbackMessage}
	}
	return texts
}

func (s *RecommendationService) generate(ctx context.Context, sessionID uuid.UUID, r *survey.Responses) ([]string, error) {
	if r == nil {
		r = &survey.Responses{}
	}
	state := r.StateCode(s.defaultState)

	insights := s.analyzer.Analyze(r)
	if len(insights) == 0 {
		if err := s.store.ReplaceForSession(ctx, sessionID, nil); err != nil {
			return nil, fmt.Errorf("failed to clear recommendations: %w", err)
		}
		return []string{NoInsightsMessage}, nil
	}

	s.logger.Info("Diagnostic insights found",
		zap.String("session_id", sessionID.String()),
		zap.Int("count", len(insights)),
	)

	var (
		recs  []*models.Recommendation
		texts []string
	)
	for i, in := range insights[:min(len(insights), maxInsights)] {
		candidates, err := s.matcher.Candidates(ctx, state, in.Technologies)
		if err != nil {
			return nil, err
		}

		var programs []*models.Program
		if i == 0 {
			programs = s.matcher.SelectTop(candidates, in.Technologies, topPrograms)
		} else if best := s.matcher.SelectBest(candidates, in.Technologies); best != nil {
			programs = []*models.Program{best}
		}

		text := in.Description + programsSuffix
		for _, p := range programs {
			rec, err := models.NewRecommendation(sessionID, text, string(in.Category), in.CO2SavingsKg, p)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
			texts = append(texts, text)
		}
	}

	if err := s.store.ReplaceForSession(ctx, sessionID, recs); err != nil {
		return nil, fmt.Errorf("failed to save recommendations: %w", err)
	}

	s.logger.Info("Diagnostic recommendations generated",
		zap.String("session_id", sessionID.String()),
		zap.Int("count", len(texts)),
	)
	return texts, nil
}

// fail logs a generation error and clears the session's stored set so no
// stale recommendations survive a failed run.
func (s *RecommendationService) fail(ctx context.Context, sessionID uuid.UUID, err error) {
	s.logger.Error("Failed to generate diagnostic recommendations",
		zap.String("session_id", sessionID.String()),
		zap.Error(err),
	)
	if derr := s.store.DeleteBySession(ctx, sessionID); derr != nil {
		s.logger.Warn("Failed to clear recommendations",
			zap.String("session_id", sessionID.String()),
			zap.Error(derr),
		)
	}
}

// Recommendations regenerates the technology recommendations of a session
// and returns them with the lifestyle recommendations for its latest
// calculation.
func (s *RecommendationService) Recommendations(ctx context.Context, sessionID uuid.UUID) (*RecommendationSet, error) {
	r, err := s.responses.Responses(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	texts := s.GenerateDiagnostic(ctx, sessionID, r)

	stored, err := s.store.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}

	set := &RecommendationSet{
		Technology: make([]*models.RecommendationWithProgram, 0, len(stored)),
		Lifestyle:  s.lifestyle.GenerateLifestyle(ctx, sessionID, r, len(texts)),
	}
	for _, rec := range stored {
		if isTechnologyCategory(rec.Category) {
			set.Technology = append(set.Technology, rec)
		}
	}
	return set, nil
}

func isTechnologyCategory(category string) bool {
	switch InsightCategory(category) {
	case CategoryHomeHeating, CategorySolar, CategoryTransportation, CategoryHomeEfficiency:
		return true
	}
	return false
}
