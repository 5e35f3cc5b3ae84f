package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"carbon-footprint/internal/models"

	"go.uber.org/zap"
)

// ProgramFinder retrieves incentive programs tagged with any of the given
// technologies: federal programs first, then the state's programs.
type ProgramFinder interface {
	FindByTechnologies(ctx context.Context, state string, technologies []string) ([]*models.Program, error)
}

type MatcherConfig struct {
	// Keywords maps a technology tag to the phrases that mark a program as
	// specific to it.
	Keywords map[string][]string
	// StrongMatchShare is the share of candidate keywords a program must
	// mention to earn StrongMatchPoints.
	StrongMatchShare  float64
	StrongMatchPoints int
	WeakMatchPoints   int
	TypeBonus         map[models.ProgramType]int
	CredibilityPoints int
}

func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		Keywords: map[string][]string{
			"electric_vehicles": {"electric vehicle", "ev", "vehicle", "plug-in"},
			"heat_pumps":        {"heat pump", "electrification", "hvac", "heating", "cooling"},
			"solar":             {"solar", "photovoltaic", "pv", "renewable energy"},
			"comprehensive":     {"energy efficiency", "weatherization", "home improvement"},
			"hvac":              {"hvac", "heating", "cooling", "air conditioning"},
			"insulation":        {"insulation", "weatherization", "envelope"},
			"appliances":        {"appliance", "refrigerator", "washer", "dryer"},
			"water_heating":     {"water heat", "hot water"},
			"lighting":          {"lighting", "led", "lamp"},
			"energy_storage":    {"battery", "storage", "backup power"},
		},
		StrongMatchShare:  0.25,
		StrongMatchPoints: 10,
		WeakMatchPoints:   5,
		TypeBonus: map[models.ProgramType]int{
			models.ProgramRebate:         5,
			models.ProgramGrant:          4,
			models.ProgramTaxCredit:      3,
			models.ProgramTaxDeduction:   2,
			models.ProgramLoan:           1,
			models.ProgramTaxIncentive:   1,
			models.ProgramOtherFinancial: 0,
		},
		CredibilityPoints: 5,
	}
}

type ScoredProgram struct {
	Program *models.Program
	Score   int
}

// ProgramMatcher ranks incentive programs against an insight's technologies.
type ProgramMatcher struct {
	programs ProgramFinder
	cfg      MatcherConfig
	logger   *zap.Logger
}

func NewProgramMatcher(programs ProgramFinder, cfg MatcherConfig, logger *zap.Logger) *ProgramMatcher {
	return &ProgramMatcher{
		programs: programs,
		cfg:      cfg,
		logger:   logger,
	}
}

// Candidates returns every federal program and every program of the state
// tagged with one of the technologies, in retrieval order.
func (m *ProgramMatcher) Candidates(ctx context.Context, state string, technologies []string) ([]*models.Program, error) {
	programs, err := m.programs.FindByTechnologies(ctx, state, technologies)
	if err != nil {
		return nil, fmt.Errorf("failed to find programs: %w", err)
	}
	return programs, nil
}

// Score rates how well a program fits the technologies. Keyword matches are
// thresholded, so mentioning more keywords past the strong share adds nothing.
func (m *ProgramMatcher) Score(p *models.Program, technologies []string) int {
	text := strings.ToLower(p.Name + " " + p.Summary)

	keywords := m.keywordsFor(technologies)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched++
		}
	}

	score := 0
	if len(keywords) > 0 {
		switch {
		case float64(matched)/float64(len(keywords)) >= m.cfg.StrongMatchShare:
			score += m.cfg.StrongMatchPoints
		case matched > 0:
			score += m.cfg.WeakMatchPoints
		}
	}

	score += m.cfg.TypeBonus[p.ProgramType]
	if p.CredibilityBoost {
		score += m.cfg.CredibilityPoints
	}
	return score
}

// Rank scores the programs and orders them by score, highest first. Ties
// keep retrieval order.
func (m *ProgramMatcher) Rank(programs []*models.Program, technologies []string) []ScoredProgram {
	ranked := make([]ScoredProgram, 0, len(programs))
	for _, p := range programs {
		ranked = append(ranked, ScoredProgram{Program: p, Score: m.Score(p, technologies)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SelectBest returns the top ranked program, or nil when there are none.
func (m *ProgramMatcher) SelectBest(programs []*models.Program, technologies []string) *models.Program {
	top := m.SelectTop(programs, technologies, 1)
	if len(top) == 0 {
		return nil
	}
	return top[0]
}

// SelectTop returns up to n programs in rank order.
func (m *ProgramMatcher) SelectTop(programs []*models.Program, technologies []string, n int) []*models.Program {
	ranked := m.Rank(programs, technologies)
	if n > len(ranked) {
		n = len(ranked)
	}
	if n <= 0 {
		return nil
	}

	out := make([]*models.Program, 0, n)
	for _, sp := range ranked[:n] {
		out = append(out, sp.Program)
	}

	m.logger.Debug("Selected programs",
		zap.Strings("technologies", technologies),
		zap.String("best", ranked[0].Program.Name),
		zap.Int("score", ranked[0].Score),
		zap.Int("candidates", len(ranked)),
	)
	return out
}

// keywordsFor returns the union of the technologies' keywords, each once.
func (m *ProgramMatcher) keywordsFor(technologies []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tech := range technologies {
		for _, kw := range m.cfg.Keywords[tech] {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}
