package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/models"
	"carbon-footprint/internal/repository"
	"carbon-footprint/internal/survey"

	"github.com/google/uuid"
)

var errStore = errors.New("store unavailable")

func testReference() *emissions.Reference {
	return emissions.NewReference(
		[]emissions.Factor{
			{Category: emissions.FactorElectricity, Region: emissions.RegionUS, CO2PerUnit: 0.386},
			{Category: emissions.FactorElectricity, Region: "CA", CO2PerUnit: 0.2},
			{Category: emissions.FactorNaturalGas, Region: emissions.RegionUS, CO2PerUnit: 5.3},
			{Category: emissions.FactorHeatingOil, Region: emissions.RegionUS, CO2PerUnit: 10.15},
			{Category: emissions.FactorPropane, Region: emissions.RegionUS, CO2PerUnit: 5.72},
			{Category: emissions.FactorGasoline, Region: emissions.RegionUS, CO2PerUnit: 8.89},
		},
		[]emissions.Rate{{State: "CA", AvgRatePerKWh: 0.25}},
		[]emissions.Vehicle{
			{Year: 2023, Make: "Tesla", Model: "Model 3", MPGCombined: 137},
			{Year: 2018, Make: "Ford", Model: "F-150", MPGCombined: 19},
			{Year: 2020, Make: "Toyota", Model: "Prius", MPGCombined: 56},
			{Year: 2019, Make: "Honda", Model: "Civic", MPGCombined: 33},
		},
	)
}

// failingCalculator fails every calculation.
type failingCalculator struct{}

func (failingCalculator) Home(emissions.HomeInput) (emissions.Result, error) {
	return emissions.Result{}, emissions.ErrFactorNotFound
}

func (failingCalculator) Transport(emissions.TransportInput) (emissions.Result, error) {
	return emissions.Result{}, emissions.ErrFactorNotFound
}

type fakeProgramFinder struct {
	programs []*models.Program
	err      error
}

func (f *fakeProgramFinder) FindByTechnologies(_ context.Context, state string, technologies []string) ([]*models.Program, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Program
	for _, federal := range []bool{true, false} {
		for _, p := range f.programs {
			if p.Federal != federal || (!federal && p.State != state) {
				continue
			}
			if sharesAny(p.Technologies, technologies) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func sharesAny(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

type fakeRecommendationStore struct {
	mu         sync.Mutex
	rows       map[uuid.UUID][]*models.Recommendation
	programs   map[int64]*models.Program
	nextID     int64
	replaceErr error
	deletes    int
}

func newFakeRecommendationStore(programs ...*models.Program) *fakeRecommendationStore {
	s := &fakeRecommendationStore{
		rows:     make(map[uuid.UUID][]*models.Recommendation),
		programs: make(map[int64]*models.Program),
	}
	for _, p := range programs {
		s.programs[p.ID] = p
	}
	return s
}

func (s *fakeRecommendationStore) ReplaceForSession(_ context.Context, sessionID uuid.UUID, recs []*models.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaceErr != nil {
		return s.replaceErr
	}
	for _, r := range recs {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	stored := make([]*models.Recommendation, 0, len(recs))
	for _, r := range recs {
		s.nextID++
		cp := *r
		cp.ID = s.nextID
		stored = append(stored, &cp)
	}
	s.rows[sessionID] = stored
	return nil
}

func (s *fakeRecommendationStore) DeleteBySession(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	delete(s.rows, sessionID)
	return nil
}

func (s *fakeRecommendationStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*models.RecommendationWithProgram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.RecommendationWithProgram
	for _, r := range s.rows[sessionID] {
		id := r.StateProgramID
		if r.FederalProgramID != nil {
			id = r.FederalProgramID
		}
		out = append(out, &models.RecommendationWithProgram{Recommendation: *r, Program: s.programs[*id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out, nil
}

func (s *fakeRecommendationStore) count(sessionID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows[sessionID])
}

type fakeBreakdowns struct {
	entries []*models.BreakdownEntry
	err     error
}

func (f *fakeBreakdowns) LatestBreakdown(context.Context, uuid.UUID) ([]*models.BreakdownEntry, error) {
	return f.entries, f.err
}

type fakeSessionStore struct {
	sessions map[uuid.UUID]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*models.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, s *models.Session) error {
	if _, ok := f.sessions[s.ID]; !ok {
		cp := *s
		f.sessions[s.ID] = &cp
	}
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) Touch(_ context.Context, id uuid.UUID, at time.Time) error {
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.LastActive = at
	return nil
}

func (f *fakeSessionStore) UpdateProgress(_ context.Context, id uuid.UUID, section string, pct int, completed bool) error {
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.CurrentSection = section
	s.ProgressPct = pct
	s.Completed = completed
	return nil
}

type responseKey struct {
	section survey.Section
	key     string
}

type fakeResponseStore struct {
	rows map[uuid.UUID]map[responseKey]survey.Record
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{rows: make(map[uuid.UUID]map[responseKey]survey.Record)}
}

func (f *fakeResponseStore) Upsert(_ context.Context, sessionID uuid.UUID, records []survey.Record) error {
	m, ok := f.rows[sessionID]
	if !ok {
		m = make(map[responseKey]survey.Record)
		f.rows[sessionID] = m
	}
	for _, r := range records {
		m[responseKey{r.Section, r.QuestionKey}] = r
	}
	return nil
}

func (f *fakeResponseStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*models.SurveyResponse, error) {
	var out []*models.SurveyResponse
	for _, r := range f.rows[sessionID] {
		out = append(out, &models.SurveyResponse{
			SessionID:     sessionID,
			Section:       string(r.Section),
			QuestionKey:   r.QuestionKey,
			ResponseValue: r.Value,
			ResponseType:  string(r.Type),
		})
	}
	return out, nil
}

// staticResponses serves fixed answers for any session.
type staticResponses struct {
	r   *survey.Responses
	err error
}

func (s staticResponses) Responses(context.Context, uuid.UUID) (*survey.Responses, error) {
	return s.r, s.err
}

type fakeCalculationStore struct {
	calc    *models.Calculation
	entries []*models.BreakdownEntry
	saves   int
}

func (f *fakeCalculationStore) Save(_ context.Context, calc *models.Calculation, entries []*models.BreakdownEntry) error {
	f.saves++
	calc.ID = int64(f.saves)
	for _, e := range entries {
		e.CalculationID = calc.ID
	}
	f.calc = calc
	f.entries = entries
	return nil
}

func (f *fakeCalculationStore) GetBySession(context.Context, uuid.UUID) (*models.Calculation, error) {
	if f.calc == nil {
		return nil, repository.ErrNotFound
	}
	return f.calc, nil
}

func (f *fakeCalculationStore) LatestBreakdown(context.Context, uuid.UUID) ([]*models.BreakdownEntry, error) {
	return f.entries, nil
}
