package service

import (
	"context"
	"strings"
	"testing"

	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/models"
	"carbon-footprint/internal/survey"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPrograms() []*models.Program {
	return append(heatPumpPrograms(),
		&models.Program{ID: 10, Federal: true, Name: "Residential Clean Energy Credit", Summary: "Tax credit for solar photovoltaic systems", ProgramType: models.ProgramTaxCredit, Technologies: []string{"solar"}},
		&models.Program{ID: 11, State: "CA", Name: "Solar on Multifamily Affordable Housing", ProgramType: models.ProgramRebate, Technologies: []string{"solar"}},
	)
}

type recommendationFixture struct {
	svc    *RecommendationService
	store  *fakeRecommendationStore
	finder *fakeProgramFinder
}

func newRecommendationFixture(analyzer *DiagnosticAnalyzer, responses ResponsesLoader, breakdowns BreakdownReader) *recommendationFixture {
	programs := testPrograms()
	finder := &fakeProgramFinder{programs: programs}
	store := newFakeRecommendationStore(programs...)
	logger := zap.NewNop()
	svc := NewRecommendationService(
		analyzer,
		NewProgramMatcher(finder, DefaultMatcherConfig(), logger),
		newTestLifestyle(breakdowns),
		store,
		responses,
		"CA",
		logger,
	)
	return &recommendationFixture{svc: svc, store: store, finder: finder}
}

func efficientHomeResponses() *survey.Responses {
	r := &survey.Responses{}
	r.Introduction.State = survey.Ptr("CA")
	r.HomeEnergy.HeatingType = survey.Ptr("electric")
	r.HomeEnergy.MonthlyElectricity = survey.Ptr(50.0)
	return r
}

func TestGenerateDiagnosticPersistsTopAndSecondaryInsights(t *testing.T) {
	f := newRecommendationFixture(newTestAnalyzer(), nil, nil)
	ctx := context.Background()
	id := uuid.New()

	texts := f.svc.GenerateDiagnostic(ctx, id, gasHomeResponses())
	require.Len(t, texts, 4)
	for _, text := range texts {
		assert.True(t, strings.HasSuffix(text, ". The programs below can help cover the cost."), text)
	}

	rows, err := f.store.ListBySession(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	var heating, solar []*models.RecommendationWithProgram
	for _, row := range rows {
		require.NoError(t, row.Validate())
		switch InsightCategory(row.Category) {
		case CategoryHomeHeating:
			heating = append(heating, row)
		case CategorySolar:
			solar = append(solar, row)
		}
	}

	// Top insight: three heat pump programs in rank order, same text and savings.
	require.Len(t, heating, 3)
	assert.Equal(t, []int64{2, 4, 1}, []int64{heating[0].Program.ID, heating[1].Program.ID, heating[2].Program.ID})
	assert.Equal(t, heating[0].Text, heating[1].Text)
	assert.Equal(t, heating[0].CO2SavingsKg, heating[2].CO2SavingsKg)
	assert.Equal(t, models.PriorityScore(heating[0].CO2SavingsKg), heating[0].PriorityScore)
	assert.NotNil(t, heating[0].FederalProgramID)
	assert.NotNil(t, heating[1].StateProgramID)

	// Secondary insight: the single best solar program.
	require.Len(t, solar, 1)
	assert.Equal(t, int64(11), solar[0].Program.ID)
	assert.Nil(t, solar[0].FederalProgramID)
}

func TestGenerateDiagnosticWithoutInsights(t *testing.T) {
	f := newRecommendationFixture(newTestAnalyzer(), nil, nil)
	ctx := context.Background()
	id := uuid.New()

	f.svc.GenerateDiagnostic(ctx, id, gasHomeResponses())
	require.NotZero(t, f.store.count(id))

	texts := f.svc.GenerateDiagnostic(ctx, id, efficientHomeResponses())
	assert.Equal(t, []string{NoInsightsMessage}, texts)
	assert.Zero(t, f.store.count(id))
}

func TestGenerateDiagnosticReplacesPriorRows(t *testing.T) {
	f := newRecommendationFixture(newTestAnalyzer(), nil, nil)
	ctx := context.Background()
	id := uuid.New()

	require.Len(t, f.svc.GenerateDiagnostic(ctx, id, gasHomeResponses()), 4)

	solarOnly := gasHomeResponses()
	solarOnly.HomeEnergy.HeatingType = survey.Ptr("heat pump")
	texts := f.svc.GenerateDiagnostic(ctx, id, solarOnly)
	require.Len(t, texts, 2)

	rows, err := f.store.ListBySession(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var programIDs []int64
	for i, row := range rows {
		assert.Equal(t, string(CategorySolar), row.Category)
		assert.Equal(t, texts[i], row.Text)
		programIDs = append(programIDs, row.Program.ID)
	}
	// rebate (15) outranks the tax credit (13)
	assert.Equal(t, []int64{11, 10}, programIDs)
}

func TestGenerateDiagnosticSkipsInsightsWithoutPrograms(t *testing.T) {
	f := newRecommendationFixture(newTestAnalyzer(), nil, nil)
	f.finder.programs = heatPumpPrograms()
	ctx := context.Background()
	id := uuid.New()

	texts := f.svc.GenerateDiagnostic(ctx, id, gasHomeResponses())
	assert.Len(t, texts, 3)
	assert.Equal(t, 3, f.store.count(id))
}

func TestGenerateDiagnosticFallsBackOnFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("program lookup", func(t *testing.T) {
		f := newRecommendationFixture(newTestAnalyzer(), nil, nil)
		id := uuid.New()
		f.svc.GenerateDiagnostic(ctx, id, gasHomeResponses())

		f.finder.err = errStore
		assert.Equal(t, []string{FallbackMessage}, f.svc.GenerateDiagnostic(ctx, id, gasHomeResponses()))
		assert.Zero(t, f.store.count(id))
		assert.Equal(t, 1, f.store.deletes)
	})

	t.Run("save", func(t *testing.T) {
		f := newRecommendationFixture(newTestAnalyzer(), nil, nil)
		f.store.replaceErr = errStore
		assert.Equal(t, []string{FallbackMessage}, f.svc.GenerateDiagnostic(ctx, uuid.New(), gasHomeResponses()))
	})

	t.Run("panic", func(t *testing.T) {
		ref := testReference()
		broken := NewDiagnosticAnalyzer(emissions.NewCalculator(ref), ref, nil, DefaultAnalyzerConfig(), zap.NewNop())
		f := newRecommendationFixture(broken, nil, nil)
		assert.Equal(t, []string{FallbackMessage}, f.svc.GenerateDiagnostic(ctx, uuid.New(), gasHomeResponses()))
		assert.Equal(t, 1, f.store.deletes)
	})
}

func TestRecommendationsCombinesTechnologyAndLifestyle(t *testing.T) {
	r := gasHomeResponses()
	r.Transportation.DomesticFlights = survey.Ptr(5)
	r.Consumption.DietType = survey.Ptr("heavy_meat")
	r.Consumption.ShoppingFrequency = survey.Ptr("very_high")

	breakdowns := &fakeBreakdowns{entries: []*models.BreakdownEntry{
		entry(emissions.KindDomesticFlights, "Domestic Flights", 2000),
		entry(emissions.KindDiet, "Diet (Heavy Meat)", 3300),
		entry(emissions.KindShopping, "Consumer goods (Very High)", 3000),
	}}
	f := newRecommendationFixture(newTestAnalyzer(), staticResponses{r: r}, breakdowns)

	set, err := f.svc.Recommendations(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, set.Technology, 4)
	for i := 1; i < len(set.Technology); i++ {
		assert.GreaterOrEqual(t, set.Technology[i-1].PriorityScore, set.Technology[i].PriorityScore)
	}

	// Four technology recommendations leave room for one lifestyle change.
	require.Len(t, set.Lifestyle, 1)
	assert.Equal(t, ActionReduceMeatConsumption, set.Lifestyle[0].ActionType)
}

func TestRecommendationsShowsMoreLifestyleWhenFewUpgrades(t *testing.T) {
	r := efficientHomeResponses()
	r.Consumption.DietType = survey.Ptr("heavy_meat")
	r.Consumption.ShoppingFrequency = survey.Ptr("very_high")

	breakdowns := &fakeBreakdowns{entries: []*models.BreakdownEntry{
		entry(emissions.KindDiet, "Diet (Heavy Meat)", 3300),
		entry(emissions.KindShopping, "Consumer goods (Very High)", 3000),
	}}
	f := newRecommendationFixture(newTestAnalyzer(), staticResponses{r: r}, breakdowns)

	set, err := f.svc.Recommendations(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, set.Technology)
	assert.Len(t, set.Lifestyle, 2)
}

func TestRecommendationsUnknownSession(t *testing.T) {
	f := newRecommendationFixture(newTestAnalyzer(), staticResponses{err: ErrSessionNotFound}, nil)
	_, err := f.svc.Recommendations(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestIsTechnologyCategory(t *testing.T) {
	assert.True(t, isTechnologyCategory("home_heating"))
	assert.True(t, isTechnologyCategory("home_efficiency"))
	assert.False(t, isTechnologyCategory("consumption"))
	assert.False(t, isTechnologyCategory(""))
}
