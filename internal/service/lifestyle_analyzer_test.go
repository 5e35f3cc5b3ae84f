package service

import (
	"context"
	"testing"

	"carbon-footprint/internal/baseline"
	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/models"
	"carbon-footprint/internal/survey"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLifestyle(breakdowns BreakdownReader) *LifestyleAnalyzer {
	return NewLifestyleAnalyzer(breakdowns, testReference(), baseline.Default(), DefaultLifestyleConfig(), zap.NewNop())
}

func entry(kind emissions.Kind, source string, value float64) *models.BreakdownEntry {
	return &models.BreakdownEntry{Kind: kind, Source: source, Value: value, Units: "kg CO2"}
}

func findAction(recs []LifestyleRecommendation, action ActionType) *LifestyleRecommendation {
	for i := range recs {
		if recs[i].ActionType == action {
			return &recs[i]
		}
	}
	return nil
}

func TestDietRecommendation(t *testing.T) {
	a := newTestLifestyle(nil)

	vegan := &survey.Responses{}
	vegan.Consumption.DietType = survey.Ptr("vegan")
	recs := a.Analyze([]*models.BreakdownEntry{entry(emissions.KindDiet, "Diet (Vegan)", 1200)}, vegan)
	assert.Nil(t, findAction(recs, ActionReduceMeatConsumption))

	heavy := &survey.Responses{}
	heavy.Consumption.DietType = survey.Ptr("heavy_meat")
	recs = a.Analyze([]*models.BreakdownEntry{entry(emissions.KindDiet, "Diet (Heavy Meat)", 3300)}, heavy)
	rec := findAction(recs, ActionReduceMeatConsumption)
	require.NotNil(t, rec)
	assert.Equal(t, 1400, rec.CO2SavingsKg)
	assert.Equal(t, 3300, rec.CurrentCO2Kg)
	assert.Equal(t, LifestyleConsumption, rec.Category)
	assert.Contains(t, rec.Text, "Your heavy meat diet produces 3,300 kg CO2")
	assert.Nil(t, rec.CostSavings)

	// Unanswered diet is treated as moderate meat.
	recs = a.Analyze([]*models.BreakdownEntry{entry(emissions.KindDiet, "Diet (Moderate Meat)", 2500)}, &survey.Responses{})
	rec = findAction(recs, ActionReduceMeatConsumption)
	require.NotNil(t, rec)
	assert.Equal(t, 600, rec.CO2SavingsKg)

	// No diet entry, no recommendation.
	assert.Empty(t, a.Analyze(nil, heavy))
}

func TestFlightRecommendations(t *testing.T) {
	a := newTestLifestyle(nil)

	tests := []struct {
		name          string
		domestic      int
		international int
		entries       []*models.BreakdownEntry
		action        ActionType
		savings       int
		cost          int
	}{
		{
			name:     "domestic",
			domestic: 5,
			entries:  []*models.BreakdownEntry{entry(emissions.KindDomesticFlights, "Domestic Flights", 2000)},
			action:   ActionReduceDomesticFlights,
			savings:  450,
			cost:     400,
		},
		{
			name:          "international",
			domestic:      1,
			international: 2,
			entries: []*models.BreakdownEntry{
				entry(emissions.KindDomesticFlights, "Domestic Flights", 400),
				entry(emissions.KindInternationalFlights, "International Flights", 3000),
			},
			action:  ActionReduceInternationalFlights,
			savings: 1200,
			cost:    1200,
		},
		{
			name:          "both",
			domestic:      4,
			international: 3,
			entries: []*models.BreakdownEntry{
				entry(emissions.KindDomesticFlights, "Domestic Flights", 1600),
				entry(emissions.KindInternationalFlights, "International Flights", 4500),
			},
			action:  ActionReduceFlights,
			savings: 1200,
			cost:    1200,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &survey.Responses{}
			r.Transportation.DomesticFlights = survey.Ptr(tt.domestic)
			r.Transportation.InternationalFlights = survey.Ptr(tt.international)

			rec := findAction(a.Analyze(tt.entries, r), tt.action)
			require.NotNil(t, rec)
			assert.Equal(t, LifestyleTransportation, rec.Category)
			assert.Equal(t, tt.savings, rec.CO2SavingsKg)
			require.NotNil(t, rec.CostSavings)
			assert.Equal(t, tt.cost, *rec.CostSavings)
			assert.Contains(t, rec.Text, "about 1.2 domestic and 0.3 international flights a year")
		})
	}
}

func TestFlightsWithinLimits(t *testing.T) {
	a := newTestLifestyle(nil)

	r := &survey.Responses{}
	r.Transportation.DomesticFlights = survey.Ptr(3)
	r.Transportation.InternationalFlights = survey.Ptr(1)
	recs := a.Analyze([]*models.BreakdownEntry{
		entry(emissions.KindDomesticFlights, "Domestic Flights", 1200),
		entry(emissions.KindInternationalFlights, "International Flights", 1500),
	}, r)
	assert.Empty(t, recs)
}

func TestDrivingRecommendation(t *testing.T) {
	a := newTestLifestyle(nil)

	r := vehicleResponses(2018, "Ford", "F-150", 20000)
	entries := []*models.BreakdownEntry{entry(emissions.KindVehicle, "Vehicle (2018 Ford F-150)", 9358)}

	rec := findAction(a.Analyze(entries, r), ActionDriveLess)
	require.NotNil(t, rec)
	assert.Equal(t, 9358, rec.CurrentCO2Kg)
	assert.Equal(t, 935, rec.CO2SavingsKg)
	require.NotNil(t, rec.CostSavings)
	assert.Equal(t, 368, *rec.CostSavings)
	assert.Contains(t, rec.Text, "20,000 miles of driving")
	assert.Contains(t, rec.Text, "by 10% (2,000 miles)")
}

func TestDrivingAbstains(t *testing.T) {
	a := newTestLifestyle(nil)

	// Below 125% of the national mileage.
	r := vehicleResponses(2018, "Ford", "F-150", 15000)
	entries := []*models.BreakdownEntry{entry(emissions.KindVehicle, "Vehicle (2018 Ford F-150)", 7000)}
	assert.Nil(t, findAction(a.Analyze(entries, r), ActionDriveLess))

	// Efficient vehicle.
	r = vehicleResponses(2020, "Toyota", "Prius", 30000)
	entries = []*models.BreakdownEntry{entry(emissions.KindVehicle, "Vehicle (2020 Toyota Prius)", 4700)}
	assert.Nil(t, findAction(a.Analyze(entries, r), ActionDriveLess))

	// Vehicle entry for a different model year.
	r = vehicleResponses(2018, "Ford", "F-150", 30000)
	entries = []*models.BreakdownEntry{entry(emissions.KindVehicle, "Vehicle (2017 Ford F-150)", 14000)}
	assert.Nil(t, findAction(a.Analyze(entries, r), ActionDriveLess))
}

func TestEnergyRecommendation(t *testing.T) {
	a := newTestLifestyle(nil)

	r := &survey.Responses{}
	r.Introduction.State = survey.Ptr("CA")
	r.Introduction.HouseholdSize = survey.Ptr(1)
	r.HomeEnergy.SquareFootage = survey.Ptr(850.0)
	r.HomeEnergy.MonthlyElectricity = survey.Ptr(200.0)

	rec := findAction(a.Analyze([]*models.BreakdownEntry{entry(emissions.KindElectricity, "Electricity", 1920)}, r), ActionReduceEnergyUse)
	require.NotNil(t, rec)
	assert.Equal(t, LifestyleHomeEnergy, rec.Category)
	assert.Equal(t, 192, rec.CO2SavingsKg)
	require.NotNil(t, rec.CostSavings)
	assert.Equal(t, 240, *rec.CostSavings)
	assert.Contains(t, rec.Text, "$20/month")

	r.HomeEnergy.MonthlyElectricity = survey.Ptr(90.0)
	assert.Nil(t, findAction(a.Analyze([]*models.BreakdownEntry{entry(emissions.KindElectricity, "Electricity", 860)}, r), ActionReduceEnergyUse))
}

func TestShoppingRecommendation(t *testing.T) {
	a := newTestLifestyle(nil)

	for _, tt := range []struct {
		frequency string
		savings   int
		phrase    string
	}{
		{"very_high", 2000, "very frequent shopping"},
		{"high", 1000, "Your frequent shopping"},
	} {
		r := &survey.Responses{}
		r.Consumption.ShoppingFrequency = survey.Ptr(tt.frequency)
		rec := findAction(a.Analyze([]*models.BreakdownEntry{entry(emissions.KindShopping, "Consumer goods", 3000)}, r), ActionReduceShoppingFrequency)
		require.NotNil(t, rec, tt.frequency)
		assert.Equal(t, tt.savings, rec.CO2SavingsKg)
		assert.Contains(t, rec.Text, tt.phrase)
	}

	moderate := &survey.Responses{}
	moderate.Consumption.ShoppingFrequency = survey.Ptr("moderate")
	assert.Empty(t, a.Analyze([]*models.BreakdownEntry{entry(emissions.KindShopping, "Consumer goods (Moderate)", 1000)}, moderate))
}

func TestAnalyzeSortsByCurrentEmissions(t *testing.T) {
	a := newTestLifestyle(nil)

	r := vehicleResponses(2018, "Ford", "F-150", 20000)
	r.Transportation.DomesticFlights = survey.Ptr(5)
	r.Consumption.DietType = survey.Ptr("heavy_meat")
	r.Consumption.ShoppingFrequency = survey.Ptr("very_high")

	recs := a.Analyze([]*models.BreakdownEntry{
		entry(emissions.KindVehicle, "Vehicle (2018 Ford F-150)", 9358),
		entry(emissions.KindDomesticFlights, "Domestic Flights", 2000),
		entry(emissions.KindDiet, "Diet (Heavy Meat)", 3300),
		entry(emissions.KindShopping, "Consumer goods (Very High)", 3000),
	}, r)
	require.Len(t, recs, 4)

	// Savings order would differ: shopping saves the most.
	assert.Equal(t, ActionDriveLess, recs[0].ActionType)
	assert.Equal(t, ActionReduceMeatConsumption, recs[1].ActionType)
	assert.Equal(t, ActionReduceShoppingFrequency, recs[2].ActionType)
	assert.Equal(t, ActionReduceDomesticFlights, recs[3].ActionType)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].CurrentCO2Kg, recs[i].CurrentCO2Kg)
	}
}

func TestAnalyzeClassifiesUnkindedRowsByLabel(t *testing.T) {
	a := newTestLifestyle(nil)

	r := &survey.Responses{}
	r.Transportation.DomesticFlights = survey.Ptr(5)
	r.Consumption.DietType = survey.Ptr("heavy_meat")

	recs := a.Analyze([]*models.BreakdownEntry{
		entry("", "Domestic Flights", 2000),
		entry("", "Diet (Heavy Meat)", 3300),
	}, r)
	assert.NotNil(t, findAction(recs, ActionReduceDomesticFlights))
	assert.NotNil(t, findAction(recs, ActionReduceMeatConsumption))
}

func TestGenerateLifestyleLimits(t *testing.T) {
	r := vehicleResponses(2018, "Ford", "F-150", 20000)
	r.Transportation.DomesticFlights = survey.Ptr(5)
	r.Consumption.DietType = survey.Ptr("heavy_meat")
	r.Consumption.ShoppingFrequency = survey.Ptr("very_high")

	a := newTestLifestyle(&fakeBreakdowns{entries: []*models.BreakdownEntry{
		entry(emissions.KindVehicle, "Vehicle (2018 Ford F-150)", 9358),
		entry(emissions.KindDomesticFlights, "Domestic Flights", 2000),
		entry(emissions.KindDiet, "Diet (Heavy Meat)", 3300),
		entry(emissions.KindShopping, "Consumer goods (Very High)", 3000),
	}})
	ctx := context.Background()
	id := uuid.New()

	assert.Len(t, a.GenerateLifestyle(ctx, id, r, 0), 3)
	assert.Len(t, a.GenerateLifestyle(ctx, id, r, 2), 3)

	crowded := a.GenerateLifestyle(ctx, id, r, 3)
	require.Len(t, crowded, 1)
	assert.Equal(t, ActionDriveLess, crowded[0].ActionType)
}

func TestGenerateLifestyleWithoutBreakdown(t *testing.T) {
	ctx := context.Background()
	r := &survey.Responses{}
	r.Consumption.DietType = survey.Ptr("heavy_meat")

	empty := newTestLifestyle(&fakeBreakdowns{})
	recs := empty.GenerateLifestyle(ctx, uuid.New(), r, 0)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	failing := newTestLifestyle(&fakeBreakdowns{err: errStore})
	recs = failing.GenerateLifestyle(ctx, uuid.New(), r, 0)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestEnergyUsesConfiguredDefaultState(t *testing.T) {
	r := &survey.Responses{}
	r.Introduction.HouseholdSize = survey.Ptr(1)
	r.HomeEnergy.MonthlyElectricity = survey.Ptr(230.0)
	entries := []*models.BreakdownEntry{entry(emissions.KindElectricity, "Electricity", 1000)}

	// 1500 sq ft for one person: CA expects ~$139/month, NY ~$115/month.
	ca := newTestLifestyle(nil)
	assert.Nil(t, findAction(ca.Analyze(entries, r), ActionReduceEnergyUse))

	cfg := DefaultLifestyleConfig().WithDefaultState("ny")
	assert.Equal(t, "NY", cfg.DefaultState)
	ny := NewLifestyleAnalyzer(nil, testReference(), baseline.Default(), cfg, zap.NewNop())
	assert.NotNil(t, findAction(ny.Analyze(entries, r), ActionReduceEnergyUse))
}
