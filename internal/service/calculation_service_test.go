package service

import (
	"context"
	"testing"

	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/survey"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCalculationService(r *survey.Responses) (*CalculationService, *fakeCalculationStore) {
	store := &fakeCalculationStore{}
	svc := NewCalculationService(emissions.NewCalculator(testReference()), store, staticResponses{r: r}, "CA", zap.NewNop())
	return svc, store
}

func TestCalculateAppliesDefaults(t *testing.T) {
	svc, store := newTestCalculationService(&survey.Responses{})
	id := uuid.New()

	res, err := svc.Calculate(context.Background(), id)
	require.NoError(t, err)

	// $100 at $0.25/kWh in CA and $50 of gas for one person.
	assert.InDelta(t, 960, res.Footprint.HomeKg-50.0/1.2*12*5.3, 1e-6)
	assert.Zero(t, res.Footprint.TransportKg)
	assert.InDelta(t, 2500+1000, res.Footprint.ConsumptionKg, 1e-9)

	require.Len(t, res.Breakdowns.Home, 2)
	assert.Equal(t, "Natural Gas Heating", res.Breakdowns.Home[1].Source)
	assert.NotNil(t, res.Breakdowns.Transport)
	assert.Empty(t, res.Breakdowns.Transport)
	assert.Equal(t, "Diet (Moderate Meat)", res.Breakdowns.Consumption[0].Source)

	require.Equal(t, 1, store.saves)
	assert.Equal(t, id, store.calc.SessionID)
	assert.InDelta(t, res.Footprint.TotalKg, store.calc.TotalKg, 1e-9)
	require.Len(t, store.entries, 4)
	for _, e := range store.entries {
		assert.NotEmpty(t, e.Kind)
		assert.Equal(t, id, e.SessionID)
		assert.Equal(t, store.calc.ID, e.CalculationID)
	}
}

func TestCalculateIncludesCompleteVehicleOnly(t *testing.T) {
	r := vehicleResponses(2018, "Ford", "F-150", 15000)
	r.Transportation.DomesticFlights = survey.Ptr(2)

	svc, store := newTestCalculationService(r)
	res, err := svc.Calculate(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, res.Breakdowns.Transport, 2)
	assert.Equal(t, "Vehicle (2018 Ford F-150)", res.Breakdowns.Transport[0].Source)
	assert.InDelta(t, 15000.0/19*8.89+800, res.Footprint.TransportKg, 1e-6)

	r.Transportation.VehicleMake = nil
	res, err = svc.Calculate(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, res.Breakdowns.Transport, 1)
	assert.Equal(t, emissions.KindDomesticFlights, res.Breakdowns.Transport[0].Kind)
	assert.Equal(t, 2, store.saves)
}

func TestCalculateFeedsLifestyleBreakdown(t *testing.T) {
	r := &survey.Responses{}
	r.Transportation.DomesticFlights = survey.Ptr(5)
	r.Consumption.DietType = survey.Ptr("heavy_meat")

	svc, store := newTestCalculationService(r)
	_, err := svc.Calculate(context.Background(), uuid.New())
	require.NoError(t, err)

	recs := newTestLifestyle(store).GenerateLifestyle(context.Background(), uuid.New(), r, 0)
	require.NotNil(t, findAction(recs, ActionReduceDomesticFlights))
	require.NotNil(t, findAction(recs, ActionReduceMeatConsumption))
	assert.Equal(t, 450, findAction(recs, ActionReduceDomesticFlights).CO2SavingsKg)
	assert.Equal(t, 1400, findAction(recs, ActionReduceMeatConsumption).CO2SavingsKg)
}

func TestCalculateRejectsInvalidAnswers(t *testing.T) {
	r := &survey.Responses{}
	r.HomeEnergy.MonthlyElectricity = survey.Ptr(-5.0)

	svc, store := newTestCalculationService(r)
	_, err := svc.Calculate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, emissions.ErrInvalidInput)
	assert.Zero(t, store.saves)
}

func TestCalculateUnknownSession(t *testing.T) {
	store := &fakeCalculationStore{}
	svc := NewCalculationService(emissions.NewCalculator(testReference()), store, staticResponses{err: ErrSessionNotFound}, "CA", zap.NewNop())
	_, err := svc.Calculate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestLatest(t *testing.T) {
	svc, _ := newTestCalculationService(&survey.Responses{})
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.Latest(ctx, id)
	assert.ErrorIs(t, err, ErrNoCalculation)

	res, err := svc.Calculate(ctx, id)
	require.NoError(t, err)

	calc, err := svc.Latest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.Calculation.TotalKg, calc.TotalKg)
}
