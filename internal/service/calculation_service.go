package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/models"
	"carbon-footprint/internal/repository"
	"carbon-footprint/internal/survey"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNoCalculation = errors.New("no calculation found for session")

// Defaults applied to unanswered questions before calculating.
const (
	calcDefaultSquareFeet    = 1500
	calcDefaultElectricBill  = 100
	calcDefaultHeatingType   = "gas"
	calcDefaultHeatingBill   = 50
	calcDefaultHouseholdSize = 1
	calcDefaultAnnualMiles   = 12000
	calcDefaultDiet          = "moderate_meat"
	calcDefaultShopping      = "moderate"
)

type CalculationStore interface {
	Save(ctx context.Context, calc *models.Calculation, entries []*models.BreakdownEntry) error
	GetBySession(ctx context.Context, sessionID uuid.UUID) (*models.Calculation, error)
}

// FootprintCalculator computes all three emission domains.
type FootprintCalculator interface {
	EmissionsCalculator
	Consumption(in emissions.ConsumptionInput) (emissions.Result, error)
}

// Breakdowns groups the calculation entries by domain.
type Breakdowns struct {
	Home        []emissions.Entry `json:"home"`
	Transport   []emissions.Entry `json:"transport"`
	Consumption []emissions.Entry `json:"consumption"`
}

type CalculationResult struct {
	Calculation *models.Calculation
	Footprint   emissions.Footprint
	Breakdowns  Breakdowns
}

type CalculationService struct {
	calc         FootprintCalculator
	store        CalculationStore
	responses    ResponsesLoader
	defaultState string
	logger       *zap.Logger
	now          func() time.Time
}

func NewCalculationService(
	calc FootprintCalculator,
	store CalculationStore,
	responses ResponsesLoader,
	defaultState string,
	logger *zap.Logger,
) *CalculationService {
	return &CalculationService{
		calc:         calc,
		store:        store,
		responses:    responses,
		defaultState: defaultState,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Calculate computes the session's footprint from its answers and stores it,
// replacing any earlier calculation and breakdown.
func (s *CalculationService) Calculate(ctx context.Context, sessionID uuid.UUID) (*CalculationResult, error) {
	r, err := s.responses.Responses(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	home, err := s.calc.Home(s.homeInput(r))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate home emissions: %w", err)
	}
	transport, err := s.calc.Transport(transportInput(r))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate transport emissions: %w", err)
	}
	consumption, err := s.calc.Consumption(emissions.ConsumptionInput{
		DietType:          survey.Or(r.Consumption.DietType, calcDefaultDiet),
		ShoppingFrequency: survey.Or(r.Consumption.ShoppingFrequency, calcDefaultShopping),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate consumption emissions: %w", err)
	}

	fp := emissions.NewFootprint(home.TotalKg, transport.TotalKg, consumption.TotalKg)
	calc := &models.Calculation{
		SessionID:       sessionID,
		TotalKg:         fp.TotalKg,
		HomeKg:          fp.HomeKg,
		TransportKg:     fp.TransportKg,
		ConsumptionKg:   fp.ConsumptionKg,
		CalculationDate: s.now(),
	}

	var entries []*models.BreakdownEntry
	for _, res := range []emissions.Result{home, transport, consumption} {
		for _, e := range res.Entries {
			entries = append(entries, &models.BreakdownEntry{
				SessionID: sessionID,
				Kind:      e.Kind,
				Source:    e.Source,
				Value:     e.Value,
				Units:     e.Units,
				Method:    e.Method,
			})
		}
	}

	if err := s.store.Save(ctx, calc, entries); err != nil {
		return nil, fmt.Errorf("failed to save calculation: %w", err)
	}

	s.logger.Info("Footprint calculated",
		zap.String("session_id", sessionID.String()),
		zap.Float64("total_kg", fp.TotalKg),
		zap.Int("entries", len(entries)),
	)

	return &CalculationResult{
		Calculation: calc,
		Footprint:   fp,
		Breakdowns: Breakdowns{
			Home:        nonNil(home.Entries),
			Transport:   nonNil(transport.Entries),
			Consumption: nonNil(consumption.Entries),
		},
	}, nil
}

// Latest returns the session's stored calculation.
func (s *CalculationService) Latest(ctx context.Context, sessionID uuid.UUID) (*models.Calculation, error) {
	calc, err := s.store.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoCalculation
		}
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	return calc, nil
}

func (s *CalculationService) homeInput(r *survey.Responses) emissions.HomeInput {
	return emissions.HomeInput{
		SquareFeet:    survey.Or(r.HomeEnergy.SquareFootage, calcDefaultSquareFeet),
		ElectricBill:  survey.Or(r.HomeEnergy.MonthlyElectricity, calcDefaultElectricBill),
		HeatingType:   survey.Or(r.HomeEnergy.HeatingType, calcDefaultHeatingType),
		HeatingBill:   survey.Or(r.HomeEnergy.HeatingBill, calcDefaultHeatingBill),
		State:         r.StateCode(s.defaultState),
		HouseholdSize: r.HouseholdSize(calcDefaultHouseholdSize),
	}
}

// transportInput includes the vehicle only when year, make and model are all
// answered.
func transportInput(r *survey.Responses) emissions.TransportInput {
	t := r.Transportation
	in := emissions.TransportInput{
		AnnualMiles:          survey.Or(t.AnnualMiles, calcDefaultAnnualMiles),
		DomesticFlights:      survey.Or(t.DomesticFlights, 0),
		InternationalFlights: survey.Or(t.InternationalFlights, 0),
	}
	vehicleMake := strings.TrimSpace(survey.Or(t.VehicleMake, ""))
	vehicleModel := strings.TrimSpace(survey.Or(t.VehicleModel, ""))
	if year := survey.Or(t.VehicleYear, 0); year > 0 && vehicleMake != "" && vehicleModel != "" {
		in.Vehicle = &emissions.VehicleInput{Year: year, Make: vehicleMake, Model: vehicleModel}
	}
	return in
}

func nonNil(entries []emissions.Entry) []emissions.Entry {
	if entries == nil {
		return []emissions.Entry{}
	}
	return entries
}
