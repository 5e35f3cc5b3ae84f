package service

import (
	"fmt"
	"sort"
	"strings"

	"carbon-footprint/internal/baseline"
	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/survey"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

type InsightCategory string

const (
	CategoryHomeHeating    InsightCategory = "home_heating"
	CategorySolar          InsightCategory = "solar_opportunity"
	CategoryTransportation InsightCategory = "transportation"
	CategoryHomeEfficiency InsightCategory = "home_efficiency"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Insight is a ranked, fixable emission source found in survey answers.
type Insight struct {
	Category     InsightCategory
	Severity     Severity
	CO2SavingsKg int
	Description  string
	Technologies []string
}

// Outcome is the result kind of a single sub-analysis.
type Outcome int

const (
	// OutcomeAbstain means the check does not apply or lacks data.
	OutcomeAbstain Outcome = iota
	// OutcomeInsight carries an insight computed from the calculator.
	OutcomeInsight
	// OutcomeFallback carries an insight built from a fixed estimate after
	// the calculator failed.
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInsight:
		return "insight"
	case OutcomeFallback:
		return "fallback"
	}
	return "abstain"
}

type Finding struct {
	Outcome Outcome
	Insight *Insight
	Reason  string
}

func abstain(reason string) Finding {
	return Finding{Outcome: OutcomeAbstain, Reason: reason}
}

func found(in *Insight) Finding {
	return Finding{Outcome: OutcomeInsight, Insight: in}
}

func fallback(in *Insight, reason string) Finding {
	return Finding{Outcome: OutcomeFallback, Insight: in, Reason: reason}
}

// EmissionsCalculator is the subset of the emissions calculator the
// analyzers call.
type EmissionsCalculator interface {
	Home(in emissions.HomeInput) (emissions.Result, error)
	Transport(in emissions.TransportInput) (emissions.Result, error)
}

// VehicleLookup resolves combined fuel economy for a vehicle.
type VehicleLookup interface {
	VehicleMPG(year int, vehicleMake, vehicleModel string) (float64, bool)
}

type AnalyzerConfig struct {
	DefaultState         string
	DefaultHouseholdSize int
	DefaultSquareFeet    float64
	DefaultElectricBill  float64
	DefaultHeatingBill   float64

	HighCarbonFuels      []string
	HeatPumpBillFactor   float64
	HeatingMinSavingsKg  int
	HeatingHighSavingsKg int
	HeatingFallbackKg    int

	SolarMinBill      float64
	SolarMinSavingsKg int
	SolarFactor       float64 // kg CO2/kWh
	AssumedKWhRate    float64 // $/kWh for bill to usage estimates
	GridFactor        float64 // kg CO2/kWh

	EVReference          emissions.VehicleInput
	TruckKeywords        []string
	TruckMPG             float64
	VehicleMinSavingsKg  int
	VehicleHighSavingsKg int
	FallbackMaxMPG       float64
	GasolineKgPerGallon  float64
	EVKgPerMile          float64

	ExtremeCostRatio float64
	ReducibleShare   float64
}

// WithDefaultState returns a copy of c using state for households that did
// not answer the state question.
func (c AnalyzerConfig) WithDefaultState(state string) AnalyzerConfig {
	if state != "" {
		c.DefaultState = strings.ToUpper(state)
	}
	return c
}

func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		DefaultState:         "CA",
		DefaultHouseholdSize: 2,
		DefaultSquareFeet:    1500,
		DefaultElectricBill:  100,
		DefaultHeatingBill:   100,

		HighCarbonFuels:      []string{"gas", "natural gas", "oil", "propane"},
		HeatPumpBillFactor:   0.6,
		HeatingMinSavingsKg:  500,
		HeatingHighSavingsKg: 2000,
		HeatingFallbackKg:    1500,

		SolarMinBill:      80,
		SolarMinSavingsKg: 800,
		SolarFactor:       0.05,
		AssumedKWhRate:    0.16,
		GridFactor:        0.4,

		EVReference: emissions.VehicleInput{Year: 2023, Make: "tesla", Model: "model 3"},
		TruckKeywords: []string{
			"truck", "suv", "suburban", "tahoe", "escalade", "navigator",
			"expedition", "f-150", "silverado", "ram", "tundra", "titan",
		},
		TruckMPG:             20,
		VehicleMinSavingsKg:  1000,
		VehicleHighSavingsKg: 4000,
		FallbackMaxMPG:       30,
		GasolineKgPerGallon:  8.9,
		EVKgPerMile:          0.2,

		ExtremeCostRatio: 1.8,
		ReducibleShare:   0.4,
	}
}

// DiagnosticAnalyzer turns survey answers into ranked insights.
type DiagnosticAnalyzer struct {
	calc     EmissionsCalculator
	vehicles VehicleLookup
	baseline *baseline.Table
	cfg      AnalyzerConfig
	logger   *zap.Logger
}

func NewDiagnosticAnalyzer(
	calc EmissionsCalculator,
	vehicles VehicleLookup,
	table *baseline.Table,
	cfg AnalyzerConfig,
	logger *zap.Logger,
) *DiagnosticAnalyzer {
	return &DiagnosticAnalyzer{
		calc:     calc,
		vehicles: vehicles,
		baseline: table,
		cfg:      cfg,
		logger:   logger,
	}
}

// Analyze runs every check and returns the insights sorted by savings,
// highest first. Equal savings keep check order: heating, solar, vehicle,
// extreme cost.
func (a *DiagnosticAnalyzer) Analyze(r *survey.Responses) []Insight {
	if r == nil {
		r = &survey.Responses{}
	}

	checks := []struct {
		name string
		run  func(*survey.Responses) Finding
	}{
		{"heating", a.HeatingSource},
		{"solar", a.SolarOpportunity},
		{"vehicle", a.VehicleEfficiency},
		{"extreme_cost", a.ExtremeEnergyCost},
	}

	var insights []Insight
	for _, c := range checks {
		f := c.run(r)
		switch f.Outcome {
		case OutcomeInsight:
			insights = append(insights, *f.Insight)
		case OutcomeFallback:
			a.logger.Warn("Diagnostic check used fallback estimate",
				zap.String("check", c.name),
				zap.String("reason", f.Reason),
			)
			insights = append(insights, *f.Insight)
		default:
			a.logger.Debug("Diagnostic check abstained",
				zap.String("check", c.name),
				zap.String("reason", f.Reason),
			)
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].CO2SavingsKg > insights[j].CO2SavingsKg
	})
	return insights
}

// HeatingSource compares current home emissions with a heat pump profile.
func (a *DiagnosticAnalyzer) HeatingSource(r *survey.Responses) Finding {
	heatingType := survey.Lower(r.HomeEnergy.HeatingType)
	if heatingType == "" {
		return abstain("heating type not answered")
	}
	if !containsAny(heatingType, a.cfg.HighCarbonFuels) {
		return abstain("heating fuel is not high carbon")
	}

	current := a.homeInput(r)
	current.HeatingType = heatingType

	heatPump := current
	heatPump.HeatingType = string(emissions.FuelHeatPump)
	heatPump.HeatingBill = current.HeatingBill * a.cfg.HeatPumpBillFactor

	before, err := a.calc.Home(current)
	if err == nil {
		var after emissions.Result
		after, err = a.calc.Home(heatPump)
		if err == nil {
			savings := int(before.TotalKg - after.TotalKg)
			if savings <= a.cfg.HeatingMinSavingsKg {
				return abstain("heat pump savings below threshold")
			}
			return found(&Insight{
				Category:     CategoryHomeHeating,
				Severity:     severity(savings, a.cfg.HeatingHighSavingsKg),
				CO2SavingsKg: savings,
				Description: fmt.Sprintf(
					"I noticed you are using %s heating which produces high carbon emissions. You could reduce your carbon emissions by ~%s kg CO2/year by upgrading to a heat pump%s",
					heatingType, humanize.Comma(int64(savings)), a.typicalHeating(heatingType, current)),
				Technologies: []string{"heat_pumps"},
			})
		}
	}

	return fallback(&Insight{
		Category:     CategoryHomeHeating,
		Severity:     SeverityMedium,
		CO2SavingsKg: a.cfg.HeatingFallbackKg,
		Description:  fmt.Sprintf("I noticed you are using %s heating which produces high carbon emissions", heatingType),
		Technologies: []string{"heat_pumps"},
	}, err.Error())
}

// typicalHeating describes the baseline heating cost for the household, or
// returns "" when the table has no figure for the fuel and state.
func (a *DiagnosticAnalyzer) typicalHeating(heatingType string, in emissions.HomeInput) string {
	perPerson, ok := a.baseline.HeatingPerPerson(heatingType, in.State)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (typical %s heating for a household of %d in %s costs about $%.0f/month)",
		heatingType, in.HouseholdSize, in.State, perPerson*float64(in.HouseholdSize))
}

// SolarOpportunity estimates grid emissions a rooftop array would offset.
func (a *DiagnosticAnalyzer) SolarOpportunity(r *survey.Responses) Finding {
	if survey.Or(r.HomeEnergy.SolarPanels, false) {
		return abstain("already has solar")
	}
	housing := survey.Lower(r.Introduction.HousingType)
	if strings.Contains(housing, "apartment") || strings.Contains(housing, "condo") {
		return abstain("housing type unsuitable for solar")
	}
	bill := survey.Or(r.HomeEnergy.MonthlyElectricity, 0)
	if bill <= a.cfg.SolarMinBill {
		return abstain("electricity bill too low for solar")
	}

	annualKWh := bill / a.cfg.AssumedKWhRate * 12
	savings := int(annualKWh*a.cfg.GridFactor - annualKWh*a.cfg.SolarFactor)
	if savings <= a.cfg.SolarMinSavingsKg {
		return abstain("solar savings below threshold")
	}

	if housing == "" {
		housing = "home"
	}
	return found(&Insight{
		Category:     CategorySolar,
		Severity:     SeverityMedium,
		CO2SavingsKg: savings,
		Description: fmt.Sprintf(
			"I noticed you do not have solar panels on your %s. You could reduce your carbon emissions by ~%s kg CO2/year by installing them",
			housing, humanize.Comma(int64(savings))),
		Technologies: []string{"solar"},
	})
}

// VehicleEfficiency compares the user's vehicle with an efficient EV over
// the same mileage.
func (a *DiagnosticAnalyzer) VehicleEfficiency(r *survey.Responses) Finding {
	t := r.Transportation
	miles := survey.Or(t.AnnualMiles, 0)
	year := survey.Or(t.VehicleYear, 0)
	vehicleMake := survey.Lower(t.VehicleMake)
	vehicleModel := survey.Lower(t.VehicleModel)
	if miles <= 0 || year == 0 || vehicleMake == "" || vehicleModel == "" {
		return abstain("vehicle details incomplete")
	}

	mpg, ok := resolveMPG(a.vehicles, year, vehicleMake, vehicleModel, a.cfg.TruckKeywords, a.cfg.TruckMPG)
	if !ok {
		a.logger.Warn("Vehicle not found in fuel economy table",
			zap.Int("year", year),
			zap.String("make", vehicleMake),
			zap.String("model", vehicleModel),
		)
		return abstain("vehicle fuel economy unknown")
	}

	subject := fmt.Sprintf("I noticed you are driving %s miles/year in your %d %s %s (%s MPG)",
		humanize.Comma(int64(miles)), year, vehicleMake, vehicleModel, humanize.Ftoa(mpg))

	current, err := a.calc.Transport(emissions.TransportInput{
		Vehicle:     &emissions.VehicleInput{Year: year, Make: vehicleMake, Model: vehicleModel},
		AnnualMiles: miles,
	})
	if err == nil {
		ev := a.cfg.EVReference
		var electric emissions.Result
		electric, err = a.calc.Transport(emissions.TransportInput{Vehicle: &ev, AnnualMiles: miles})
		if err == nil {
			savings := int(current.TotalKg - electric.TotalKg)
			if savings <= a.cfg.VehicleMinSavingsKg {
				return abstain("EV savings below threshold")
			}
			return found(&Insight{
				Category:     CategoryTransportation,
				Severity:     severity(savings, a.cfg.VehicleHighSavingsKg),
				CO2SavingsKg: savings,
				Description: fmt.Sprintf("%s. You could reduce your carbon emissions by %s kg CO2/year by upgrading to an EV",
					subject, humanize.Comma(int64(savings))),
				Technologies: []string{"electric_vehicles"},
			})
		}
	}

	if mpg >= a.cfg.FallbackMaxMPG {
		return abstain("calculator failed and vehicle is already efficient")
	}
	savings := int(miles/mpg*a.cfg.GasolineKgPerGallon - miles*a.cfg.EVKgPerMile)
	if savings <= a.cfg.VehicleMinSavingsKg {
		return abstain("estimated EV savings below threshold")
	}
	return fallback(&Insight{
		Category:     CategoryTransportation,
		Severity:     severity(savings, a.cfg.VehicleHighSavingsKg),
		CO2SavingsKg: savings,
		Description:  subject,
		Technologies: []string{"electric_vehicles"},
	}, err.Error())
}

// ExtremeEnergyCost flags bills far above the expected cost for the
// household. Savings assume part of the excess usage can be eliminated.
func (a *DiagnosticAnalyzer) ExtremeEnergyCost(r *survey.Responses) Finding {
	bill := survey.Or(r.HomeEnergy.MonthlyElectricity, 0)
	if bill <= 0 {
		return abstain("electricity bill not answered")
	}

	ratio, expected := a.baseline.ElectricityCostRatio(
		bill,
		r.StateCode(a.cfg.DefaultState),
		r.HouseholdSize(a.cfg.DefaultHouseholdSize),
		survey.Or(r.HomeEnergy.SquareFootage, a.cfg.DefaultSquareFeet),
	)
	if ratio <= a.cfg.ExtremeCostRatio {
		return abstain("electricity cost within expected range")
	}

	excessKWh := (bill - expected) / a.cfg.AssumedKWhRate * 12
	savings := int(excessKWh * a.cfg.ReducibleShare * a.cfg.GridFactor)

	return found(&Insight{
		Category:     CategoryHomeEfficiency,
		Severity:     SeverityHigh,
		CO2SavingsKg: savings,
		Description: fmt.Sprintf(
			"I noticed your electricity bill $%s/month seems unusually high. You could reduce your carbon emissions by ~%s kg CO2/year through efficiency upgrades to your HVAC, insulation, appliances, or lighting",
			humanize.Commaf(bill), humanize.Comma(int64(savings))),
		Technologies: []string{"hvac", "insulation", "appliances", "lighting"},
	})
}

func (a *DiagnosticAnalyzer) homeInput(r *survey.Responses) emissions.HomeInput {
	return emissions.HomeInput{
		SquareFeet:    survey.Or(r.HomeEnergy.SquareFootage, a.cfg.DefaultSquareFeet),
		ElectricBill:  survey.Or(r.HomeEnergy.MonthlyElectricity, a.cfg.DefaultElectricBill),
		HeatingType:   survey.Lower(r.HomeEnergy.HeatingType),
		HeatingBill:   survey.Or(r.HomeEnergy.HeatingBill, a.cfg.DefaultHeatingBill),
		State:         r.StateCode(a.cfg.DefaultState),
		HouseholdSize: r.HouseholdSize(a.cfg.DefaultHouseholdSize),
	}
}

func severity(savings, high int) Severity {
	if savings > high {
		return SeverityHigh
	}
	return SeverityMedium
}

// resolveMPG looks the vehicle up, falling back to a flat figure for trucks
// and SUVs. It reports false when the economy cannot be determined.
func resolveMPG(lookup VehicleLookup, year int, vehicleMake, vehicleModel string, truckKeywords []string, truckMPG float64) (float64, bool) {
	if lookup != nil {
		if mpg, ok := lookup.VehicleMPG(year, vehicleMake, vehicleModel); ok && mpg > 0 {
			return mpg, true
		}
	}
	if containsAny(strings.ToLower(vehicleMake+" "+vehicleModel), truckKeywords) {
		return truckMPG, true
	}
	return 0, false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
