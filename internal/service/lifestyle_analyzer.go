package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"carbon-footprint/internal/baseline"
	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/models"
	"carbon-footprint/internal/survey"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LifestyleCategory string

const (
	LifestyleTransportation LifestyleCategory = "transportation"
	LifestyleConsumption    LifestyleCategory = "consumption"
	LifestyleHomeEnergy     LifestyleCategory = "home_energy"
)

type ActionType string

const (
	ActionReduceFlights              ActionType = "reduce_flights"
	ActionReduceInternationalFlights ActionType = "reduce_international_flights"
	ActionReduceDomesticFlights      ActionType = "reduce_domestic_flights"
	ActionDriveLess                  ActionType = "drive_less"
	ActionReduceEnergyUse            ActionType = "reduce_energy_use"
	ActionReduceMeatConsumption      ActionType = "reduce_meat_consumption"
	ActionReduceShoppingFrequency    ActionType = "reduce_shopping_frequency"
)

// LifestyleRecommendation is a behavior change found in a computed
// breakdown. It is recomputed on every request and never stored.
type LifestyleRecommendation struct {
	Category     LifestyleCategory `json:"category"`
	ActionType   ActionType        `json:"action_type"`
	CurrentCO2Kg int               `json:"current_co2_kg"`
	CO2SavingsKg int               `json:"co2_savings_kg"`
	Text         string            `json:"recommendation_text"`
	CostSavings  *int              `json:"cost_savings,omitempty"`
}

// BreakdownReader returns the entries of the latest calculation of a session.
type BreakdownReader interface {
	LatestBreakdown(ctx context.Context, sessionID uuid.UUID) ([]*models.BreakdownEntry, error)
}

type LifestyleConfig struct {
	DefaultState         string
	DefaultHouseholdSize int
	DefaultSquareFeet    float64
	DefaultDiet          string
	DefaultShopping      string

	DomesticFlightLimit          int
	InternationalFlightLimit     int
	DomesticFlightSavingsKg      int
	InternationalFlightSavingsKg int
	DomesticFlightCost           int
	InternationalFlightCost      int

	HighMileageFactor float64
	EfficientMPG      float64
	GasPricePerGallon float64
	TruckKeywords     []string
	TruckMPG          float64

	HighCostRatio float64

	// ReductionShare is the fraction of driving or electricity use the
	// driving and energy checks propose to cut.
	ReductionShare float64

	DietSavingsKg     map[string]int
	ShoppingSavingsKg map[string]int

	// CrowdedAt is the technology recommendation count at which only
	// the top lifestyle recommendation is shown.
	CrowdedAt int
	MaxShown  int
}

// WithDefaultState returns a copy of c using state for households that did
// not answer the state question.
func (c LifestyleConfig) WithDefaultState(state string) LifestyleConfig {
	if state != "" {
		c.DefaultState = strings.ToUpper(state)
	}
	return c
}

func DefaultLifestyleConfig() LifestyleConfig {
	analyzer := DefaultAnalyzerConfig()
	return LifestyleConfig{
		DefaultState:         analyzer.DefaultState,
		DefaultHouseholdSize: 2,
		DefaultSquareFeet:    1500,
		DefaultDiet:          "moderate_meat",
		DefaultShopping:      "moderate",

		DomesticFlightLimit:          3,
		InternationalFlightLimit:     1,
		DomesticFlightSavingsKg:      450,
		InternationalFlightSavingsKg: 1200,
		DomesticFlightCost:           400,
		InternationalFlightCost:      1200,

		HighMileageFactor: 1.25,
		EfficientMPG:      50,
		GasPricePerGallon: 3.50,
		TruckKeywords:     analyzer.TruckKeywords,
		TruckMPG:          analyzer.TruckMPG,

		HighCostRatio:  1.8,
		ReductionShare: 0.1,

		DietSavingsKg: map[string]int{
			"heavy_meat":    1400,
			"moderate_meat": 600,
		},
		ShoppingSavingsKg: map[string]int{
			"very_high": 2000,
			"high":      1000,
		},

		CrowdedAt: 3,
		MaxShown:  3,
	}
}

// LifestyleAnalyzer mines a computed breakdown for behavior changes.
type LifestyleAnalyzer struct {
	breakdowns BreakdownReader
	vehicles   VehicleLookup
	baseline   *baseline.Table
	cfg        LifestyleConfig
	logger     *zap.Logger
}

func NewLifestyleAnalyzer(
	breakdowns BreakdownReader,
	vehicles VehicleLookup,
	table *baseline.Table,
	cfg LifestyleConfig,
	logger *zap.Logger,
) *LifestyleAnalyzer {
	return &LifestyleAnalyzer{
		breakdowns: breakdowns,
		vehicles:   vehicles,
		baseline:   table,
		cfg:        cfg,
		logger:     logger,
	}
}

// GenerateLifestyle returns the lifestyle recommendations to show for a
// session: the single top one when existingTechCount reaches CrowdedAt,
// otherwise up to MaxShown. Read failures yield an empty list.
func (a *LifestyleAnalyzer) GenerateLifestyle(
	ctx context.Context,
	sessionID uuid.UUID,
	r *survey.Responses,
	existingTechCount int,
) []LifestyleRecommendation {
	entries, err := a.breakdowns.LatestBreakdown(ctx, sessionID)
	if err != nil {
		a.logger.Error("Failed to load breakdown",
			zap.String("session_id", sessionID.String()),
			zap.Error(err),
		)
		return []LifestyleRecommendation{}
	}
	if len(entries) == 0 {
		a.logger.Warn("No breakdown data for session", zap.String("session_id", sessionID.String()))
		return []LifestyleRecommendation{}
	}

	recs := a.Analyze(entries, r)

	limit := a.cfg.MaxShown
	if existingTechCount >= a.cfg.CrowdedAt {
		limit = 1
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}

	a.logger.Info("Lifestyle recommendations generated",
		zap.String("session_id", sessionID.String()),
		zap.Int("count", len(recs)),
	)
	return recs
}

// Analyze runs every check over the entries and sorts the results by
// current emissions, highest first.
func (a *LifestyleAnalyzer) Analyze(entries []*models.BreakdownEntry, r *survey.Responses) []LifestyleRecommendation {
	if r == nil {
		r = &survey.Responses{}
	}
	b := newBreakdownView(entries)

	checks := []func(breakdownView, *survey.Responses) *LifestyleRecommendation{
		a.flights,
		a.driving,
		a.energy,
		a.diet,
		a.shopping,
	}

	recs := []LifestyleRecommendation{}
	for _, check := range checks {
		if rec := check(b, r); rec != nil {
			recs = append(recs, *rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CurrentCO2Kg > recs[j].CurrentCO2Kg
	})
	return recs
}

func (a *LifestyleAnalyzer) flights(b breakdownView, r *survey.Responses) *LifestyleRecommendation {
	domestic := survey.Or(r.Transportation.DomesticFlights, 0)
	international := survey.Or(r.Transportation.InternationalFlights, 0)

	current := b.value(emissions.KindDomesticFlights) + b.value(emissions.KindInternationalFlights)
	if current == 0 {
		return nil
	}

	highDomestic := domestic > a.cfg.DomesticFlightLimit
	highInternational := international > a.cfg.InternationalFlightLimit

	rec := &LifestyleRecommendation{
		Category:     LifestyleTransportation,
		CurrentCO2Kg: int(current),
	}
	switch {
	case highDomestic && highInternational:
		rec.ActionType = ActionReduceFlights
		rec.CO2SavingsKg = a.cfg.InternationalFlightSavingsKg
		rec.CostSavings = intPtr(a.cfg.InternationalFlightCost)
		rec.Text = fmt.Sprintf("Your %d domestic and %d international flights produce %s kg CO2 annually. Consider taking one less international round trip each year - perhaps take longer but fewer trips abroad. This could save around %d kg CO2 annually.",
			domestic, international, kg(current), rec.CO2SavingsKg)
	case highInternational:
		rec.ActionType = ActionReduceInternationalFlights
		rec.CO2SavingsKg = a.cfg.InternationalFlightSavingsKg
		rec.CostSavings = intPtr(a.cfg.InternationalFlightCost)
		rec.Text = fmt.Sprintf("Your %d international flights produce %s kg CO2 annually. Consider taking one less round trip each year - perhaps take longer but fewer trips abroad. This could save around %d kg CO2 annually.",
			international, kg(current), rec.CO2SavingsKg)
	case highDomestic:
		rec.ActionType = ActionReduceDomesticFlights
		rec.CO2SavingsKg = a.cfg.DomesticFlightSavingsKg
		rec.CostSavings = intPtr(a.cfg.DomesticFlightCost)
		rec.Text = fmt.Sprintf("Your %d domestic flights produce %s kg CO2 annually. Consider taking one less round trip each year - perhaps combine trips or explore closer destinations. This could save around %d kg CO2 annually.",
			domestic, kg(current), rec.CO2SavingsKg)
	default:
		return nil
	}
	rec.Text += fmt.Sprintf(" For comparison, the average American takes about %.1f domestic and %.1f international flights a year.",
		a.baseline.DomesticFlightsPerPerson(), a.baseline.InternationalFlightsPerPerson())
	return rec
}

func (a *LifestyleAnalyzer) driving(b breakdownView, r *survey.Responses) *LifestyleRecommendation {
	t := r.Transportation
	miles := survey.Or(t.AnnualMiles, 0)
	year := survey.Or(t.VehicleYear, 0)
	vehicleMake := survey.Lower(t.VehicleMake)
	vehicleModel := survey.Lower(t.VehicleModel)
	if year == 0 || miles <= 0 {
		return nil
	}

	current := b.vehicle(year)
	if current == 0 {
		return nil
	}
	if miles <= a.baseline.MilesPerDriver()*a.cfg.HighMileageFactor {
		return nil
	}

	mpg, ok := resolveMPG(a.vehicles, year, vehicleMake, vehicleModel, a.cfg.TruckKeywords, a.cfg.TruckMPG)
	if !ok || mpg >= a.cfg.EfficientMPG {
		return nil
	}

	savings := int(current * a.cfg.ReductionShare)
	milesToReduce := int(miles * a.cfg.ReductionShare)
	cost := int(float64(milesToReduce) / mpg * a.cfg.GasPricePerGallon)

	return &LifestyleRecommendation{
		Category:     LifestyleTransportation,
		ActionType:   ActionDriveLess,
		CurrentCO2Kg: int(current),
		CO2SavingsKg: savings,
		CostSavings:  intPtr(cost),
		Text: fmt.Sprintf("Your %d %s %s produces %s kg CO2 annually from %s miles of driving. Consider reducing your driving by %s (%s miles) through carpooling, combining errands, or working from home more often. This could save around %d kg CO2 annually.",
			year, vehicleMake, vehicleModel, kg(current), humanize.Comma(int64(miles)),
			percent(a.cfg.ReductionShare), humanize.Comma(int64(milesToReduce)), savings),
	}
}

func (a *LifestyleAnalyzer) energy(b breakdownView, r *survey.Responses) *LifestyleRecommendation {
	bill := survey.Or(r.HomeEnergy.MonthlyElectricity, 0)
	current := b.value(emissions.KindElectricity)
	if current == 0 || bill <= 0 {
		return nil
	}

	ratio, _ := a.baseline.ElectricityCostRatio(
		bill,
		r.StateCode(a.cfg.DefaultState),
		r.HouseholdSize(a.cfg.DefaultHouseholdSize),
		survey.Or(r.HomeEnergy.SquareFootage, a.cfg.DefaultSquareFeet),
	)
	if ratio <= a.cfg.HighCostRatio {
		return nil
	}

	savings := int(current * a.cfg.ReductionShare)
	monthly := int(bill * a.cfg.ReductionShare)

	return &LifestyleRecommendation{
		Category:     LifestyleHomeEnergy,
		ActionType:   ActionReduceEnergyUse,
		CurrentCO2Kg: int(current),
		CO2SavingsKg: savings,
		CostSavings:  intPtr(monthly * 12),
		Text: fmt.Sprintf("Your electricity usage produces %s kg CO2 annually, with bills %.0f%% above typical usage for your area. Consider reducing energy use by %s through adjusting your thermostat, using LED bulbs, and unplugging devices when not in use. This could save around %d kg CO2 and $%d/month.",
			kg(current), (ratio-1)*100, percent(a.cfg.ReductionShare), savings, monthly),
	}
}

func (a *LifestyleAnalyzer) diet(b breakdownView, r *survey.Responses) *LifestyleRecommendation {
	current := b.value(emissions.KindDiet)
	if current == 0 {
		return nil
	}
	dietType := survey.Lower(r.Consumption.DietType)
	if dietType == "" {
		dietType = a.cfg.DefaultDiet
	}
	savings, ok := a.cfg.DietSavingsKg[dietType]
	if !ok {
		return nil
	}

	label := "meat"
	if dietType == "heavy_meat" {
		label = "heavy meat"
	}
	return &LifestyleRecommendation{
		Category:     LifestyleConsumption,
		ActionType:   ActionReduceMeatConsumption,
		CurrentCO2Kg: int(current),
		CO2SavingsKg: savings,
		Text: fmt.Sprintf("Your %s diet produces %s kg CO2 annually. Consider eating meat just a few times per week. Try having 'Meatless Monday' or exploring plant-based proteins like beans, lentils, and tofu for some meals. This could save around %d kg CO2 annually.",
			label, kg(current), savings),
	}
}

func (a *LifestyleAnalyzer) shopping(b breakdownView, r *survey.Responses) *LifestyleRecommendation {
	current := b.value(emissions.KindShopping)
	if current == 0 {
		return nil
	}
	frequency := survey.Lower(r.Consumption.ShoppingFrequency)
	if frequency == "" {
		frequency = a.cfg.DefaultShopping
	}
	savings, ok := a.cfg.ShoppingSavingsKg[frequency]
	if !ok {
		return nil
	}

	var text string
	if frequency == "very_high" {
		text = fmt.Sprintf("Your very frequent shopping produces %s kg CO2 annually. Consider reducing to moderate shopping by waiting to bundle online purchases, buying higher-quality items that last longer, and asking yourself if you really need new items before purchasing. This could save around %d kg CO2 annually.",
			kg(current), savings)
	} else {
		text = fmt.Sprintf("Your frequent shopping produces %s kg CO2 annually. Consider reducing to moderate shopping by waiting a day before making non-essential purchases, focusing on experiences over things, and buying second-hand when possible. This could save around %d kg CO2 annually.",
			kg(current), savings)
	}
	return &LifestyleRecommendation{
		Category:     LifestyleConsumption,
		ActionType:   ActionReduceShoppingFrequency,
		CurrentCO2Kg: int(current),
		CO2SavingsKg: savings,
		Text:         text,
	}
}

// breakdownView indexes breakdown entries by kind. Rows stored without a
// kind are classified from their label.
type breakdownView map[emissions.Kind][]*models.BreakdownEntry

func newBreakdownView(entries []*models.BreakdownEntry) breakdownView {
	v := make(breakdownView)
	for _, e := range entries {
		if e == nil {
			continue
		}
		k := e.EntryKind()
		v[k] = append(v[k], e)
	}
	return v
}

// value returns the first entry's value for the kind, or 0.
func (v breakdownView) value(k emissions.Kind) float64 {
	if es := v[k]; len(es) > 0 {
		return es[0].Value
	}
	return 0
}

// vehicle returns the value of the first vehicle entry whose label names
// the model year.
func (v breakdownView) vehicle(year int) float64 {
	y := strconv.Itoa(year)
	for _, e := range v[emissions.KindVehicle] {
		if strings.Contains(e.Source, y) {
			return e.Value
		}
	}
	return 0
}

func kg(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

func percent(share float64) string {
	return fmt.Sprintf("%.0f%%", share*100)
}

func intPtr(v int) *int {
	return &v
}
