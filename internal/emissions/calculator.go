// Package emissions turns survey quantities into annual kg CO2 using regional
// factors from a Reference snapshot.
package emissions

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidInput   = errors.New("invalid emissions input")
	ErrFactorNotFound = errors.New("emission factor not found")
)

const (
	defaultKWhRate      = 0.13 // $/kWh when the state has no rate
	naturalGasPerTherm  = 1.20 // $/therm
	heatingOilPerGallon = 3.50 // $/gallon
	propanePerGallon    = 2.80 // $/gallon
	defaultVehicleMPG   = 25.0

	DomesticFlightKg      = 400.0  // per round trip
	InternationalFlightKg = 1500.0 // per round trip
)

var dietFactors = map[string]float64{
	"heavy_meat":    3300,
	"moderate_meat": 2500,
	"light_meat":    1900,
	"vegetarian":    1600,
	"vegan":         1200,
}

var shoppingFactors = map[string]float64{
	"low":       500,
	"moderate":  1000,
	"high":      2000,
	"very_high": 3000,
}

type HomeInput struct {
	SquareFeet    float64
	ElectricBill  float64 // monthly household bill, USD
	HeatingType   string
	HeatingBill   float64 // monthly household bill, USD
	State         string
	HouseholdSize int
}

type VehicleInput struct {
	Year  int
	Make  string
	Model string
}

type TransportInput struct {
	Vehicle              *VehicleInput
	AnnualMiles          float64
	DomesticFlights      int
	InternationalFlights int
}

type ConsumptionInput struct {
	DietType          string
	ShoppingFrequency string
}

// Calculator computes per-domain emissions. It is safe for concurrent use.
type Calculator struct {
	ref *Reference
}

func NewCalculator(ref *Reference) *Calculator {
	return &Calculator{ref: ref}
}

// Reference exposes the snapshot the calculator reads.
func (c *Calculator) Reference() *Reference {
	return c.ref
}

// Home computes electricity and heating emissions for one person: household
// bills are split evenly across the household.
func (c *Calculator) Home(in HomeInput) (Result, error) {
	if in.HouseholdSize <= 0 {
		return Result{}, fmt.Errorf("%w: household size %d", ErrInvalidInput, in.HouseholdSize)
	}
	if in.ElectricBill < 0 || in.HeatingBill < 0 {
		return Result{}, fmt.Errorf("%w: negative bill", ErrInvalidInput)
	}

	elecFactor, ok := c.ref.Factor(FactorElectricity, in.State)
	if !ok {
		return Result{}, fmt.Errorf("%w: electricity for %s", ErrFactorNotFound, in.State)
	}
	kwhRate, ok := c.ref.ElectricityRate(in.State)
	if !ok || kwhRate <= 0 {
		kwhRate = defaultKWhRate
	}

	household := float64(in.HouseholdSize)
	var res Result

	personalElectric := in.ElectricBill / household
	annualKWh := personalElectric / kwhRate * 12
	electricity := annualKWh * elecFactor
	res.add(Entry{
		Kind:   KindElectricity,
		Source: "Electricity",
		Value:  electricity,
		Units:  unitsKgCO2,
		Method: fmt.Sprintf("$%g/month ÷ %d people = $%.2f/month → %.1f kWh/year × %g kg CO2/kWh",
			in.ElectricBill, in.HouseholdSize, personalElectric, annualKWh, elecFactor),
	})

	personalHeating := in.HeatingBill / household
	switch HeatingFuel(in.HeatingType) {
	case FuelNaturalGas:
		factor, ok := c.ref.Factor(FactorNaturalGas, in.State)
		if !ok {
			return Result{}, fmt.Errorf("%w: natural gas", ErrFactorNotFound)
		}
		therms := personalHeating / naturalGasPerTherm * 12
		res.add(Entry{
			Kind:   KindHeating,
			Source: "Natural Gas Heating",
			Value:  therms * factor,
			Units:  unitsKgCO2,
			Method: fmt.Sprintf("$%g/month ÷ %d people = $%.2f/month → %.1f therms/year × %g kg CO2/therm",
				in.HeatingBill, in.HouseholdSize, personalHeating, therms, factor),
		})
	case FuelOil:
		factor, ok := c.ref.Factor(FactorHeatingOil, RegionUS)
		if !ok {
			return Result{}, fmt.Errorf("%w: heating oil", ErrFactorNotFound)
		}
		gallons := personalHeating / heatingOilPerGallon * 12
		res.add(Entry{
			Kind:   KindHeating,
			Source: "Heating Oil",
			Value:  gallons * factor,
			Units:  unitsKgCO2,
			Method: fmt.Sprintf("%.1f gallons/year × %g kg CO2/gallon", gallons, factor),
		})
	case FuelPropane:
		factor, ok := c.ref.Factor(FactorPropane, RegionUS)
		if !ok {
			return Result{}, fmt.Errorf("%w: propane", ErrFactorNotFound)
		}
		gallons := personalHeating / propanePerGallon * 12
		res.add(Entry{
			Kind:   KindHeating,
			Source: "Propane Heating",
			Value:  gallons * factor,
			Units:  unitsKgCO2,
			Method: fmt.Sprintf("%.1f gallons/year × %g kg CO2/gallon", gallons, factor),
		})
	case FuelElectric, FuelHeatPump:
		heatingKWh := personalHeating / kwhRate * 12
		label := "Electric Heating"
		if HeatingFuel(in.HeatingType) == FuelHeatPump {
			label = "Heat Pump Heating"
		}
		res.add(Entry{
			Kind:   KindHeating,
			Source: label,
			Value:  heatingKWh * elecFactor,
			Units:  unitsKgCO2,
			Method: fmt.Sprintf("%.1f kWh/year × %g kg CO2/kWh", heatingKWh, elecFactor),
		})
	}

	return res, nil
}

// Transport computes vehicle and flight emissions. Vehicles missing from the
// reference table are assumed to get 25 MPG.
func (c *Calculator) Transport(in TransportInput) (Result, error) {
	if in.AnnualMiles < 0 || in.DomesticFlights < 0 || in.InternationalFlights < 0 {
		return Result{}, fmt.Errorf("%w: negative transport quantity", ErrInvalidInput)
	}

	var res Result

	if in.Vehicle != nil && in.AnnualMiles > 0 {
		gasoline, ok := c.ref.Factor(FactorGasoline, RegionUS)
		if !ok {
			return Result{}, fmt.Errorf("%w: gasoline", ErrFactorNotFound)
		}
		mpg, found := c.ref.VehicleMPG(in.Vehicle.Year, in.Vehicle.Make, in.Vehicle.Model)
		if !found || mpg <= 0 {
			mpg = defaultVehicleMPG
		}
		gallons := in.AnnualMiles / mpg
		res.add(Entry{
			Kind:   KindVehicle,
			Source: vehicleLabel(in.Vehicle),
			Value:  gallons * gasoline,
			Units:  unitsKgCO2,
			Method: fmt.Sprintf("%.0f miles ÷ %.1f MPG × %g kg CO2/gallon", in.AnnualMiles, mpg, gasoline),
		})
	}

	if in.DomesticFlights > 0 {
		res.add(Entry{
			Kind:   KindDomesticFlights,
			Source: "Domestic Flights",
			Value:  float64(in.DomesticFlights) * DomesticFlightKg,
			Units:  unitsKgCO2,
			Method: fmt.Sprintf("%d flights × %g kg CO2/flight", in.DomesticFlights, DomesticFlightKg),
		})
	}
	if in.InternationalFlights > 0 {
		res.add(Entry{
			Kind:   KindInternationalFlights,
			Source: "International Flights",
			Value:  float64(in.InternationalFlights) * InternationalFlightKg,
			Units:  unitsKgCO2,
			Method: fmt.Sprintf("%d flights × %g kg CO2/flight", in.InternationalFlights, InternationalFlightKg),
		})
	}

	return res, nil
}

// Consumption computes per-person diet and shopping emissions. Unknown tiers
// are treated as the moderate tier.
func (c *Calculator) Consumption(in ConsumptionInput) (Result, error) {
	var res Result

	dietKey := normalizeTier(in.DietType)
	if _, ok := dietFactors[dietKey]; !ok {
		dietKey = "moderate_meat"
	}
	diet := dietFactors[dietKey]
	res.add(Entry{
		Kind:   KindDiet,
		Source: fmt.Sprintf("Diet (%s)", tierLabel(in.DietType)),
		Value:  diet,
		Units:  unitsKgCO2,
		Method: fmt.Sprintf("%g kg CO2/person/year (individual consumption)", diet),
	})

	shoppingKey := normalizeTier(in.ShoppingFrequency)
	if _, ok := shoppingFactors[shoppingKey]; !ok {
		shoppingKey = "moderate"
	}
	shopping := shoppingFactors[shoppingKey]
	res.add(Entry{
		Kind:   KindShopping,
		Source: fmt.Sprintf("Consumer goods (%s)", tierLabel(in.ShoppingFrequency)),
		Value:  shopping,
		Units:  unitsKgCO2,
		Method: fmt.Sprintf("%g kg CO2/person/year (individual consumption)", shopping),
	})

	return res, nil
}

func vehicleLabel(v *VehicleInput) string {
	return fmt.Sprintf("Vehicle (%d %s %s)", v.Year, titleCase(v.Make), titleCase(v.Model))
}

// tierLabel title-cases a tier key for display: "heavy_meat" becomes "Heavy Meat".
func tierLabel(tier string) string {
	return titleCase(strings.ReplaceAll(tier, "_", " "))
}

// titleCase builds a Caser per call since Casers carry state.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

func (r *Result) add(e Entry) {
	r.Entries = append(r.Entries, e)
	r.TotalKg += e.Value
}

func normalizeTier(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}
