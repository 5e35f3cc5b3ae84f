// Package baseline holds the per-capita reference values used as the
// denominator when deciding whether a household's usage is an outlier.
//
// A Table is immutable once built: no accessor exposes its maps and there
// are no setters, so one instance is shared across requests without locks.
package baseline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table is the immutable baseline reference.
type Table struct {
	electricityPerPerson          float64
	milesPerDriver                float64
	sqftPerPerson                 float64
	domesticFlightsPerPerson      float64
	internationalFlightsPerPerson float64

	electricityByState     map[string]float64
	gasHeatingByState      map[string]float64
	electricHeatingByState map[string]float64

	oilHeating      float64
	propaneHeating  float64
	heatPumpHeating float64
}

// document is the YAML shape accepted by Load. Zero values keep the default.
type document struct {
	ElectricityMonthlyPerPerson   float64            `yaml:"electricity_monthly_per_person"`
	AnnualMilesPerDriver          float64            `yaml:"annual_miles_per_driver"`
	SquareFeetPerPerson           float64            `yaml:"square_feet_per_person"`
	DomesticFlightsPerPerson      float64            `yaml:"domestic_flights_per_person"`
	InternationalFlightsPerPerson float64            `yaml:"international_flights_per_person"`
	ElectricityMonthlyByState     map[string]float64 `yaml:"electricity_monthly_by_state"`
	Heating                       struct {
		Gas      map[string]float64 `yaml:"gas"`
		Electric map[string]float64 `yaml:"electric"`
		Oil      float64            `yaml:"oil"`
		Propane  float64            `yaml:"propane"`
		HeatPump float64            `yaml:"heat_pump"`
	} `yaml:"heating_monthly_by_state"`
}

// Default returns the built-in 2024 table. Household figures are divided by
// 2.6 people so that every value is per person.
func Default() *Table {
	return &Table{
		electricityPerPerson:          58,
		milesPerDriver:                13482,
		sqftPerPerson:                 850,
		domesticFlightsPerPerson:      1.2,
		internationalFlightsPerPerson: 0.3,
		electricityByState:            copyMap(electricityByState),
		gasHeatingByState:             copyMap(gasHeatingByState),
		electricHeatingByState:        copyMap(electricHeatingByState),
		oilHeating:                    104,
		propaneHeating:                83,
		heatPumpHeating:               75,
	}
}

// Load reads a YAML override file and layers it over Default. Only the keys
// present in the file replace default values; state maps are merged.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file read.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse baseline file: %w", err)
	}

	t := Default()
	setIfPositive(&t.electricityPerPerson, doc.ElectricityMonthlyPerPerson)
	setIfPositive(&t.milesPerDriver, doc.AnnualMilesPerDriver)
	setIfPositive(&t.sqftPerPerson, doc.SquareFeetPerPerson)
	setIfPositive(&t.domesticFlightsPerPerson, doc.DomesticFlightsPerPerson)
	setIfPositive(&t.internationalFlightsPerPerson, doc.InternationalFlightsPerPerson)
	setIfPositive(&t.oilHeating, doc.Heating.Oil)
	setIfPositive(&t.propaneHeating, doc.Heating.Propane)
	setIfPositive(&t.heatPumpHeating, doc.Heating.HeatPump)

	mergeStates(t.electricityByState, doc.ElectricityMonthlyByState)
	mergeStates(t.gasHeatingByState, doc.Heating.Gas)
	mergeStates(t.electricHeatingByState, doc.Heating.Electric)

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) validate() error {
	for state, v := range t.electricityByState {
		if v <= 0 {
			return fmt.Errorf("baseline: electricity for %s must be positive", state)
		}
	}
	return nil
}

// MilesPerDriver is the national annual mileage per licensed driver.
func (t *Table) MilesPerDriver() float64 { return t.milesPerDriver }

// DomesticFlightsPerPerson and InternationalFlightsPerPerson are national
// annual round trips per person.
func (t *Table) DomesticFlightsPerPerson() float64      { return t.domesticFlightsPerPerson }
func (t *Table) InternationalFlightsPerPerson() float64 { return t.internationalFlightsPerPerson }

// StateElectricityPerPerson returns the state's monthly electricity cost per
// person, or the national figure for unknown states.
func (t *Table) StateElectricityPerPerson(state string) float64 {
	if v, ok := t.electricityByState[strings.ToUpper(state)]; ok {
		return v
	}
	return t.electricityPerPerson
}

// HeatingPerPerson returns the monthly heating cost per person for a fuel
// type in a state. ok is false when the table has no figure.
func (t *Table) HeatingPerPerson(fuel, state string) (float64, bool) {
	state = strings.ToUpper(state)
	switch normalizeFuel(fuel) {
	case "gas":
		v, ok := t.gasHeatingByState[state]
		return v, ok
	case "electric":
		v, ok := t.electricHeatingByState[state]
		return v, ok
	case "oil":
		return t.oilHeating, true
	case "propane":
		return t.propaneHeating, true
	case "heat_pump":
		return t.heatPumpHeating, true
	}
	return 0, false
}

// ExpectedElectricityCost is the monthly household bill the table predicts:
// the state per-person figure times household size, scaled by living area per
// person against the national average when squareFeet is positive.
func (t *Table) ExpectedElectricityCost(state string, householdSize int, squareFeet float64) float64 {
	if householdSize <= 0 {
		householdSize = 1
	}
	expected := t.StateElectricityPerPerson(state) * float64(householdSize)
	if squareFeet > 0 && t.sqftPerPerson > 0 {
		perPerson := squareFeet / float64(householdSize)
		expected *= perPerson / t.sqftPerPerson
	}
	return expected
}

// ElectricityCostRatio is bill / ExpectedElectricityCost, or 1 when the
// expectation is not positive.
func (t *Table) ElectricityCostRatio(bill float64, state string, householdSize int, squareFeet float64) (ratio, expected float64) {
	expected = t.ExpectedElectricityCost(state, householdSize, squareFeet)
	if expected <= 0 {
		return 1, expected
	}
	return bill / expected, expected
}

func normalizeFuel(fuel string) string {
	f := strings.ToLower(strings.TrimSpace(fuel))
	f = strings.ReplaceAll(f, " ", "_")
	switch f {
	case "natural_gas":
		return "gas"
	case "heating_oil":
		return "oil"
	}
	return f
}

func setIfPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func mergeStates(dst, src map[string]float64) {
	for k, v := range src {
		dst[strings.ToUpper(k)] = v
	}
}

func copyMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
