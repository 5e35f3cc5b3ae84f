package emissions

import "strings"

// Factor categories understood by the calculator.
const (
	FactorElectricity = "electricity"
	FactorNaturalGas  = "natural_gas"
	FactorHeatingOil  = "heating_oil"
	FactorPropane     = "propane"
	FactorGasoline    = "gasoline"
	FactorDiesel      = "diesel"

	// RegionUS is the national fallback region.
	RegionUS = "US"
)

type Factor struct {
	Category   string  `yaml:"category"`
	Region     string  `yaml:"region"`
	CO2PerUnit float64 `yaml:"co2_per_unit"`
	Unit       string  `yaml:"unit"`
	Source     string  `yaml:"source"`
}

type Rate struct {
	State              string  `yaml:"state"`
	AvgRatePerKWh      float64 `yaml:"rate"`
	GridEmissionFactor float64 `yaml:"factor"`
}

type Vehicle struct {
	Year        int     `yaml:"year"`
	Make        string  `yaml:"make"`
	Model       string  `yaml:"model"`
	MPGCombined float64 `yaml:"mpg_combined"`
	VehicleType string  `yaml:"vehicle_type"`
}

// Reference is an immutable snapshot of the lookup tables. It is built once
// at startup and shared by every request without locking.
type Reference struct {
	factors  map[string]float64
	rates    map[string]float64
	vehicles []Vehicle
}

func NewReference(factors []Factor, rates []Rate, vehicles []Vehicle) *Reference {
	ref := &Reference{
		factors:  make(map[string]float64, len(factors)),
		rates:    make(map[string]float64, len(rates)),
		vehicles: append([]Vehicle(nil), vehicles...),
	}
	for _, f := range factors {
		key := factorKey(f.Category, f.Region)
		if _, dup := ref.factors[key]; !dup {
			ref.factors[key] = f.CO2PerUnit
		}
	}
	for _, r := range rates {
		ref.rates[strings.ToUpper(r.State)] = r.AvgRatePerKWh
	}
	return ref
}

// Factor returns the CO2 per unit for a category in a region, falling back to
// the national figure.
func (r *Reference) Factor(category, region string) (float64, bool) {
	if v, ok := r.factors[factorKey(category, region)]; ok {
		return v, true
	}
	v, ok := r.factors[factorKey(category, RegionUS)]
	return v, ok
}

// ElectricityRate returns the state's average $/kWh.
func (r *Reference) ElectricityRate(state string) (float64, bool) {
	v, ok := r.rates[strings.ToUpper(state)]
	return v, ok
}

// VehicleMPG finds the first vehicle of the given year whose make and model
// contain the requested make and model, case-insensitively.
func (r *Reference) VehicleMPG(year int, vehicleMake, vehicleModel string) (float64, bool) {
	wantMake := strings.ToLower(strings.TrimSpace(vehicleMake))
	wantModel := strings.ToLower(strings.TrimSpace(vehicleModel))
	for _, v := range r.vehicles {
		if v.Year != year {
			continue
		}
		if strings.Contains(strings.ToLower(v.Make), wantMake) && strings.Contains(strings.ToLower(v.Model), wantModel) {
			return v.MPGCombined, true
		}
	}
	return 0, false
}

func factorKey(category, region string) string {
	return strings.ToLower(category) + "|" + strings.ToUpper(region)
}
