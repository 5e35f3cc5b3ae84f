package emissions

import "strings"

// Fuel is the normalized heating fuel of a home.
type Fuel string

const (
	FuelNone       Fuel = ""
	FuelNaturalGas Fuel = "natural_gas"
	FuelOil        Fuel = "oil"
	FuelPropane    Fuel = "propane"
	FuelElectric   Fuel = "electric"
	FuelHeatPump   Fuel = "heat_pump"
)

// HeatingFuel classifies a free-form heating type answer. Order matters:
// "heat pump" before "electric", "propane" before the generic "gas".
func HeatingFuel(heatingType string) Fuel {
	s := strings.ToLower(strings.TrimSpace(heatingType))
	switch {
	case s == "":
		return FuelNone
	case strings.Contains(s, "heat pump"), strings.Contains(s, "heat_pump"):
		return FuelHeatPump
	case strings.Contains(s, "electric"):
		return FuelElectric
	case strings.Contains(s, "oil"):
		return FuelOil
	case strings.Contains(s, "propane"):
		return FuelPropane
	case strings.Contains(s, "gas"):
		return FuelNaturalGas
	}
	return FuelNone
}

// IsCombustion reports whether the fuel is burned on site.
func (f Fuel) IsCombustion() bool {
	return f == FuelNaturalGas || f == FuelOil || f == FuelPropane
}
