package emissions

import "strings"

// Kind tags a breakdown entry with the emission source it measures so that
// consumers do not have to parse the display label.
type Kind string

const (
	KindElectricity          Kind = "electricity"
	KindHeating              Kind = "heating"
	KindVehicle              Kind = "vehicle"
	KindDomesticFlights      Kind = "domestic_flights"
	KindInternationalFlights Kind = "international_flights"
	KindDiet                 Kind = "diet"
	KindShopping             Kind = "shopping"
)

// Entry is one itemized line of a calculation.
type Entry struct {
	Kind   Kind    `json:"kind"`
	Source string  `json:"source"`
	Value  float64 `json:"value"`
	Units  string  `json:"units"`
	Method string  `json:"method"`
}

// Result is the output of one domain calculation.
type Result struct {
	TotalKg float64 `json:"total_kg"`
	Entries []Entry `json:"entries"`
}

const unitsKgCO2 = "kg CO2"

// KindFromLabel recovers the Kind of an entry persisted without one, using
// the labels this package emits. It returns "" for unknown labels.
func KindFromLabel(label string) Kind {
	switch {
	case label == "Electricity":
		return KindElectricity
	case strings.HasSuffix(label, "Heating"), label == "Heating Oil":
		return KindHeating
	case strings.HasPrefix(label, "Vehicle ("):
		return KindVehicle
	case label == "Domestic Flights":
		return KindDomesticFlights
	case label == "International Flights":
		return KindInternationalFlights
	case strings.HasPrefix(label, "Diet ("):
		return KindDiet
	case strings.Contains(strings.ToLower(label), "consumer goods"):
		return KindShopping
	}
	return ""
}
