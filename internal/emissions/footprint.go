package emissions

// USAverageTons is the average annual per-person footprint used for comparison.
const USAverageTons = 16.0

type Shares struct {
	HomePercent        float64 `json:"home_percent"`
	TransportPercent   float64 `json:"transport_percent"`
	ConsumptionPercent float64 `json:"consumption_percent"`
}

// Footprint summarizes a full calculation against the national average.
type Footprint struct {
	TotalKg               float64 `json:"total_kg_co2"`
	TotalTons             float64 `json:"total_tons_co2"`
	HomeKg                float64 `json:"home_emissions"`
	TransportKg           float64 `json:"transport_emissions"`
	ConsumptionKg         float64 `json:"consumption_emissions"`
	USAverageTons         float64 `json:"us_average_tons"`
	PercentageOfUSAverage float64 `json:"percentage_of_us_average"`
	Breakdown             Shares  `json:"emissions_breakdown"`
}

func NewFootprint(home, transport, consumption float64) Footprint {
	total := home + transport + consumption
	fp := Footprint{
		TotalKg:               total,
		TotalTons:             total / 1000,
		HomeKg:                home,
		TransportKg:           transport,
		ConsumptionKg:         consumption,
		USAverageTons:         USAverageTons,
		PercentageOfUSAverage: total / 1000 / USAverageTons * 100,
	}
	if total > 0 {
		fp.Breakdown = Shares{
			HomePercent:        home / total * 100,
			TransportPercent:   transport / total * 100,
			ConsumptionPercent: consumption / total * 100,
		}
	}
	return fp
}
