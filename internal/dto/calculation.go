package dto

import (
	"time"

	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/models"
	"carbon-footprint/internal/service"
)

type CalculateResponse struct {
	Success    bool                `json:"success"`
	Footprint  emissions.Footprint `json:"footprint"`
	Breakdowns service.Breakdowns  `json:"breakdowns"`
}

type CalculationResponse struct {
	SessionID            string  `json:"session_id"`
	CalculationDate      string  `json:"calculation_date"`
	TotalAnnualCO2Kg     float64 `json:"total_annual_co2_kg"`
	HomeEmissions        float64 `json:"home_emissions"`
	TransportEmissions   float64 `json:"transport_emissions"`
	ConsumptionEmissions float64 `json:"consumption_emissions"`
	TotalTonsCO2         float64 `json:"total_tons_co2"`
}

func NewCalculateResponse(res *service.CalculationResult) CalculateResponse {
	return CalculateResponse{
		Success:    true,
		Footprint:  res.Footprint,
		Breakdowns: res.Breakdowns,
	}
}

func NewCalculationResponse(c *models.Calculation) CalculationResponse {
	return CalculationResponse{
		SessionID:            c.SessionID.String(),
		CalculationDate:      c.CalculationDate.Format(time.RFC3339),
		TotalAnnualCO2Kg:     c.TotalKg,
		HomeEmissions:        c.HomeKg,
		TransportEmissions:   c.TransportKg,
		ConsumptionEmissions: c.ConsumptionKg,
		TotalTonsCO2:         c.TotalKg / 1000,
	}
}
