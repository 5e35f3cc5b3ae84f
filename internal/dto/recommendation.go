package dto

import (
	"carbon-footprint/internal/models"
	"carbon-footprint/internal/service"
)

type ProgramResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	ProgramType      string  `json:"program_type"`
	Summary          string  `json:"summary"`
	WebsiteURL       string  `json:"website_url"`
	IsFederal        bool    `json:"is_federal"`
	State            *string `json:"state"`
	CredibilityBoost bool    `json:"credibility_boost"`
	IncentiveSummary string  `json:"incentive_summary"`
}

type RecommendationResponse struct {
	Text              string           `json:"recommendation_text"`
	Category          string           `json:"category"`
	ActionType        string           `json:"action_type,omitempty"`
	PriorityScore     int              `json:"priority_score"`
	CO2SavingsKg      int              `json:"co2_savings_kg"`
	CostSavings       *int             `json:"cost_savings,omitempty"`
	GovernmentProgram *ProgramResponse `json:"government_program"`
}

type RecommendationGroups struct {
	TechnologyUpgrades   []RecommendationResponse `json:"technology_upgrades"`
	LifestyleAdjustments []RecommendationResponse `json:"lifestyle_adjustments"`
}

type RecommendationsResponse struct {
	Recommendations RecommendationGroups `json:"recommendations"`
}

// NewRecommendationsResponse flattens a recommendation set. Lifestyle
// entries are prioritized by their current emissions.
func NewRecommendationsResponse(set *service.RecommendationSet) RecommendationsResponse {
	groups := RecommendationGroups{
		TechnologyUpgrades:   make([]RecommendationResponse, 0, len(set.Technology)),
		LifestyleAdjustments: make([]RecommendationResponse, 0, len(set.Lifestyle)),
	}
	for _, rec := range set.Technology {
		groups.TechnologyUpgrades = append(groups.TechnologyUpgrades, RecommendationResponse{
			Text:              rec.Text,
			Category:          rec.Category,
			PriorityScore:     rec.PriorityScore,
			CO2SavingsKg:      rec.CO2SavingsKg,
			GovernmentProgram: newProgramResponse(rec.Program),
		})
	}
	for _, rec := range set.Lifestyle {
		groups.LifestyleAdjustments = append(groups.LifestyleAdjustments, RecommendationResponse{
			Text:          rec.Text,
			Category:      string(rec.Category),
			ActionType:    string(rec.ActionType),
			PriorityScore: rec.CurrentCO2Kg,
			CO2SavingsKg:  rec.CO2SavingsKg,
			CostSavings:   rec.CostSavings,
		})
	}
	return RecommendationsResponse{Recommendations: groups}
}

func newProgramResponse(p *models.Program) *ProgramResponse {
	if p == nil {
		return nil
	}
	resp := &ProgramResponse{
		ID:               p.ID,
		Name:             p.Name,
		ProgramType:      string(p.ProgramType),
		Summary:          p.Summary,
		WebsiteURL:       p.WebsiteURL,
		IsFederal:        p.Federal,
		CredibilityBoost: p.CredibilityBoost,
		IncentiveSummary: p.IncentiveSummary,
	}
	if !p.Federal {
		state := p.State
		resp.State = &state
	}
	return resp
}
