// Package seed reads the reference data file used to populate emission
// factors, electricity rates, vehicles and incentive programs.
package seed

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"carbon-footprint/internal/emissions"
	"carbon-footprint/internal/models"

	"gopkg.in/yaml.v3"
)

var ErrInvalidData = errors.New("invalid reference data")

type Program struct {
	Name             string   `yaml:"name"`
	State            string   `yaml:"state"`
	ProgramType      string   `yaml:"program_type"`
	Summary          string   `yaml:"summary"`
	WebsiteURL       string   `yaml:"website_url"`
	IncentiveSummary string   `yaml:"incentive_summary"`
	CredibilityBoost bool     `yaml:"credibility_boost"`
	Technologies     []string `yaml:"technologies"`
}

// Data is the parsed reference file. Programs without a state are federal.
type Data struct {
	Factors  []emissions.Factor  `yaml:"factors"`
	Rates    []emissions.Rate    `yaml:"rates"`
	Vehicles []emissions.Vehicle `yaml:"vehicles"`
	Programs []Program           `yaml:"programs"`
}

func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Data) validate() error {
	for _, f := range d.Factors {
		if f.Category == "" || f.Region == "" || f.CO2PerUnit < 0 {
			return fmt.Errorf("%w: factor %q/%q", ErrInvalidData, f.Category, f.Region)
		}
	}
	for _, r := range d.Rates {
		if len(r.State) != 2 || r.AvgRatePerKWh <= 0 {
			return fmt.Errorf("%w: rate for %q", ErrInvalidData, r.State)
		}
	}
	for _, v := range d.Vehicles {
		if v.Year <= 0 || v.Make == "" || v.Model == "" || v.MPGCombined <= 0 {
			return fmt.Errorf("%w: vehicle %d %s %s", ErrInvalidData, v.Year, v.Make, v.Model)
		}
	}
	for _, p := range d.Programs {
		if p.Name == "" || len(p.Technologies) == 0 {
			return fmt.Errorf("%w: program %q needs a name and technologies", ErrInvalidData, p.Name)
		}
		if p.State != "" && len(p.State) != 2 {
			return fmt.Errorf("%w: program %q state %q", ErrInvalidData, p.Name, p.State)
		}
	}
	return nil
}

// Reference builds the in-memory lookup tables from the file.
func (d *Data) Reference() *emissions.Reference {
	return emissions.NewReference(d.Factors, d.Rates, d.Vehicles)
}

// ProgramModels converts the programs for storage.
func (d *Data) ProgramModels() []*models.Program {
	out := make([]*models.Program, 0, len(d.Programs))
	for _, p := range d.Programs {
		programType := models.ProgramType(strings.ToLower(p.ProgramType))
		if programType == "" {
			programType = models.ProgramOtherFinancial
		}
		out = append(out, &models.Program{
			Federal:          p.State == "",
			State:            strings.ToUpper(p.State),
			Name:             p.Name,
			Summary:          p.Summary,
			ProgramType:      programType,
			WebsiteURL:       p.WebsiteURL,
			IncentiveSummary: p.IncentiveSummary,
			CredibilityBoost: p.CredibilityBoost,
			Technologies:     p.Technologies,
		})
	}
	return out
}
