package models

import "time"

type ProgramType string

const (
	ProgramRebate         ProgramType = "rebate"
	ProgramGrant          ProgramType = "grant"
	ProgramTaxCredit      ProgramType = "tax_credit"
	ProgramTaxDeduction   ProgramType = "tax_deduction"
	ProgramLoan           ProgramType = "loan"
	ProgramTaxIncentive   ProgramType = "tax_incentive"
	ProgramOtherFinancial ProgramType = "other_financial"
)

// Program is a federal or state incentive. Federal programs have no state.
type Program struct {
	ID               int64       `db:"id"`
	Federal          bool        `db:"-"`
	State            string      `db:"state"`
	Name             string      `db:"name"`
	Summary          string      `db:"summary"`
	ProgramType      ProgramType `db:"program_type"`
	WebsiteURL       string      `db:"website_url"`
	IncentiveSummary string      `db:"incentive_summary"`
	CredibilityBoost bool        `db:"credibility_boost"`
	Technologies     []string    `db:"-"`
	CreatedAt        time.Time   `db:"created_at"`
}
