// Package domain holds the MSIC industry classification reference data used by the
// compliance engine.
package domain

import "strings"

// Categories referenced by consolidation policy. Other categories are free-form.
const (
	CategoryFoodAndBeverage = "Food & Beverage"
	CategoryRetailTrade     = "Retail Trade"
)

// IndustryCode is one MSIC 2008 entry.
type IndustryCode struct {
	Code                   string  `json:"code" mapstructure:"code"`
	Description            string  `json:"description" mapstructure:"description"`
	Category               string  `json:"category" mapstructure:"category"`
	Section                string  `json:"section" mapstructure:"section"`
	AllowsB2CConsolidation bool    `json:"allows_b2c_consolidation" mapstructure:"allows_b2c_consolidation"`
	SSTApplicable          bool    `json:"sst_applicable" mapstructure:"sst_applicable"`
	Notes                  *string `json:"notes,omitempty" mapstructure:"notes"`
}

// Validate checks the entry is usable as a table key.
func (c IndustryCode) Validate() error {
	if strings.TrimSpace(c.Code) == "" {
		return ErrInvalidIndustryCode
	}
	section := strings.TrimSpace(c.Section)
	if len(section) != 1 || section[0] < 'A' || section[0] > 'U' {
		return ErrInvalidSection
	}
	return nil
}

// Eligibility is the answer to "may this industry issue consolidated B2C e-Invoices?".
type Eligibility struct {
	Allowed      bool     `json:"allowed"`
	Reason       string   `json:"reason,omitempty"`
	Restrictions []string `json:"restrictions,omitempty"`
}

func strPtr(v string) *string { return &v }
