package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/myinvois/internal/compliance/consolidation"
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	"github.com/smallbiznis/myinvois/internal/tin"
)

type Service interface {
	ValidateTIN(ctx context.Context, value string) tin.Result
	LookupIndustry(ctx context.Context, code string) (*industrydomain.IndustryCode, error)
	SearchIndustries(ctx context.Context, query string) []industrydomain.IndustryCode
	ListIndustries(ctx context.Context, filter IndustryFilter) []industrydomain.IndustryCode
	CheckConsolidation(ctx context.Context, req ConsolidationRequest) (*ConsolidationResponse, error)
	Evaluate(ctx context.Context, req EvaluateRequest) (*Report, error)
}

// IndustryFilter narrows the industry listing. Empty fields match everything.
type IndustryFilter struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	Section  string `form:"section"`
}

// EvaluateRequest carries one invoice with its lines and parties. Buyer may be nil.
type EvaluateRequest struct {
	Invoice      *Invoice      `json:"invoice"`
	Lines        []InvoiceLine `json:"lines"`
	Organization Organization  `json:"organization"`
	Buyer        *Buyer        `json:"buyer,omitempty"`
}

// Report is the outcome of one evaluation pass. RegistryVersion and RuleCount pin the
// score denominator so a stored score can be reproduced.
type Report struct {
	ID              string             `json:"id"`
	InvoiceNumber   string             `json:"invoice_number"`
	RegistryVersion string             `json:"registry_version"`
	RuleCount       int                `json:"rule_count"`
	Findings        []ValidationResult `json:"findings"`
	Score           int                `json:"score"`
	Errors          int                `json:"errors"`
	Warnings        int                `json:"warnings"`
	Infos           int                `json:"infos"`
	Faults          []EvaluationFault  `json:"faults,omitempty"`
	EvaluatedAt     time.Time          `json:"evaluated_at"`
}

// Compliant reports whether no error-severity finding was emitted.
func (r *Report) Compliant() bool {
	return r.Errors == 0
}

type ConsolidationRequest struct {
	IndustryCode string `json:"industry_code"`
	LineCount    int    `json:"line_count"`
	Amount       Amount `json:"amount"`
}

// ConsolidationResponse combines the industry table eligibility with the batch policy
// decision. Allowed is true only when both agree.
type ConsolidationResponse struct {
	IndustryCode string                       `json:"industry_code"`
	Allowed      bool                         `json:"allowed"`
	Eligibility  industrydomain.Eligibility   `json:"eligibility"`
	Policy       consolidation.Decision       `json:"policy"`
	Industry     *industrydomain.IndustryCode `json:"industry,omitempty"`
}
