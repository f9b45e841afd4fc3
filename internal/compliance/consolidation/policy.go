// Package consolidation decides whether a batch of B2C transactions may be rolled into a
// single consolidated e-Invoice.
package consolidation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
)

// Condition caps consolidation for every MSIC code starting with Prefix. A zero cap is
// not enforced.
type Condition struct {
	Prefix          string          `json:"prefix" mapstructure:"prefix"`
	Label           string          `json:"label" mapstructure:"label"`
	MaxTransactions int             `json:"max_transactions,omitempty" mapstructure:"max_transactions"`
	MaxAmount       decimal.Decimal `json:"max_amount,omitempty" mapstructure:"max_amount"`
}

// Batch describes the transactions about to be consolidated.
type Batch struct {
	LineCount int
	Amount    decimal.Decimal
}

// Decision is the policy answer. CapExceeded distinguishes a conditional cap breach from
// an outright industry prohibition.
type Decision struct {
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason,omitempty"`
	Action      string `json:"action,omitempty"`
	CapExceeded bool   `json:"cap_exceeded,omitempty"`
}

// Policy is immutable once built.
type Policy struct {
	conditions []Condition
}

// NewPolicy orders conditions longest prefix first so the most specific one matches.
func NewPolicy(conditions ...Condition) *Policy {
	sorted := make([]Condition, 0, len(conditions))
	for _, c := range conditions {
		c.Prefix = strings.TrimSpace(c.Prefix)
		if c.Prefix == "" {
			continue
		}
		sorted = append(sorted, c)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &Policy{conditions: sorted}
}

// DefaultPolicy carries the food & beverage and retail caps.
func DefaultPolicy() *Policy {
	return NewPolicy(
		Condition{Prefix: "56", Label: "food and beverage service", MaxTransactions: 200},
		Condition{Prefix: "47", Label: "retail trade", MaxAmount: decimal.NewFromInt(50000)},
	)
}

// Conditions returns a copy in match order.
func (p *Policy) Conditions() []Condition {
	out := make([]Condition, len(p.conditions))
	copy(out, p.conditions)
	return out
}

// ConditionFor returns the most specific condition whose prefix matches code.
func (p *Policy) ConditionFor(code string) (Condition, bool) {
	code = strings.TrimSpace(code)
	for _, c := range p.conditions {
		if strings.HasPrefix(code, c.Prefix) {
			return c, true
		}
	}
	return Condition{}, false
}

// Validate checks a batch of lineCount transactions with no amount cap enforcement.
func (p *Policy) Validate(code string, lineCount int) Decision {
	return p.ValidateBatch(code, Batch{LineCount: lineCount})
}

// ValidateBatch checks the prohibited list first, then the matching conditional cap.
func (p *Policy) ValidateBatch(code string, batch Batch) Decision {
	code = strings.TrimSpace(code)
	if group := industrydomain.ProhibitedGroup(code); group != "" {
		return Decision{
			Allowed: false,
			Reason:  fmt.Sprintf("Industry code %s (%s) cannot use B2C consolidation", code, group),
			Action:  "Issue an individual e-Invoice for each transaction",
		}
	}

	cond, ok := p.ConditionFor(code)
	if !ok {
		return Decision{Allowed: true}
	}

	if cond.MaxTransactions > 0 && batch.LineCount > cond.MaxTransactions {
		return Decision{
			Allowed:     false,
			Reason:      fmt.Sprintf("%d transactions exceed the %s limit of %d per consolidated invoice", batch.LineCount, cond.Label, cond.MaxTransactions),
			Action:      fmt.Sprintf("Split the batch into consolidated invoices of at most %d transactions", cond.MaxTransactions),
			CapExceeded: true,
		}
	}
	if cond.MaxAmount.IsPositive() && batch.Amount.GreaterThan(cond.MaxAmount) {
		return Decision{
			Allowed:     false,
			Reason:      fmt.Sprintf("RM%s exceeds the %s limit of RM%s per consolidated invoice", batch.Amount.StringFixed(2), cond.Label, cond.MaxAmount.StringFixed(2)),
			Action:      fmt.Sprintf("Split the batch so each consolidated invoice stays within RM%s", cond.MaxAmount.StringFixed(2)),
			CapExceeded: true,
		}
	}
	return Decision{Allowed: true}
}
