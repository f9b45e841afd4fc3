// Package rules holds the versioned LHDN rule registry, the evaluator that runs it and
// the compliance score.
package rules

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/myinvois/internal/compliance/consolidation"
	"github.com/smallbiznis/myinvois/internal/compliance/domain"
)

// Version identifies the canonical rule set. Bump it whenever a rule is added, since the
// score denominator depends on the rule count.
const Version = "2026.10"

// Registry is an immutable, ordered set of rules with unique codes.
type Registry struct {
	version string
	rules   []domain.ValidationRule
	byCode  map[string]int
}

func NewRegistry(version string, rules ...domain.ValidationRule) (*Registry, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, fmt.Errorf("registry version: %w", domain.ErrInvalidRule)
	}

	reg := &Registry{
		version: version,
		rules:   make([]domain.ValidationRule, 0, len(rules)),
		byCode:  make(map[string]int, len(rules)),
	}
	for _, rule := range rules {
		rule.Code = strings.TrimSpace(rule.Code)
		switch {
		case rule.Code == "":
			return nil, fmt.Errorf("rule without code: %w", domain.ErrInvalidRule)
		case !rule.Severity.Valid():
			return nil, fmt.Errorf("rule %s severity %q: %w", rule.Code, rule.Severity, domain.ErrInvalidRule)
		case rule.Check == nil:
			return nil, fmt.Errorf("rule %s has no check: %w", rule.Code, domain.ErrInvalidRule)
		}
		if _, exists := reg.byCode[rule.Code]; exists {
			return nil, fmt.Errorf("rule %s: %w", rule.Code, domain.ErrDuplicateRuleCode)
		}
		reg.byCode[rule.Code] = len(reg.rules)
		reg.rules = append(reg.rules, rule)
	}
	return reg, nil
}

// DefaultRegistry builds the canonical rule set against policy. A nil policy uses
// consolidation.DefaultPolicy.
func DefaultRegistry(policy *consolidation.Policy) *Registry {
	if policy == nil {
		policy = consolidation.DefaultPolicy()
	}
	reg, err := NewRegistry(Version, Canonical(policy)...)
	if err != nil {
		panic(err)
	}
	return reg
}

func (r *Registry) Version() string {
	return r.version
}

func (r *Registry) Len() int {
	return len(r.rules)
}

// Rules returns the rules in evaluation order.
func (r *Registry) Rules() []domain.ValidationRule {
	out := make([]domain.ValidationRule, len(r.rules))
	copy(out, r.rules)
	return out
}

func (r *Registry) Lookup(code string) (domain.ValidationRule, bool) {
	i, ok := r.byCode[strings.TrimSpace(code)]
	if !ok {
		return domain.ValidationRule{}, false
	}
	return r.rules[i], true
}

// Score reduces findings using this registry's size as the denominator.
func (r *Registry) Score(findings []domain.ValidationResult) int {
	return Score(findings, r.Len())
}
