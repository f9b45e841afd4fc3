package domain

import "fmt"

// Severity of a finding. Errors block submission, warnings are discouraged, info is
// disclosure only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// CheckFunc returns true when the subject is compliant with the rule. It must not perform
// I/O or read the clock.
type CheckFunc func(s Subject) bool

// ValidationRule is one registry entry. Code is stable once published.
type ValidationRule struct {
	Code     string
	Severity Severity
	Field    string
	Message  string
	FixHint  string
	Check    CheckFunc
}

// Finding builds the result emitted when the rule's check fails.
func (r ValidationRule) Finding() ValidationResult {
	return ValidationResult{
		RuleCode:      r.Code,
		Severity:      r.Severity,
		FieldPath:     r.Field,
		Message:       r.Message,
		FixSuggestion: r.FixHint,
	}
}

// ValidationResult is one finding. IsResolved is always false at emission time.
type ValidationResult struct {
	RuleCode      string   `json:"rule_code"`
	Severity      Severity `json:"severity"`
	FieldPath     string   `json:"field_path"`
	Message       string   `json:"message"`
	FixSuggestion string   `json:"fix_suggestion"`
	IsResolved    bool     `json:"is_resolved"`
}

// EvaluationFault records a rule whose check panicked. The rule is skipped for that pass.
type EvaluationFault struct {
	RuleCode string `json:"rule_code"`
	Cause    string `json:"cause"`
}

func (f *EvaluationFault) Error() string {
	return fmt.Sprintf("rule %s faulted: %s", f.RuleCode, f.Cause)
}
