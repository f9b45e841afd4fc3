package rules

import (
	"fmt"

	"github.com/smallbiznis/myinvois/internal/compliance/domain"
	"go.uber.org/zap"
)

// Outcome is the full result of one pass, including rules that faulted.
type Outcome struct {
	Findings []domain.ValidationResult
	Faults   []domain.EvaluationFault
}

// Evaluator runs every rule of a registry. It holds no mutable state and is safe for
// concurrent use.
type Evaluator struct {
	registry *Registry
	log      *zap.Logger
}

func NewEvaluator(registry *Registry, log *zap.Logger) *Evaluator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{registry: registry, log: log.Named("compliance.rules")}
}

func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// Evaluate returns the findings for subject in registry order.
func (e *Evaluator) Evaluate(subject domain.Subject) []domain.ValidationResult {
	return e.EvaluateDetailed(subject).Findings
}

// EvaluateDetailed runs every rule. A panicking check is recorded as a fault and skipped;
// the remaining rules still run.
func (e *Evaluator) EvaluateDetailed(subject domain.Subject) Outcome {
	out := Outcome{Findings: make([]domain.ValidationResult, 0)}
	for _, rule := range e.registry.rules {
		compliant, fault := e.run(rule, subject)
		if fault != nil {
			e.log.Error("rule check faulted",
				zap.String("rule_code", rule.Code),
				zap.String("invoice_number", subject.Invoice.InvoiceNumber),
				zap.String("cause", fault.Cause),
			)
			out.Faults = append(out.Faults, *fault)
			continue
		}
		if !compliant {
			out.Findings = append(out.Findings, rule.Finding())
		}
	}
	return out
}

func (e *Evaluator) run(rule domain.ValidationRule, subject domain.Subject) (compliant bool, fault *domain.EvaluationFault) {
	defer func() {
		if r := recover(); r != nil {
			compliant = false
			fault = &domain.EvaluationFault{RuleCode: rule.Code, Cause: fmt.Sprint(r)}
		}
	}()
	return rule.Check(subject), nil
}
