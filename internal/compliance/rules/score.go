package rules

import (
	"math"

	"github.com/smallbiznis/myinvois/internal/compliance/domain"
)

const (
	errorWeight   = 10
	warningWeight = 3
)

// Score reduces findings to 0..100. Info findings never deduct. The denominator is
// ruleCount × errorWeight, so scores are only comparable within one registry version.
func Score(findings []domain.ValidationResult, ruleCount int) int {
	if len(findings) == 0 {
		return 100
	}

	deductions := 0
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityError:
			deductions += errorWeight
		case domain.SeverityWarning:
			deductions += warningWeight
		}
	}
	if deductions == 0 {
		return 100
	}
	if ruleCount <= 0 {
		return 0
	}

	maxPossible := float64(ruleCount * errorWeight)
	score := math.Round(100 - 100*float64(deductions)/maxPossible)
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return int(score)
}

// Tally counts findings per severity.
func Tally(findings []domain.ValidationResult) (errors, warnings, infos int) {
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		case domain.SeverityInfo:
			infos++
		}
	}
	return errors, warnings, infos
}
