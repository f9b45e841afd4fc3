package domain

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrMissingInvoice     = errors.New("missing_invoice")
	ErrInvalidRule        = errors.New("invalid_rule")
	ErrDuplicateRuleCode  = errors.New("duplicate_rule_code")
	ErrIndustryNotFound   = errors.New("industry_not_found")
	ErrInvalidIndustry    = errors.New("invalid_industry_code")
	ErrInvalidTransaction = errors.New("invalid_transaction_count")
)
