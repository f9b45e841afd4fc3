package domain

import "errors"

var (
	ErrNotFound              = errors.New("industry_not_found")
	ErrInvalidIndustryCode   = errors.New("invalid_industry_code")
	ErrDuplicateIndustryCode = errors.New("duplicate_industry_code")
	ErrInvalidSection        = errors.New("invalid_msic_section")
)
