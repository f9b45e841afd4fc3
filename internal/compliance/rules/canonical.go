package rules

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/myinvois/internal/compliance/arithmetic"
	"github.com/smallbiznis/myinvois/internal/compliance/consolidation"
	"github.com/smallbiznis/myinvois/internal/compliance/domain"
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	"github.com/smallbiznis/myinvois/internal/tin"
)

const (
	// HighVolumeQuantity is the line quantity above which MY-012 asks for a unit check.
	HighVolumeQuantity = 10000
	// MaxPaymentTermDays bounds dueDate − issueDate for MY-010.
	MaxPaymentTermDays = 90
)

var highVolume = decimal.NewFromInt(HighVolumeQuantity)

// Canonical returns the published rule set in evaluation order. Codes are never reused.
func Canonical(policy *consolidation.Policy) []domain.ValidationRule {
	return []domain.ValidationRule{
		{
			Code:     "MY-001",
			Severity: domain.SeverityError,
			Field:    "organization.tin",
			Message:  "Supplier TIN is missing or not in a recognised LHDN format",
			FixHint:  "Use C + 10 digits for companies, 12 digits for individuals, G + 10 digits for government or N + 10 digits for non-profits",
			Check:    supplierTINValid,
		},
		{
			Code:     "MY-002",
			Severity: domain.SeverityError,
			Field:    "buyer.tin",
			Message:  "Buyer TIN is not in a recognised LHDN format",
			FixHint:  "Correct the buyer TIN or leave it empty for individual buyers without one",
			Check:    buyerTINValid,
		},
		{
			Code:     "MY-003",
			Severity: domain.SeverityError,
			Field:    "lines.sst_amount",
			Message:  "Line SST amount does not equal line total × SST rate",
			FixHint:  "Recalculate SST as line total × rate / 100, rounded to 2 decimal places",
			Check:    everyLine(arithmetic.LineSSTMatches),
		},
		{
			Code:     "MY-004",
			Severity: domain.SeverityError,
			Field:    "organization.industry_code",
			Message:  "Supplier industry is not permitted to issue consolidated B2C e-Invoices",
			FixHint:  "Issue an individual e-Invoice for each transaction",
			Check:    consolidationPermitted,
		},
		{
			Code:     "MY-005",
			Severity: domain.SeverityError,
			Field:    "invoice.exchange_rate",
			Message:  "Foreign currency invoice uses an exchange rate of 1.0",
			FixHint:  "Set the exchange rate to MYR on the invoice issue date",
			Check:    exchangeRateSet,
		},
		{
			Code:     "MY-006",
			Severity: domain.SeverityError,
			Field:    "invoice.reference_invoice_id",
			Message:  "Credit and debit notes must reference the original invoice",
			FixHint:  "Link the note to the e-Invoice it adjusts",
			Check:    referencePresent,
		},
		{
			Code:     "MY-007",
			Severity: domain.SeverityError,
			Field:    "buyer",
			Message:  "Buyer details are required for non-consolidated invoices",
			FixHint:  "Add the buyer or mark the invoice as a consolidated B2C invoice",
			Check:    buyerPresent,
		},
		{
			Code:     "MY-008",
			Severity: domain.SeverityWarning,
			Field:    "lines.sst_rate",
			Message:  "SST is charged but the supplier is not SST-registered",
			FixHint:  "Remove SST from the lines or update the supplier SST registration",
			Check:    sstChargedOnlyWhenRegistered,
		},
		{
			Code:     "MY-009",
			Severity: domain.SeverityWarning,
			Field:    "invoice.consolidation_period",
			Message:  "Consolidation period does not match the invoice issue month",
			FixHint:  "Set the consolidation period to the issue date's YYYY-MM",
			Check:    consolidationPeriodMatches,
		},
		{
			Code:     "MY-010",
			Severity: domain.SeverityWarning,
			Field:    "invoice.due_date",
			Message:  "Due date is before the issue date or more than 90 days after it",
			FixHint:  "Use a due date within 90 days of the issue date",
			Check:    dueDateReasonable,
		},
		{
			Code:     "MY-011",
			Severity: domain.SeverityInfo,
			Field:    "invoice.currency",
			Message:  "Invoice is issued in a foreign currency",
			FixHint:  "Make sure the MYR equivalent is disclosed using the stated exchange rate",
			Check:    homeCurrency,
		},
		{
			Code:     "MY-012",
			Severity: domain.SeverityInfo,
			Field:    "lines.quantity",
			Message:  "Line quantity is unusually high",
			FixHint:  "Confirm the quantity and unit of measure",
			Check:    quantitiesOrdinary,
		},
		{
			Code:     "MY-013",
			Severity: domain.SeverityError,
			Field:    "lines.line_total",
			Message:  "Line total does not equal quantity × unit price − discount",
			FixHint:  "Recalculate the line total, rounded to 2 decimal places",
			Check:    everyLine(arithmetic.LineTotalMatches),
		},
		{
			Code:     "MY-014",
			Severity: domain.SeverityError,
			Field:    "invoice.subtotal",
			Message:  "Subtotal does not equal the sum of line totals",
			FixHint:  "Recalculate the subtotal from the lines",
			Check: func(s domain.Subject) bool {
				return arithmetic.SubtotalMatches(s.Invoice, s.Lines)
			},
		},
		{
			Code:     "MY-015",
			Severity: domain.SeverityError,
			Field:    "invoice.sst_amount",
			Message:  "Invoice SST amount does not equal the sum of line SST amounts",
			FixHint:  "Recalculate the invoice SST from the lines",
			Check: func(s domain.Subject) bool {
				return arithmetic.SSTTotalMatches(s.Invoice, s.Lines)
			},
		},
		{
			Code:     "MY-016",
			Severity: domain.SeverityError,
			Field:    "invoice.grand_total",
			Message:  "Grand total does not equal subtotal − discount + SST",
			FixHint:  "Recalculate the grand total",
			Check: func(s domain.Subject) bool {
				return arithmetic.GrandTotalMatches(s.Invoice)
			},
		},
		{
			Code:     "MY-017",
			Severity: domain.SeverityWarning,
			Field:    "invoice.is_consolidated",
			Message:  "Consolidated invoice exceeds the recommended cap for this industry",
			FixHint:  "Split the transactions across several consolidated invoices",
			Check:    withinConsolidationCap(policy),
		},
	}
}

func supplierTINValid(s domain.Subject) bool {
	return tin.IsValid(s.Organization.TIN)
}

func buyerTINValid(s domain.Subject) bool {
	if s.Buyer == nil || s.Buyer.TIN == nil || strings.TrimSpace(*s.Buyer.TIN) == "" {
		return true
	}
	return tin.IsValid(*s.Buyer.TIN)
}

func everyLine(ok func(domain.InvoiceLine) bool) domain.CheckFunc {
	return func(s domain.Subject) bool {
		for _, line := range s.Lines {
			if !ok(line) {
				return false
			}
		}
		return true
	}
}

func consolidationPermitted(s domain.Subject) bool {
	if !s.Invoice.IsConsolidated {
		return true
	}
	code := s.SupplierIndustryCode()
	if code == "" {
		return true
	}
	return !industrydomain.IsProhibited(code)
}

func exchangeRateSet(s domain.Subject) bool {
	if !s.Invoice.IsForeignCurrency() {
		return true
	}
	return !s.Invoice.ExchangeRate.Decimal().Equal(decimal.NewFromInt(1))
}

func referencePresent(s domain.Subject) bool {
	if !s.Invoice.EInvoiceType.RequiresReference() {
		return true
	}
	return s.Invoice.ReferenceInvoiceID != nil && strings.TrimSpace(*s.Invoice.ReferenceInvoiceID) != ""
}

func buyerPresent(s domain.Subject) bool {
	return s.Invoice.IsConsolidated || s.Buyer != nil
}

func sstChargedOnlyWhenRegistered(s domain.Subject) bool {
	if s.Organization.IsSSTRegistered {
		return true
	}
	for _, line := range s.Lines {
		if !line.SSTRate.IsZero() {
			return false
		}
	}
	return true
}

func consolidationPeriodMatches(s domain.Subject) bool {
	if !s.Invoice.IsConsolidated {
		return true
	}
	if s.Invoice.ConsolidationPeriod == nil {
		return false
	}
	return strings.TrimSpace(*s.Invoice.ConsolidationPeriod) == s.Invoice.IssueDate.YearMonth()
}

func dueDateReasonable(s domain.Subject) bool {
	if s.Invoice.DueDate == nil || s.Invoice.DueDate.IsZero() {
		return true
	}
	days := s.Invoice.IssueDate.DaysUntil(*s.Invoice.DueDate)
	return days >= 0 && days <= MaxPaymentTermDays
}

func homeCurrency(s domain.Subject) bool {
	return !s.Invoice.IsForeignCurrency()
}

func quantitiesOrdinary(s domain.Subject) bool {
	for _, line := range s.Lines {
		if line.Quantity.Decimal().GreaterThan(highVolume) {
			return false
		}
	}
	return true
}

func withinConsolidationCap(policy *consolidation.Policy) domain.CheckFunc {
	return func(s domain.Subject) bool {
		if !s.Invoice.IsConsolidated || policy == nil {
			return true
		}
		code := s.SupplierIndustryCode()
		if code == "" {
			return true
		}
		decision := policy.ValidateBatch(code, consolidation.Batch{
			LineCount: len(s.Lines),
			Amount:    s.Invoice.GrandTotal.Decimal(),
		})
		return !decision.CapExceeded
	}
}
