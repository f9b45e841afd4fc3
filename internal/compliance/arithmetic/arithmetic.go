// Package arithmetic reconciles e-Invoice line and header amounts.
package arithmetic

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/myinvois/internal/compliance/domain"
)

// Epsilon is the tolerance, in currency units, absorbed by every comparison.
var Epsilon = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Kind identifies which invariant a discrepancy violates.
type Kind string

const (
	KindLineTotal  Kind = "line_total"
	KindLineSST    Kind = "line_sst"
	KindSubtotal   Kind = "subtotal"
	KindSSTTotal   Kind = "sst_total"
	KindGrandTotal Kind = "grand_total"
)

// Discrepancy is one failed invariant. LineNumber is zero for header checks.
type Discrepancy struct {
	Kind       Kind            `json:"kind"`
	LineNumber int             `json:"line_number,omitempty"`
	Expected   decimal.Decimal `json:"expected"`
	Actual     decimal.Decimal `json:"actual"`
}

func (d Discrepancy) Difference() decimal.Decimal {
	return d.Actual.Sub(d.Expected).Abs()
}

func (d Discrepancy) String() string {
	if d.LineNumber > 0 {
		return fmt.Sprintf("%s line %d: expected %s, got %s", d.Kind, d.LineNumber, d.Expected.StringFixed(2), d.Actual.StringFixed(2))
	}
	return fmt.Sprintf("%s: expected %s, got %s", d.Kind, d.Expected.StringFixed(2), d.Actual.StringFixed(2))
}

// Report accumulates every discrepancy found by Check.
type Report struct {
	Discrepancies []Discrepancy `json:"discrepancies"`
}

func (r Report) OK() bool {
	return len(r.Discrepancies) == 0
}

func (r Report) Has(kind Kind) bool {
	for _, d := range r.Discrepancies {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func (r Report) Of(kind Kind) []Discrepancy {
	var out []Discrepancy
	for _, d := range r.Discrepancies {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Check runs every invariant independently. A failure in one never suppresses another.
func Check(invoice domain.Invoice, lines []domain.InvoiceLine) Report {
	report := Report{Discrepancies: make([]Discrepancy, 0)}
	add := func(kind Kind, line int, expected, actual decimal.Decimal) {
		if !WithinTolerance(expected, actual) {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Kind:       kind,
				LineNumber: line,
				Expected:   expected,
				Actual:     actual,
			})
		}
	}

	for i, line := range lines {
		number := line.LineNumber
		if number <= 0 {
			number = i + 1
		}
		add(KindLineTotal, number, ExpectedLineTotal(line), line.LineTotal.Decimal())
		add(KindLineSST, number, ExpectedLineSST(line), line.SSTAmount.Decimal())
	}
	add(KindSubtotal, 0, SumLineTotals(lines), invoice.Subtotal.Decimal())
	add(KindSSTTotal, 0, SumLineSST(lines), invoice.SSTAmount.Decimal())
	add(KindGrandTotal, 0, ExpectedGrandTotal(invoice), invoice.GrandTotal.Decimal())
	return report
}

// WithinTolerance reports |a-b| <= Epsilon.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// ExpectedLineTotal is quantity × unitPrice − discountAmount.
func ExpectedLineTotal(line domain.InvoiceLine) decimal.Decimal {
	return line.Quantity.Decimal().Mul(line.UnitPrice.Decimal()).Sub(line.DiscountAmount.Decimal())
}

// ExpectedLineSST is lineTotal × sstRate / 100, using the line's stated total.
func ExpectedLineSST(line domain.InvoiceLine) decimal.Decimal {
	return line.LineTotal.Decimal().Mul(line.SSTRate.Decimal()).Div(hundred)
}

// ExpectedGrandTotal is subtotal − totalDiscount + sstAmount.
func ExpectedGrandTotal(invoice domain.Invoice) decimal.Decimal {
	return invoice.Subtotal.Decimal().Sub(invoice.TotalDiscount.Decimal()).Add(invoice.SSTAmount.Decimal())
}

func SumLineTotals(lines []domain.InvoiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal.Decimal())
	}
	return total
}

func SumLineSST(lines []domain.InvoiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.SSTAmount.Decimal())
	}
	return total
}

func LineTotalMatches(line domain.InvoiceLine) bool {
	return WithinTolerance(ExpectedLineTotal(line), line.LineTotal.Decimal())
}

func LineSSTMatches(line domain.InvoiceLine) bool {
	return WithinTolerance(ExpectedLineSST(line), line.SSTAmount.Decimal())
}

func SubtotalMatches(invoice domain.Invoice, lines []domain.InvoiceLine) bool {
	return WithinTolerance(SumLineTotals(lines), invoice.Subtotal.Decimal())
}

func SSTTotalMatches(invoice domain.Invoice, lines []domain.InvoiceLine) bool {
	return WithinTolerance(SumLineSST(lines), invoice.SSTAmount.Decimal())
}

func GrandTotalMatches(invoice domain.Invoice) bool {
	return WithinTolerance(ExpectedGrandTotal(invoice), invoice.GrandTotal.Decimal())
}

// BuildLine fills LineTotal and SSTAmount from the other line fields, rounded to cents.
func BuildLine(number int, description string, quantity, unitPrice, discount, sstRate domain.Amount) domain.InvoiceLine {
	line := domain.InvoiceLine{
		LineNumber:      number,
		ItemDescription: description,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountAmount:  discount,
		SSTRate:         sstRate,
	}
	line.LineTotal = domain.AmountOf(ExpectedLineTotal(line).Round(2), 2)
	line.SSTAmount = domain.AmountOf(ExpectedLineSST(line).Round(2), 2)
	return line
}

// Totals fills the header subtotal, SST and grand total from lines, keeping the
// invoice's totalDiscount.
func Totals(invoice domain.Invoice, lines []domain.InvoiceLine) domain.Invoice {
	invoice.Subtotal = domain.AmountOf(SumLineTotals(lines), 2)
	invoice.SSTAmount = domain.AmountOf(SumLineSST(lines), 2)
	invoice.GrandTotal = domain.AmountOf(ExpectedGrandTotal(invoice), 2)
	return invoice
}
