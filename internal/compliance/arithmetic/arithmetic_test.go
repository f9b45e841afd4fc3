package arithmetic

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/myinvois/internal/compliance/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balancedInvoice() (domain.Invoice, []domain.InvoiceLine) {
	lines := []domain.InvoiceLine{
		BuildLine(1, "Consulting", "10", "150.00", "0", "6"),
		BuildLine(2, "Hardware", "3", "33.33", "5.00", "10"),
	}
	invoice := Totals(domain.Invoice{InvoiceNumber: "INV-1", TotalDiscount: "0"}, lines)
	return invoice, lines
}

func TestCheck_BalancedInvoice(t *testing.T) {
	invoice, lines := balancedInvoice()

	assert.Equal(t, domain.Amount("1500.00"), lines[0].LineTotal)
	assert.Equal(t, domain.Amount("90.00"), lines[0].SSTAmount)
	assert.Equal(t, domain.Amount("94.99"), lines[1].LineTotal)
	assert.Equal(t, domain.Amount("9.50"), lines[1].SSTAmount)

	report := Check(invoice, lines)
	assert.True(t, report.OK(), report.Discrepancies)
}

func TestCheck_AccumulatesIndependently(t *testing.T) {
	invoice, lines := balancedInvoice()
	lines[0].LineTotal = "1400.00"
	lines[1].SSTAmount = "1.00"
	invoice.GrandTotal = "1.00"

	report := Check(invoice, lines)

	assert.True(t, report.Has(KindLineTotal))
	assert.True(t, report.Has(KindLineSST))
	assert.True(t, report.Has(KindSubtotal))
	assert.True(t, report.Has(KindSSTTotal))
	assert.True(t, report.Has(KindGrandTotal))

	lineTotals := report.Of(KindLineTotal)
	require.Len(t, lineTotals, 1)
	assert.Equal(t, 1, lineTotals[0].LineNumber)
	assert.True(t, lineTotals[0].Difference().Equal(decimal.NewFromInt(100)))
	assert.Contains(t, lineTotals[0].String(), "line 1")
}

func TestWithinTolerance(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"equal", "10.00", "10.00", true},
		{"one cent apart", "10.00", "10.01", true},
		{"below a cent", "10.004", "10.00", true},
		{"more than a cent", "10.00", "10.02", false},
		{"negative side", "-5.00", "-5.011", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := domain.Amount(tc.a).Decimal()
			b := domain.Amount(tc.b).Decimal()
			assert.Equal(t, tc.want, WithinTolerance(a, b))
		})
	}
}

func TestUnparsableAmountsReadAsZero(t *testing.T) {
	line := domain.InvoiceLine{
		LineNumber: 1,
		Quantity:   "",
		UnitPrice:  "abc",
		LineTotal:  "0",
		SSTRate:    "",
		SSTAmount:  "not-a-number",
	}
	assert.True(t, LineTotalMatches(line))
	assert.True(t, LineSSTMatches(line))

	invoice := domain.Invoice{}
	report := Check(invoice, []domain.InvoiceLine{line})
	assert.True(t, report.OK())
}

func TestCheck_LineNumberFallsBackToPosition(t *testing.T) {
	lines := []domain.InvoiceLine{{Quantity: "1", UnitPrice: "10", LineTotal: "9"}}
	report := Check(domain.Invoice{Subtotal: "9", GrandTotal: "9"}, lines)

	discrepancies := report.Of(KindLineTotal)
	require.Len(t, discrepancies, 1)
	assert.Equal(t, 1, discrepancies[0].LineNumber)
}

func TestGrandTotalAppliesHeaderDiscount(t *testing.T) {
	invoice := domain.Invoice{
		Subtotal:      "200.00",
		TotalDiscount: "20.00",
		SSTAmount:     "10.80",
		GrandTotal:    "190.80",
	}
	assert.True(t, GrandTotalMatches(invoice))

	invoice.GrandTotal = "210.80"
	assert.False(t, GrandTotalMatches(invoice))
}
