// Package domain contains the e-Invoice data model evaluated by the compliance engine.
package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
)

// EInvoiceType is the LHDN e-Invoice document type code.
type EInvoiceType string

const (
	EInvoiceTypeInvoice    EInvoiceType = "01"
	EInvoiceTypeCreditNote EInvoiceType = "02"
	EInvoiceTypeDebitNote  EInvoiceType = "03"
	EInvoiceTypeRefundNote EInvoiceType = "04"
)

// RequiresReference reports whether the type must point at an original invoice.
func (t EInvoiceType) RequiresReference() bool {
	return t == EInvoiceTypeCreditNote || t == EInvoiceTypeDebitNote
}

// HomeCurrency is the ringgit ISO code. A blank invoice currency is read as HomeCurrency.
const HomeCurrency = "MYR"

// Amount is a decimal string as captured upstream ("12.50", "4.350000").
// Unparsable or empty values read as zero.
type Amount string

// Decimal parses the amount, returning zero on failure.
func (a Amount) Decimal() decimal.Decimal {
	value := strings.TrimSpace(string(a))
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// UnmarshalJSON accepts both quoted decimals and bare JSON numbers. The text is kept
// verbatim so no float rounding occurs.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*a = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// IsZero reports whether the amount parses to zero.
func (a Amount) IsZero() bool {
	return a.Decimal().IsZero()
}

// AmountOf formats d with a fixed number of fractional digits.
func AmountOf(d decimal.Decimal, places int32) Amount {
	return Amount(d.StringFixed(places))
}

// Date is a calendar date without a time component, serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// YearMonth renders the date as YYYY-MM.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

// DaysUntil counts whole calendar days from d to other; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(other.Year(), other.Month(), other.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Organization is the supplier issuing the invoice.
type Organization struct {
	TIN             string  `json:"tin"`
	IndustryCode    *string `json:"industry_code,omitempty"`
	IsSSTRegistered bool    `json:"is_sst_registered"`
}

// Buyer may be absent only on consolidated B2C invoices.
type Buyer struct {
	TIN          *string `json:"tin,omitempty"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	IsIndividual bool    `json:"is_individual"`
	CountryCode  string  `json:"country_code"`
}

// Invoice is the header being evaluated.
type Invoice struct {
	InvoiceNumber       string       `json:"invoice_number"`
	EInvoiceType        EInvoiceType `json:"einvoice_type"`
	IssueDate           Date         `json:"issue_date"`
	DueDate             *Date        `json:"due_date,omitempty"`
	Currency            string       `json:"currency"`
	ExchangeRate        Amount       `json:"exchange_rate"`
	IsConsolidated      bool         `json:"is_consolidated"`
	ConsolidationPeriod *string      `json:"consolidation_period,omitempty"`
	ReferenceInvoiceID  *string      `json:"reference_invoice_id,omitempty"`
	Subtotal            Amount       `json:"subtotal"`
	TotalDiscount       Amount       `json:"total_discount"`
	SSTAmount           Amount       `json:"sst_amount"`
	GrandTotal          Amount       `json:"grand_total"`
	Status              string       `json:"status,omitempty"`
	ValidationScore     int          `json:"validation_score"`
}

// CurrencyCode returns the normalised currency, defaulting to MYR.
func (i Invoice) CurrencyCode() string {
	code := strings.ToUpper(strings.TrimSpace(i.Currency))
	if code == "" {
		return HomeCurrency
	}
	return code
}

// IsForeignCurrency reports whether the invoice is not in ringgit.
func (i Invoice) IsForeignCurrency() bool {
	return i.CurrencyCode() != HomeCurrency
}

// InvoiceLine is one ordered line item.
type InvoiceLine struct {
	LineNumber       int     `json:"line_number"`
	ItemDescription  string  `json:"item_description"`
	Quantity         Amount  `json:"quantity"`
	UnitPrice        Amount  `json:"unit_price"`
	DiscountAmount   Amount  `json:"discount_amount"`
	LineTotal        Amount  `json:"line_total"`
	SSTRate          Amount  `json:"sst_rate"`
	SSTAmount        Amount  `json:"sst_amount"`
	TaxExemptionCode *string `json:"tax_exemption_code,omitempty"`
}

// Subject bundles everything a rule may read. Industries is an immutable snapshot and
// may be nil, in which case rules fall back to the policy prohibited list.
type Subject struct {
	Invoice      Invoice
	Lines        []InvoiceLine
	Organization Organization
	Buyer        *Buyer
	Industries   *industrydomain.Table
}

// SupplierIndustryCode returns the trimmed supplier MSIC code or "".
func (s Subject) SupplierIndustryCode() string {
	if s.Organization.IndustryCode == nil {
		return ""
	}
	return strings.TrimSpace(*s.Organization.IndustryCode)
}
