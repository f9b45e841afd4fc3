package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/myinvois/internal/clock"
	"github.com/smallbiznis/myinvois/internal/compliance/arithmetic"
	"github.com/smallbiznis/myinvois/internal/compliance/consolidation"
	compliancedomain "github.com/smallbiznis/myinvois/internal/compliance/domain"
	"github.com/smallbiznis/myinvois/internal/compliance/rules"
	industryservice "github.com/smallbiznis/myinvois/internal/industry/service"
	obsmetrics "github.com/smallbiznis/myinvois/internal/observability/metrics"
	"github.com/smallbiznis/myinvois/internal/tin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	svc   compliancedomain.Service
	reg   *prometheus.Registry
	clock *clock.FakeClock
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	catalog, err := industryservice.New(zap.NewNop(), nil, "")
	require.NoError(t, err)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	policy := consolidation.DefaultPolicy()
	reg := prometheus.NewRegistry()
	fc := clock.NewFakeClock(time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC))

	svc := NewService(ServiceParam{
		Log:       zap.NewNop(),
		GenID:     node,
		Catalog:   catalog,
		Evaluator: rules.NewEvaluator(rules.DefaultRegistry(policy), zap.NewNop()),
		Policy:    policy,
		Clock:     fc,
		Prom:      obsmetrics.NewComplianceMetrics(reg, obsmetrics.Config{ServiceName: "myinvois", Environment: "test"}),
	})
	return fixture{svc: svc, reg: reg, clock: fc}
}

func compliantRequest() compliancedomain.EvaluateRequest {
	lines := []compliancedomain.InvoiceLine{
		arithmetic.BuildLine(1, "Software subscription", "1", "1200.00", "0", "8"),
		arithmetic.BuildLine(2, "Onsite support", "6", "180.00", "30.00", "8"),
	}
	due := compliancedomain.NewDate(2026, time.April, 14)
	invoice := arithmetic.Totals(compliancedomain.Invoice{
		InvoiceNumber: "INV-2026-0001",
		EInvoiceType:  compliancedomain.EInvoiceTypeInvoice,
		IssueDate:     compliancedomain.NewDate(2026, time.March, 15),
		DueDate:       &due,
		Currency:      "MYR",
		ExchangeRate:  "1.000000",
		TotalDiscount: "0.00",
	}, lines)

	return compliancedomain.EvaluateRequest{
		Invoice: &invoice,
		Lines:   lines,
		Organization: compliancedomain.Organization{
			TIN:             "C2581473690",
			IndustryCode:    ptr("62010"),
			IsSSTRegistered: true,
		},
		Buyer: &compliancedomain.Buyer{
			TIN:         ptr("C9081726354"),
			Name:        "Kedai Runcit Sdn Bhd",
			Address:     "12 Jalan Ampang, Kuala Lumpur",
			CountryCode: "MY",
		},
	}
}

func TestEvaluate_Compliant(t *testing.T) {
	f := newFixture(t)

	report, err := f.svc.Evaluate(context.Background(), compliantRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "INV-2026-0001", report.InvoiceNumber)
	assert.Equal(t, rules.Version, report.RegistryVersion)
	assert.Equal(t, 17, report.RuleCount)
	assert.Empty(t, report.Findings)
	assert.Equal(t, 100, report.Score)
	assert.True(t, report.Compliant())
	assert.Equal(t, f.clock.Now(), report.EvaluatedAt)

	n, err := testutil.GatherAndCount(f.reg, "myinvois_compliance_score")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEvaluate_MissingBuyerDeductsOneError(t *testing.T) {
	f := newFixture(t)
	req := compliantRequest()
	req.Buyer = nil

	report, err := f.svc.Evaluate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, report.Findings, 1)
	assert.Equal(t, "MY-007", report.Findings[0].RuleCode)
	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, 94, report.Score)
	assert.False(t, report.Compliant())

	n, err := testutil.GatherAndCount(f.reg, "myinvois_compliance_findings_by_rule_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEvaluate_NilInvoice(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Evaluate(context.Background(), compliancedomain.EvaluateRequest{})
	assert.ErrorIs(t, err, compliancedomain.ErrInvalidRequest)
	assert.ErrorIs(t, err, compliancedomain.ErrMissingInvoice)
}

func TestEvaluate_UniqueReportIDs(t *testing.T) {
	f := newFixture(t)
	a, err := f.svc.Evaluate(context.Background(), compliantRequest())
	require.NoError(t, err)
	b, err := f.svc.Evaluate(context.Background(), compliantRequest())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Score, b.Score)
}

func TestValidateTIN(t *testing.T) {
	f := newFixture(t)

	res := f.svc.ValidateTIN(context.Background(), " c2581473690 ")
	assert.True(t, res.IsValid)
	assert.Equal(t, tin.TypeCorporate, res.Type)

	res = f.svc.ValidateTIN(context.Background(), "")
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, tin.ErrRequired)
}

func TestLookupIndustry(t *testing.T) {
	f := newFixture(t)

	entry, err := f.svc.LookupIndustry(context.Background(), "56101")
	require.NoError(t, err)
	assert.True(t, entry.AllowsB2CConsolidation)

	_, err = f.svc.LookupIndustry(context.Background(), "00000")
	assert.ErrorIs(t, err, compliancedomain.ErrIndustryNotFound)

	_, err = f.svc.LookupIndustry(context.Background(), "  ")
	assert.ErrorIs(t, err, compliancedomain.ErrInvalidIndustry)
}

func TestSearchIndustries(t *testing.T) {
	f := newFixture(t)

	all := f.svc.SearchIndustries(context.Background(), "")
	assert.NotEmpty(t, all)

	hits := f.svc.SearchIndustries(context.Background(), "restaurant")
	require.NotEmpty(t, hits)
	assert.Less(t, len(hits), len(all))
}

func TestListIndustries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fnb := f.svc.ListIndustries(ctx, compliancedomain.IndustryFilter{Category: "food & beverage"})
	require.NotEmpty(t, fnb)
	for _, item := range fnb {
		assert.Equal(t, "I", item.Section)
	}

	fast := f.svc.ListIndustries(ctx, compliancedomain.IndustryFilter{Query: "fast-food", Section: "i"})
	require.Len(t, fast, 1)
	assert.Equal(t, "56103", fast[0].Code)

	assert.Empty(t, f.svc.ListIndustries(ctx, compliancedomain.IndustryFilter{Query: "fast-food", Section: "G"}))
}

func TestCheckConsolidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.CheckConsolidation(ctx, compliancedomain.ConsolidationRequest{IndustryCode: "56101", LineCount: 150})
	require.NoError(t, err)
	assert.True(t, resp.Allowed)
	require.NotNil(t, resp.Industry)

	resp, err = f.svc.CheckConsolidation(ctx, compliancedomain.ConsolidationRequest{IndustryCode: "56101", LineCount: 201})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.True(t, resp.Eligibility.Allowed)
	assert.True(t, resp.Policy.CapExceeded)

	resp, err = f.svc.CheckConsolidation(ctx, compliancedomain.ConsolidationRequest{
		IndustryCode: "47190",
		LineCount:    10,
		Amount:       compliancedomain.AmountOf(decimal.NewFromInt(60000), 2),
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.True(t, resp.Policy.CapExceeded)

	resp, err = f.svc.CheckConsolidation(ctx, compliancedomain.ConsolidationRequest{IndustryCode: "35101", LineCount: 1})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.False(t, resp.Eligibility.Allowed)
	assert.False(t, resp.Policy.CapExceeded)

	_, err = f.svc.CheckConsolidation(ctx, compliancedomain.ConsolidationRequest{IndustryCode: "56101", LineCount: -1})
	assert.ErrorIs(t, err, compliancedomain.ErrInvalidTransaction)

	_, err = f.svc.CheckConsolidation(ctx, compliancedomain.ConsolidationRequest{})
	assert.ErrorIs(t, err, compliancedomain.ErrInvalidIndustry)
}
