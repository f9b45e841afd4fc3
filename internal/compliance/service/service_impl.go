package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/myinvois/internal/clock"
	"github.com/smallbiznis/myinvois/internal/compliance/consolidation"
	compliancedomain "github.com/smallbiznis/myinvois/internal/compliance/domain"
	"github.com/smallbiznis/myinvois/internal/compliance/rules"
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	industryservice "github.com/smallbiznis/myinvois/internal/industry/service"
	obscontext "github.com/smallbiznis/myinvois/internal/observability/context"
	"github.com/smallbiznis/myinvois/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/myinvois/internal/observability/metrics"
	"github.com/smallbiznis/myinvois/internal/tin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Catalog    *industryservice.Catalog
	Evaluator  *rules.Evaluator
	Policy     *consolidation.Policy
	Clock      clock.Clock                   `optional:"true"`
	ObsMetrics *obsmetrics.Metrics           `optional:"true"`
	Prom       *obsmetrics.ComplianceMetrics `optional:"true"`
}

type Service struct {
	log    *zap.Logger
	tracer trace.Tracer

	genID      *snowflake.Node
	catalog    *industryservice.Catalog
	evaluator  *rules.Evaluator
	policy     *consolidation.Policy
	clock      clock.Clock
	obsMetrics *obsmetrics.Metrics
	prom       *obsmetrics.ComplianceMetrics
}

func NewService(p ServiceParam) compliancedomain.Service {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	policy := p.Policy
	if policy == nil {
		policy = consolidation.DefaultPolicy()
	}
	return &Service{
		log:        p.Log.Named("compliance.service"),
		tracer:     otel.Tracer("myinvois/compliance"),
		genID:      p.GenID,
		catalog:    p.Catalog,
		evaluator:  p.Evaluator,
		policy:     policy,
		clock:      c,
		obsMetrics: p.ObsMetrics,
		prom:       p.Prom,
	}
}

func (s *Service) ValidateTIN(ctx context.Context, value string) tin.Result {
	result := tin.Validate(value)
	s.obsMetrics.RecordTINValidation(ctx, string(result.Type), result.IsValid)
	return result
}

func (s *Service) LookupIndustry(ctx context.Context, code string) (*industrydomain.IndustryCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, compliancedomain.ErrInvalidIndustry
	}

	entry, ok := s.catalog.Current().Lookup(code)
	if !ok {
		return nil, compliancedomain.ErrIndustryNotFound
	}
	return &entry, nil
}

func (s *Service) SearchIndustries(ctx context.Context, query string) []industrydomain.IndustryCode {
	table := s.catalog.Current()
	if strings.TrimSpace(query) == "" {
		return table.All()
	}
	return table.Search(query)
}

// ListIndustries applies every non-empty filter field. Results stay in code order.
func (s *Service) ListIndustries(ctx context.Context, filter compliancedomain.IndustryFilter) []industrydomain.IndustryCode {
	items := s.SearchIndustries(ctx, filter.Query)
	category := strings.TrimSpace(filter.Category)
	section := strings.TrimSpace(filter.Section)
	if category == "" && section == "" {
		return items
	}

	out := make([]industrydomain.IndustryCode, 0, len(items))
	for _, item := range items {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if section != "" && !strings.EqualFold(item.Section, section) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s *Service) CheckConsolidation(ctx context.Context, req compliancedomain.ConsolidationRequest) (*compliancedomain.ConsolidationResponse, error) {
	code := strings.TrimSpace(req.IndustryCode)
	if code == "" {
		return nil, compliancedomain.ErrInvalidIndustry
	}
	if req.LineCount < 0 {
		return nil, compliancedomain.ErrInvalidTransaction
	}

	table := s.catalog.Current()
	eligibility := table.IsConsolidationAllowed(code)
	decision := s.policy.ValidateBatch(code, consolidation.Batch{
		LineCount: req.LineCount,
		Amount:    req.Amount.Decimal(),
	})

	resp := &compliancedomain.ConsolidationResponse{
		IndustryCode: code,
		Allowed:      eligibility.Allowed && decision.Allowed,
		Eligibility:  eligibility,
		Policy:       decision,
	}
	if entry, ok := table.Lookup(code); ok {
		resp.Industry = &entry
	}
	return resp, nil
}

// Evaluate runs the registry against one invoice. Faulted rules are reported on the
// Report but never fail the call.
func (s *Service) Evaluate(ctx context.Context, req compliancedomain.EvaluateRequest) (*compliancedomain.Report, error) {
	if req.Invoice == nil {
		return nil, fmt.Errorf("%w: %w", compliancedomain.ErrInvalidRequest, compliancedomain.ErrMissingInvoice)
	}

	registry := s.evaluator.Registry()
	ctx = obscontext.WithInvoiceNumber(ctx, req.Invoice.InvoiceNumber)
	ctx, span := s.tracer.Start(ctx, "compliance.evaluate", trace.WithAttributes(
		attribute.String("registry_version", registry.Version()),
		attribute.Int("line_count", len(req.Lines)),
	))
	defer span.End()

	start := time.Now()
	outcome := s.evaluator.EvaluateDetailed(compliancedomain.Subject{
		Invoice:      *req.Invoice,
		Lines:        req.Lines,
		Organization: req.Organization,
		Buyer:        req.Buyer,
		Industries:   s.catalog.Current(),
	})
	elapsed := time.Since(start)

	score := registry.Score(outcome.Findings)
	errs, warnings, infos := rules.Tally(outcome.Findings)
	report := &compliancedomain.Report{
		ID:              s.genID.Generate().String(),
		InvoiceNumber:   req.Invoice.InvoiceNumber,
		RegistryVersion: registry.Version(),
		RuleCount:       registry.Len(),
		Findings:        outcome.Findings,
		Score:           score,
		Errors:          errs,
		Warnings:        warnings,
		Infos:           infos,
		Faults:          outcome.Faults,
		EvaluatedAt:     s.clock.Now().UTC(),
	}

	for _, f := range outcome.Findings {
		s.obsMetrics.RecordFinding(ctx, string(f.Severity), f.RuleCode)
		s.prom.IncFinding(f.RuleCode, string(f.Severity))
	}
	for _, fault := range outcome.Faults {
		s.obsMetrics.RecordRuleFault(ctx, fault.RuleCode)
		s.prom.IncFault(fault.RuleCode)
	}
	s.obsMetrics.RecordEvaluation(ctx, registry.Version(), report.Compliant(), elapsed)
	s.prom.ObserveScore(registry.Version(), score)

	span.SetAttributes(
		attribute.Int("score", score),
		attribute.Int("findings", len(outcome.Findings)),
		attribute.Bool("compliant", report.Compliant()),
	)

	logger.WithContext(ctx, s.log).Debug("invoice evaluated",
		zap.String("report_id", report.ID),
		zap.Int("score", score),
		zap.Int("errors", errs),
		zap.Int("warnings", warnings),
		zap.Int("faults", len(outcome.Faults)),
		zap.Duration("elapsed", elapsed),
	)
	return report, nil
}
