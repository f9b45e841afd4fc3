package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes compliance instruments over OTLP.
type Metrics struct {
	evaluations metric.Int64Counter
	findings    metric.Int64Counter
	ruleFaults  metric.Int64Counter
	tinChecks   metric.Int64Counter
	evalLatency metric.Float64Histogram
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}
	return provider, nil
}

// New builds the compliance instruments from provider.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "myinvois"
	}
	meter := provider.Meter(name)

	evaluations, err := meter.Int64Counter("myinvois_compliance_evaluations_total",
		metric.WithDescription("Invoice evaluations by registry version."))
	if err != nil {
		return nil, err
	}
	findings, err := meter.Int64Counter("myinvois_compliance_findings_total",
		metric.WithDescription("Compliance findings by severity and rule."))
	if err != nil {
		return nil, err
	}
	ruleFaults, err := meter.Int64Counter("myinvois_compliance_rule_faults_total",
		metric.WithDescription("Rule checks that panicked and were skipped."))
	if err != nil {
		return nil, err
	}
	tinChecks, err := meter.Int64Counter("myinvois_tin_validations_total",
		metric.WithDescription("Standalone TIN validations by outcome."))
	if err != nil {
		return nil, err
	}
	evalLatency, err := meter.Float64Histogram("myinvois_compliance_evaluation_duration_ms",
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		evaluations: evaluations,
		findings:    findings,
		ruleFaults:  ruleFaults,
		tinChecks:   tinChecks,
		evalLatency: evalLatency,
	}, nil
}

// RecordEvaluation counts one evaluation and its latency.
func (m *Metrics) RecordEvaluation(ctx context.Context, registryVersion string, compliant bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("registry_version", strings.TrimSpace(registryVersion)),
		attribute.Bool("compliant", compliant),
	)
	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.evalLatency.Record(ctx, float64(elapsed.Microseconds())/1000, metric.WithAttributes(attrs...))
}

// RecordFinding counts one finding.
func (m *Metrics) RecordFinding(ctx context.Context, severity, ruleCode string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("severity", strings.TrimSpace(severity)),
		attribute.String("rule_code", strings.TrimSpace(ruleCode)),
	)
	m.findings.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRuleFault counts a rule that panicked.
func (m *Metrics) RecordRuleFault(ctx context.Context, ruleCode string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("rule_code", strings.TrimSpace(ruleCode)))
	m.ruleFaults.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordTINValidation counts a standalone TIN check by detected type.
func (m *Metrics) RecordTINValidation(ctx context.Context, tinType string, valid bool) {
	if m == nil {
		return
	}
	if tinType == "" {
		tinType = "unknown"
	}
	attrs := FilterAttributes(
		attribute.String("tin_type", tinType),
		attribute.Bool("valid", valid),
	)
	m.tinChecks.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

// Invoice numbers, TINs and industry codes never become labels.
var allowedLabelKeys = map[attribute.Key]struct{}{
	"severity":         {},
	"rule_code":        {},
	"registry_version": {},
	"compliant":        {},
	"tin_type":         {},
	"valid":            {},
	"route":            {},
	"method":           {},
	"status_code":      {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
