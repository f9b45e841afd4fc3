package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// ComplianceMetrics are scraped from /metrics alongside the OTLP instruments.
type ComplianceMetrics struct {
	score    *prometheus.HistogramVec
	findings *prometheus.CounterVec
	faults   *prometheus.CounterVec
}

var (
	complianceOnce    sync.Once
	complianceMetrics *ComplianceMetrics
)

// Compliance returns the process-wide registration on the default registerer.
func Compliance(cfg Config) *ComplianceMetrics {
	complianceOnce.Do(func() {
		complianceMetrics = NewComplianceMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return complianceMetrics
}

func NewComplianceMetrics(registerer prometheus.Registerer, cfg Config) *ComplianceMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	constLabels := constLabels(cfg)

	score := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "myinvois_compliance_score",
		Help:        "Compliance score per evaluated invoice.",
		Buckets:     []float64{0, 25, 50, 60, 70, 80, 90, 95, 99, 100},
		ConstLabels: constLabels,
	}, []string{"registry_version"})
	findings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "myinvois_compliance_findings_by_rule_total",
		Help:        "Findings emitted per rule code.",
		ConstLabels: constLabels,
	}, []string{"rule_code", "severity"})
	faults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "myinvois_compliance_rule_faults_by_rule_total",
		Help:        "Rule checks that panicked, per rule code.",
		ConstLabels: constLabels,
	}, []string{"rule_code"})

	score = registerOrExisting(registerer, score).(*prometheus.HistogramVec)
	findings = registerOrExisting(registerer, findings).(*prometheus.CounterVec)
	faults = registerOrExisting(registerer, faults).(*prometheus.CounterVec)

	return &ComplianceMetrics{score: score, findings: findings, faults: faults}
}

func (m *ComplianceMetrics) ObserveScore(registryVersion string, score int) {
	if m == nil {
		return
	}
	m.score.WithLabelValues(registryVersion).Observe(float64(score))
}

func (m *ComplianceMetrics) IncFinding(ruleCode, severity string) {
	if m == nil {
		return
	}
	m.findings.WithLabelValues(ruleCode, severity).Inc()
}

func (m *ComplianceMetrics) IncFault(ruleCode string) {
	if m == nil {
		return
	}
	m.faults.WithLabelValues(ruleCode).Inc()
}

// HTTPMetrics measures the HTTP surface by route template.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var (
	httpOnce    sync.Once
	httpMetrics *HTTPMetrics
)

func NewHTTPMetrics(cfg Config) *HTTPMetrics {
	httpOnce.Do(func() {
		httpMetrics = newHTTPMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return httpMetrics
}

func newHTTPMetrics(registerer prometheus.Registerer, cfg Config) *HTTPMetrics {
	labels := constLabels(cfg)
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "myinvois_http_requests_total",
		Help:        "HTTP requests by route and status.",
		ConstLabels: labels,
	}, []string{"method", "route", "status_code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "myinvois_http_request_duration_seconds",
		Help:        "HTTP request latency by route.",
		Buckets:     []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		ConstLabels: labels,
	}, []string{"method", "route"})

	requests = registerOrExisting(registerer, requests).(*prometheus.CounterVec)
	duration = registerOrExisting(registerer, duration).(*prometheus.HistogramVec)
	return &HTTPMetrics{requests: requests, duration: duration}
}

// GinMiddleware records request counts and latency. A nil HTTPMetrics is a no-op.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func constLabels(cfg Config) prometheus.Labels {
	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = "myinvois"
	}
	env := strings.TrimSpace(cfg.Environment)
	if env == "" {
		env = "unknown"
	}
	return prometheus.Labels{"service": service, "env": env}
}

func registerOrExisting(registerer prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := registerer.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return already.ExistingCollector
		}
		panic(err)
	}
	return c
}
