package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/smallbiznis/myinvois/internal/compliance/consolidation"
	compliancedomain "github.com/smallbiznis/myinvois/internal/compliance/domain"
	"github.com/smallbiznis/myinvois/internal/compliance/rules"
	complianceservice "github.com/smallbiznis/myinvois/internal/compliance/service"
	"github.com/smallbiznis/myinvois/internal/config"
	industryservice "github.com/smallbiznis/myinvois/internal/industry/service"
	"github.com/smallbiznis/myinvois/internal/observability/logger"
	"go.uber.org/zap"
)

// errNonCompliant marks a completed check whose subject failed. It exits with code 2 so
// scripts can tell it apart from usage and I/O errors.
var errNonCompliant = errors.New("non-compliant")

func exitCode(err error) int {
	if errors.Is(err, errNonCompliant) {
		return 2
	}
	return 1
}

// newLocalService wires the compliance service without a database or HTTP server.
// Industry overrides from INDUSTRY_OVERRIDES_FILE still apply.
func newLocalService(verbose bool) (compliancedomain.Service, *zap.Logger, error) {
	cfg := config.Load()

	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logger.New(nil, logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.AppVersion,
		Level:       level,
		Format:      "console",
		OutputPath:  "stderr",
	})
	if err != nil {
		return nil, nil, err
	}

	catalog, err := industryservice.New(log, nil, cfg.IndustryOverridesFile)
	if err != nil {
		return nil, nil, err
	}
	node, err := RegisterSnowflake(cfg)
	if err != nil {
		return nil, nil, err
	}

	policy := consolidation.DefaultPolicy()
	svc := complianceservice.NewService(complianceservice.ServiceParam{
		Log:       log,
		GenID:     node,
		Catalog:   catalog,
		Evaluator: rules.NewEvaluator(rules.DefaultRegistry(policy), log),
		Policy:    policy,
	})
	return svc, log, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
