package compliance

import (
	"github.com/smallbiznis/myinvois/internal/compliance/consolidation"
	"github.com/smallbiznis/myinvois/internal/compliance/rules"
	"github.com/smallbiznis/myinvois/internal/compliance/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("compliance.service",
	fx.Provide(consolidation.DefaultPolicy),
	fx.Provide(rules.DefaultRegistry),
	fx.Provide(func(registry *rules.Registry, log *zap.Logger) *rules.Evaluator {
		return rules.NewEvaluator(registry, log)
	}),
	fx.Provide(service.NewService),
)
