package migration

import (
	"context"

	"github.com/smallbiznis/myinvois/internal/config"
	"github.com/smallbiznis/myinvois/internal/industry/repository"
	"github.com/smallbiznis/myinvois/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(Apply),
)

type Params struct {
	fx.In

	Conn *gorm.DB `optional:"true"`
	Cfg  config.Config
	Log  *zap.Logger
}

// Apply brings the schema up to date and seeds the industry dataset. Postgres uses the
// embedded SQL migrations; other dialects fall back to gorm AutoMigrate.
func Apply(p Params) error {
	if p.Conn == nil {
		return nil
	}

	if p.Cfg.DBType == config.DBTypePostgres {
		sqlDB, err := p.Conn.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}
	} else if err := repository.AutoMigrate(p.Conn); err != nil {
		return err
	}

	if !p.Cfg.DBSeedIndustries {
		return nil
	}
	n, err := seed.EnsureIndustryCodes(context.Background(), repository.NewRepository(p.Conn))
	if err != nil {
		return err
	}
	if n > 0 {
		p.Log.Info("industry codes seeded", zap.Int("count", n))
	}
	return nil
}
