package industry

import (
	industrydomain "github.com/smallbiznis/myinvois/internal/industry/domain"
	"github.com/smallbiznis/myinvois/internal/industry/repository"
	"github.com/smallbiznis/myinvois/internal/industry/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("industry.service",
	fx.Provide(NewRepository),
	fx.Provide(service.NewCatalog),
)

type RepositoryParams struct {
	fx.In

	Conn *gorm.DB `optional:"true"`
}

// NewRepository yields a nil repository when no database is configured.
func NewRepository(p RepositoryParams) industrydomain.Repository {
	if p.Conn == nil {
		return nil
	}
	return repository.NewRepository(p.Conn)
}
