package repository

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	EnableModules(ctx context.Context, companyID string, modules []string) error
	// ListModules módulos activos y vigentes (get_company_modules).
	ListModules(ctx context.Context, companyID string) ([]string, error)
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}
