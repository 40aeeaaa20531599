package repository

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia para Lead.
type LeadRepository interface {
	Create(ctx context.Context, l *entity.Lead) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Lead, error)
	Update(ctx context.Context, l *entity.Lead) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Lead, error)
	CountOpen(ctx context.Context, companyID string) (int, error)
}
