package repository

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error)
}

// SupplierPaymentRepository define el puerto de persistencia para SupplierPayment.
type SupplierPaymentRepository interface {
	Create(ctx context.Context, p *entity.SupplierPayment) error
	List(ctx context.Context, companyID, supplierID string, limit, offset int) ([]*entity.SupplierPayment, error)
}
