package repository

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	// Create asigna Number con el siguiente consecutivo de la empresa.
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	GetByOrder(ctx context.Context, companyID, orderID string) (*entity.Invoice, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
	UpdateStatus(ctx context.Context, companyID, id, status string) error
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByProviderID(ctx context.Context, providerID string) (*entity.Payment, error)
	ListByOrder(ctx context.Context, companyID, orderID string) ([]*entity.Payment, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
