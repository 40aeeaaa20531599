package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// SupplierUseCase proveedores y pagos a proveedores (compras).
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
	payments  repository.SupplierPaymentRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(suppliers repository.SupplierRepository, payments repository.SupplierPaymentRepository) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers, payments: payments}
}

// Create registra un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	return dto.ToSupplierResponse(s), nil
}

// Get proveedor por id.
func (uc *SupplierUseCase) Get(ctx context.Context, companyID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToSupplierResponse(s), nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, companyID, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s, err := uc.suppliers.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Name = in.Name
	s.ContactName = in.ContactName
	s.Email = in.Email
	s.Phone = in.Phone
	s.Address = in.Address
	s.UpdatedAt = time.Now()
	if err := uc.suppliers.Update(ctx, s); err != nil {
		return nil, err
	}
	return dto.ToSupplierResponse(s), nil
}

// Delete elimina el proveedor. ErrConflict si tiene pagos registrados.
func (uc *SupplierUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.suppliers.Delete(ctx, companyID, id)
}

// List proveedores de la empresa.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	list, err := uc.suppliers.List(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *dto.ToSupplierResponse(s))
	}
	return out, nil
}

// RegisterPayment registra un pago a un proveedor de la empresa. PaidAt por defecto ahora.
func (uc *SupplierUseCase) RegisterPayment(ctx context.Context, companyID string, in dto.SupplierPaymentRequest) (*dto.SupplierPaymentResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s, err := uc.suppliers.GetByID(ctx, companyID, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.Invalid("supplier_id", "el proveedor no existe")
	}
	now := time.Now()
	paidAt := now
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}
	p := &entity.SupplierPayment{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		SupplierID: s.ID,
		Amount:     in.Amount.Round(2),
		Method:     in.Method,
		Reference:  in.Reference,
		Notes:      in.Notes,
		PaidAt:     paidAt,
		CreatedAt:  now,
	}
	if err := uc.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return dto.ToSupplierPaymentResponse(p), nil
}

// ListPayments pagos de la empresa; supplierID vacío = todos los proveedores.
func (uc *SupplierUseCase) ListPayments(ctx context.Context, companyID, supplierID string, page dto.PageRequest) ([]dto.SupplierPaymentResponse, error) {
	page.DefaultPage()
	if supplierID != "" {
		s, err := uc.suppliers.GetByID(ctx, companyID, supplierID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.ErrNotFound
		}
	}
	list, err := uc.payments.List(ctx, companyID, supplierID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *dto.ToSupplierPaymentResponse(p))
	}
	return out, nil
}
