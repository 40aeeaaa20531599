package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// SupplierRequest alta o edición de proveedor.
type SupplierRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// Validate nombre obligatorio.
func (r *SupplierRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Name == "" {
		return domain.Required("name")
	}
	return nil
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSupplierResponse convierte la entidad a DTO.
func ToSupplierResponse(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

var paymentMethods = map[string]bool{"cash": true, "transfer": true, "card": true, "check": true}

// SupplierPaymentRequest registro de un pago a proveedor.
type SupplierPaymentRequest struct {
	SupplierID string          `json:"supplier_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	PaidAt     *time.Time      `json:"paid_at"`
}

// Validate proveedor, monto positivo y método conocido.
func (r *SupplierPaymentRequest) Validate() error {
	r.Method = strings.ToLower(strings.TrimSpace(r.Method))
	switch {
	case strings.TrimSpace(r.SupplierID) == "":
		return domain.Required("supplier_id")
	case !r.Amount.IsPositive():
		return domain.Invalid("amount", "debe ser mayor que cero")
	case r.Method == "":
		return domain.Required("method")
	case !paymentMethods[r.Method]:
		return domain.Invalid("method", "debe ser cash, transfer, card o check")
	}
	return nil
}

// SupplierPaymentResponse salida de un pago a proveedor.
type SupplierPaymentResponse struct {
	ID         string          `json:"id"`
	SupplierID string          `json:"supplier_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	PaidAt     time.Time       `json:"paid_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToSupplierPaymentResponse convierte la entidad a DTO.
func ToSupplierPaymentResponse(p *entity.SupplierPayment) *SupplierPaymentResponse {
	if p == nil {
		return nil
	}
	return &SupplierPaymentResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		Amount:     p.Amount,
		Method:     p.Method,
		Reference:  p.Reference,
		Notes:      p.Notes,
		PaidAt:     p.PaidAt,
		CreatedAt:  p.CreatedAt,
	}
}
