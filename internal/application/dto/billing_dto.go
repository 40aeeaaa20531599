package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// CreateInvoiceRequest body para POST /api/invoices.
// TaxRate en porcentaje (ej. 19); cero si no aplica.
type CreateInvoiceRequest struct {
	OrderID string          `json:"order_id"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// Validate pedido obligatorio y tasa entre 0 y 100.
func (r *CreateInvoiceRequest) Validate() error {
	if strings.TrimSpace(r.OrderID) == "" {
		return domain.Required("order_id")
	}
	if r.TaxRate.IsNegative() || r.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return domain.Invalid("tax_rate", "debe estar entre 0 y 100")
	}
	return nil
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID       string          `json:"id"`
	OrderID  string          `json:"order_id"`
	Number   string          `json:"number"`
	Status   string          `json:"status"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	IssuedAt time.Time       `json:"issued_at"`
}

// ToInvoiceResponse convierte la entidad a DTO.
func ToInvoiceResponse(inv *entity.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:       inv.ID,
		OrderID:  inv.OrderID,
		Number:   inv.Number,
		Status:   inv.Status,
		Subtotal: inv.Subtotal,
		Tax:      inv.Tax,
		Total:    inv.Total,
		IssuedAt: inv.IssuedAt,
	}
}

// CreatePaymentIntentRequest body para POST /api/payments/intent.
type CreatePaymentIntentRequest struct {
	OrderID string `json:"order_id"`
}

// Validate pedido obligatorio.
func (r *CreatePaymentIntentRequest) Validate() error {
	if strings.TrimSpace(r.OrderID) == "" {
		return domain.Required("order_id")
	}
	return nil
}

// PaymentIntentResponse datos que el cliente necesita para confirmar el pago.
type PaymentIntentResponse struct {
	PaymentID    string          `json:"payment_id"`
	IntentID     string          `json:"intent_id"`
	ClientSecret string          `json:"client_secret"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

// PaymentResponse pago registrado de un pedido.
type PaymentResponse struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	Provider   string          `json:"provider"`
	ProviderID string          `json:"provider_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToPaymentResponse convierte la entidad a DTO.
func ToPaymentResponse(p *entity.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		Provider:   p.Provider,
		ProviderID: p.ProviderID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}
