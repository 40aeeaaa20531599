package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// InvoiceUseCase emite facturas a partir de pedidos. Una factura por pedido; el número
// es consecutivo por empresa y lo asigna el repositorio.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	orders   repository.OrderRepository
	log      zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoices repository.InvoiceRepository, orders repository.OrderRepository, log zerolog.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, orders: orders, log: log}
}

// Totals subtotal de las líneas, impuesto a taxRate (%) y total, redondeados a 2 decimales.
func Totals(items []entity.OrderItem, taxRate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal())
	}
	subtotal = subtotal.Round(2)
	tax = subtotal.Mul(taxRate).Div(hundred).Round(2)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

// CreateFromOrder factura un pedido no cancelado. ErrDuplicate si ya tiene factura.
// Si el pedido ya está pagado la factura nace en estado paid.
func (uc *InvoiceUseCase) CreateFromOrder(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, companyID, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: el pedido está cancelado", domain.ErrConflict)
	}
	existing, err := uc.invoices.GetByOrder(ctx, companyID, order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	subtotal, tax, total := Totals(order.Items, in.TaxRate)
	status := entity.InvoiceStatusIssued
	if order.PaymentStatus == entity.PaymentStatusPaid {
		status = entity.InvoiceStatusPaid
	}
	now := time.Now()
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		OrderID:   order.ID,
		Status:    status,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     total,
		IssuedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("invoice", inv.Number).Str("order_id", order.ID).Msg("factura emitida")
	return dto.ToInvoiceResponse(inv), nil
}

// Get factura por id.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToInvoiceResponse(inv), nil
}

// List facturas de la empresa, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := uc.invoices.List(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *dto.ToInvoiceResponse(inv))
	}
	return out, nil
}
