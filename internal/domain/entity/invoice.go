package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
	InvoiceStatusVoid   = "void"
)

// Invoice factura generada a partir de un pedido.
type Invoice struct {
	ID        string
	CompanyID string
	OrderID   string
	Number    string // INV-000001, consecutivo por empresa
	Status    string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	IssuedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
