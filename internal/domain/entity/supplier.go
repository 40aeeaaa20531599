package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor de la empresa (compras).
type Supplier struct {
	ID          string
	CompanyID   string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SupplierPayment pago realizado a un proveedor.
type SupplierPayment struct {
	ID         string
	CompanyID  string
	SupplierID string
	Amount     decimal.Decimal
	Method     string // cash, transfer, card, check
	Reference  string
	Notes      string
	PaidAt     time.Time
	CreatedAt  time.Time
}
