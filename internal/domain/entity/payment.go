package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment intento de cobro de un pedido en la pasarela.
type Payment struct {
	ID         string
	CompanyID  string
	OrderID    string
	Provider   string // stripe
	ProviderID string // PaymentIntent ID
	Amount     decimal.Decimal
	Currency   string
	Status     string // requires_payment_method, processing, succeeded, canceled...
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
