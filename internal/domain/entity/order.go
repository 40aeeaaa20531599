package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Estados de pago del pedido.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// orderTransitions estados destino permitidos desde cada estado.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransition informa si un pedido puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsOrderStatus informa si s es un estado de pedido conocido.
func IsOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// Order cabecera de pedido.
type Order struct {
	ID              string
	CompanyID       string
	UserID          string
	Status          string
	PaymentStatus   string
	PaymentIntentID string
	Total           decimal.Decimal
	ShippingName    string
	ShippingAddress string
	ShippingCity    string
	ShippingPhone   string
	Notes           string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem línea de pedido. UnitPrice se congela al momento de la compra.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Subtotal cantidad × precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
