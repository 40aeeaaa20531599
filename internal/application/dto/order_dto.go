package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// CheckoutItem línea del carrito.
type CheckoutItem struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CheckoutRequest carrito y datos de envío.
type CheckoutRequest struct {
	Items           []CheckoutItem `json:"items"`
	ShippingName    string         `json:"shipping_name"`
	ShippingAddress string         `json:"shipping_address"`
	ShippingCity    string         `json:"shipping_city"`
	ShippingPhone   string         `json:"shipping_phone"`
	Notes           string         `json:"notes"`
}

// Validate al menos una línea, cantidades positivas y dirección de envío.
func (r *CheckoutRequest) Validate() error {
	if len(r.Items) == 0 {
		return domain.Required("items")
	}
	for _, it := range r.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return domain.Required("items.product_id")
		}
		if !it.Quantity.IsPositive() {
			return domain.Invalid("items.quantity", "debe ser mayor que cero")
		}
	}
	if strings.TrimSpace(r.ShippingAddress) == "" {
		return domain.Required("shipping_address")
	}
	return nil
}

// UpdateOrderStatusRequest cambio de estado.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderQuery filtros del listado de pedidos.
type OrderQuery struct {
	PageRequest
	Status string `query:"status"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	Total           decimal.Decimal     `json:"total"`
	ShippingName    string              `json:"shipping_name"`
	ShippingAddress string              `json:"shipping_address"`
	ShippingCity    string              `json:"shipping_city"`
	ShippingPhone   string              `json:"shipping_phone"`
	Notes           string              `json:"notes"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ToOrderResponse convierte la entidad a DTO.
func ToOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return &OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		Total:           o.Total,
		ShippingName:    o.ShippingName,
		ShippingAddress: o.ShippingAddress,
		ShippingCity:    o.ShippingCity,
		ShippingPhone:   o.ShippingPhone,
		Notes:           o.Notes,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
