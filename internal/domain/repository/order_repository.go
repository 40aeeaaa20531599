package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// OrderFilter filtros del listado de pedidos.
type OrderFilter struct {
	UserID string // vacío = todos los usuarios de la empresa
	Status string
	Limit  int
	Offset int
}

// OrderRepository define el puerto de persistencia para Order (cabecera + líneas).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Order, error)
	List(ctx context.Context, companyID string, f OrderFilter) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, companyID, id, status string) error
	UpdatePayment(ctx context.Context, companyID, id, paymentStatus, intentID string) error
	// SalesSince total vendido (pedidos no cancelados) y número de pedidos desde from.
	SalesSince(ctx context.Context, companyID string, from time.Time) (decimal.Decimal, int, error)
	CountByStatus(ctx context.Context, companyID string) (map[string]int, error)
}
