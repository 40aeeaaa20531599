package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	CategoryID string
	Search     string
	OnlyActive bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, f ProductFilter) ([]*entity.Product, error)
	// UpdateStock suma delta (positivo o negativo) al stock (update_stock).
	UpdateStock(ctx context.Context, companyID, productID string, delta decimal.Decimal) error
	// DecrementQuantity descuenta qty si hay stock suficiente (decrement_quantity).
	// Devuelve domain.ErrInsufficientStock si no alcanza.
	DecrementQuantity(ctx context.Context, companyID, productID string, qty decimal.Decimal) error
	CountLowStock(ctx context.Context, companyID string, threshold decimal.Decimal) (int, error)
}

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string) ([]*entity.Category, error)
}
