// Package inventory reglas de stock del catálogo: ajustes manuales, reserva en checkout
// y devolución al cancelar. Las dos últimas reciben los repositorios de la transacción
// del pedido, así que un fallo de stock revierte también el cambio del pedido.
package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// Line cantidad de un producto a reservar o devolver.
type Line struct {
	ProductID string
	Quantity  decimal.Decimal
}

// Merge agrupa líneas del mismo producto sumando cantidades. El orden de salida es por
// ProductID para que dos checkouts concurrentes bloqueen filas en el mismo orden.
func Merge(lines []Line) []Line {
	acc := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		acc[l.ProductID] = acc[l.ProductID].Add(l.Quantity)
	}
	out := make([]Line, 0, len(acc))
	for id, q := range acc {
		out = append(out, Line{ProductID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Reserve descuenta cada línea con decrement_quantity. Devuelve ErrInsufficientStock
// (envuelto con el producto) en la primera que no alcance; el caller debe abortar la tx.
func Reserve(ctx context.Context, products repository.ProductRepository, companyID string, lines []Line) error {
	for _, l := range lines {
		if err := products.DecrementQuantity(ctx, companyID, l.ProductID, l.Quantity); err != nil {
			return fmt.Errorf("producto %s: %w", l.ProductID, err)
		}
	}
	return nil
}

// Release devuelve al stock las cantidades de un pedido cancelado (update_stock con delta positivo).
func Release(ctx context.Context, products repository.ProductRepository, companyID string, lines []Line) error {
	for _, l := range lines {
		if err := products.UpdateStock(ctx, companyID, l.ProductID, l.Quantity); err != nil {
			return fmt.Errorf("producto %s: %w", l.ProductID, err)
		}
	}
	return nil
}

// StockService ajustes manuales de stock (PATCH /products/:id/stock).
type StockService struct {
	products repository.ProductRepository
	log      zerolog.Logger
}

// NewStockService construye el servicio.
func NewStockService(products repository.ProductRepository, log zerolog.Logger) *StockService {
	return &StockService{products: products, log: log}
}

// Adjust suma Delta al stock del producto. Un resultado negativo devuelve ErrInsufficientStock
// y no modifica nada.
func (s *StockService) Adjust(ctx context.Context, companyID, userID, productID string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.Delta.IsZero() {
		return nil, domain.Invalid("delta", "no puede ser cero")
	}
	product, err := s.products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.products.UpdateStock(ctx, companyID, productID, in.Delta); err != nil {
		return nil, err
	}
	product, err = s.products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	s.log.Info().
		Str("company_id", companyID).
		Str("user_id", userID).
		Str("product_id", productID).
		Str("delta", in.Delta.String()).
		Str("reason", in.Reason).
		Msg("ajuste de stock")
	return dto.ToProductResponse(product), nil
}
