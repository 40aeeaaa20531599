package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	CategoryID    string          `json:"category_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	Unit          string          `json:"unit"`
	ImageURL      string          `json:"image_url"`
	IsActive      *bool           `json:"is_active"`
}

// Validate SKU y nombre obligatorios; precio y stock no negativos.
func (r *CreateProductRequest) Validate() error {
	r.SKU = strings.TrimSpace(r.SKU)
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.SKU == "":
		return domain.Required("sku")
	case r.Name == "":
		return domain.Required("name")
	case r.Price.IsNegative():
		return domain.Invalid("price", "no puede ser negativo")
	case r.StockQuantity.IsNegative():
		return domain.Invalid("stock_quantity", "no puede ser negativo")
	}
	return nil
}

// UpdateProductRequest entrada para actualizar un producto. El stock se ajusta aparte.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id"`
	SKU         *string          `json:"sku"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Unit        *string          `json:"unit"`
	ImageURL    *string          `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
}

// AdjustStockRequest ajuste manual de stock: Delta positivo (entrada) o negativo (salida).
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason"`
}

// ProductQuery filtros del listado de productos.
type ProductQuery struct {
	PageRequest
	CategoryID string `query:"category_id"`
	Search     string `query:"q"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	CategoryID    string          `json:"category_id,omitempty"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	Unit          string          `json:"unit"`
	ImageURL      string          `json:"image_url"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse convierte la entidad a DTO.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		CategoryID:    p.CategoryID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Unit:          p.Unit,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Validate nombre obligatorio.
func (r *CategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return domain.Required("name")
	}
	return nil
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCategoryResponse convierte la entidad a DTO.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
	}
}
