package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. StockQuantity se ajusta con update_stock/decrement_quantity.
type Product struct {
	ID            string
	CompanyID     string
	CategoryID    string // vacío si no tiene categoría
	SKU           string
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity decimal.Decimal
	Unit          string // kg, unit, bunch...
	ImageURL      string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
