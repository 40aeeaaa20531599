package dto

import "github.com/shopspring/decimal"

// AdminStatsDTO respuesta de GET /api/admin/stats.
// Contiene los KPIs del día y del mes en curso más el estado operativo.
type AdminStatsDTO struct {
	// Métricas del día actual (00:00 – ahora)
	TodaySales  decimal.Decimal `json:"today_sales"`
	TodayOrders int             `json:"today_orders"`

	// Métricas del mes en curso (día 1 – hoy)
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyOrders int             `json:"monthly_orders"`

	OrdersByStatus  map[string]int  `json:"orders_by_status"`
	LowStockCount   int             `json:"low_stock_count"`
	LowStockMinimum decimal.Decimal `json:"low_stock_minimum"`
	OpenLeads       int             `json:"open_leads"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}
