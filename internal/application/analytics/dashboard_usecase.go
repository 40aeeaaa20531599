// Package analytics contiene los casos de uso de reportes del panel de administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// DefaultLowStockMinimum stock a partir del cual un producto cuenta como bajo.
var DefaultLowStockMinimum = decimal.NewFromInt(5)

// DashboardUseCase genera los KPIs del día y del mes en curso para GET /api/admin/stats.
//
// Fuente de datos: repositorios de pedidos, productos y leads (consultas read-only).
type DashboardUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	leads    repository.LeadRepository
	minimum  decimal.Decimal
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(orders repository.OrderRepository, products repository.ProductRepository, leads repository.LeadRepository) *DashboardUseCase {
	return &DashboardUseCase{
		orders:   orders,
		products: products,
		leads:    leads,
		minimum:  DefaultLowStockMinimum,
		now:      time.Now,
	}
}

// GetStats construye el AdminStatsDTO para la empresa indicada.
//
// Cinco consultas en paralelo:
//  1. SalesSince(hoy)    → TodaySales + TodayOrders
//  2. SalesSince(mes)    → MonthlySales + MonthlyOrders
//  3. CountByStatus      → OrdersByStatus
//  4. CountLowStock      → LowStockCount
//  5. CountOpen (leads)  → OpenLeads
func (uc *DashboardUseCase) GetStats(ctx context.Context, companyID string) (*dto.AdminStatsDTO, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := &dto.AdminStatsDTO{LowStockMinimum: uc.minimum, DateLabel: monthLabel(now)}

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, n, err := uc.orders.SalesSince(gctx, companyID, todayStart)
		if err != nil {
			return fmt.Errorf("stats: ventas de hoy: %w", err)
		}
		out.TodaySales, out.TodayOrders = total.Round(2), n
		return nil
	})
	g.Go(func() error {
		total, n, err := uc.orders.SalesSince(gctx, companyID, monthStart)
		if err != nil {
			return fmt.Errorf("stats: ventas del mes: %w", err)
		}
		out.MonthlySales, out.MonthlyOrders = total.Round(2), n
		return nil
	})
	g.Go(func() error {
		byStatus, err := uc.orders.CountByStatus(gctx, companyID)
		if err != nil {
			return fmt.Errorf("stats: pedidos por estado: %w", err)
		}
		out.OrdersByStatus = byStatus
		return nil
	})
	g.Go(func() error {
		n, err := uc.products.CountLowStock(gctx, companyID, uc.minimum)
		if err != nil {
			return fmt.Errorf("stats: stock bajo: %w", err)
		}
		out.LowStockCount = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.leads.CountOpen(gctx, companyID)
		if err != nil {
			return fmt.Errorf("stats: leads abiertos: %w", err)
		}
		out.OpenLeads = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.OrdersByStatus == nil {
		out.OrdersByStatus = map[string]int{}
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
