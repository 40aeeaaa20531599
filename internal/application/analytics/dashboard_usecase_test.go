package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
)

func seedOrder(t *testing.T, store *testutil.Store, companyID, status string, total int64, at time.Time) {
	t.Helper()
	require.NoError(t, store.Orders().Create(context.Background(), &entity.Order{
		ID:        at.Format(time.RFC3339Nano) + status,
		CompanyID: companyID,
		UserID:    "u1",
		Status:    status,
		Total:     decimal.NewFromInt(total),
		CreatedAt: at,
		UpdatedAt: at,
	}))
}

func TestGetStats_AgregaDiaMesYEstado(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	other := store.SeedCompany("globex")
	now := time.Date(2026, time.October, 17, 15, 0, 0, 0, time.UTC)

	seedOrder(t, store, acme.ID, entity.OrderStatusPending, 30, now.Add(-time.Hour))
	seedOrder(t, store, acme.ID, entity.OrderStatusDelivered, 20, now.AddDate(0, 0, -5))
	seedOrder(t, store, acme.ID, entity.OrderStatusCancelled, 99, now.Add(-2*time.Hour))
	seedOrder(t, store, acme.ID, entity.OrderStatusDelivered, 50, now.AddDate(0, -1, 0))
	seedOrder(t, store, other.ID, entity.OrderStatusPending, 1000, now.Add(-time.Hour))

	store.SeedProduct(acme.ID, "MANGO", 2, 3)
	store.SeedProduct(acme.ID, "PERA", 2, 40)
	require.NoError(t, store.Leads().Create(context.Background(), &entity.Lead{ID: "l1", CompanyID: acme.ID, Status: entity.LeadStatusNew}))
	require.NoError(t, store.Leads().Create(context.Background(), &entity.Lead{ID: "l2", CompanyID: acme.ID, Status: entity.LeadStatusWon}))

	uc := NewDashboardUseCase(store.Orders(), store.Products(), store.Leads())
	uc.now = func() time.Time { return now }

	stats, err := uc.GetStats(context.Background(), acme.ID)
	require.NoError(t, err)
	assert.True(t, stats.TodaySales.Equal(decimal.NewFromInt(30)), stats.TodaySales.String())
	assert.Equal(t, 1, stats.TodayOrders)
	assert.True(t, stats.MonthlySales.Equal(decimal.NewFromInt(50)), stats.MonthlySales.String())
	assert.Equal(t, 2, stats.MonthlyOrders)
	assert.Equal(t, 1, stats.OrdersByStatus[entity.OrderStatusCancelled])
	assert.Equal(t, 2, stats.OrdersByStatus[entity.OrderStatusDelivered])
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 1, stats.OpenLeads)
	assert.Equal(t, "Octubre 2026", stats.DateLabel)
}

func TestGetStats_EmpresaVacia(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc := NewDashboardUseCase(store.Orders(), store.Products(), store.Leads())

	stats, err := uc.GetStats(context.Background(), acme.ID)
	require.NoError(t, err)
	assert.True(t, stats.TodaySales.IsZero())
	assert.NotNil(t, stats.OrdersByStatus)
}
