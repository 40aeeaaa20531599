package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/inventory"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
)

func TestMerge_AgrupaPorProductoYOrdena(t *testing.T) {
	out := inventory.Merge([]inventory.Line{
		{ProductID: "b", Quantity: decimal.NewFromInt(1)},
		{ProductID: "a", Quantity: decimal.NewFromInt(2)},
		{ProductID: "b", Quantity: decimal.NewFromInt(3)},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ProductID)
	assert.True(t, out[1].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestReserve_StockInsuficienteNoSigue(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	p := store.SeedProduct(acme.ID, "MANGO", 2, 1)

	err := inventory.Reserve(context.Background(), store.Products(), acme.ID, []inventory.Line{
		{ProductID: p.ID, Quantity: decimal.NewFromInt(3)},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.Stock(p.ID).Equal(decimal.NewFromInt(1)))
}

func TestReserveYRelease_Simetricos(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	p := store.SeedProduct(acme.ID, "PERA", 2, 10)
	lines := []inventory.Line{{ProductID: p.ID, Quantity: decimal.NewFromInt(4)}}

	require.NoError(t, inventory.Reserve(context.Background(), store.Products(), acme.ID, lines))
	assert.True(t, store.Stock(p.ID).Equal(decimal.NewFromInt(6)))
	require.NoError(t, inventory.Release(context.Background(), store.Products(), acme.ID, lines))
	assert.True(t, store.Stock(p.ID).Equal(decimal.NewFromInt(10)))
}

func TestAdjust_NoPermiteStockNegativo(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	p := store.SeedProduct(acme.ID, "UVA", 5, 2)
	svc := inventory.NewStockService(store.Products(), zerolog.Nop())

	_, err := svc.Adjust(context.Background(), acme.ID, "u1", p.ID, dto.AdjustStockRequest{Delta: decimal.NewFromInt(-3)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	out, err := svc.Adjust(context.Background(), acme.ID, "u1", p.ID, dto.AdjustStockRequest{Delta: decimal.NewFromInt(8), Reason: "compra"})
	require.NoError(t, err)
	assert.True(t, out.StockQuantity.Equal(decimal.NewFromInt(10)))
}

func TestAdjust_ProductoDeOtraEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	globex := store.SeedCompany("globex")
	p := store.SeedProduct(acme.ID, "UVA", 5, 2)
	svc := inventory.NewStockService(store.Products(), zerolog.Nop())

	_, err := svc.Adjust(context.Background(), globex.ID, "u1", p.ID, dto.AdjustStockRequest{Delta: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_DeltaCeroInvalido(t *testing.T) {
	svc := inventory.NewStockService(testutil.NewStore().Products(), zerolog.Nop())
	_, err := svc.Adjust(context.Background(), "c", "u", "p", dto.AdjustStockRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
