package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
)

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func checkoutOf(items ...dto.CheckoutItem) dto.CheckoutRequest {
	return dto.CheckoutRequest{Items: items, ShippingName: "Ana", ShippingAddress: "Calle 1 #2-3", ShippingCity: "Bogotá"}
}

func newOrders(store *testutil.Store) *usecase.OrderUseCase {
	return usecase.NewOrderUseCase(store.Orders(), store, zerolog.Nop())
}

// ─── Checkout ─────────────────────────────────────────────────────────────────

func TestCheckout_CongelaPreciosYDescuentaStock(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "MANGO", 3, 10)
	pera := store.SeedProduct(acme.ID, "PERA", 2, 5)
	uc := newOrders(store)

	out, err := uc.Checkout(context.Background(), acme.ID, "u1", checkoutOf(
		dto.CheckoutItem{ProductID: mango.ID, Quantity: qty(2)},
		dto.CheckoutItem{ProductID: pera.ID, Quantity: qty(1)},
		dto.CheckoutItem{ProductID: mango.ID, Quantity: qty(1)},
	))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, entity.PaymentStatusUnpaid, out.PaymentStatus)
	assert.Len(t, out.Items, 2)
	assert.True(t, out.Total.Equal(qty(11)), out.Total.String())
	assert.True(t, store.Stock(mango.ID).Equal(qty(7)))
	assert.True(t, store.Stock(pera.ID).Equal(qty(4)))
}

func TestCheckout_StockInsuficienteNoCreaPedidoNiDescuenta(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "MANGO", 3, 10)
	pera := store.SeedProduct(acme.ID, "PERA", 2, 1)
	uc := newOrders(store)

	_, err := uc.Checkout(context.Background(), acme.ID, "u1", checkoutOf(
		dto.CheckoutItem{ProductID: mango.ID, Quantity: qty(2)},
		dto.CheckoutItem{ProductID: pera.ID, Quantity: qty(5)},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.Stock(mango.ID).Equal(qty(10)), "la reserva parcial se revierte")

	list, err := uc.List(context.Background(), acme.ID, "", dto.OrderQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCheckout_ProductoDeOtraEmpresaNoDisponible(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	globex := store.SeedCompany("globex")
	ajeno := store.SeedProduct(globex.ID, "KIWI", 3, 10)
	uc := newOrders(store)

	_, err := uc.Checkout(context.Background(), acme.ID, "u1", checkoutOf(dto.CheckoutItem{ProductID: ajeno.ID, Quantity: qty(1)}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, store.Stock(ajeno.ID).Equal(qty(10)))
}

func TestCheckout_CarritoVacio(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	_, err := newOrders(store).Checkout(context.Background(), acme.ID, "u1", checkoutOf())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Estados ──────────────────────────────────────────────────────────────────

func TestUpdateStatus_TransicionesPermitidas(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "MANGO", 3, 10)
	uc := newOrders(store)
	o, err := uc.Checkout(context.Background(), acme.ID, "u1", checkoutOf(dto.CheckoutItem{ProductID: mango.ID, Quantity: qty(1)}))
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), acme.ID, o.ID, dto.UpdateOrderStatusRequest{Status: "delivered"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	for _, s := range []string{"processing", "shipped", "delivered"} {
		out, err := uc.UpdateStatus(context.Background(), acme.ID, o.ID, dto.UpdateOrderStatusRequest{Status: s})
		require.NoError(t, err, s)
		assert.Equal(t, s, out.Status)
	}

	_, err = uc.UpdateStatus(context.Background(), acme.ID, o.ID, dto.UpdateOrderStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateStatus(context.Background(), acme.ID, o.ID, dto.UpdateOrderStatusRequest{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancel_DevuelveStock(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "MANGO", 3, 10)
	uc := newOrders(store)
	o, err := uc.Checkout(context.Background(), acme.ID, "u1", checkoutOf(dto.CheckoutItem{ProductID: mango.ID, Quantity: qty(4)}))
	require.NoError(t, err)
	require.True(t, store.Stock(mango.ID).Equal(qty(6)))

	out, err := uc.Cancel(context.Background(), acme.ID, "u1", o.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, out.Status)
	assert.True(t, store.Stock(mango.ID).Equal(qty(10)))
}

func TestCancel_ClienteSoloSusPedidosPendientes(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "MANGO", 3, 10)
	uc := newOrders(store)
	o, err := uc.Checkout(context.Background(), acme.ID, "u1", checkoutOf(dto.CheckoutItem{ProductID: mango.ID, Quantity: qty(1)}))
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), acme.ID, "intruso", o.ID, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateStatus(context.Background(), acme.ID, o.ID, dto.UpdateOrderStatusRequest{Status: "processing"})
	require.NoError(t, err)
	_, err = uc.Cancel(context.Background(), acme.ID, "u1", o.ID, false)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// staff sí puede cancelar en processing.
	_, err = uc.Cancel(context.Background(), acme.ID, "admin", o.ID, true)
	assert.NoError(t, err)
}

func TestGetYList_ScopingPorUsuario(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "MANGO", 3, 10)
	uc := newOrders(store)
	o1, err := uc.Checkout(context.Background(), acme.ID, "u1", checkoutOf(dto.CheckoutItem{ProductID: mango.ID, Quantity: qty(1)}))
	require.NoError(t, err)
	_, err = uc.Checkout(context.Background(), acme.ID, "u2", checkoutOf(dto.CheckoutItem{ProductID: mango.ID, Quantity: qty(1)}))
	require.NoError(t, err)

	mine, err := uc.List(context.Background(), acme.ID, "u1", dto.OrderQuery{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, o1.ID, mine.Items[0].ID)

	all, err := uc.List(context.Background(), acme.ID, "", dto.OrderQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = uc.Get(context.Background(), acme.ID, o1.ID, "u2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
