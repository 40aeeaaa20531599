package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/application/billing"
	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/ports"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
)

// fakeGateway pasarela en memoria: la firma válida es "ok" y el evento se toma de next.
type fakeGateway struct {
	intents   int
	amount    decimal.Decimal
	createErr error
	next      ports.PaymentEvent
}

func (g *fakeGateway) CreateIntent(_ context.Context, orderID, _ string, amount decimal.Decimal, currency string) (*ports.PaymentIntent, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.intents++
	g.amount = amount
	return &ports.PaymentIntent{
		ID:           "pi_" + orderID,
		ClientSecret: "secret_" + orderID,
		Status:       "requires_payment_method",
		Amount:       amount,
		Currency:     currency,
	}, nil
}

func (g *fakeGateway) ParseEvent(_ []byte, signature string) (*ports.PaymentEvent, error) {
	if signature != "ok" {
		return nil, errors.New("firma inválida")
	}
	ev := g.next
	return &ev, nil
}

func newPayments(store *testutil.Store, gw *fakeGateway) *billing.PaymentUseCase {
	return billing.NewPaymentUseCase(store.Orders(), store.Payments(), store.Invoices(), store, gw, "", zerolog.Nop())
}

func TestCreateIntent_DejaPedidoPendiente(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	o := store.SeedOrder(acme.ID, "u1", testutil.Item("p", "Mango", 2, "3.25"))
	gw := &fakeGateway{}
	uc := newPayments(store, gw)

	out, err := uc.CreateIntent(context.Background(), acme.ID, "u1", dto.CreatePaymentIntentRequest{OrderID: o.ID})
	require.NoError(t, err)
	assert.Equal(t, "pi_"+o.ID, out.IntentID)
	assert.Equal(t, "secret_"+o.ID, out.ClientSecret)
	assert.Equal(t, "usd", out.Currency)
	assert.True(t, gw.amount.Equal(decimal.RequireFromString("6.5")))

	order, err := store.Orders().GetByID(context.Background(), acme.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, out.IntentID, order.PaymentIntentID)

	list, err := uc.ListByOrder(context.Background(), acme.ID, "u1", o.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCreateIntent_PedidoDeOtroCliente(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	o := store.SeedOrder(acme.ID, "u1", testutil.Item("p", "Mango", 1, "3"))
	gw := &fakeGateway{}
	uc := newPayments(store, gw)

	_, err := uc.CreateIntent(context.Background(), acme.ID, "u2", dto.CreatePaymentIntentRequest{OrderID: o.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, gw.intents)

	_, err = uc.ListByOrder(context.Background(), acme.ID, "u2", o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateIntent_PedidoPagadoOCancelado(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	pagado := store.SeedOrder(acme.ID, "u1", testutil.Item("p", "Mango", 1, "3"))
	require.NoError(t, store.Orders().UpdatePayment(context.Background(), acme.ID, pagado.ID, entity.PaymentStatusPaid, ""))
	cancelado := store.SeedOrder(acme.ID, "u1", testutil.Item("p", "Mango", 1, "3"))
	require.NoError(t, store.Orders().UpdateStatus(context.Background(), acme.ID, cancelado.ID, entity.OrderStatusCancelled))
	uc := newPayments(store, &fakeGateway{})

	for _, id := range []string{pagado.ID, cancelado.ID} {
		_, err := uc.CreateIntent(context.Background(), acme.ID, "", dto.CreatePaymentIntentRequest{OrderID: id})
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
}

func TestCreateIntent_FalloDeLaPasarela(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	o := store.SeedOrder(acme.ID, "u1", testutil.Item("p", "Mango", 1, "3"))
	uc := newPayments(store, &fakeGateway{createErr: errors.New("card_declined")})

	_, err := uc.CreateIntent(context.Background(), acme.ID, "u1", dto.CreatePaymentIntentRequest{OrderID: o.ID})
	assert.ErrorIs(t, err, domain.ErrUpstream)

	order, err := store.Orders().GetByID(context.Background(), acme.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, order.PaymentStatus)
}

func TestHandleWebhook_PagoExitosoMarcaPedidoYFactura(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	o := store.SeedOrder(acme.ID, "u1", testutil.Item("p", "Mango", 1, "3"))
	gw := &fakeGateway{}
	uc := newPayments(store, gw)
	ctx := context.Background()

	intent, err := uc.CreateIntent(ctx, acme.ID, "u1", dto.CreatePaymentIntentRequest{OrderID: o.ID})
	require.NoError(t, err)
	inv, err := billing.NewInvoiceUseCase(store.Invoices(), store.Orders(), zerolog.Nop()).
		CreateFromOrder(ctx, acme.ID, dto.CreateInvoiceRequest{OrderID: o.ID})
	require.NoError(t, err)
	require.Equal(t, entity.InvoiceStatusIssued, inv.Status)

	gw.next = ports.PaymentEvent{Type: billing.EventPaymentSucceeded, IntentID: intent.IntentID, Status: "succeeded"}
	require.NoError(t, uc.HandleWebhook(ctx, []byte(`{}`), "ok"))
	// reenvío idempotente
	require.NoError(t, uc.HandleWebhook(ctx, []byte(`{}`), "ok"))

	order, err := store.Orders().GetByID(ctx, acme.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, order.PaymentStatus)

	got, err := store.Invoices().GetByID(ctx, acme.ID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)

	pays, err := uc.ListByOrder(ctx, acme.ID, "", o.ID)
	require.NoError(t, err)
	assert.Equal(t, "succeeded", pays[0].Status)
}

func TestHandleWebhook_PagoFallido(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	o := store.SeedOrder(acme.ID, "u1", testutil.Item("p", "Mango", 1, "3"))
	gw := &fakeGateway{}
	uc := newPayments(store, gw)

	intent, err := uc.CreateIntent(context.Background(), acme.ID, "u1", dto.CreatePaymentIntentRequest{OrderID: o.ID})
	require.NoError(t, err)
	gw.next = ports.PaymentEvent{Type: billing.EventPaymentFailed, IntentID: intent.IntentID, Status: "requires_payment_method_failed"}
	require.NoError(t, uc.HandleWebhook(context.Background(), nil, "ok"))

	order, err := store.Orders().GetByID(context.Background(), acme.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, order.PaymentStatus)
}

func TestHandleWebhook_FirmaInvalidaYEventosAjenos(t *testing.T) {
	store := testutil.NewStore()
	gw := &fakeGateway{}
	uc := newPayments(store, gw)

	err := uc.HandleWebhook(context.Background(), nil, "mala")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	gw.next = ports.PaymentEvent{Type: "customer.created"}
	assert.NoError(t, uc.HandleWebhook(context.Background(), nil, "ok"))

	gw.next = ports.PaymentEvent{Type: billing.EventPaymentSucceeded, IntentID: "pi_desconocido", Status: "succeeded"}
	assert.NoError(t, uc.HandleWebhook(context.Background(), nil, "ok"))
}
