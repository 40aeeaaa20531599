package payment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), ToMinorUnits(decimal.RequireFromString("19.99"), "usd"))
	assert.Equal(t, int64(1000), ToMinorUnits(decimal.RequireFromString("10.004"), "eur"))
	assert.Equal(t, int64(500), ToMinorUnits(decimal.NewFromInt(500), "JPY"))
	assert.True(t, decimal.RequireFromString("19.99").Equal(FromMinorUnits(1999, "usd")))
}

func TestNewStripeGateway_RequiereClave(t *testing.T) {
	_, err := NewStripeGateway("", "whsec")
	assert.Error(t, err)
}

func signed(t *testing.T, secret, payload string) (string, []byte) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return sp.Header, sp.Payload
}

func TestParseEvent_PaymentIntentSucceeded(t *testing.T) {
	g, err := NewStripeGateway("sk_test_x", "whsec_test")
	require.NoError(t, err)
	header, body := signed(t, "whsec_test", `{
		"id": "evt_1", "object": "event", "type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_123", "object": "payment_intent", "status": "succeeded",
			"metadata": {"order_id": "o-1"}}}
	}`)

	ev, err := g.ParseEvent(body, header)
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.succeeded", ev.Type)
	assert.Equal(t, "pi_123", ev.IntentID)
	assert.Equal(t, "succeeded", ev.Status)
	assert.Equal(t, "o-1", ev.OrderID)
}

func TestParseEvent_ChargeRefunded(t *testing.T) {
	g, err := NewStripeGateway("sk_test_x", "whsec_test")
	require.NoError(t, err)
	header, body := signed(t, "whsec_test", `{
		"id": "evt_2", "object": "event", "type": "charge.refunded",
		"data": {"object": {"id": "ch_1", "object": "charge", "payment_intent": "pi_9", "metadata": {}}}
	}`)

	ev, err := g.ParseEvent(body, header)
	require.NoError(t, err)
	assert.Equal(t, "pi_9", ev.IntentID)
	assert.Equal(t, "refunded", ev.Status)
}

func TestParseEvent_FirmaInvalida(t *testing.T) {
	g, err := NewStripeGateway("sk_test_x", "whsec_test")
	require.NoError(t, err)
	header, body := signed(t, "otro_secreto", `{"id":"evt","object":"event","type":"payment_intent.succeeded"}`)

	_, err = g.ParseEvent(body, header)
	assert.Error(t, err)
}
