// Package payment implementa ports.PaymentGateway con Stripe.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/jhoicas/freshbreeze-api/internal/application/ports"
)

var _ ports.PaymentGateway = (*StripeGateway)(nil)

// zeroDecimal monedas que Stripe cobra sin unidades menores.
var zeroDecimal = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true, "krw": true,
	"mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true, "vuv": true, "xaf": true,
	"xof": true, "xpf": true,
}

// StripeGateway cliente de la API de Stripe con su secreto de webhook.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway construye el gateway. secretKey vacío es un error de configuración.
func NewStripeGateway(secretKey, webhookSecret string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("payment: STRIPE_SECRET_KEY es obligatorio")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, webhookSecret: webhookSecret}, nil
}

// ToMinorUnits convierte un importe a la unidad mínima de la moneda (centavos).
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	if zeroDecimal[strings.ToLower(currency)] {
		return amount.Round(0).IntPart()
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromMinorUnits operación inversa de ToMinorUnits.
func FromMinorUnits(amount int64, currency string) decimal.Decimal {
	if zeroDecimal[strings.ToLower(currency)] {
		return decimal.NewFromInt(amount)
	}
	return decimal.New(amount, -2)
}

// CreateIntent crea un PaymentIntent con métodos de pago automáticos. El pedido y la
// empresa viajan en metadata para reconciliar el webhook.
func (g *StripeGateway) CreateIntent(ctx context.Context, orderID, companyID string, amount decimal.Decimal, currency string) (*ports.PaymentIntent, error) {
	currency = strings.ToLower(currency)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(ToMinorUnits(amount, currency)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", orderID)
	params.AddMetadata("company_id", companyID)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment: crear PaymentIntent: %w", err)
	}
	return &ports.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       FromMinorUnits(pi.Amount, string(pi.Currency)),
		Currency:     string(pi.Currency),
	}, nil
}

// ParseEvent verifica la firma Stripe-Signature y extrae la intención afectada.
func (g *StripeGateway) ParseEvent(payload []byte, signature string) (*ports.PaymentEvent, error) {
	if g.webhookSecret == "" {
		return nil, fmt.Errorf("payment: STRIPE_WEBHOOK_SECRET no configurado")
	}
	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("payment: firma de webhook: %w", err)
	}
	return decodeEvent(ev)
}

func decodeEvent(ev stripe.Event) (*ports.PaymentEvent, error) {
	out := &ports.PaymentEvent{Type: string(ev.Type)}
	if ev.Data == nil {
		return out, nil
	}
	switch {
	case strings.HasPrefix(out.Type, "payment_intent."):
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("payment: decodificar PaymentIntent: %w", err)
		}
		out.IntentID = pi.ID
		out.Status = string(pi.Status)
		out.OrderID = pi.Metadata["order_id"]
	case out.Type == "charge.refunded":
		var ch stripe.Charge
		if err := json.Unmarshal(ev.Data.Raw, &ch); err != nil {
			return nil, fmt.Errorf("payment: decodificar Charge: %w", err)
		}
		if ch.PaymentIntent != nil {
			out.IntentID = ch.PaymentIntent.ID
		}
		out.Status = "refunded"
		out.OrderID = ch.Metadata["order_id"]
	}
	return out, nil
}
