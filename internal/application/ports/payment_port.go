package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentIntent intención de pago creada en la pasarela.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       decimal.Decimal
	Currency     string
}

// PaymentEvent evento verificado recibido por webhook.
type PaymentEvent struct {
	Type     string // payment_intent.succeeded, payment_intent.payment_failed...
	IntentID string
	Status   string
	OrderID  string
}

// PaymentGateway puerto de salida hacia la pasarela de pagos.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, orderID, companyID string, amount decimal.Decimal, currency string) (*PaymentIntent, error)
	// ParseEvent verifica la firma del webhook y decodifica el evento.
	ParseEvent(payload []byte, signature string) (*PaymentEvent, error)
}
