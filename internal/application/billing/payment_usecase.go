package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/ports"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// Tipos de evento de la pasarela que cambian el estado del pedido.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventPaymentCanceled  = "payment_intent.canceled"
	EventPaymentRefunded  = "charge.refunded"
)

// eventOrderStatus payment_status del pedido según el tipo de evento.
var eventOrderStatus = map[string]string{
	EventPaymentSucceeded: entity.PaymentStatusPaid,
	EventPaymentFailed:    entity.PaymentStatusFailed,
	EventPaymentCanceled:  entity.PaymentStatusUnpaid,
	EventPaymentRefunded:  entity.PaymentStatusRefunded,
}

// PaymentUseCase cobro de pedidos con la pasarela y procesamiento de webhooks.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	invoices repository.InvoiceRepository
	tx       ports.TxRunner
	gateway  ports.PaymentGateway
	currency string
	log      zerolog.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	invoices repository.InvoiceRepository,
	tx ports.TxRunner,
	gateway ports.PaymentGateway,
	currency string,
	log zerolog.Logger,
) *PaymentUseCase {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentUseCase{
		orders:   orders,
		payments: payments,
		invoices: invoices,
		tx:       tx,
		gateway:  gateway,
		currency: currency,
		log:      log,
	}
}

// CreateIntent crea la intención de pago del total del pedido y deja el pedido en
// payment_status pending. ownerID no vacío exige que el pedido sea de ese usuario.
func (uc *PaymentUseCase) CreateIntent(ctx context.Context, companyID, ownerID string, in dto.CreatePaymentIntentRequest) (*dto.PaymentIntentResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, companyID, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (ownerID != "" && order.UserID != ownerID) {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: el pedido está cancelado", domain.ErrConflict)
	}
	if order.PaymentStatus == entity.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: el pedido ya está pagado", domain.ErrConflict)
	}
	if !order.Total.IsPositive() {
		return nil, domain.Invalid("order_id", "el pedido no tiene importe")
	}

	intent, err := uc.gateway.CreateIntent(ctx, order.ID, companyID, order.Total, uc.currency)
	if err != nil {
		uc.log.Error().Err(err).Str("order_id", order.ID).Msg("pasarela: crear intención de pago")
		return nil, &domain.UpstreamError{Service: "stripe", Err: err}
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		OrderID:    order.ID,
		Provider:   "stripe",
		ProviderID: intent.ID,
		Amount:     order.Total,
		Currency:   intent.Currency,
		Status:     intent.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.tx.Run(ctx, func(tx ports.TxRepos) error {
		if err := tx.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return tx.Orders.UpdatePayment(ctx, companyID, order.ID, entity.PaymentStatusPending, intent.ID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.PaymentIntentResponse{
		PaymentID:    payment.ID,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       intent.Status,
		Amount:       order.Total,
		Currency:     intent.Currency,
	}, nil
}

// ListByOrder pagos de un pedido. ownerID no vacío exige que el pedido sea de ese usuario.
func (uc *PaymentUseCase) ListByOrder(ctx context.Context, companyID, ownerID, orderID string) ([]dto.PaymentResponse, error) {
	order, err := uc.orders.GetByID(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (ownerID != "" && order.UserID != ownerID) {
		return nil, domain.ErrNotFound
	}
	list, err := uc.payments.ListByOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *dto.ToPaymentResponse(p))
	}
	return out, nil
}

// HandleWebhook verifica y aplica un evento de la pasarela. Eventos desconocidos o de
// intenciones que no son nuestras se ignoran. Reenvíos del mismo evento no cambian nada.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ev, err := uc.gateway.ParseEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: firma de webhook inválida", domain.ErrUnauthorized)
	}
	orderStatus, ok := eventOrderStatus[ev.Type]
	if !ok || ev.IntentID == "" {
		uc.log.Debug().Str("type", ev.Type).Msg("webhook ignorado")
		return nil
	}
	payment, err := uc.payments.GetByProviderID(ctx, ev.IntentID)
	if err != nil {
		return err
	}
	if payment == nil {
		uc.log.Warn().Str("intent_id", ev.IntentID).Msg("webhook de intención desconocida")
		return nil
	}
	if payment.Status == ev.Status {
		return nil
	}

	err = uc.tx.Run(ctx, func(tx ports.TxRepos) error {
		if err := tx.Payments.UpdateStatus(ctx, payment.ID, ev.Status); err != nil {
			return err
		}
		if err := tx.Orders.UpdatePayment(ctx, payment.CompanyID, payment.OrderID, orderStatus, ""); err != nil {
			return err
		}
		if orderStatus != entity.PaymentStatusPaid {
			return nil
		}
		inv, err := tx.Invoices.GetByOrder(ctx, payment.CompanyID, payment.OrderID)
		if err != nil || inv == nil || inv.Status != entity.InvoiceStatusIssued {
			return err
		}
		return tx.Invoices.UpdateStatus(ctx, payment.CompanyID, inv.ID, entity.InvoiceStatusPaid)
	})
	if errors.Is(err, domain.ErrNotFound) {
		uc.log.Warn().Str("order_id", payment.OrderID).Msg("webhook: el pedido ya no existe")
		return nil
	}
	if err != nil {
		return err
	}
	uc.log.Info().
		Str("company_id", payment.CompanyID).
		Str("order_id", payment.OrderID).
		Str("type", ev.Type).
		Str("payment_status", orderStatus).
		Msg("webhook de pago aplicado")
	return nil
}
