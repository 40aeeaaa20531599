package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/application/billing"
	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
)

// HeaderStripeSignature firma HMAC del webhook.
const HeaderStripeSignature = "Stripe-Signature"

// PaymentHandler intenciones de pago y webhook de la pasarela.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// CreateIntent godoc
// @Summary      Crear intención de pago
// @Description  Crea un PaymentIntent en la pasarela por el total del pedido y devuelve el client_secret.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentIntentRequest  true  "Pedido a cobrar"
// @Success      201   {object}  dto.PaymentIntentResponse
// @Failure      409   {object}  dto.ErrorEnvelope
// @Failure      502   {object}  dto.ErrorEnvelope
// @Router       /api/payments/intent [post]
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var in dto.CreatePaymentIntentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateIntent(c.UserContext(), GetCompanyID(c), owner(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// ListByOrder godoc
// @Summary      Pagos de un pedido
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/payments/order/{id} [get]
func (h *PaymentHandler) ListByOrder(c *fiber.Ctx) error {
	out, err := h.uc.ListByOrder(c.UserContext(), GetCompanyID(c), owner(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Webhook godoc
// @Summary      Webhook de la pasarela de pagos
// @Description  Verifica la firma Stripe-Signature y actualiza pago, pedido y factura.
// @Tags         payments
// @Accept       json
// @Success      200
// @Failure      401  {object}  dto.ErrorEnvelope
// @Router       /api/payments/webhook [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	// Body() se reutiliza por fasthttp: se copia antes de verificar la firma.
	payload := append([]byte(nil), c.Body()...)
	if err := h.uc.HandleWebhook(c.UserContext(), payload, c.Get(HeaderStripeSignature)); err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, fiber.Map{"received": true})
}
