package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
)

// SupplierHandler proveedores y pagos a proveedores (rol accounts).
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

func page(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return p, domain.Invalid("query", "parámetros inválidos")
	}
	return p, nil
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	p, err := page(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), p)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Get GET /api/suppliers/:id
func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Update PUT /api/suppliers/:id
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete DELETE /api/suppliers/:id. 409 si el proveedor tiene pagos registrados.
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterPayment godoc
// @Summary      Registrar pago a proveedor
// @Tags         supplier-payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierPaymentRequest  true  "Pago"
// @Success      201   {object}  dto.SupplierPaymentResponse
// @Router       /api/supplier-payments [post]
func (h *SupplierHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.SupplierPaymentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterPayment(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// ListPayments GET /api/supplier-payments y GET /api/supplier-payments/supplier/:id
func (h *SupplierHandler) ListPayments(c *fiber.Ctx) error {
	p, err := page(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListPayments(c.UserContext(), GetCompanyID(c), c.Params("id"), p)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
