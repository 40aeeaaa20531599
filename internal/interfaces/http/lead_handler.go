package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
)

// LeadHandler embudo comercial (rol sales).
type LeadHandler struct {
	uc *usecase.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LeadRequest  true  "Lead"
// @Success      201   {object}  dto.LeadResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.LeadRequest
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
// @Summary      Listar leads
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200  {array}  dto.LeadResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	p, err := page(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), c.Query("status"), p)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Get GET /api/leads/:id
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Update PUT /api/leads/:id
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var in dto.LeadRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdateStatus godoc
// @Summary      Mover lead en el embudo
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del lead"
// @Param        body  body  dto.LeadStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.LeadResponse
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.LeadStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete DELETE /api/leads/:id
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
