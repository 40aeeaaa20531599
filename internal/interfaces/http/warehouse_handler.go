package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
)

// WarehouseHandler bodegas y asignación de encargados.
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorEnvelope
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
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
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// AssignManager godoc
// @Summary      Asignar encargado de bodega
// @Description  El usuario debe tener el rol warehouse_manager.
// @Tags         warehouse-managers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignManagerRequest  true  "Usuario y bodega"
// @Success      201   {object}  dto.WarehouseManagerResponse
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/warehouse-managers [post]
func (h *WarehouseHandler) AssignManager(c *fiber.Ctx) error {
	var in dto.AssignManagerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AssignManager(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// ListManagers GET /api/warehouse-managers
func (h *WarehouseHandler) ListManagers(c *fiber.Ctx) error {
	out, err := h.uc.ListManagers(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// RemoveManager DELETE /api/warehouse-managers/:id
func (h *WarehouseHandler) RemoveManager(c *fiber.Ctx) error {
	if err := h.uc.RemoveManager(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
