package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// staffRoles roles que gestionan pedidos de cualquier cliente.
var staffRoles = []string{entity.RoleSales, entity.RoleAccounts, entity.RoleWarehouseManager}

// OrderHandler checkout y gestión de pedidos. También sirve el área de cliente (/customer).
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// owner usuario al que se limita la consulta: vacío para staff.
func owner(c *fiber.Ctx) string {
	if HasAnyRole(c, staffRoles...) {
		return ""
	}
	return GetUserID(c)
}

// Checkout godoc
// @Summary      Crear pedido (checkout)
// @Description  Reserva stock y crea el pedido en una sola transacción.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito y envío"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/orders [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Checkout(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar pedidos de la empresa
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	return h.list(c, "")
}

// Get godoc
// @Summary      Obtener pedido
// @Description  Staff ve cualquier pedido de la empresa; un cliente solo los suyos.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorEnvelope
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	return h.get(c, owner(c))
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Devuelve el stock. Un cliente solo puede cancelar sus pedidos pendientes.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorEnvelope
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	staff := HasAnyRole(c, entity.RoleSales, entity.RoleWarehouseManager)
	out, err := h.uc.Cancel(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), staff)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// MyOrders godoc
// @Summary      Mis pedidos
// @Tags         customer
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/customer/orders [get]
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	return h.list(c, GetUserID(c))
}

// MyOrder GET /api/customer/orders/:id
func (h *OrderHandler) MyOrder(c *fiber.Ctx) error {
	return h.get(c, GetUserID(c))
}

func (h *OrderHandler) list(c *fiber.Ctx, ownerID string) error {
	var q dto.OrderQuery
	if err := c.QueryParser(&q); err != nil {
		return domain.Invalid("query", "parámetros inválidos")
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), ownerID, q)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

func (h *OrderHandler) get(c *fiber.Ctx, ownerID string) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"), ownerID)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
