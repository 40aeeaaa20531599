package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/freshbreeze-api/internal/application/analytics"
	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
)

// AdminHandler endpoints del panel de administración: KPIs y gestión de usuarios.
type AdminHandler struct {
	stats *appanalytics.DashboardUseCase
	users *usecase.UserUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(stats *appanalytics.DashboardUseCase, users *usecase.UserUseCase) *AdminHandler {
	return &AdminHandler{stats: stats, users: users}
}

// Stats devuelve los KPIs del día y del mes en curso.
// GET /api/admin/stats
//
// Respuesta: AdminStatsDTO (today_sales, monthly_sales, orders_by_status,
// low_stock_count, open_leads, date_label). Las fechas se calculan en el servidor.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	out, err := h.stats.GetStats(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Users godoc
// @Summary      Usuarios de la empresa
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	p, err := page(c)
	if err != nil {
		return err
	}
	out, err := h.users.List(c.UserContext(), GetCompanyID(c), p)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdateRoles godoc
// @Summary      Reemplazar roles de un usuario
// @Description  Los permisos cacheados del usuario se descartan; el cambio aplica sin nuevo login.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del usuario"
// @Param        body  body  dto.UpdateRolesRequest  true  "Roles"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/admin/users/{id}/roles [put]
func (h *AdminHandler) UpdateRoles(c *fiber.Ctx) error {
	var in dto.UpdateRolesRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.users.UpdateRoles(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
