package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
)

// AccessHandler expone permisos, menú filtrado y decisión del guard para el frontend.
type AccessHandler struct {
	uc *usecase.AccessUseCase
}

// NewAccessHandler construye el handler.
func NewAccessHandler(uc *usecase.AccessUseCase) *AccessHandler {
	return &AccessHandler{uc: uc}
}

// Permissions godoc
// @Summary      Permisos de la sesión
// @Description  Permisos y módulos del usuario en la empresa. Un fallo de carga devuelve listas vacías.
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PermissionsResponse
// @Router       /api/access/permissions [get]
func (h *AccessHandler) Permissions(c *fiber.Ctx) error {
	e := GetSession(c)
	if e == nil {
		return domain.ErrUnauthorized
	}
	out, err := h.uc.Permissions(c.UserContext(), e)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Menu godoc
// @Summary      Menú del dashboard
// @Description  Árbol de navegación filtrado por roles, permisos y módulos del usuario.
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  menu.Node
// @Router       /api/access/menu [get]
func (h *AccessHandler) Menu(c *fiber.Ctx) error {
	e := GetSession(c)
	if e == nil {
		return domain.ErrUnauthorized
	}
	out, err := h.uc.Menu(c.UserContext(), e)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// CheckRoute godoc
// @Summary      Guard de ruta del dashboard
// @Description  Devuelve loading, unauthenticated (/login), unauthorized (/) o authorized. El token es opcional.
// @Tags         access
// @Produce      json
// @Param        path  query  string  true  "Ruta del dashboard"
// @Success      200  {object}  dto.RouteCheckResponse
// @Router       /api/access/routes/check [get]
func (h *AccessHandler) CheckRoute(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return domain.Required("path")
	}
	out, err := h.uc.CheckRoute(c.UserContext(), GetSession(c), path)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
