package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/application/auth"
	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
)

// AuthHandler maneja registro de clientes, login, logout y perfil propio.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar cliente
// @Description  Crea un usuario con rol user en la empresa resuelta por subdominio.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      404   {object}  dto.ErrorEnvelope
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorEnvelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Revoca el token actual e invalida la empresa y los permisos cacheados de la sesión.
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), GetClaims(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Perfil propio
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetCompanyID(c), GetUserID(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdateMe godoc
// @Summary      Editar perfil propio
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/auth/me [put]
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
