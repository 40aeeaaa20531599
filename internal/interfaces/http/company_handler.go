package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
)

// CompanyHandler alta de empresas y datos públicos por slug.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar empresa
// @Description  Crea la empresa, su usuario admin y los módulos por defecto. Devuelve el token del admin.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterCompanyRequest  true  "Empresa y administrador"
// @Success      201   {object}  dto.RegisterCompanyResponse
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/companies/register [post]
func (h *CompanyHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, out)
}

// GetBySlug godoc
// @Summary      Empresa por slug
// @Tags         companies
// @Produce      json
// @Param        slug  path  string  true  "Slug (subdominio)"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      404   {object}  dto.ErrorEnvelope
// @Router       /api/companies/by-slug/{slug} [get]
func (h *CompanyHandler) GetBySlug(c *fiber.Ctx) error {
	out, err := h.uc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, out)
}
