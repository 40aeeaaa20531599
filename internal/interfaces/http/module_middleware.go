package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService; el uso de interfaz evita el import circular.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error)
}

// RequireModule verifica que la empresa del token tenga el módulo activo
// (get_company_modules). Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 MODULE_DISABLED      → módulo no habilitado para la empresa.
//   - 503 MODULE_CHECK_FAILED  → fallo de infraestructura al consultar la DB.
//   - 401 UNAUTHORIZED         → no hay company_id en el contexto.
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "company_id no encontrado en el token")
		}

		active, err := checker.HasActiveModule(c.UserContext(), companyID, moduleName)
		if err != nil {
			return fail(c, fiber.StatusServiceUnavailable, "MODULE_CHECK_FAILED", "no se pudo verificar el módulo, intente más tarde")
		}
		if !active {
			return fail(c, fiber.StatusForbidden, "MODULE_DISABLED", "el módulo '"+moduleName+"' no está activo para esta empresa")
		}
		return c.Next()
	}
}
