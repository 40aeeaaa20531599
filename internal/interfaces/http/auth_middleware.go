package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/session"
	"github.com/jhoicas/freshbreeze-api/pkg/jwt"
)

// Locals keys cargadas por los middlewares.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRoles     = "roles"
	LocalClaims    = "claims"
	LocalSession   = "session"
	LocalTenantID  = "tenant_id"
)

// Sessions lo que el middleware necesita del session.Store.
type Sessions interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Open(tokenID, userID, companyID string) *session.Entry
}

// bearer extrae el token del header Authorization. ok=false si el formato es incorrecto.
func bearer(header string) (token string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(parts[1])
	return token, token != ""
}

// authenticate valida el token y carga los locals. Devuelve el código de error si falla.
func authenticate(c *fiber.Ctx, secret string, sessions Sessions, header string) (code, msg string) {
	tokenString, valid := bearer(header)
	if !valid {
		return "INVALID_TOKEN", "formato: Bearer <token>"
	}
	claims, err := jwt.Parse(secret, tokenString)
	if err != nil {
		return "INVALID_TOKEN", "token inválido o expirado"
	}
	if sessions != nil {
		revoked, err := sessions.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			return "SESSION_CHECK_FAILED", "no se pudo verificar la sesión"
		}
		if revoked {
			return "INVALID_TOKEN", "sesión cerrada"
		}
		c.Locals(LocalSession, sessions.Open(claims.ID, claims.UserID, claims.CompanyID))
	}
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalCompanyID, claims.CompanyID)
	c.Locals(LocalRoles, claims.Roles)
	c.Locals(LocalClaims, claims)
	return "", ""
}

// AuthMiddleware valida el Bearer Token JWT, descarta tokens revocados en logout y abre
// la sesión del token. Carga UserID, CompanyID, roles y claims en c.Locals.
func AuthMiddleware(jwtSecret string, sessions Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		if code, msg := authenticate(c, jwtSecret, sessions, authHeader); code != "" {
			status := fiber.StatusUnauthorized
			if code == "SESSION_CHECK_FAILED" {
				status = fiber.StatusServiceUnavailable
			}
			return fail(c, status, code, msg)
		}
		return c.Next()
	}
}

// OptionalAuth como AuthMiddleware pero sin exigir token: una petición anónima o con un
// token inválido sigue sin sesión.
func OptionalAuth(jwtSecret string, sessions Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
			if code, _ := authenticate(c, jwtSecret, sessions, authHeader); code != "" {
				c.Locals(LocalSession, nil)
				c.Locals(LocalClaims, nil)
				c.Locals(LocalUserID, nil)
				c.Locals(LocalCompanyID, nil)
				c.Locals(LocalRoles, nil)
			}
		}
		return c.Next()
	}
}

// RequireRole autoriza si el usuario tiene alguno de los roles indicados. admin siempre pasa.
// Sin argumentos basta con estar autenticado. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		have := entity.Roles(GetRoles(c))
		if len(have) == 0 {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye roles")
		}
		if len(roles) == 0 || have.IsAdmin() || have.HasAny(roles...) {
			return c.Next()
		}
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "rol sin acceso a este recurso")
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCompanyID devuelve el CompanyID del token (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCompanyID).(string)
	return s
}

// GetRoles roles del token.
func GetRoles(c *fiber.Ctx) []string {
	r, _ := c.Locals(LocalRoles).([]string)
	return r
}

// GetRole rol principal (el primero del token).
func GetRole(c *fiber.Ctx) string {
	if r := GetRoles(c); len(r) > 0 {
		return r[0]
	}
	return ""
}

// HasAnyRole informa si el usuario tiene alguno de los roles (admin incluido siempre).
func HasAnyRole(c *fiber.Ctx, roles ...string) bool {
	have := entity.Roles(GetRoles(c))
	return have.IsAdmin() || have.HasAny(roles...)
}

// GetClaims claims del token, nil si la petición es anónima.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	cl, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return cl
}

// GetSession sesión del token, nil si la petición es anónima.
func GetSession(c *fiber.Ctx) *session.Entry {
	e, _ := c.Locals(LocalSession).(*session.Entry)
	return e
}
