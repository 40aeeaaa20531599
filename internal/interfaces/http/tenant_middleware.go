package http

import (
	"context"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/freshbreeze-api/internal/tenant"
)

// HeaderClientFragment el navegador no envía el fragmento de la URL; el frontend lo reenvía
// en este header para que el override de tenant funcione también en desarrollo.
const HeaderClientFragment = "X-Client-Fragment"

// DefaultTenantTimeout tope de la resolución de empresa por petición.
const DefaultTenantTimeout = 5 * time.Second

// TenantResolver lo que el middleware necesita de tenant.Resolver.
type TenantResolver interface {
	Resolve(ctx context.Context, sess *tenant.Session, in tenant.Input) string
}

// TenantMiddleware resuelve la empresa por host y deja su id en LocalTenantID.
// Si la petición trae sesión se reutiliza la empresa cacheada en ella. Nunca corta la
// cadena: sin empresa el id queda vacío y el handler decide.
func TenantMiddleware(r TenantResolver, timeout time.Duration) fiber.Handler {
	if timeout <= 0 {
		timeout = DefaultTenantTimeout
	}
	return func(c *fiber.Ctx) error {
		sess := tenant.NewSession("")
		if e := GetSession(c); e != nil {
			sess = e.Tenant
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		id := r.Resolve(ctx, sess, tenant.Input{
			Host:     c.Hostname(),
			Query:    queryValues(c),
			Fragment: c.Get(HeaderClientFragment),
		})
		c.Locals(LocalTenantID, id)
		return c.Next()
	}
}

func queryValues(c *fiber.Ctx) url.Values {
	q := url.Values{}
	for k, v := range c.Queries() {
		q.Set(k, v)
	}
	return q
}

// GetTenantID empresa resuelta por TenantMiddleware ("" si no hay).
func GetTenantID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTenantID).(string)
	return s
}
