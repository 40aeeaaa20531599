package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimit limita peticiones por IP con un token bucket (rps sostenido, burst de ráfaga).
// Los limitadores sin uso durante 10 minutos se descartan.
func RateLimit(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	limiters := gocache.New(10*time.Minute, 5*time.Minute)

	return func(c *fiber.Ctx) error {
		ip := c.IP()
		var lim *rate.Limiter
		if v, found := limiters.Get(ip); found {
			lim = v.(*rate.Limiter)
		} else {
			lim = rate.NewLimiter(rate.Limit(rps), burst)
			// Add falla si otra petición lo creó primero: usar ese.
			if err := limiters.Add(ip, lim, gocache.DefaultExpiration); err != nil {
				if v, found := limiters.Get(ip); found {
					lim = v.(*rate.Limiter)
				}
			}
		}
		if !lim.Allow() {
			c.Set(fiber.HeaderRetryAfter, "1")
			return fail(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "demasiadas peticiones, intente más tarde")
		}
		limiters.SetDefault(ip, lim)
		return c.Next()
	}
}
