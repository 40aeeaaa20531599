package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
)

// httpError status y código del envelope para un error de dominio.
type httpError struct {
	status int
	code   string
}

// errorTable orden de evaluación: el primero que coincida con errors.Is gana.
var errorTable = []struct {
	target error
	out    httpError
}{
	{domain.ErrInvalidInput, httpError{fiber.StatusBadRequest, "VALIDATION"}},
	{domain.ErrUserNotFound, httpError{fiber.StatusNotFound, "NOT_FOUND"}},
	{domain.ErrNotFound, httpError{fiber.StatusNotFound, "NOT_FOUND"}},
	{domain.ErrEmailAlreadyExists, httpError{fiber.StatusConflict, "DUPLICATE"}},
	{domain.ErrDuplicate, httpError{fiber.StatusConflict, "DUPLICATE"}},
	{domain.ErrInsufficientStock, httpError{fiber.StatusConflict, "INSUFFICIENT_STOCK"}},
	{domain.ErrInvalidTransition, httpError{fiber.StatusConflict, "INVALID_TRANSITION"}},
	{domain.ErrConflict, httpError{fiber.StatusConflict, "CONFLICT"}},
	{domain.ErrUnauthorized, httpError{fiber.StatusUnauthorized, "UNAUTHORIZED"}},
	{domain.ErrForbidden, httpError{fiber.StatusForbidden, "FORBIDDEN"}},
	{domain.ErrNoTenant, httpError{fiber.StatusNotFound, "TENANT_NOT_FOUND"}},
	{domain.ErrUpstream, httpError{fiber.StatusBadGateway, "UPSTREAM"}},
}

// classify traduce un error al par (status, código). Los no reconocidos son 500 INTERNAL.
func classify(err error) httpError {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return httpError{fe.Code, fiberCode(fe.Code)}
	}
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return e.out
		}
	}
	return httpError{fiber.StatusInternalServerError, "INTERNAL"}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "BAD_REQUEST"
}

// ErrorHandler handler central de Fiber: los handlers devuelven errores de dominio y aquí
// se convierten en {"success": false, "error": {...}}. Los 5xx se registran y su mensaje
// no se expone al cliente.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		he := classify(err)
		msg := err.Error()
		if he.status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", he.status).
				Msg("error en la petición")
			msg = serverMessage(he.status)
		}
		return c.Status(he.status).JSON(dto.Fail(he.code, msg))
	}
}

// serverMessage mensaje genérico para 5xx: el detalle solo va al log.
func serverMessage(status int) string {
	switch status {
	case fiber.StatusBadGateway:
		return "el proveedor externo no respondió, intente más tarde"
	case fiber.StatusServiceUnavailable:
		return "servicio no disponible, intente más tarde"
	}
	return "error interno, intente más tarde"
}

// fail respuesta de error directa desde middlewares (sin pasar por ErrorHandler).
func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.Fail(code, msg))
}

// ok respuesta exitosa con envelope.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.OK(data))
}

// errBody cuerpo JSON mal formado.
var errBody = domain.Invalid("body", "cuerpo JSON inválido")

// parseBody decodifica el cuerpo. La validación de campos la hace el caso de uso.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errBody
	}
	return nil
}
