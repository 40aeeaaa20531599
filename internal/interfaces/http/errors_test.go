package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	apphttp "github.com/jhoicas/freshbreeze-api/internal/interfaces/http"
)

func TestErrorHandler_OcultaDetalleDe5xx(t *testing.T) {
	secreto := "stripe: invalid api key sk_live_1234"
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		visible   bool
	}{
		{"pasarela", &domain.UpstreamError{Service: "stripe", Err: errors.New(secreto)}, fiber.StatusBadGateway, "UPSTREAM", false},
		{"interno", fmt.Errorf("query: %s", secreto), fiber.StatusInternalServerError, "INTERNAL", false},
		{"validación visible", domain.Invalid("qty", secreto), fiber.StatusBadRequest, "VALIDATION", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(zerolog.Nop())})
			app.Get("/x", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/x", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
			if tc.visible {
				assert.Contains(t, body.Error.Message, "sk_live_1234")
			} else {
				assert.NotContains(t, body.Error.Message, "sk_live_1234")
			}
		})
	}
}
