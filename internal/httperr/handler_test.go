package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type errResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newErrApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return Forbidden("not the owner")
	})
	app.Get("/validation", func(c *fiber.Ctx) error {
		return Validation([]map[string]string{{"field": "email", "message": "Invalid email address"}})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pg: connection refused")
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	})
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, errResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	var body errResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestDomainErrorKeepsStatusAndMessage(t *testing.T) {
	status, body := get(t, newErrApp(), "/forbidden")
	require.Equal(t, fiber.StatusForbidden, status)
	require.Equal(t, "not the owner", body.Message)
	require.Equal(t, "null", string(body.Data))
}

func TestValidationErrorCarriesDetail(t *testing.T) {
	status, body := get(t, newErrApp(), "/validation")
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	require.Equal(t, "Validation failed", body.Message)
	require.Contains(t, string(body.Data), "Invalid email address")
}

func TestUnknownErrorBecomesBare500(t *testing.T) {
	status, body := get(t, newErrApp(), "/boom")
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "internal server error", body.Message)
	require.NotContains(t, body.Message, "connection refused")
}

func TestFiberErrorKeepsCode(t *testing.T) {
	status, body := get(t, newErrApp(), "/fiber")
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "invalid body", body.Message)
}
