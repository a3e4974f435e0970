package health

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestProbes(t *testing.T) {
	ready := true
	app := fiber.New()
	app.Get("/health/live", LivenessProbe)
	app.Get("/health/startup", StartupProbe)
	app.Get("/health/ready", ReadinessProbe(func() error {
		if !ready {
			return errors.New("db closed")
		}
		return nil
	}))

	resp, body := get(t, app, "/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"alive"}`, body)

	resp, _ = get(t, app, "/health/startup")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, app, "/health/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ready = false
	resp, body = get(t, app, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "db closed")
}
