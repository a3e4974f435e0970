package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
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

func TestSwagger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.3\n"), 0o600))

	app := fiber.New()
	app.Get("/docs/openapi.yaml", SwaggerSpec(path))
	app.Get("/docs/missing.yaml", SwaggerSpec(filepath.Join(t.TempDir(), "nope.yaml")))
	app.Get("/docs", SwaggerUI("Enclosure Designer", "/docs/openapi.yaml"))

	resp, body := get(t, app, "/docs/openapi.yaml")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "openapi: 3.0.3\n", body)

	resp, _ = get(t, app, "/docs/missing.yaml")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, body = get(t, app, "/docs")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<title>Enclosure Designer</title>")
	assert.Contains(t, body, "url: '/docs/openapi.yaml'")
}
