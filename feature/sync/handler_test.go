package sync

import (
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	app := fiber.New()
	svc := newTestService(t)
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func TestHandleStatus(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/sync/status", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["running"])
}

func TestHandleTrigger(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/sync/trigger", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "triggered", body["status"])

	// Nothing consumes the queue in this test, so a second trigger is
	// rejected as busy.
	resp, err = app.Test(httptest.NewRequest("POST", "/sync/trigger", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
