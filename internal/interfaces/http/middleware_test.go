package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-pos-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/facturacion-pos-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-pos-api/pkg/logger"
)

func TestRequestLogger_RegistraRutaYStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Output: &buf})

	app := fiber.New()
	app.Use(apphttp.RequestID(), apphttp.RequestLogger(log))
	app.Get("/api/items/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusAccepted).SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/items/42", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), buf.String())
	assert.Equal(t, "http_request", line["message"])
	assert.Equal(t, "/api/items/:id", line["route"])
	assert.Equal(t, "/api/items/42", line["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), line["status"])
	assert.Equal(t, "req-1", line["request_id"])
}

func TestRequestLogger_ErrorDelHandlerSeRegistraComo500(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Output: &buf})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	app.Get("/falla", func(c *fiber.Ctx) error {
		return assert.AnError
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/falla", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.True(t, strings.Contains(buf.String(), `"level":"error"`), buf.String())
}

func TestMetrics_CuentaPorPatronDeRuta(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics("test", reg)

	app := fiber.New()
	app.Use(apphttp.Metrics(m))
	app.Get("/api/items/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for _, id := range []string{"1", "2", "3"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/items/"+id, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.ReqTotal.WithLabelValues("GET", "/api/items/:id", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
}
