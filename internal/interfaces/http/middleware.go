package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/facturacion-pos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/facturacion-pos-api/pkg/logger"
)

// LocalLogger key del sublogger del request en c.Locals.
const LocalLogger = "logger"

// RequestID asigna X-Request-ID (o respeta el que envía el cliente).
func RequestID() fiber.Handler {
	return requestid.New()
}

// RequestLogger registra una línea "http_request" por petición y deja en Locals un
// sublogger con request_id para los handlers.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := requestIDOf(c)
		c.Locals(LocalLogger, log.With("request_id", reqID))

		chainErr := c.Next()
		if chainErr != nil {
			// El ErrorHandler de fiber aún no corrió; se invoca para conocer el status final.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		evt := log.Info()
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		}
		evt.
			Str("method", c.Method()).
			Str("route", routeOf(c)).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Int("bytes", len(c.Response().Body())).
			Str("request_id", reqID).
			Str("remote_addr", c.IP())
		if ua := strings.TrimSpace(c.Get(fiber.HeaderUserAgent)); ua != "" {
			evt = evt.Str("user_agent", ua)
		}
		evt.Msg("http_request")
		return nil
	}
}

// Metrics alimenta los colectores HTTP: total por método/ruta/status, latencia e in-flight.
func Metrics(m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.InFlight.Inc()
		defer m.InFlight.Dec()
		start := time.Now()

		chainErr := c.Next()
		status := c.Response().StatusCode()
		if chainErr != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := chainErr.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.Observe(c.Method(), routeOf(c), status, time.Since(start))
		return chainErr
	}
}

// routeOf devuelve el patrón de la ruta (/api/companies/:companyId/invoices/:id) para
// no disparar la cardinalidad de las etiquetas con IDs.
func routeOf(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
		return r.Path
	}
	return "unmatched"
}

func requestIDOf(c *fiber.Ctx) string {
	if v, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && v != "" {
		return v
	}
	return c.Get(fiber.HeaderXRequestID)
}

// requestLogger devuelve el sublogger del request o uno que descarta todo.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok && l != nil {
		return l
	}
	return logger.Nop()
}
