package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/invoicing"
)

// errorMapping relaciona un error de dominio con su respuesta HTTP.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorTable se recorre en orden; ErrInvalidInput va después de ValidationError (que lo envuelve).
var errorTable = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado al recurso"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "ya existe un registro con esos datos"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "el registro está en uso"},
	{domain.ErrNotEditable, fiber.StatusConflict, "NOT_EDITABLE", "solo se pueden modificar facturas en borrador"},
	{domain.ErrInvalidTransition, fiber.StatusUnprocessableEntity, "INVALID_TRANSITION", "cambio de estado no permitido"},
	{invoicing.ErrTotalsMismatch, fiber.StatusConflict, "TOTALS_MISMATCH", "los totales guardados no coinciden con las líneas"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
}

// errorResponse traduce un error de la capa de aplicación a status + cuerpo.
func errorResponse(err error) (int, dto.ErrorResponse) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: verr.Fields}
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, dto.ErrorResponse{Code: m.code, Message: m.message}
		}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

// writeError responde con el error mapeado. Los 500 se registran con el logger del request.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
}
