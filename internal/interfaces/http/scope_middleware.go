package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
)

// LocalCompanyID key de la empresa activa en c.Locals.
const LocalCompanyID = "company_id"

// companyChecker es lo mínimo que necesita CompanyScope. Lo implementa *usecase.CompanyUseCase.
type companyChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// CompanyScope valida el parámetro :companyId de la ruta y lo deja en c.Locals.
//
// Comportamiento:
//   - 400 si el ID no es un UUID.
//   - 404 si la empresa no existe.
//   - 503 si falla la consulta a la base de datos.
func CompanyScope(checker companyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Params("companyId")
		if _, err := uuid.Parse(companyID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_COMPANY_ID", Message: "company_id debe ser un UUID"})
		}
		ok, err := checker.Exists(c.UserContext(), companyID)
		if err != nil {
			requestLogger(c).Error().Err(err).Str("company_id", companyID).Msg("verificar empresa")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "COMPANY_CHECK_FAILED", Message: "no se pudo verificar la empresa, intente más tarde"})
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_FOUND", Message: "empresa no encontrada"})
		}
		c.Locals(LocalCompanyID, companyID)
		return c.Next()
	}
}

// GetCompanyID devuelve el CompanyID del contexto (después de CompanyScope).
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// paramUUID lee un parámetro de ruta que debe ser UUID; si no lo es responde 400 con el campo.
func paramUUID(c *fiber.Ctx, name string) (string, error) {
	v := c.Params(name)
	if _, err := uuid.Parse(v); err != nil {
		return "", &dto.ValidationError{Fields: []string{name + ":uuid"}}
	}
	return v, nil
}

// listQuery lee los parámetros de listado de la URL.
func listQuery(c *fiber.Ctx) (dto.ListQuery, error) {
	var q dto.ListQuery
	err := c.QueryParser(&q)
	return q, err
}
