package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/facturacion-pos-api/internal/application/analytics"
	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del resumen de ventas.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen de ventas e IVA del período
// @Description  Totales de facturas emitidas y pagadas, saldo por cobrar, IVA por tasa y
// @Description  los 5 ítems más vendidos. Sin fechas usa el mes en curso hasta hoy.
// @Tags         dashboard
// @Produce      json
// @Param        companyId  path   string  true   "ID de la empresa"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	var q dto.SummaryQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
