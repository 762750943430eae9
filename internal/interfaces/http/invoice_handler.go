package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-pos-api/internal/application/billing"
	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (por empresa).
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Calculate godoc
// @Summary      Vista previa de totales
// @Description  Calcula el desglose por línea y los totales sin guardar nada. Los montos aceptan
// @Description  número o texto; lo que no sea numérico cuenta como 0.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        companyId  path  string                       true  "ID de la empresa"
// @Param        body       body  dto.CalculateInvoiceRequest  true  "Líneas de la factura"
// @Success      200  {object}  dto.CalculationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/invoices/calculate [post]
func (h *InvoiceHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Calculate(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear factura en borrador
// @Description  Resuelve precios y tasas del catálogo, calcula totales, asigna el consecutivo
// @Description  y guarda cabecera y detalle en una sola transacción.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        companyId  path  string                    true  "ID de la empresa"
// @Param        body       body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateInvoice(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Param        companyId    path   string  true   "ID de la empresa"
// @Param        status       query  string  false  "DRAFT | ISSUED | PAID | CANCELLED"
// @Param        customer_id  query  string  false  "Filtra por cliente"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        q            query  string  false  "Búsqueda por número o cliente"
// @Param        sort         query  string  false  "date | number | grand_total | status | created_at"
// @Param        order        query  string  false  "asc | desc"
// @Success      200  {object}  dto.PageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyId}/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return badQuery(c)
	}
	out, err := h.uc.ListInvoices(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene la factura con su detalle.
// GET /api/companies/:companyId/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetInvoice(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update reemplaza cabecera y líneas de un borrador y recalcula.
// PUT /api/companies/:companyId/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateInvoice(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus PATCH /api/companies/:companyId/invoices/:id/status
func (h *InvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ChangeInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un borrador.
// DELETE /api/companies/:companyId/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteInvoice(c.UserContext(), GetCompanyID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
