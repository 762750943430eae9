package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
	"github.com/jhoicas/facturacion-pos-api/internal/application/usecase"
)

// BankDetailHandler cuentas bancarias que se imprimen en la factura.
type BankDetailHandler struct {
	uc *usecase.BankDetailUseCase
}

func NewBankDetailHandler(uc *usecase.BankDetailUseCase) *BankDetailHandler {
	return &BankDetailHandler{uc: uc}
}

// Create POST /api/companies/:companyId/bank-details
// La primera cuenta registrada queda como predeterminada.
func (h *BankDetailHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBankDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/companies/:companyId/bank-details (la predeterminada primero).
func (h *BankDetailHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *BankDetailHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *BankDetailHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateBankDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetDefault POST /api/companies/:companyId/bank-details/:id/default
func (h *BankDetailHandler) SetDefault(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SetDefault(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *BankDetailHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
