package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/invoicing"
)

// InvoiceLineRequest línea de factura tal como la envía el formulario.
// Los montos aceptan número o texto ("1,234.50"); lo no numérico cuenta como 0.
// Si ProductID está presente y UnitPrice es 0 se usa el precio del catálogo;
// si TaxRate es null se usa la tasa del producto o, en su defecto, la de la empresa.
type InvoiceLineRequest struct {
	ProductID     string                 `json:"product_id,omitempty" validate:"omitempty,uuid"`
	Description   string                 `json:"description,omitempty" validate:"max=500"`
	Quantity      invoicing.Amount       `json:"quantity"`
	UnitPrice     invoicing.Amount       `json:"unit_price"`
	DiscountType  invoicing.DiscountType `json:"discount_type"`
	DiscountValue invoicing.Amount       `json:"discount_value"`
	TaxRate       *invoicing.Amount      `json:"tax_rate"`
}

// CalculateInvoiceRequest body para POST /invoices/calculate (vista previa, no persiste).
type CalculateInvoiceRequest struct {
	Items []InvoiceLineRequest `json:"items" validate:"dive"`
}

// CreateInvoiceRequest body para POST /invoices y PUT /invoices/:id.
type CreateInvoiceRequest struct {
	CustomerID   string               `json:"customer_id" validate:"required,uuid"`
	BankDetailID string               `json:"bank_detail_id,omitempty" validate:"omitempty,uuid"`
	Prefix       string               `json:"prefix,omitempty" validate:"max=10"`
	Number       string               `json:"number,omitempty" validate:"max=30"` // opcional; si va vacío se genera
	Date         string               `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate      string               `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes        string               `json:"notes,omitempty" validate:"max=2000"`
	Items        []InvoiceLineRequest `json:"items" validate:"required,min=1,dive"`
}

// ChangeInvoiceStatusRequest body para PATCH /invoices/:id/status.
type ChangeInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ISSUED PAID CANCELLED"`
}

// CalculatedLineResponse línea resuelta con su desglose.
type CalculatedLineResponse struct {
	Position      int                    `json:"position"`
	ProductID     string                 `json:"product_id,omitempty"`
	Description   string                 `json:"description"`
	Quantity      decimal.Decimal        `json:"quantity"`
	UnitPrice     decimal.Decimal        `json:"unit_price"`
	DiscountType  invoicing.DiscountType `json:"discount_type"`
	DiscountValue decimal.Decimal        `json:"discount_value"`
	TaxRate       decimal.Decimal        `json:"tax_rate"`
	invoicing.LineCalculation
}

// CalculationResponse respuesta de la vista previa de totales.
type CalculationResponse struct {
	Lines  []CalculatedLineResponse `json:"lines"`
	Totals invoicing.InvoiceTotals  `json:"totals"`
}

// InvoiceResponse factura con detalle para GET /invoices/:id.
type InvoiceResponse struct {
	ID            string                  `json:"id"`
	CompanyID     string                  `json:"company_id"`
	CustomerID    string                  `json:"customer_id"`
	CustomerName  string                  `json:"customer_name,omitempty"`
	BankDetailID  string                  `json:"bank_detail_id,omitempty" validate:"omitempty,uuid"`
	Prefix        string                  `json:"prefix"`
	Number        string                  `json:"number"`
	Date          string                  `json:"date"`
	DueDate       string                  `json:"due_date,omitempty"`
	Status        string                  `json:"status"`
	Notes         string                  `json:"notes,omitempty"`
	SubTotal      decimal.Decimal         `json:"sub_total"`
	TotalDiscount decimal.Decimal         `json:"total_discount"`
	TotalTaxable  decimal.Decimal         `json:"total_taxable"`
	TotalTax      decimal.Decimal         `json:"total_tax"`
	GrandTotal    decimal.Decimal         `json:"grand_total"`
	Details       []InvoiceDetailResponse `json:"details,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// InvoiceDetailResponse línea de detalle en la respuesta.
type InvoiceDetailResponse struct {
	ID             string          `json:"id"`
	Position       int             `json:"position"`
	ProductID      string          `json:"product_id,omitempty"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	GrossPrice     decimal.Decimal `json:"gross_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}
