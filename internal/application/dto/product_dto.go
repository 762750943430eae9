package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un ítem del catálogo.
type CreateProductRequest struct {
	SKU              string          `json:"sku" validate:"required,min=1,max=100"`
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Description      string          `json:"description" validate:"max=1000"`
	Price            decimal.Decimal `json:"price"`
	PriceIncludesVAT bool            `json:"price_includes_vat"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	UnitMeasure      string          `json:"unit_measure" validate:"max=20"`
}

// UpdateProductRequest entrada para actualizar un ítem del catálogo.
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string          `json:"description" validate:"omitempty,max=1000"`
	Price            *decimal.Decimal `json:"price"`
	PriceIncludesVAT *bool            `json:"price_includes_vat"`
	TaxRate          *decimal.Decimal `json:"tax_rate"`
	UnitMeasure      *string          `json:"unit_measure" validate:"omitempty,max=20"`
	Active           *bool            `json:"active"`
}

// ProductResponse salida de un ítem del catálogo.
// NetPrice es el precio sin IVA que usa la línea de factura.
type ProductResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	PriceIncludesVAT bool            `json:"price_includes_vat"`
	NetPrice         decimal.Decimal `json:"net_price"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	UnitMeasure      string          `json:"unit_measure"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
