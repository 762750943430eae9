package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un ítem del catálogo que se puede facturar.
// Si PriceIncludesVAT es true, Price ya contiene el IVA y la línea de factura
// usa el precio sin IVA derivado de TaxRate.
type Product struct {
	ID               string
	CompanyID        string
	SKU              string // código único por empresa
	Name             string
	Description      string
	Price            decimal.Decimal
	PriceIncludesVAT bool
	TaxRate          decimal.Decimal // porcentaje: 0, 5, 15...
	UnitMeasure      string
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
