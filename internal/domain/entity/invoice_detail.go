package entity

import "github.com/shopspring/decimal"

// InvoiceDetail representa una línea de detalle de una factura con su desglose.
type InvoiceDetail struct {
	ID             string
	InvoiceID      string
	Position       int
	ProductID      string // opcional: línea libre sin producto de catálogo
	Description    string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	DiscountType   string // PERCENTAGE | FIXED_AMOUNT
	DiscountValue  decimal.Decimal
	TaxRate        decimal.Decimal // porcentaje
	GrossPrice     decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	TaxAmount      decimal.Decimal
	LineTotal      decimal.Decimal
}
