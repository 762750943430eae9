// Package invoicing calcula los montos de cada línea de factura y los totales
// agregados (subtotal, descuento, base gravable, IVA y total).
//
// Las funciones son puras: no hacen I/O, no guardan estado y no modifican la
// entrada, por lo que pueden llamarse en cada edición del formulario y desde
// varias goroutines a la vez.
package invoicing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountType define cómo se interpreta DiscountValue en una línea.
type DiscountType string

const (
	// DiscountPercentage: DiscountValue es un porcentaje del precio bruto.
	DiscountPercentage DiscountType = "PERCENTAGE"
	// DiscountFixedAmount: DiscountValue es un monto por unidad (se multiplica por la cantidad).
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

// ParseDiscountType normaliza el texto recibido. Vacío o desconocido => PERCENTAGE.
func ParseDiscountType(s string) DiscountType {
	if strings.EqualFold(strings.TrimSpace(s), string(DiscountFixedAmount)) {
		return DiscountFixedAmount
	}
	return DiscountPercentage
}

// Valid indica si el valor es uno de los tipos conocidos.
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixedAmount
}

// UnmarshalJSON acepta cualquier texto y lo normaliza con ParseDiscountType.
func (t *DiscountType) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" {
		s = ""
	}
	*t = ParseDiscountType(s)
	return nil
}

// LineItem es una fila de la factura tal como la envía el formulario.
type LineItem struct {
	Quantity       Amount       `json:"quantity"`
	UnitRate       Amount       `json:"unit_rate"`
	DiscountValue  Amount       `json:"discount_value"`
	DiscountType   DiscountType `json:"discount_type"`
	TaxRatePercent Amount       `json:"tax_rate_percent"`
}

// LineCalculation es el desglose calculado de una línea.
type LineCalculation struct {
	GrossPrice     decimal.Decimal `json:"gross_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// InvoiceTotals agrega todas las líneas de la factura.
type InvoiceTotals struct {
	SubTotal           decimal.Decimal `json:"sub_total"`
	TotalDiscount      decimal.Decimal `json:"total_discount"`
	TotalTaxableAmount decimal.Decimal `json:"total_taxable_amount"`
	TotalTaxAmount     decimal.Decimal `json:"total_tax_amount"`
	TotalInvoiceAmount decimal.Decimal `json:"total_invoice_amount"`
}

// Result contiene el desglose por línea (mismo orden que la entrada) y los totales.
type Result struct {
	Lines  []LineCalculation `json:"lines"`
	Totals InvoiceTotals     `json:"totals"`
}

var one = decimal.NewFromInt(1)

// percent convierte un porcentaje en fracción (15 => 0.15) sin pérdida de precisión.
func percent(d decimal.Decimal) decimal.Decimal {
	return d.Shift(-2)
}

// CalculateLine calcula el desglose de una línea.
//
// Un descuento mayor al 100% o al precio bruto produce montos negativos; no se recorta a cero.
func CalculateLine(item LineItem) LineCalculation {
	qty := item.Quantity.Decimal
	rate := item.UnitRate.Decimal
	discount := item.DiscountValue.Decimal
	taxRate := percent(item.TaxRatePercent.Decimal)

	gross := qty.Mul(rate)

	var discountAmount, taxable decimal.Decimal
	switch ParseDiscountType(string(item.DiscountType)) {
	case DiscountFixedAmount:
		discountAmount = qty.Mul(discount)
		taxable = gross.Sub(discountAmount)
	default:
		discountAmount = gross.Mul(percent(discount))
		taxable = gross.Mul(one.Sub(percent(discount)))
	}

	return LineCalculation{
		GrossPrice:     gross,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxable,
		TaxAmount:      taxable.Mul(taxRate),
		LineTotal:      taxable.Mul(one.Add(taxRate)),
	}
}

// Calculate aplica CalculateLine a cada ítem en orden y suma los cinco campos.
// Una lista vacía produce totales en cero.
func Calculate(items []LineItem) Result {
	lines := make([]LineCalculation, 0, len(items))
	for _, item := range items {
		lines = append(lines, CalculateLine(item))
	}
	return Result{Lines: lines, Totals: SumLines(lines)}
}

// CalculateInvoiceTotals devuelve solo los totales agregados.
func CalculateInvoiceTotals(items []LineItem) InvoiceTotals {
	return Calculate(items).Totals
}

// SumLines suma campo a campo los desgloses.
func SumLines(lines []LineCalculation) InvoiceTotals {
	t := InvoiceTotals{
		SubTotal:           decimal.Zero,
		TotalDiscount:      decimal.Zero,
		TotalTaxableAmount: decimal.Zero,
		TotalTaxAmount:     decimal.Zero,
		TotalInvoiceAmount: decimal.Zero,
	}
	for _, l := range lines {
		t.SubTotal = t.SubTotal.Add(l.GrossPrice)
		t.TotalDiscount = t.TotalDiscount.Add(l.DiscountAmount)
		t.TotalTaxableAmount = t.TotalTaxableAmount.Add(l.TaxableAmount)
		t.TotalTaxAmount = t.TotalTaxAmount.Add(l.TaxAmount)
		t.TotalInvoiceAmount = t.TotalInvoiceAmount.Add(l.LineTotal)
	}
	return t
}

// ExclusiveFromInclusive obtiene el precio sin IVA a partir de un precio con IVA incluido.
// price / (1 + rate/100); con tasa 0 devuelve el mismo precio.
func ExclusiveFromInclusive(price, ratePercent decimal.Decimal) decimal.Decimal {
	divisor := one.Add(percent(ratePercent))
	if ratePercent.IsZero() || divisor.IsZero() {
		return price
	}
	return price.Div(divisor)
}

// VATFromInclusive obtiene el IVA contenido en un precio con IVA incluido.
func VATFromInclusive(price, ratePercent decimal.Decimal) decimal.Decimal {
	return price.Sub(ExclusiveFromInclusive(price, ratePercent))
}
