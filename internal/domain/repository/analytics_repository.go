package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatusTotals totales de cabecera agrupados por estado de factura.
type StatusTotals struct {
	Status        string
	InvoiceCount  int
	SubTotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTaxable  decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
}

// TaxRateTotals base gravable e IVA por tasa, a partir de las líneas.
type TaxRateTotals struct {
	TaxRate       decimal.Decimal
	LineCount     int
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
}

// ProductSales ventas de un ítem de catálogo en el período.
type ProductSales struct {
	ProductID     string
	SKU           string
	Name          string
	Quantity      decimal.Decimal
	TaxableAmount decimal.Decimal
	LineTotal     decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el resumen de ventas.
// Los rangos de fecha son inclusivos y se comparan contra la fecha de la factura.
type AnalyticsRepository interface {
	// GetStatusTotals devuelve una fila por estado con facturas en el período.
	GetStatusTotals(ctx context.Context, companyID string, from, to time.Time) ([]StatusTotals, error)

	// GetTaxBreakdown agrupa por tasa las líneas de facturas emitidas o pagadas.
	GetTaxBreakdown(ctx context.Context, companyID string, from, to time.Time) ([]TaxRateTotals, error)

	// GetTopProducts devuelve los `limit` ítems con mayor base gravable facturada
	// (emitidas o pagadas). Las líneas libres, sin producto, no cuentan.
	GetTopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]ProductSales, error)
}
