package dto

import "github.com/shopspring/decimal"

// SummaryQuery parámetros de GET /dashboard/summary: ?from=&to= (YYYY-MM-DD, inclusivos).
// Sin fechas se usa el mes en curso hasta hoy.
type SummaryQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// DashboardSummaryDTO respuesta de GET /api/companies/:companyId/dashboard/summary.
//
// Sales agrega las facturas emitidas y pagadas; los borradores y anuladas solo
// aparecen en ByStatus.
type DashboardSummaryDTO struct {
	Period      PeriodDTO          `json:"period"`
	Sales       SalesTotalsDTO     `json:"sales"`
	Outstanding decimal.Decimal    `json:"outstanding"` // total de facturas emitidas sin pagar
	Collected   decimal.Decimal    `json:"collected"`   // total de facturas pagadas
	ByStatus    []StatusSummaryDTO `json:"by_status"`
	VATByRate   []VATRateDTO       `json:"vat_by_rate"`
	TopProducts []TopProductDTO    `json:"top_products"`
}

// PeriodDTO rango consultado.
type PeriodDTO struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"` // ej: "Octubre 2026"
}

// SalesTotalsDTO mismos cinco totales que una factura, sumados sobre el período.
type SalesTotalsDTO struct {
	InvoiceCount  int             `json:"invoice_count"`
	SubTotal      decimal.Decimal `json:"sub_total"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalTaxable  decimal.Decimal `json:"total_taxable"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// StatusSummaryDTO cantidad y total por estado.
type StatusSummaryDTO struct {
	Status       string          `json:"status"`
	InvoiceCount int             `json:"invoice_count"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
}

// VATRateDTO base gravable e IVA por tasa (insumo de la declaración de IVA).
type VATRateDTO struct {
	TaxRate       decimal.Decimal `json:"tax_rate"`
	LineCount     int             `json:"line_count"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
}

// TopProductDTO ítem del ranking de ventas.
type TopProductDTO struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	LineTotal     decimal.Decimal `json:"line_total"`
}
