package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con el repositorio de facturas.
// Si fn retorna error se hace rollback de cabecera y detalles.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// Recorder registra métricas de negocio de facturación. Puede ser nil.
type Recorder interface {
	InvoiceCreated(companyID string, grandTotal decimal.Decimal)
	InvoiceStatusChanged(from, to string)
	InvoiceCalculated(lines int)
}
