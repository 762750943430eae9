package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura.
const (
	InvoiceStatusDraft     = "DRAFT"     // editable
	InvoiceStatusIssued    = "ISSUED"    // emitida, montos congelados
	InvoiceStatusPaid      = "PAID"      // pagada
	InvoiceStatusCancelled = "CANCELLED" // anulada
)

// invoiceTransitions estados destino permitidos por estado origen.
var invoiceTransitions = map[string][]string{
	InvoiceStatusDraft:  {InvoiceStatusIssued, InvoiceStatusCancelled},
	InvoiceStatusIssued: {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// CanTransition indica si la factura puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range invoiceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsInvoiceStatus valida que el estado sea conocido.
func IsInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice representa la cabecera de una factura con sus totales calculados.
type Invoice struct {
	ID            string
	CompanyID     string
	CustomerID    string
	BankDetailID  string // opcional
	Prefix        string
	Number        string
	Date          time.Time
	DueDate       *time.Time
	Status        string
	Notes         string
	SubTotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTaxable  decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Editable indica si la factura aún admite cambios de líneas o cabecera.
func (i *Invoice) Editable() bool {
	return i.Status == InvoiceStatusDraft
}
