package invoicing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrTotalsMismatch los montos guardados no coinciden con el recálculo de las líneas.
var ErrTotalsMismatch = errors.New("los totales de la factura no coinciden con sus líneas")

// VerifyTotals recalcula cada línea a partir de sus datos de entrada y comprueba que los
// desgloses guardados (stored, mismo orden que items) y los totales de cabecera coincidan
// exactamente. Devuelve nil o un error que envuelve ErrTotalsMismatch con cada diferencia.
func VerifyTotals(header InvoiceTotals, items []LineItem, stored []LineCalculation) error {
	var errs []error
	if len(items) != len(stored) {
		errs = append(errs, fmt.Errorf("%d líneas de entrada y %d desgloses", len(items), len(stored)))
	}

	result := Calculate(items)
	for i := range stored {
		if i >= len(result.Lines) {
			break
		}
		want, got := result.Lines[i], stored[i]
		checks := []struct {
			field     string
			want, got decimal.Decimal
		}{
			{"gross_price", want.GrossPrice, got.GrossPrice},
			{"discount_amount", want.DiscountAmount, got.DiscountAmount},
			{"taxable_amount", want.TaxableAmount, got.TaxableAmount},
			{"tax_amount", want.TaxAmount, got.TaxAmount},
			{"line_total", want.LineTotal, got.LineTotal},
		}
		for _, c := range checks {
			if !c.want.Equal(c.got) {
				errs = append(errs, fmt.Errorf("línea %d %s: guardado %s, calculado %s", i+1, c.field, c.got, c.want))
			}
		}
	}

	totals := []struct {
		field     string
		want, got decimal.Decimal
	}{
		{"sub_total", result.Totals.SubTotal, header.SubTotal},
		{"total_discount", result.Totals.TotalDiscount, header.TotalDiscount},
		{"total_taxable_amount", result.Totals.TotalTaxableAmount, header.TotalTaxableAmount},
		{"total_tax_amount", result.Totals.TotalTaxAmount, header.TotalTaxAmount},
		{"total_invoice_amount", result.Totals.TotalInvoiceAmount, header.TotalInvoiceAmount},
	}
	for _, c := range totals {
		if !c.want.Equal(c.got) {
			errs = append(errs, fmt.Errorf("%s: guardado %s, calculado %s", c.field, c.got, c.want))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrTotalsMismatch}, errs...)...)
	}
	return nil
}
