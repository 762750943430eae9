package invoicing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/invoicing"
)

func verifySample() []invoicing.LineItem {
	return []invoicing.LineItem{
		{Quantity: amt("2"), UnitRate: amt("100"), DiscountValue: amt("10"), DiscountType: invoicing.DiscountPercentage, TaxRatePercent: amt("15")},
		{Quantity: amt("3"), UnitRate: amt("10"), DiscountValue: amt("1"), DiscountType: invoicing.DiscountFixedAmount, TaxRatePercent: amt("5")},
	}
}

func TestVerifyTotals_Coinciden(t *testing.T) {
	items := verifySample()
	res := invoicing.Calculate(items)

	assert.NoError(t, invoicing.VerifyTotals(res.Totals, items, res.Lines))
}

func TestVerifyTotals_EscalaDistintaNoEsDiferencia(t *testing.T) {
	items := verifySample()
	res := invoicing.Calculate(items)
	// NUMERIC devuelve "207.00" donde el cálculo produce "207".
	res.Lines[0].LineTotal = dec("207.00")

	assert.NoError(t, invoicing.VerifyTotals(res.Totals, items, res.Lines))
}

func TestVerifyTotals_DetectaDiferencias(t *testing.T) {
	items := verifySample()

	t.Run("cabecera alterada", func(t *testing.T) {
		res := invoicing.Calculate(items)
		res.Totals.TotalInvoiceAmount = res.Totals.TotalInvoiceAmount.Add(dec("0.01"))

		err := invoicing.VerifyTotals(res.Totals, items, res.Lines)
		require.ErrorIs(t, err, invoicing.ErrTotalsMismatch)
		assert.Contains(t, err.Error(), "total_invoice_amount")
	})

	t.Run("línea alterada", func(t *testing.T) {
		res := invoicing.Calculate(items)
		res.Lines[1].TaxAmount = dec("0")

		err := invoicing.VerifyTotals(res.Totals, items, res.Lines)
		require.ErrorIs(t, err, invoicing.ErrTotalsMismatch)
		assert.Contains(t, err.Error(), "línea 2 tax_amount")
	})

	t.Run("falta un desglose", func(t *testing.T) {
		res := invoicing.Calculate(items)

		err := invoicing.VerifyTotals(res.Totals, items, res.Lines[:1])
		assert.ErrorIs(t, err, invoicing.ErrTotalsMismatch)
	})
}
