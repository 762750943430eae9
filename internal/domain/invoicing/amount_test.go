package invoicing_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/invoicing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "0"},
		{"texto vacío", "", "0"},
		{"texto no numérico", "abc", "0"},
		{"separador de miles", "1,234.50", "1234.50"},
		{"espacios", "  42.1 ", "42.1"},
		{"entero", 7, "7"},
		{"float", 2.5, "2.5"},
		{"NaN", math.NaN(), "0"},
		{"infinito", math.Inf(1), "0"},
		{"json.Number", json.Number("3.75"), "3.75"},
		{"decimal", decimal.NewFromInt(9), "9"},
		{"tipo no soportado", struct{}{}, "0"},
		{"negativo", "-12", "-12"},
		{"signo positivo", "+3.5", "3.5"},
		{"solo decimales", ".5", "0.5"},
		{"notación científica", "1e5000000", "0"},
		{"exponente negativo", "5E-3", "0"},
		{"dos puntos", "1.2.3", "0"},
		{"solo signo", "-", "0"},
		{"demasiados dígitos", strings.Repeat("9", 41), "0"},
		{"int8", int8(-8), "-8"},
		{"int16", int16(300), "300"},
		{"uint", uint(42), "42"},
		{"uint8", uint8(255), "255"},
		{"uint16", uint16(65535), "65535"},
		{"uint64 máximo", uint64(math.MaxUint64), "18446744073709551615"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoicing.ParseAmount(tt.in)
			assert.Truef(t, dec(tt.want).Equal(got), "esperado %s, obtenido %s", tt.want, got)
		})
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var item invoicing.LineItem
	body := `{"quantity":"1,234.50","unit_rate":2,"discount_value":null,"discount_type":"FIXED_AMOUNT","tax_rate_percent":"abc"}`
	require.NoError(t, json.Unmarshal([]byte(body), &item))

	assertDec(t, "1234.50", item.Quantity.Decimal, "quantity")
	assertDec(t, "2", item.UnitRate.Decimal, "unit_rate")
	assertDec(t, "0", item.DiscountValue.Decimal, "discount_value")
	assertDec(t, "0", item.TaxRatePercent.Decimal, "tax_rate_percent")
	assert.Equal(t, invoicing.DiscountFixedAmount, item.DiscountType)
}

func TestAmount_UnmarshalJSON_ValoresRaros(t *testing.T) {
	var item invoicing.LineItem
	body := `{"quantity":true,"unit_rate":{"x":1},"discount_value":[1],"discount_type":"bogus","tax_rate_percent":""}`
	require.NoError(t, json.Unmarshal([]byte(body), &item))

	assertDec(t, "0", item.Quantity.Decimal, "quantity")
	assertDec(t, "0", item.UnitRate.Decimal, "unit_rate")
	assertDec(t, "0", item.DiscountValue.Decimal, "discount_value")
	assertDec(t, "0", item.TaxRatePercent.Decimal, "tax_rate_percent")
	assert.Equal(t, invoicing.DiscountPercentage, item.DiscountType)
}

func TestAmount_CamposAusentesSonCero(t *testing.T) {
	var item invoicing.LineItem
	require.NoError(t, json.Unmarshal([]byte(`{}`), &item))
	assert.Equal(t, invoicing.DiscountPercentage, invoicing.ParseDiscountType(string(item.DiscountType)))

	calc := invoicing.CalculateLine(item)
	assertDec(t, "0", calc.LineTotal, "line_total")
}

func TestAmount_ExponenteEnormeNoSeExpande(t *testing.T) {
	var item invoicing.LineItem
	body := `{"quantity":"1e5000000","unit_rate":1e5000000,"tax_rate_percent":"15"}`
	require.NoError(t, json.Unmarshal([]byte(body), &item))

	assertDec(t, "0", item.Quantity.Decimal, "quantity")
	assertDec(t, "0", item.UnitRate.Decimal, "unit_rate")

	totals := invoicing.CalculateInvoiceTotals([]invoicing.LineItem{item})
	assert.Equal(t, "0", totals.TotalInvoiceAmount.String())
}
