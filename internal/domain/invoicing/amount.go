package invoicing

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount es un valor numérico de entrada del formulario de factura.
// Acepta número JSON, texto numérico ("1,234.50"), null o cualquier otra cosa:
// lo que no se pueda interpretar queda en cero. Nunca retorna error al decodificar.
type Amount struct {
	decimal.Decimal
}

// NewAmount construye un Amount a partir de un decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString interpreta el texto con la regla "parse-or-zero".
func AmountFromString(s string) Amount {
	return Amount{Decimal: parseString(s)}
}

// AmountFromFloat convierte un float64; NaN e infinitos quedan en cero.
func AmountFromFloat(f float64) Amount {
	return Amount{Decimal: ParseAmount(f)}
}

// UnmarshalJSON implementa json.Unmarshaler con coerción a cero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = parseString(s)
		return nil
	}
	a.Decimal = parseString(string(data))
	return nil
}

// MarshalJSON serializa el valor como texto decimal, igual que decimal.Decimal.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.Decimal.MarshalJSON()
}

// ParseAmount aplica la coerción "parse-or-zero" a un valor arbitrario.
// nil, texto vacío, texto no numérico, NaN e infinitos se convierten en 0.
func ParseAmount(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case Amount:
		return x.Decimal
	case *Amount:
		if x == nil {
			return decimal.Zero
		}
		return x.Decimal
	case decimal.Decimal:
		return x
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero
		}
		return *x
	case string:
		return parseString(x)
	case *string:
		if x == nil {
			return decimal.Zero
		}
		return parseString(*x)
	case json.Number:
		return parseString(x.String())
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat32(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int8:
		return decimal.NewFromInt(int64(x))
	case int16:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt32(x)
	case int64:
		return decimal.NewFromInt(x)
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(x)), 0)
	case uint8:
		return decimal.NewFromInt(int64(x))
	case uint16:
		return decimal.NewFromInt(int64(x))
	case uint32:
		return decimal.NewFromInt(int64(x))
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
	default:
		return decimal.Zero
	}
}

// maxDigits límite de dígitos aceptados en un monto de texto; más largo cuenta como no numérico.
const maxDigits = 40

// parseString elimina separadores de miles y espacios antes de convertir.
// Solo acepta [+-]dígitos[.dígitos]: la notación científica ("1e5000000") queda en cero.
func parseString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.NewReplacer(",", "", " ", "", "\u00a0", "", "_", "").Replace(s)
	if !plainDecimal(s) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// plainDecimal valida la forma [+-]?d+(.d*)? | [+-]?.d+ con a lo sumo maxDigits dígitos.
func plainDecimal(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && digits <= maxDigits && dots <= 1
}
