package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/invoicing"
)

// catalogRow fila del CSV ya convertida, con su número de línea para los mensajes.
type catalogRow struct {
	line    int
	request dto.CreateProductRequest
}

var requiredColumns = []string{"sku", "name", "price"}

// parseCatalog decodifica el archivo (UTF-8 o ISO-8859-1), detecta el separador y
// convierte cada fila. Los precios aceptan "1,234.50"; lo no numérico queda en 0.
func parseCatalog(raw []byte, encoding string) ([]catalogRow, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	var src io.Reader = bytes.NewReader(raw)
	switch strings.ToLower(encoding) {
	case "latin1", "iso-8859-1":
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	case "utf8", "utf-8":
	default:
		if !utf8.Valid(raw) {
			src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
		}
	}

	r := csv.NewReader(src)
	r.Comma = detectSeparator(raw)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("archivo vacío")
		}
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var rows []catalogRow
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("sku") == "" && get("name") == "" {
			continue
		}
		includesVAT, _ := strconv.ParseBool(get("price_includes_vat"))
		rows = append(rows, catalogRow{
			line: line,
			request: dto.CreateProductRequest{
				SKU:              get("sku"),
				Name:             get("name"),
				Description:      get("description"),
				Price:            money(get("price")),
				PriceIncludesVAT: includesVAT,
				TaxRate:          money(get("tax_rate")),
				UnitMeasure:      strings.ToUpper(get("unit_measure")),
			},
		})
	}
	return rows, nil
}

// detectSeparator elige ";" si aparece en la primera línea (Excel en español), si no ",".
func detectSeparator(raw []byte) rune {
	first := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	if bytes.Count(first, []byte(";")) > 0 {
		return ';'
	}
	return ','
}

func money(s string) decimal.Decimal {
	return invoicing.ParseAmount(s)
}
