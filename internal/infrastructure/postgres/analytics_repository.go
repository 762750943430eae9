package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el resumen de ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetStatusTotals suma las cabeceras por estado.
func (r *AnalyticsRepo) GetStatusTotals(ctx context.Context, companyID string, from, to time.Time) ([]repository.StatusTotals, error) {
	const query = `
	SELECT
	    status,
	    COUNT(*)            AS invoice_count,
	    SUM(sub_total)      AS sub_total,
	    SUM(total_discount) AS total_discount,
	    SUM(total_taxable)  AS total_taxable,
	    SUM(total_tax)      AS total_tax,
	    SUM(grand_total)    AS grand_total
	FROM invoices
	WHERE company_id = $1
	  AND date BETWEEN $2 AND $3
	GROUP BY status
	ORDER BY status`

	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStatusTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusTotals
	for rows.Next() {
		var row repository.StatusTotals
		if err := rows.Scan(
			&row.Status,
			&row.InvoiceCount,
			&row.SubTotal,
			&row.TotalDiscount,
			&row.TotalTaxable,
			&row.TotalTax,
			&row.GrandTotal,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetStatusTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTaxBreakdown base gravable e IVA por tasa de las facturas emitidas o pagadas.
func (r *AnalyticsRepo) GetTaxBreakdown(ctx context.Context, companyID string, from, to time.Time) ([]repository.TaxRateTotals, error) {
	const query = `
	SELECT
	    d.tax_rate,
	    COUNT(*)              AS line_count,
	    SUM(d.taxable_amount) AS taxable_amount,
	    SUM(d.tax_amount)     AS tax_amount
	FROM invoice_details d
	JOIN invoices i ON i.id = d.invoice_id
	WHERE i.company_id = $1
	  AND i.date BETWEEN $2 AND $3
	  AND i.status IN ('ISSUED', 'PAID')
	GROUP BY d.tax_rate
	ORDER BY d.tax_rate DESC`

	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTaxBreakdown: %w", err)
	}
	defer rows.Close()

	var results []repository.TaxRateTotals
	for rows.Next() {
		var row repository.TaxRateTotals
		if err := rows.Scan(&row.TaxRate, &row.LineCount, &row.TaxableAmount, &row.TaxAmount); err != nil {
			return nil, fmt.Errorf("analytics.GetTaxBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts ranking de ítems por base gravable facturada.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]repository.ProductSales, error) {
	const query = `
	SELECT
	    p.id,
	    p.sku,
	    p.name,
	    SUM(d.quantity)       AS quantity,
	    SUM(d.taxable_amount) AS taxable_amount,
	    SUM(d.line_total)     AS line_total
	FROM invoice_details d
	JOIN invoices i ON i.id = d.invoice_id
	JOIN products p ON p.id = d.product_id
	WHERE i.company_id = $1
	  AND i.date BETWEEN $2 AND $3
	  AND i.status IN ('ISSUED', 'PAID')
	GROUP BY p.id, p.sku, p.name
	ORDER BY taxable_amount DESC, p.sku
	LIMIT $4`

	rows, err := r.q.Query(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSales
	for rows.Next() {
		var row repository.ProductSales
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.Name, &row.Quantity, &row.TaxableAmount, &row.LineTotal); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts rows: %w", err)
	}
	return results, nil
}
