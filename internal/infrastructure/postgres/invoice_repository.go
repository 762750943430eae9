package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

var invoiceSortColumns = map[string]string{
	"date":        "date",
	"number":      "number",
	"grand_total": "grand_total",
	"status":      "status",
	"created_at":  "created_at",
}

const invoiceColumns = `id, company_id, customer_id, bank_detail_id, prefix, number, date, due_date, status, notes,
	sub_total, total_discount, total_taxable, total_tax, grand_total, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, company_id, customer_id, bank_detail_id, prefix, number, date, due_date, status, notes,
		                      sub_total, total_discount, total_taxable, total_tax, grand_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, nullIfEmpty(invoice.BankDetailID),
		invoice.Prefix, invoice.Number, invoice.Date, invoice.DueDate, invoice.Status, invoice.Notes,
		invoice.SubTotal, invoice.TotalDiscount, invoice.TotalTaxable, invoice.TotalTax, invoice.GrandTotal,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura %s%s: %w", invoice.Prefix, invoice.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de detalle con su desglose.
func (r *InvoiceRepo) CreateDetail(ctx context.Context, d *entity.InvoiceDetail) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_details (id, invoice_id, position, product_id, description, quantity, unit_price,
		                             discount_type, discount_value, tax_rate, gross_price, discount_amount,
		                             taxable_amount, tax_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.InvoiceID, d.Position, nullIfEmpty(d.ProductID), d.Description, d.Quantity, d.UnitPrice,
		d.DiscountType, d.DiscountValue, d.TaxRate, d.GrossPrice, d.DiscountAmount,
		d.TaxableAmount, d.TaxAmount, d.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice detail: %w", err)
	}
	return nil
}

// Update reescribe cabecera y totales. La condición sobre el estado evita pisar una factura
// emitida entre la lectura y la escritura.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $2, bank_detail_id = $3, prefix = $4, number = $5, date = $6, due_date = $7,
		    notes = $8, sub_total = $9, total_discount = $10, total_taxable = $11,
		    total_tax = $12, grand_total = $13, updated_at = $14
		WHERE id = $1 AND status = $15`
	tag, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CustomerID, nullIfEmpty(invoice.BankDetailID), invoice.Prefix, invoice.Number,
		invoice.Date, invoice.DueDate, invoice.Notes,
		invoice.SubTotal, invoice.TotalDiscount, invoice.TotalTaxable, invoice.TotalTax, invoice.GrandTotal,
		invoice.UpdatedAt, entity.InvoiceStatusDraft,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura %s%s: %w", invoice.Prefix, invoice.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOr(ctx, invoice.ID, domain.ErrNotEditable)
	}
	return nil
}

// UpdateStatus cambia el estado solo si la factura sigue en from.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	tag, err := r.q.Exec(ctx,
		"UPDATE invoices SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2", id, from, to)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOr(ctx, id, domain.ErrInvalidTransition)
	}
	return nil
}

// missingOr distingue una factura inexistente (ErrNotFound) de una que cambió de estado (stateErr).
func (r *InvoiceRepo) missingOr(ctx context.Context, id string, stateErr error) error {
	var exists bool
	if err := r.q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM invoices WHERE id = $1)", id).Scan(&exists); err != nil {
		return fmt.Errorf("check invoice: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return stateErr
}

// GetByID obtiene la cabecera de una factura. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	row := r.q.QueryRow(ctx, "SELECT "+invoiceColumns+" FROM invoices WHERE id = $1", id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func scanInvoice(row pgx.Row, extra ...any) (*entity.Invoice, error) {
	var inv entity.Invoice
	var bankDetailID *string
	dest := []any{
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &bankDetailID, &inv.Prefix, &inv.Number,
		&inv.Date, &inv.DueDate, &inv.Status, &inv.Notes,
		&inv.SubTotal, &inv.TotalDiscount, &inv.TotalTaxable, &inv.TotalTax, &inv.GrandTotal,
		&inv.CreatedAt, &inv.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	inv.BankDetailID = derefStr(bankDetailID)
	return &inv, nil
}

// GetDetailsByInvoiceID obtiene todas las líneas de una factura en su orden original.
func (r *InvoiceRepo) GetDetailsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceDetail, error) {
	query := `
		SELECT id, invoice_id, position, product_id, description, quantity, unit_price, discount_type,
		       discount_value, tax_rate, gross_price, discount_amount, taxable_amount, tax_amount, line_total
		FROM invoice_details WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice details: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceDetail
	for rows.Next() {
		var d entity.InvoiceDetail
		var productID *string
		if err := rows.Scan(
			&d.ID, &d.InvoiceID, &d.Position, &productID, &d.Description, &d.Quantity, &d.UnitPrice, &d.DiscountType,
			&d.DiscountValue, &d.TaxRate, &d.GrossPrice, &d.DiscountAmount, &d.TaxableAmount, &d.TaxAmount, &d.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan detail: %w", err)
		}
		d.ProductID = derefStr(productID)
		list = append(list, &d)
	}
	return list, rows.Err()
}

// DeleteDetails borra todas las líneas de la factura.
func (r *InvoiceRepo) DeleteDetails(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, "DELETE FROM invoice_details WHERE invoice_id = $1", invoiceID); err != nil {
		return fmt.Errorf("delete invoice details: %w", err)
	}
	return nil
}

// Delete borra la cabecera de una factura en DRAFT (las líneas caen por ON DELETE CASCADE).
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM invoices WHERE id = $1 AND status = $2", id, entity.InvoiceStatusDraft)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOr(ctx, id, domain.ErrNotEditable)
	}
	return nil
}

// List lista facturas de la empresa.
// Filtros: status, customer_id, rango de fechas; búsqueda por número o nombre del cliente.
func (r *InvoiceRepo) List(ctx context.Context, companyID string, f repository.ListFilter) ([]*entity.Invoice, int, error) {
	var w whereBuilder
	w.add("company_id = $%[1]d", companyID)
	if f.Search != "" {
		w.add("(number ILIKE $%[1]d OR prefix || number ILIKE $%[1]d OR customer_id IN "+
			"(SELECT id FROM customers WHERE name ILIKE $%[1]d))", likePattern(f.Search))
	}
	if f.Status != "" {
		w.add("status = $%[1]d", f.Status)
	}
	if f.CustomerID != "" {
		w.add("customer_id = $%[1]d", f.CustomerID)
	}
	if f.DateFrom != nil {
		w.add("date >= $%[1]d", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add("date <= $%[1]d", *f.DateTo)
	}
	// sin ?sort= las más recientes primero
	sortDesc := f.SortDesc || f.SortBy == ""
	query := "SELECT " + invoiceColumns + ", COUNT(*) OVER() FROM invoices" + w.sql() +
		orderBy(f.SortBy, sortDesc, invoiceSortColumns, "date") + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Invoice
		total int
	)
	for rows.Next() {
		inv, err := scanInvoice(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(list) == 0 && f.Offset > 0 {
		total, err = countRows(ctx, r.q, "invoices", w)
	}
	return list, total, err
}

// NextSequence incrementa y devuelve el consecutivo de la empresa para el prefijo.
// El UPSERT bloquea la fila hasta el fin de la transacción, así dos facturas simultáneas
// no reciben el mismo número.
func (r *InvoiceRepo) NextSequence(ctx context.Context, companyID, prefix string) (int, error) {
	query := `
		INSERT INTO invoice_sequences (company_id, prefix, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, prefix) DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`
	var next int
	if err := r.q.QueryRow(ctx, query, companyID, prefix).Scan(&next); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return next, nil
}
