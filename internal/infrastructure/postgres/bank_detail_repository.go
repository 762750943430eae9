package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

var _ repository.BankDetailRepository = (*BankDetailRepo)(nil)

var bankDetailSortColumns = map[string]string{
	"bank_name":    "bank_name",
	"account_name": "account_name",
	"created_at":   "created_at",
}

const bankDetailColumns = `id, company_id, bank_name, account_name, account_number, iban, swift_code,
	is_default, created_at, updated_at`

// BankDetailRepo implementación de BankDetailRepository.
type BankDetailRepo struct {
	q Querier
}

// NewBankDetailRepository construye el adaptador.
func NewBankDetailRepository(q Querier) *BankDetailRepo {
	return &BankDetailRepo{q: q}
}

// Create persiste una cuenta bancaria.
func (r *BankDetailRepo) Create(ctx context.Context, b *entity.BankDetail) error {
	query := `
		INSERT INTO bank_details (id, company_id, bank_name, account_name, account_number, iban, swift_code,
		                          is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.BankName, b.AccountName, b.AccountNumber, b.IBAN, b.SwiftCode,
		b.IsDefault, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bank detail: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID. (nil, nil) si no existe.
func (r *BankDetailRepo) GetByID(ctx context.Context, id string) (*entity.BankDetail, error) {
	var b entity.BankDetail
	err := r.q.QueryRow(ctx, "SELECT "+bankDetailColumns+" FROM bank_details WHERE id = $1", id).Scan(
		&b.ID, &b.CompanyID, &b.BankName, &b.AccountName, &b.AccountNumber, &b.IBAN, &b.SwiftCode,
		&b.IsDefault, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank detail: %w", err)
	}
	return &b, nil
}

// List lista las cuentas de la empresa; la cuenta por defecto va primero.
func (r *BankDetailRepo) List(ctx context.Context, companyID string, f repository.ListFilter) ([]*entity.BankDetail, int, error) {
	var w whereBuilder
	w.add("company_id = $%[1]d", companyID)
	w.search(f.Search, "bank_name", "account_name", "account_number")
	query := "SELECT " + bankDetailColumns + ", COUNT(*) OVER() FROM bank_details" + w.sql() +
		" ORDER BY is_default DESC, " + orderColumns(f.SortBy, f.SortDesc, bankDetailSortColumns, "bank_name") +
		w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bank details: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.BankDetail
		total int
	)
	for rows.Next() {
		var b entity.BankDetail
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.BankName, &b.AccountName, &b.AccountNumber, &b.IBAN, &b.SwiftCode,
			&b.IsDefault, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan bank detail: %w", err)
		}
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(list) == 0 && f.Offset > 0 {
		total, err = countRows(ctx, r.q, "bank_details", w)
	}
	return list, total, err
}

// Update actualiza la cuenta (incluido is_default).
func (r *BankDetailRepo) Update(ctx context.Context, b *entity.BankDetail) error {
	query := `
		UPDATE bank_details
		SET bank_name = $2, account_name = $3, account_number = $4, iban = $5, swift_code = $6,
		    is_default = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.BankName, b.AccountName, b.AccountNumber, b.IBAN, b.SwiftCode, b.IsDefault, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update bank detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearDefault desmarca la cuenta por defecto de la empresa.
func (r *BankDetailRepo) ClearDefault(ctx context.Context, companyID string) error {
	_, err := r.q.Exec(ctx,
		"UPDATE bank_details SET is_default = FALSE, updated_at = NOW() WHERE company_id = $1 AND is_default", companyID)
	if err != nil {
		return fmt.Errorf("clear default bank detail: %w", err)
	}
	return nil
}

// Delete elimina la cuenta. Las facturas que la referencian quedan sin cuenta (ON DELETE SET NULL).
func (r *BankDetailRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM bank_details WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete bank detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
