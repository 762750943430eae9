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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// companySortColumns campos ordenables expuestos en ?sort=.
var companySortColumns = map[string]string{
	"name":       "name",
	"tax_id":     "tax_id",
	"created_at": "created_at",
}

const companyColumns = `id, name, tax_id, address, phone, email, currency, invoice_prefix,
	default_tax_rate, status, created_at, updated_at`

// CompanyRepo implementación de CompanyRepository.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste un nuevo perfil de negocio.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, tax_id, address, phone, email, currency, invoice_prefix,
		                       default_tax_rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.TaxID, c.Address, c.Phone, c.Email, c.Currency, c.InvoicePrefix,
		c.DefaultTaxRate, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID. (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := "SELECT " + companyColumns + " FROM companies WHERE id = $1"
	return r.getOne(ctx, query, id)
}

// GetByTaxID obtiene un perfil por número de IVA. (nil, nil) si no existe.
func (r *CompanyRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error) {
	query := "SELECT " + companyColumns + " FROM companies WHERE tax_id = $1"
	return r.getOne(ctx, query, taxID)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Address, &c.Phone, &c.Email, &c.Currency, &c.InvoicePrefix,
		&c.DefaultTaxRate, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos editables del perfil.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, address = $3, phone = $4, email = $5, currency = $6,
		    invoice_prefix = $7, default_tax_rate = $8, status = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Address, c.Phone, c.Email, c.Currency,
		c.InvoicePrefix, c.DefaultTaxRate, c.Status, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista perfiles (búsqueda por nombre o NIT, filtro por estado).
func (r *CompanyRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Company, int, error) {
	var w whereBuilder
	w.search(f.Search, "name", "tax_id")
	if f.Status != "" {
		w.add("status = $%[1]d", toLowerStatus(f.Status))
	}
	query := "SELECT " + companyColumns + ", COUNT(*) OVER() FROM companies" + w.sql() +
		orderBy(f.SortBy, f.SortDesc, companySortColumns, "name") + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Company
		total int
	)
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.TaxID, &c.Address, &c.Phone, &c.Email, &c.Currency, &c.InvoicePrefix,
			&c.DefaultTaxRate, &c.Status, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(list) == 0 && f.Offset > 0 {
		total, err = countRows(ctx, r.q, "companies", w)
	}
	return list, total, err
}

// Delete elimina el perfil. Si tiene datos asociados devuelve domain.ErrConflict.
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
