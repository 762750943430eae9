package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productSortColumns = map[string]string{
	"sku":        "sku",
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
}

const productColumns = `id, company_id, sku, name, description, price, price_includes_vat, tax_rate,
	unit_measure, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para el catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo ítem del catálogo.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, sku, name, description, price, price_includes_vat, tax_rate,
		                      unit_measure, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.SKU, p.Name, p.Description, p.Price, p.PriceIncludesVAT, p.TaxRate,
		p.UnitMeasure, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
}

// GetByCompanyAndSKU busca un ítem por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "SELECT "+productColumns+" FROM products WHERE company_id = $1 AND sku = $2", companyID, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.PriceIncludesVAT, &p.TaxRate,
		&p.UnitMeasure, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza el ítem (el SKU no cambia).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, price_includes_vat = $5, tax_rate = $6,
		    unit_measure = $7, active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.PriceIncludesVAT, p.TaxRate, p.UnitMeasure, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ítems de la empresa (búsqueda por SKU o nombre; status=ACTIVE|INACTIVE).
func (r *ProductRepo) List(ctx context.Context, companyID string, f repository.ListFilter) ([]*entity.Product, int, error) {
	var w whereBuilder
	w.add("company_id = $%[1]d", companyID)
	w.search(f.Search, "sku", "name")
	switch strings.ToLower(f.Status) {
	case entity.CompanyStatusActive:
		w.add("active = $%[1]d", true)
	case entity.CompanyStatusInactive:
		w.add("active = $%[1]d", false)
	}
	query := "SELECT " + productColumns + ", COUNT(*) OVER() FROM products" + w.sql() +
		orderBy(f.SortBy, f.SortDesc, productSortColumns, "name") + w.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Product
		total int
	)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.PriceIncludesVAT, &p.TaxRate,
			&p.UnitMeasure, &p.Active, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(list) == 0 && f.Offset > 0 {
		total, err = countRows(ctx, r.q, "products", w)
	}
	return list, total, err
}

// Delete elimina el ítem. Si hay facturas que lo referencian devuelve domain.ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
