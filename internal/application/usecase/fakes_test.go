package usecase_test

import (
	"context"
	"strings"

	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

type memCompanyRepo struct {
	items map[string]*entity.Company
	// referenced simula empresas con facturas (FK).
	referenced map[string]bool
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{items: map[string]*entity.Company{}, referenced: map[string]bool{}}
}

func (r *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.items[c.ID] = c
	return nil
}
func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.items[id], nil
}
func (r *memCompanyRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	for _, c := range r.items {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.items[c.ID] = c
	return nil
}
func (r *memCompanyRepo) List(_ context.Context, f repository.ListFilter) ([]*entity.Company, int, error) {
	var out []*entity.Company
	for _, c := range r.items {
		if f.Search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}
func (r *memCompanyRepo) Delete(_ context.Context, id string) error {
	if r.referenced[id] {
		return domain.ErrConflict
	}
	delete(r.items, id)
	return nil
}

type memProductRepo struct {
	items map[string]*entity.Product
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}
func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.items[id], nil
}
func (r *memProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range r.items {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}
func (r *memProductRepo) List(_ context.Context, companyID string, _ repository.ListFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.items {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}
func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type memBankRepo struct {
	items map[string]*entity.BankDetail
	// failWrite hace fallar el próximo Create o Update con ese error.
	failWrite error
}

func (r *memBankRepo) fail() error {
	err := r.failWrite
	r.failWrite = nil
	return err
}

func (r *memBankRepo) Create(_ context.Context, b *entity.BankDetail) error {
	if err := r.fail(); err != nil {
		return err
	}
	r.items[b.ID] = b
	return nil
}
func (r *memBankRepo) GetByID(_ context.Context, id string) (*entity.BankDetail, error) {
	return r.items[id], nil
}
func (r *memBankRepo) List(_ context.Context, companyID string, _ repository.ListFilter) ([]*entity.BankDetail, int, error) {
	var out []*entity.BankDetail
	for _, b := range r.items {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}
func (r *memBankRepo) Update(_ context.Context, b *entity.BankDetail) error {
	if err := r.fail(); err != nil {
		return err
	}
	r.items[b.ID] = b
	return nil
}
func (r *memBankRepo) ClearDefault(_ context.Context, companyID string) error {
	for _, b := range r.items {
		if b.CompanyID == companyID {
			b.IsDefault = false
		}
	}
	return nil
}
func (r *memBankRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

// memBankTx ejecuta fn sobre el mismo repositorio y restaura una copia si falla.
type memBankTx struct {
	repo *memBankRepo
}

func (t memBankTx) RunBankDetail(_ context.Context, fn func(repository.BankDetailRepository) error) error {
	saved := make(map[string]entity.BankDetail, len(t.repo.items))
	for id, b := range t.repo.items {
		saved[id] = *b
	}
	if err := fn(t.repo); err != nil {
		t.repo.items = make(map[string]*entity.BankDetail, len(saved))
		for id, b := range saved {
			b := b
			t.repo.items[id] = &b
		}
		return err
	}
	return nil
}

func (r *memBankRepo) defaults(companyID string) []string {
	var ids []string
	for _, b := range r.items {
		if b.CompanyID == companyID && b.IsDefault {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
