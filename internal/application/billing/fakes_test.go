package billing_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	items map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.items[c.ID] = c
	return nil
}
func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.items[id], nil
}
func (r *fakeCompanyRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	for _, c := range r.items {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.items[c.ID] = c
	return nil
}
func (r *fakeCompanyRepo) List(_ context.Context, _ repository.ListFilter) ([]*entity.Company, int, error) {
	out := make([]*entity.Company, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, len(out), nil
}
func (r *fakeCompanyRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeCustomerRepo struct {
	items map[string]*entity.Customer
	err   error // si no es nil, GetByID falla
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.items[c.ID] = c
	return nil
}
func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.items[id], nil
}
func (r *fakeCustomerRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Customer, error) {
	for _, c := range r.items {
		if c.CompanyID == companyID && c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) List(_ context.Context, companyID string, f repository.ListFilter) ([]*entity.Customer, int, error) {
	var out []*entity.Customer
	for _, c := range r.items {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}
func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.items[c.ID] = c
	return nil
}
func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeProductRepo struct {
	items map[string]*entity.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}
func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.items[id], nil
}
func (r *fakeProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range r.items {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}
func (r *fakeProductRepo) List(_ context.Context, companyID string, _ repository.ListFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.items {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}
func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeBankRepo struct {
	items map[string]*entity.BankDetail
}

func (r *fakeBankRepo) Create(_ context.Context, b *entity.BankDetail) error {
	r.items[b.ID] = b
	return nil
}
func (r *fakeBankRepo) GetByID(_ context.Context, id string) (*entity.BankDetail, error) {
	return r.items[id], nil
}
func (r *fakeBankRepo) List(_ context.Context, companyID string, _ repository.ListFilter) ([]*entity.BankDetail, int, error) {
	var out []*entity.BankDetail
	for _, b := range r.items {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}
func (r *fakeBankRepo) Update(_ context.Context, b *entity.BankDetail) error {
	r.items[b.ID] = b
	return nil
}
func (r *fakeBankRepo) ClearDefault(_ context.Context, companyID string) error {
	for _, b := range r.items {
		if b.CompanyID == companyID {
			b.IsDefault = false
		}
	}
	return nil
}
func (r *fakeBankRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeInvoiceRepo struct {
	invoices  map[string]*entity.Invoice
	details   map[string][]*entity.InvoiceDetail
	sequences map[string]int
	// failDetail simula un error al guardar la línea N (1-based); 0 = nunca.
	failDetail int
	written    int
	// afterGet se ejecuta una vez después de la próxima lectura por ID.
	afterGet func()
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices:  map[string]*entity.Invoice{},
		details:   map[string][]*entity.InvoiceDetail{},
		sequences: map[string]int{},
	}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	for _, other := range r.invoices {
		if other.CompanyID == inv.CompanyID && other.Prefix == inv.Prefix && other.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}
func (r *fakeInvoiceRepo) CreateDetail(_ context.Context, d *entity.InvoiceDetail) error {
	r.written++
	if r.failDetail > 0 && r.written == r.failDetail {
		return domain.ErrConflict
	}
	r.details[d.InvoiceID] = append(r.details[d.InvoiceID], d)
	return nil
}
func (r *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	cur, ok := r.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != entity.InvoiceStatusDraft {
		return domain.ErrNotEditable
	}
	cp := *inv
	cp.Status = cur.Status
	r.invoices[inv.ID] = &cp
	return nil
}
func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, id, from, to string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	if inv.Status != from {
		return domain.ErrInvalidTransition
	}
	cp := *inv
	cp.Status = to
	r.invoices[id] = &cp
	return nil
}
func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	if r.afterGet != nil {
		hook := r.afterGet
		r.afterGet = nil
		hook()
	}
	return &cp, nil
}
func (r *fakeInvoiceRepo) GetDetailsByInvoiceID(_ context.Context, invoiceID string) ([]*entity.InvoiceDetail, error) {
	return r.details[invoiceID], nil
}
func (r *fakeInvoiceRepo) DeleteDetails(_ context.Context, invoiceID string) error {
	delete(r.details, invoiceID)
	return nil
}
func (r *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	if inv.Status != entity.InvoiceStatusDraft {
		return domain.ErrNotEditable
	}
	delete(r.invoices, id)
	return nil
}
func (r *fakeInvoiceRepo) List(_ context.Context, companyID string, f repository.ListFilter) ([]*entity.Invoice, int, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, inv)
	}
	return out, len(out), nil
}
func (r *fakeInvoiceRepo) NextSequence(_ context.Context, companyID, prefix string) (int, error) {
	key := companyID + "|" + prefix
	r.sequences[key]++
	return r.sequences[key], nil
}

// snapshot copia el estado para simular el rollback de la transacción.
func (r *fakeInvoiceRepo) snapshot() (map[string]*entity.Invoice, map[string][]*entity.InvoiceDetail, map[string]int) {
	inv := make(map[string]*entity.Invoice, len(r.invoices))
	for k, v := range r.invoices {
		inv[k] = v
	}
	det := make(map[string][]*entity.InvoiceDetail, len(r.details))
	for k, v := range r.details {
		det[k] = v
	}
	seq := make(map[string]int, len(r.sequences))
	for k, v := range r.sequences {
		seq[k] = v
	}
	return inv, det, seq
}

// fakeTxRunner ejecuta fn sobre el mismo repositorio y restaura el estado si falla.
type fakeTxRunner struct {
	repo *fakeInvoiceRepo
	runs int
	// before simula otra petición que se confirma justo antes de esta transacción.
	before func()
}

func (t *fakeTxRunner) RunInvoice(_ context.Context, fn func(repository.InvoiceRepository) error) error {
	t.runs++
	if t.before != nil {
		t.before()
		t.before = nil
	}
	inv, det, seq := t.repo.snapshot()
	if err := fn(t.repo); err != nil {
		t.repo.invoices, t.repo.details, t.repo.sequences = inv, det, seq
		return err
	}
	return nil
}

type fakeRecorder struct {
	mu          sync.Mutex
	created     int
	calculated  int
	transitions []string
	lastTotal   decimal.Decimal
}

func (r *fakeRecorder) InvoiceCreated(_ string, total decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	r.lastTotal = total
}
func (r *fakeRecorder) InvoiceStatusChanged(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, from+"->"+to)
}
func (r *fakeRecorder) InvoiceCalculated(int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calculated++
}
