package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-pos-api/internal/application/billing"
	"github.com/jhoicas/facturacion-pos-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
	apphttp "github.com/jhoicas/facturacion-pos-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "00000000-0000-0000-0000-000000000001"
	otherCompany  = "00000000-0000-0000-0000-000000000002"
	missingID     = "00000000-0000-0000-0000-0000000000ff"
	productVATID  = "00000000-0000-0000-0000-0000000000a1"
	productBID    = "00000000-0000-0000-0000-0000000000b1"
)

type memCompanies struct {
	mu    sync.Mutex
	items map[string]*entity.Company
	err   error
}

func (r *memCompanies) Create(_ context.Context, c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = c
	return nil
}

func (r *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.items[id], nil
}

func (r *memCompanies) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memCompanies) Update(_ context.Context, c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *memCompanies) List(_ context.Context, f repository.ListFilter) ([]*entity.Company, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Company, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r *memCompanies) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type memProducts struct {
	items map[string]*entity.Product
}

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.items[id], nil
}

func (r *memProducts) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range r.items {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProducts) Update(_ context.Context, p *entity.Product) error {
	r.items[p.ID] = p
	return nil
}

func (r *memProducts) List(_ context.Context, companyID string, _ repository.ListFilter) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.items {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type testEnv struct {
	app       *fiber.App
	companies *memCompanies
	products  *memProducts
}

// newTestEnv arma el router completo sobre repositorios en memoria. Clientes, cuentas y
// facturas no tienen repositorio: las pruebas de este paquete no los persisten.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	companies := &memCompanies{items: map[string]*entity.Company{
		testCompanyID: {ID: testCompanyID, Name: "Tienda Norte", TaxID: "300000000000003", Currency: "SAR",
			InvoicePrefix: "INV", DefaultTaxRate: decimal.NewFromInt(15), Status: entity.CompanyStatusActive},
		otherCompany: {ID: otherCompany, Name: "Tienda Sur", TaxID: "300000000000004", Currency: "SAR",
			InvoicePrefix: "SUR", DefaultTaxRate: decimal.NewFromInt(5), Status: entity.CompanyStatusActive},
	}}
	products := &memProducts{items: map[string]*entity.Product{
		productVATID: {ID: productVATID, CompanyID: testCompanyID, SKU: "CAFE-1", Name: "Café molido",
			Price: decimal.NewFromInt(115), PriceIncludesVAT: true, TaxRate: decimal.NewFromInt(15), Active: true},
		productBID: {ID: productBID, CompanyID: otherCompany, SKU: "TE-1", Name: "Té verde",
			Price: decimal.NewFromInt(10), TaxRate: decimal.NewFromInt(5), Active: true},
	}}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CompanyUC:    usecase.NewCompanyUseCase(companies),
		BankDetailUC: usecase.NewBankDetailUseCase(nil, nil),
		ProductUC:    usecase.NewProductUseCase(products),
		CustomerUC:   billing.NewCustomerUseCase(nil),
		InvoiceUC:    billing.NewInvoiceUseCase(nil, companies, nil, products, nil, nil, nil),
	})
	return &testEnv{app: app, companies: companies, products: products}
}

// do ejecuta la petición y devuelve status y cuerpo.
func (e *testEnv) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}
