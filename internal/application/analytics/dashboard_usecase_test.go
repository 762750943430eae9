package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

type fakeAnalyticsRepo struct {
	status   []repository.StatusTotals
	tax      []repository.TaxRateTotals
	top      []repository.ProductSales
	err      error
	from, to time.Time
	limit    int
}

func (r *fakeAnalyticsRepo) GetStatusTotals(_ context.Context, _ string, from, to time.Time) ([]repository.StatusTotals, error) {
	r.from, r.to = from, to
	return r.status, r.err
}

func (r *fakeAnalyticsRepo) GetTaxBreakdown(context.Context, string, time.Time, time.Time) ([]repository.TaxRateTotals, error) {
	return r.tax, nil
}

func (r *fakeAnalyticsRepo) GetTopProducts(_ context.Context, _ string, _, _ time.Time, limit int) ([]repository.ProductSales, error) {
	r.limit = limit
	return r.top, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newDashboard(repo *fakeAnalyticsRepo) *DashboardUseCase {
	uc := NewDashboardUseCase(repo)
	uc.now = func() time.Time { return time.Date(2026, time.October, 19, 15, 30, 0, 0, time.UTC) }
	return uc
}

func TestGetSummary_SumaEmitidasYPagadas(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		status: []repository.StatusTotals{
			{Status: "CANCELLED", InvoiceCount: 1, SubTotal: d("50"), TotalDiscount: d("0"), TotalTaxable: d("50"), TotalTax: d("7.5"), GrandTotal: d("57.5")},
			{Status: "DRAFT", InvoiceCount: 2, SubTotal: d("10"), TotalDiscount: d("0"), TotalTaxable: d("10"), TotalTax: d("1.5"), GrandTotal: d("11.5")},
			{Status: "ISSUED", InvoiceCount: 3, SubTotal: d("230"), TotalDiscount: d("3"), TotalTaxable: d("227"), TotalTax: d("34.05"), GrandTotal: d("261.05")},
			{Status: "PAID", InvoiceCount: 1, SubTotal: d("100"), TotalDiscount: d("0"), TotalTaxable: d("100"), TotalTax: d("15"), GrandTotal: d("115")},
		},
		tax: []repository.TaxRateTotals{
			{TaxRate: d("15"), LineCount: 3, TaxableAmount: d("317"), TaxAmount: d("47.55")},
			{TaxRate: d("5"), LineCount: 1, TaxableAmount: d("10"), TaxAmount: d("0.5")},
		},
		top: []repository.ProductSales{{ProductID: "p1", SKU: "CAFE-1", Name: "Café", Quantity: d("4"), TaxableAmount: d("400"), LineTotal: d("460")}},
	}

	out, err := newDashboard(repo).GetSummary(context.Background(), "c1", dto.SummaryQuery{})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Sales.InvoiceCount)
	assert.True(t, d("330").Equal(out.Sales.SubTotal), out.Sales.SubTotal.String())
	assert.True(t, d("327").Equal(out.Sales.TotalTaxable))
	assert.True(t, d("49.05").Equal(out.Sales.TotalTax))
	assert.True(t, d("376.05").Equal(out.Sales.GrandTotal))
	assert.True(t, d("261.05").Equal(out.Outstanding))
	assert.True(t, d("115").Equal(out.Collected))
	assert.Len(t, out.ByStatus, 4)
	assert.Len(t, out.VATByRate, 2)
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "CAFE-1", out.TopProducts[0].SKU)
	assert.Equal(t, dashboardTopProducts, repo.limit)
}

func TestGetSummary_PeriodoSinVentasDevuelveCeros(t *testing.T) {
	out, err := newDashboard(&fakeAnalyticsRepo{}).GetSummary(context.Background(), "c1", dto.SummaryQuery{})
	require.NoError(t, err)

	assert.True(t, out.Sales.GrandTotal.IsZero())
	assert.True(t, out.Outstanding.IsZero())
	assert.NotNil(t, out.ByStatus)
	assert.NotNil(t, out.TopProducts)
	assert.Equal(t, "Octubre 2026", out.Period.Label)
	assert.Equal(t, "2026-10-01", out.Period.From)
	assert.Equal(t, "2026-10-19", out.Period.To)
}

func TestGetSummary_Periodo(t *testing.T) {
	tests := []struct {
		name      string
		q         dto.SummaryQuery
		wantFrom  string
		wantTo    string
		wantLabel string
	}{
		{"solo to usa su mes", dto.SummaryQuery{To: "2026-08-20"}, "2026-08-01", "2026-08-20", "Agosto 2026"},
		{"solo from hasta hoy", dto.SummaryQuery{From: "2026-09-15"}, "2026-09-15", "2026-10-19", "2026-09-15 a 2026-10-19"},
		{"rango explícito", dto.SummaryQuery{From: "2026-01-01", To: "2026-03-31"}, "2026-01-01", "2026-03-31", "2026-01-01 a 2026-03-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAnalyticsRepo{}
			out, err := newDashboard(repo).GetSummary(context.Background(), "c1", tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, out.Period.From)
			assert.Equal(t, tt.wantTo, out.Period.To)
			assert.Equal(t, tt.wantLabel, out.Period.Label)
			assert.Equal(t, tt.wantFrom, repo.from.Format(dto.DateLayout))
		})
	}
}

func TestGetSummary_Errores(t *testing.T) {
	_, err := newDashboard(&fakeAnalyticsRepo{}).GetSummary(context.Background(), "c1", dto.SummaryQuery{From: "2026-05-10", To: "2026-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = newDashboard(&fakeAnalyticsRepo{}).GetSummary(context.Background(), "c1", dto.SummaryQuery{From: "10/05/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	boom := errors.New("db caída")
	_, err = newDashboard(&fakeAnalyticsRepo{err: boom}).GetSummary(context.Background(), "c1", dto.SummaryQuery{})
	assert.ErrorIs(t, err, boom)
}
