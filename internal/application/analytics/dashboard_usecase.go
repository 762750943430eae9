// Package analytics contiene los casos de uso de reportes de negocio: el resumen de
// ventas e IVA del período para el panel de administración.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // ítems en el ranking del resumen

// DashboardUseCase genera el resumen de ventas de una empresa.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el resumen del período pedido (por defecto, el mes en curso).
//
// Tres consultas en paralelo:
//  1. GetStatusTotals  → Sales, Outstanding, Collected, ByStatus
//  2. GetTaxBreakdown  → VATByRate
//  3. GetTopProducts   → TopProducts
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string, q dto.SummaryQuery) (*dto.DashboardSummaryDTO, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	from, to, err := uc.period(q)
	if err != nil {
		return nil, err
	}

	type statusResult struct {
		rows []repository.StatusTotals
		err  error
	}
	type taxResult struct {
		rows []repository.TaxRateTotals
		err  error
	}
	type topResult struct {
		rows []repository.ProductSales
		err  error
	}

	statusCh := make(chan statusResult, 1)
	taxCh := make(chan taxResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetStatusTotals(ctx, companyID, from, to)
		statusCh <- statusResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTaxBreakdown(ctx, companyID, from, to)
		taxCh <- taxResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, companyID, from, to, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()

	status := <-statusCh
	tax := <-taxCh
	top := <-topCh

	if status.err != nil {
		return nil, fmt.Errorf("dashboard: totales por estado: %w", status.err)
	}
	if tax.err != nil {
		return nil, fmt.Errorf("dashboard: IVA por tasa: %w", tax.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: ranking de productos: %w", top.err)
	}

	out := &dto.DashboardSummaryDTO{
		Period: dto.PeriodDTO{
			From:  from.Format(dto.DateLayout),
			To:    to.Format(dto.DateLayout),
			Label: periodLabel(from, to),
		},
		Sales: dto.SalesTotalsDTO{
			SubTotal:      decimal.Zero,
			TotalDiscount: decimal.Zero,
			TotalTaxable:  decimal.Zero,
			TotalTax:      decimal.Zero,
			GrandTotal:    decimal.Zero,
		},
		Outstanding: decimal.Zero,
		Collected:   decimal.Zero,
		ByStatus:    make([]dto.StatusSummaryDTO, 0, len(status.rows)),
		VATByRate:   make([]dto.VATRateDTO, 0, len(tax.rows)),
		TopProducts: make([]dto.TopProductDTO, 0, len(top.rows)),
	}

	for _, s := range status.rows {
		out.ByStatus = append(out.ByStatus, dto.StatusSummaryDTO{
			Status:       s.Status,
			InvoiceCount: s.InvoiceCount,
			GrandTotal:   s.GrandTotal,
		})
		switch s.Status {
		case entity.InvoiceStatusIssued:
			out.Outstanding = out.Outstanding.Add(s.GrandTotal)
		case entity.InvoiceStatusPaid:
			out.Collected = out.Collected.Add(s.GrandTotal)
		default:
			continue
		}
		out.Sales.InvoiceCount += s.InvoiceCount
		out.Sales.SubTotal = out.Sales.SubTotal.Add(s.SubTotal)
		out.Sales.TotalDiscount = out.Sales.TotalDiscount.Add(s.TotalDiscount)
		out.Sales.TotalTaxable = out.Sales.TotalTaxable.Add(s.TotalTaxable)
		out.Sales.TotalTax = out.Sales.TotalTax.Add(s.TotalTax)
		out.Sales.GrandTotal = out.Sales.GrandTotal.Add(s.GrandTotal)
	}
	for _, t := range tax.rows {
		out.VATByRate = append(out.VATByRate, dto.VATRateDTO{
			TaxRate:       t.TaxRate,
			LineCount:     t.LineCount,
			TaxableAmount: t.TaxableAmount,
			TaxAmount:     t.TaxAmount,
		})
	}
	for _, p := range top.rows {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:     p.ProductID,
			SKU:           p.SKU,
			Name:          p.Name,
			Quantity:      p.Quantity,
			TaxableAmount: p.TaxableAmount,
			LineTotal:     p.LineTotal,
		})
	}
	return out, nil
}

// period resuelve el rango: sin fechas, del día 1 del mes en curso a hoy.
func (uc *DashboardUseCase) period(q dto.SummaryQuery) (time.Time, time.Time, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := today

	if q.From != "" {
		t, err := time.Parse(dto.DateLayout, q.From)
		if err != nil {
			return from, to, domain.ErrInvalidInput
		}
		from = t
		if q.To == "" && from.After(to) {
			to = from
		}
	}
	if q.To != "" {
		t, err := time.Parse(dto.DateLayout, q.To)
		if err != nil {
			return from, to, domain.ErrInvalidInput
		}
		to = t
		if q.From == "" {
			from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}
	if to.Before(from) {
		return from, to, &dto.ValidationError{Fields: []string{"to:gtefield"}}
	}
	return from, to, nil
}

// periodLabel devuelve "Octubre 2026" si el rango cae en un solo mes, si no "2026-09-01 a 2026-10-19".
func periodLabel(from, to time.Time) string {
	if from.Year() == to.Year() && from.Month() == to.Month() {
		return monthLabel(from)
	}
	return fmt.Sprintf("%s a %s", from.Format(dto.DateLayout), to.Format(dto.DateLayout))
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
