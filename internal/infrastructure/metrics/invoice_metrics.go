package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// InvoiceMetrics contadores de negocio de facturación. Implementa billing.Recorder.
type InvoiceMetrics struct {
	created     *prometheus.CounterVec
	amount      *prometheus.CounterVec
	transitions *prometheus.CounterVec
	previewRows prometheus.Histogram
}

// NewInvoiceMetrics crea y registra los colectores de facturación.
func NewInvoiceMetrics(namespace string, reg prometheus.Registerer) *InvoiceMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &InvoiceMetrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Facturas creadas por empresa.",
		}, []string{"company_id"}),
		amount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_amount_total",
			Help:      "Suma de los totales de las facturas creadas por empresa.",
		}, []string{"company_id"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_status_transitions_total",
			Help:      "Cambios de estado de facturas.",
		}, []string{"from", "to"}),
		previewRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoice_preview_lines",
			Help:      "Cantidad de líneas por cálculo de vista previa.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}
	m.created = register(reg, m.created)
	m.amount = register(reg, m.amount)
	m.transitions = register(reg, m.transitions)
	m.previewRows = register(reg, m.previewRows)
	return m
}

func (m *InvoiceMetrics) InvoiceCreated(companyID string, grandTotal decimal.Decimal) {
	m.created.WithLabelValues(companyID).Inc()
	// Counter no admite valores negativos (descuentos mayores al bruto).
	if f := grandTotal.InexactFloat64(); f > 0 {
		m.amount.WithLabelValues(companyID).Add(f)
	}
}

func (m *InvoiceMetrics) InvoiceStatusChanged(from, to string) {
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *InvoiceMetrics) InvoiceCalculated(lines int) {
	m.previewRows.Observe(float64(lines))
}
