package repository

import (
	"context"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y detalles.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateDetail(ctx context.Context, detail *entity.InvoiceDetail) error
	// Update reescribe cabecera y totales (no las líneas ni el estado). Solo afecta facturas en DRAFT:
	// si la factura ya no está en DRAFT retorna domain.ErrNotEditable.
	Update(ctx context.Context, invoice *entity.Invoice) error
	// UpdateStatus cambia el estado solo si la factura sigue en from; si no, domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id, from, to string) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetDetailsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceDetail, error)
	DeleteDetails(ctx context.Context, invoiceID string) error
	// Delete borra una factura en DRAFT; si ya no lo está retorna domain.ErrNotEditable.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, companyID string, filter ListFilter) ([]*entity.Invoice, int, error)
	// NextSequence devuelve el siguiente consecutivo para el prefijo de la empresa.
	NextSequence(ctx context.Context, companyID, prefix string) (int, error)
}
