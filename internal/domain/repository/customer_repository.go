package repository

import (
	"context"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (facturación).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Customer, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]*entity.Customer, int, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
