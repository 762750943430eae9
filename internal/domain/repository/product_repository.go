package repository

import (
	"context"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para los ítems del catálogo (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, companyID string, filter ListFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
}
