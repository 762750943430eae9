package repository

import (
	"context"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
)

// BankDetailRepository define el puerto de persistencia para BankDetail.
type BankDetailRepository interface {
	Create(ctx context.Context, bank *entity.BankDetail) error
	GetByID(ctx context.Context, id string) (*entity.BankDetail, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]*entity.BankDetail, int, error)
	Update(ctx context.Context, bank *entity.BankDetail) error
	// ClearDefault desmarca la cuenta por defecto de la empresa.
	ClearDefault(ctx context.Context, companyID string) error
	Delete(ctx context.Context, id string) error
}
