package usecase

import (
	"context"

	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

// BankDetailTxRunner ejecuta fn dentro de una transacción con el repositorio de cuentas.
// Si fn retorna error no queda ningún cambio (p. ej. la empresa no se queda sin cuenta por defecto).
type BankDetailTxRunner interface {
	RunBankDetail(ctx context.Context, fn func(repo repository.BankDetailRepository) error) error
}
