package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/facturacion-pos-api/internal/application/billing"
	"github.com/jhoicas/facturacion-pos-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/repository"
)

var (
	_ billing.InvoiceTxRunner    = (*TxRunner)(nil)
	_ usecase.BankDetailTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice ejecuta fn con el repositorio de facturas atado a la tx.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error { return fn(NewInvoiceRepository(tx)) })
}

// RunBankDetail ejecuta fn con el repositorio de cuentas bancarias atado a la tx.
func (r *TxRunner) RunBankDetail(ctx context.Context, fn func(repo repository.BankDetailRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error { return fn(NewBankDetailRepository(tx)) })
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
