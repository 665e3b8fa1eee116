package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Granja-api/internal/application/feed"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var _ feed.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con los
// repositorios del ledger atados a esa tx. Es la pieza que hace atómico el
// ciclo verificación → escritura de consumo → ajuste del resumen.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit; cualquier error provoca Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	consRepo repository.ConsumptionRepository,
	stockRepo repository.FeedStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	consRepo := NewConsumptionRepository(tx)
	stockRepo := NewFeedStockRepository(tx)

	if err := fn(consRepo, stockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
