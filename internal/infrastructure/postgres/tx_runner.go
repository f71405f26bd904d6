package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bill-detail/internal/domain/repository"
)

var _ repository.Seeder = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Seed inicia una transacción, ejecuta fn con un writer atado a la tx y hace Commit o Rollback.
// Al final sincroniza las secuencias por si fn insertó IDs explícitos.
func (r *TxRunner) Seed(ctx context.Context, fn func(w repository.BillWriter) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBillRepository(tx)); err != nil {
		return err
	}
	for _, table := range []string{"shop_profiles", "bills", "bill_line_items"} {
		q := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
			table)
		if _, err := tx.Exec(ctx, q); err != nil {
			return fmt.Errorf("sync sequence %s: %w", table, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
