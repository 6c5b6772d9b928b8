package relational

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx ejecuta fn en una transacción y hace commit si no devuelve error.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() // Se ignora si el Commit() es exitoso

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
