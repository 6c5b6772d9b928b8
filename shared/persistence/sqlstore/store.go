package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davicafu/hexasocial/shared/platform/query"
)

// Scanner es la parte común de *sql.Row y *sql.Rows.
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanFunc lee una fila en la entidad.
type ScanFunc[T any] func(Scanner) (T, error)

// Store implementa query.RowStore sobre database/sql.
type Store[T any] struct {
	db    *sql.DB
	table Table
	scan  ScanFunc[T]
}

func NewStore[T any](db *sql.DB, table Table, scan ScanFunc[T]) *Store[T] {
	return &Store[T]{db: db, table: table, scan: scan}
}

// Table devuelve la descripción de la tabla.
func (s *Store[T]) Table() Table {
	return s.table
}

func (s *Store[T]) Find(ctx context.Context, q query.Query) ([]T, error) {
	stmt, args, err := s.table.SelectSQL(q)
	if err != nil {
		return nil, err
	}
	return QueryAll(ctx, s.db, stmt, args, s.scan)
}

func (s *Store[T]) Count(ctx context.Context, filters query.FilterSpec) (int64, error) {
	stmt, args, err := s.table.CountSQL(filters)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table.Name, err)
	}
	return n, nil
}

// Querier es la parte común de *sql.DB y *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// QueryAll ejecuta la consulta y escanea todas las filas.
func QueryAll[T any](ctx context.Context, q Querier, stmt string, args []interface{}, scan ScanFunc[T]) ([]T, error) {
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("db query error: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db scan error: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
