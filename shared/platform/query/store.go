package query

import (
	"context"
)

// Row es una fila devuelta por el store de la que se pueden leer campos por nombre.
type Row interface {
	FieldValue(field string) (interface{}, bool)
}

// RowStore es la capacidad mínima que el motor necesita del almacenamiento.
type RowStore[T any] interface {
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, filters FilterSpec) (int64, error)
}
