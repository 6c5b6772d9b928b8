// Package query decodifica filtros de la query string (where__/order__/after__),
// los valida contra la tabla de campos de cada entidad y pagina por offset o
// por cursor sobre cualquier RowStore.
package query

import (
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
)

// ---------- Consulta acotada que recibe el store ----------

// Keyset es la frontera de continuación de la paginación por cursor.
// Con TieField vacío se aplica como "Field Op Value"; con TieField se aplica
// como la comparación de filas (Field, TieField) Op (Value, TieValue).
type Keyset struct {
	Field    string
	Op       sharedDomain.Operator
	Value    interface{}
	TieField string
	TieValue interface{}
}

// Query es la consulta acotada que ejecuta un RowStore.
type Query struct {
	Filters FilterSpec
	Sort    SortSpec
	// TieBreak es la segunda columna de orden (misma dirección que Sort).
	TieBreak string
	Keyset   *Keyset
	Limit    int
	Offset   int
}
