package query

import (
	"net/url"
)

// Boundary es la frontera calculada a partir de la última fila de una página llena.
type Boundary struct {
	Key   string // where__<sortField>__more_than | where__<sortField>__less_than
	Value string
	// TieKey/TieValue solo se rellenan cuando el campo de orden no es la clave primaria.
	TieKey   string
	TieValue string
}

// NextLink reconstruye la URL de la siguiente página: copia todas las claves
// de params salvo las dos cotas del campo de orden (y after__<pk>) y añade la
// frontera nueva. params no se modifica.
func NextLink(base string, params map[string]string, sort SortSpec, primaryKey string, b Boundary) string {
	skip := map[string]struct{}{
		WhereKey(sort.Field, OpMoreThan): {},
		WhereKey(sort.Field, OpLessThan): {},
		AfterKey(primaryKey):             {},
	}

	values := url.Values{}
	for k, v := range params {
		if _, ok := skip[k]; ok {
			continue
		}
		values.Set(k, v)
	}
	values.Set(b.Key, b.Value)
	if b.TieKey != "" {
		values.Set(b.TieKey, b.TieValue)
	}

	return base + "?" + values.Encode()
}
