package query

import (
	"errors"
)

// Errores de entrada. Todos se detectan antes de ejecutar cualquier consulta
// y se envuelven con el detalle (clave, campo, valor) que los provocó.
var (
	ErrMalformedFilterKey   = errors.New("malformed filter key")
	ErrUnsupportedOperator  = errors.New("unsupported operator")
	ErrUnknownField         = errors.New("unknown field")
	ErrInvalidFilterValue   = errors.New("invalid filter value")
	ErrConflictingSort      = errors.New("conflicting sort")
	ErrInvalidPageParameter = errors.New("invalid page parameter")
)

var inputErrors = []error{
	ErrMalformedFilterKey,
	ErrUnsupportedOperator,
	ErrUnknownField,
	ErrInvalidFilterValue,
	ErrConflictingSort,
	ErrInvalidPageParameter,
}

// IsInputError indica si err proviene de una entrada inválida del cliente.
func IsInputError(err error) bool {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
