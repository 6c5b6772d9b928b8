package query

import (
	"fmt"
	"strings"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
)

// SortDirection es ASC o DESC.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// SortSpec es el orden de una sola columna.
type SortSpec struct {
	Field     string
	Direction SortDirection
}

// Desc indica orden descendente.
func (s SortSpec) Desc() bool {
	return s.Direction == SortDesc
}

// BoundOperator es el operador que continúa la paginación en esta dirección.
func (s SortSpec) BoundOperator() Operator {
	if s.Desc() {
		return OpLessThan
	}
	return OpMoreThan
}

// FilterSpec es la lista ordenada de condiciones validadas y tipadas.
type FilterSpec []sharedDomain.Criterion

// ToConditions implementa sharedDomain.Criteria.
func (f FilterSpec) ToConditions() []sharedDomain.Criterion {
	return append([]sharedDomain.Criterion(nil), f...)
}

// With devuelve una copia con las condiciones añadidas; f no se modifica.
func (f FilterSpec) With(criteria ...sharedDomain.Criteria) FilterSpec {
	out := make(FilterSpec, 0, len(f))
	out = append(out, f...)
	for _, c := range criteria {
		out = append(out, c.ToConditions()...)
	}
	return out
}

// Spec es el resultado del PredicateBuilder.
type Spec struct {
	Filters FilterSpec
	Sort    SortSpec
	// After es el valor de desempate (clave primaria) enviado con after__<pk>.
	After interface{}
}

// Build valida los tokens contra la tabla de campos y produce filtros y orden.
// Sin clave order__ el orden es la clave primaria ascendente.
func Build(table FieldTable, tokens []Token) (Spec, error) {
	spec := Spec{Sort: SortSpec{Field: table.PrimaryKey(), Direction: SortAsc}}
	var orderKey string

	for _, tok := range tokens {
		field, ok := table.Lookup(tok.Field)
		if !ok {
			return Spec{}, fmt.Errorf("%w: %q in key %q", ErrUnknownField, tok.Field, tok.Key)
		}

		switch tok.Kind {
		case TokenWhere:
			if tok.Operator.isPattern() && field.Type != FieldString {
				return Spec{}, fmt.Errorf("%w: operator %q requires a string field, %q is %s",
					ErrInvalidFilterValue, tok.Operator, tok.Field, field.Type)
			}
			value, err := table.Coerce(tok.Field, tok.RawValue)
			if err != nil {
				return Spec{}, err
			}
			spec.Filters = append(spec.Filters, sharedDomain.Criterion{
				Field: tok.Field,
				Op:    tok.Operator.Native(),
				Value: value,
			})

		case TokenOrder:
			if orderKey != "" {
				return Spec{}, fmt.Errorf("%w: %q and %q; only one order key is supported",
					ErrConflictingSort, orderKey, tok.Key)
			}
			dir, err := parseDirection(tok)
			if err != nil {
				return Spec{}, err
			}
			orderKey = tok.Key
			spec.Sort = SortSpec{Field: tok.Field, Direction: dir}

		case TokenAfter:
			if tok.Field != table.PrimaryKey() {
				return Spec{}, fmt.Errorf("%w: %q is not the primary key (%q)", ErrUnknownField, tok.Field, table.PrimaryKey())
			}
			value, err := table.Coerce(tok.Field, tok.RawValue)
			if err != nil {
				return Spec{}, err
			}
			spec.After = value
		}
	}

	return spec, nil
}

func parseDirection(tok Token) (SortDirection, error) {
	switch SortDirection(strings.ToUpper(tok.RawValue)) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", fmt.Errorf("%w: %q expects ASC or DESC, got %q", ErrInvalidFilterValue, tok.Key, tok.RawValue)
	}
}
