package query

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
)

// KeyDelimiter separa los segmentos de una clave de filtro: where__id__more_than.
const KeyDelimiter = "__"

const (
	wherePrefix = "where"
	orderPrefix = "order"
	afterPrefix = "after"
)

// TokenKind distingue el tipo de clave decodificada.
type TokenKind int

const (
	TokenWhere TokenKind = iota + 1
	TokenOrder
	TokenAfter
)

func (k TokenKind) String() string {
	switch k {
	case TokenWhere:
		return "WHERE"
	case TokenOrder:
		return "ORDER"
	case TokenAfter:
		return "AFTER"
	default:
		return "UNKNOWN"
	}
}

// Operator es el operador tal como aparece en la query string.
type Operator string

const (
	OpMoreThan        Operator = "more_than"
	OpMoreThanOrEqual Operator = "more_than_or_equal"
	OpLessThan        Operator = "less_than"
	OpLessThanOrEqual Operator = "less_than_or_equal"
	OpEqual           Operator = "equal"
	OpNot             Operator = "not"
	OpLike            Operator = "like"
	OpILike           Operator = "i_like"
)

var operatorMapper = map[Operator]sharedDomain.Operator{
	OpMoreThan:        sharedDomain.OpGt,
	OpMoreThanOrEqual: sharedDomain.OpGte,
	OpLessThan:        sharedDomain.OpLt,
	OpLessThanOrEqual: sharedDomain.OpLte,
	OpEqual:           sharedDomain.OpEq,
	OpNot:             sharedDomain.OpNeq,
	OpLike:            sharedDomain.OpLike,
	OpILike:           sharedDomain.OpILike,
}

// Valid indica si el operador pertenece a la enumeración cerrada.
func (o Operator) Valid() bool {
	_, ok := operatorMapper[o]
	return ok
}

// Native devuelve el operador nativo del store.
func (o Operator) Native() sharedDomain.Operator {
	return operatorMapper[o]
}

func (o Operator) isPattern() bool {
	return o == OpLike || o == OpILike
}

// Token es una entrada decodificada de la query string.
type Token struct {
	Kind     TokenKind
	Key      string
	Field    string
	Operator Operator // solo para TokenWhere
	RawValue string
}

// DecodeKeys convierte las claves where__/order__/after__ en tokens.
// Las claves que no usan esos prefijos se ignoran. Las claves se recorren
// ordenadas para que el resultado y los errores sean deterministas.
func DecodeKeys(params map[string]string) ([]Token, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var tokens []Token
	for _, key := range keys {
		token, ok, err := DecodeKey(key, params[key])
		if err != nil {
			return nil, err
		}
		if ok {
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}

// DecodeKey decodifica una sola clave. ok es false cuando la clave no es de filtrado.
func DecodeKey(key, value string) (Token, bool, error) {
	segments := strings.Split(key, KeyDelimiter)

	switch segments[0] {
	case wherePrefix:
		if len(segments) != 3 || segments[1] == "" || segments[2] == "" {
			return Token{}, false, fmt.Errorf("%w: %q must be where__<field>__<operator>", ErrMalformedFilterKey, key)
		}
		op := Operator(segments[2])
		if !op.Valid() {
			return Token{}, false, fmt.Errorf("%w: %q on field %q", ErrUnsupportedOperator, segments[2], segments[1])
		}
		return Token{Kind: TokenWhere, Key: key, Field: segments[1], Operator: op, RawValue: value}, true, nil

	case orderPrefix:
		if len(segments) != 2 || segments[1] == "" {
			return Token{}, false, fmt.Errorf("%w: %q must be order__<field>", ErrMalformedFilterKey, key)
		}
		return Token{Kind: TokenOrder, Key: key, Field: segments[1], RawValue: value}, true, nil

	case afterPrefix:
		if len(segments) != 2 || segments[1] == "" {
			return Token{}, false, fmt.Errorf("%w: %q must be after__<field>", ErrMalformedFilterKey, key)
		}
		return Token{Kind: TokenAfter, Key: key, Field: segments[1], RawValue: value}, true, nil
	}

	return Token{}, false, nil
}

// WhereKey codifica una clave where__<field>__<operator>.
func WhereKey(field string, op Operator) string {
	return strings.Join([]string{wherePrefix, field, string(op)}, KeyDelimiter)
}

// OrderKey codifica una clave order__<field>.
func OrderKey(field string) string {
	return strings.Join([]string{orderPrefix, field}, KeyDelimiter)
}

// AfterKey codifica la clave de desempate after__<field>.
func AfterKey(field string) string {
	return strings.Join([]string{afterPrefix, field}, KeyDelimiter)
}

// FlattenValues reduce url.Values al primer valor de cada clave.
func FlattenValues(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}
