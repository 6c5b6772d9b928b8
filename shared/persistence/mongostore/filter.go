package mongostore

import (
	"fmt"
	"regexp"
	"strings"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/platform/query"
	sharedUtils "github.com/davicafu/hexasocial/shared/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection traduce los campos públicos a claves BSON.
// Keys sobreescribe la clave de un campo (p. ej. "id" -> "_id"); el resto usa el nombre público.
type Collection struct {
	Fields query.FieldTable
	Keys   map[string]string
}

func (c Collection) key(field string) (string, error) {
	if _, ok := c.Fields.Lookup(field); !ok {
		return "", fmt.Errorf("%w: %q", query.ErrUnknownField, field)
	}
	if k, ok := c.Keys[field]; ok {
		return k, nil
	}
	return field, nil
}

var mongoOps = map[sharedDomain.Operator]string{
	sharedDomain.OpEq:  "$eq",
	sharedDomain.OpNeq: "$ne",
	sharedDomain.OpGt:  "$gt",
	sharedDomain.OpGte: "$gte",
	sharedDomain.OpLt:  "$lt",
	sharedDomain.OpLte: "$lte",
}

// Filter traduce filtros y keyset a un documento de consulta. Cada condición
// va en su propia rama de $and para que dos condiciones sobre el mismo campo no se pisen.
func (c Collection) Filter(filters query.FilterSpec, keyset *query.Keyset) (bson.D, error) {
	var and bson.A
	for _, cond := range filters {
		doc, err := c.criteriaToMongoFilter(cond)
		if err != nil {
			return nil, err
		}
		and = append(and, doc)
	}

	if keyset != nil {
		doc, err := c.keysetFilter(keyset)
		if err != nil {
			return nil, err
		}
		and = append(and, doc)
	}

	if len(and) == 0 {
		return bson.D{}, nil
	}
	if len(and) == 1 {
		return and[0].(bson.D), nil
	}
	return bson.D{{Key: "$and", Value: and}}, nil
}

func (c Collection) criteriaToMongoFilter(cond sharedDomain.Criterion) (bson.D, error) {
	key, err := c.key(cond.Field)
	if err != nil {
		return nil, err
	}

	switch cond.Op {
	case sharedDomain.OpLike, sharedDomain.OpILike:
		pattern, _ := cond.Value.(string)
		rx := bson.D{{Key: "$regex", Value: likeToRegex(pattern)}}
		if cond.Op == sharedDomain.OpILike {
			rx = append(rx, bson.E{Key: "$options", Value: "i"})
		}
		return bson.D{{Key: key, Value: rx}}, nil
	}

	op, ok := mongoOps[cond.Op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", query.ErrUnsupportedOperator, cond.Op)
	}
	return bson.D{{Key: key, Value: bson.D{{Key: op, Value: cond.Value}}}}, nil
}

// keysetFilter: sin desempate es {f: {$gt: v}}; con desempate es
// {$or: [{f: {$gt: v}}, {f: v, pk: {$gt: t}}]}.
func (c Collection) keysetFilter(k *query.Keyset) (bson.D, error) {
	key, err := c.key(k.Field)
	if err != nil {
		return nil, err
	}
	op, ok := mongoOps[k.Op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", query.ErrUnsupportedOperator, k.Op)
	}

	strict := bson.D{{Key: key, Value: bson.D{{Key: op, Value: k.Value}}}}
	if k.TieField == "" {
		return strict, nil
	}

	tieKey, err := c.key(k.TieField)
	if err != nil {
		return nil, err
	}
	tie := bson.D{
		{Key: key, Value: k.Value},
		{Key: tieKey, Value: bson.D{{Key: op, Value: k.TieValue}}},
	}
	return bson.D{{Key: "$or", Value: bson.A{strict, tie}}}, nil
}

// FindOptions traduce orden, desempate, skip y límite.
func (c Collection) FindOptions(q query.Query) (*options.FindOptions, error) {
	opts := options.Find()

	field := q.Sort.Field
	if field == "" {
		field = c.Fields.PrimaryKey()
	}
	key, err := c.key(field)
	if err != nil {
		return nil, err
	}
	sortDir := sharedUtils.Ternary(q.Sort.Desc(), -1, 1)
	sort := bson.D{{Key: key, Value: sortDir}}
	if q.TieBreak != "" && q.TieBreak != field {
		tieKey, err := c.key(q.TieBreak)
		if err != nil {
			return nil, err
		}
		sort = append(sort, bson.E{Key: tieKey, Value: sortDir})
	}
	opts.SetSort(sort)

	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts, nil
}

// likeToRegex convierte un patrón LIKE en una expresión regular anclada.
func likeToRegex(pattern string) string {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return b.String()
}
