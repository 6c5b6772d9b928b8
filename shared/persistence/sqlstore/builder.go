package sqlstore

import (
	"fmt"
	"strings"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/platform/query"
	sharedUtils "github.com/davicafu/hexasocial/shared/utils"
)

// Table describe una tabla paginable: nombre, columnas seleccionadas y la
// tabla de campos públicos que traduce filtros y orden a columnas.
type Table struct {
	Name    string
	Columns []string
	Fields  query.FieldTable
	Dialect Dialect
}

type binder struct {
	dialect Dialect
	args    []interface{}
}

func (b *binder) bind(v interface{}) string {
	b.args = append(b.args, b.dialect.Arg(v))
	return b.dialect.Placeholder(len(b.args))
}

func (t Table) column(field string) (string, error) {
	f, ok := t.Fields.Lookup(field)
	if !ok {
		return "", fmt.Errorf("%w: %q on table %s", query.ErrUnknownField, field, t.Name)
	}
	return f.Column, nil
}

// SelectSQL genera la sentencia SELECT con filtros, keyset, orden y límites.
func (t Table) SelectSQL(q query.Query) (string, []interface{}, error) {
	b := &binder{dialect: t.Dialect}

	where, err := t.where(b, q.Filters, q.Keyset)
	if err != nil {
		return "", nil, err
	}

	stmt := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.Columns, ", "), t.Name)
	if where != "" {
		stmt += " WHERE " + where
	}

	order, err := t.orderBy(q.Sort, q.TieBreak)
	if err != nil {
		return "", nil, err
	}
	stmt += " ORDER BY " + order

	if q.Limit > 0 {
		stmt += " LIMIT " + b.bind(q.Limit)
	}
	if q.Offset > 0 {
		if q.Limit <= 0 && t.Dialect == SQLite {
			stmt += " LIMIT -1"
		}
		stmt += " OFFSET " + b.bind(q.Offset)
	}
	return stmt, b.args, nil
}

// CountSQL genera el COUNT(*) bajo los mismos filtros.
func (t Table) CountSQL(filters query.FilterSpec) (string, []interface{}, error) {
	b := &binder{dialect: t.Dialect}
	where, err := t.where(b, filters, nil)
	if err != nil {
		return "", nil, err
	}

	stmt := "SELECT COUNT(*) FROM " + t.Name
	if where != "" {
		stmt += " WHERE " + where
	}
	return stmt, b.args, nil
}

// applyCriteria traduce criterios a condiciones SQL unidas con AND.
func (t Table) applyCriteria(b *binder, conds []sharedDomain.Criterion) ([]string, error) {
	clauses := make([]string, 0, len(conds))
	for _, c := range conds {
		col, err := t.column(c.Field)
		if err != nil {
			return nil, err
		}

		switch c.Op {
		case sharedDomain.OpLike:
			if t.Dialect == SQLite {
				pattern, _ := c.Value.(string)
				clauses = append(clauses, fmt.Sprintf("%s GLOB %s", col, b.bind(likeToGlob(pattern))))
				continue
			}
			clauses = append(clauses, fmt.Sprintf("%s LIKE %s", col, b.bind(c.Value)))
		case sharedDomain.OpILike:
			if t.Dialect == SQLite {
				clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", col, b.bind(c.Value)))
				continue
			}
			clauses = append(clauses, fmt.Sprintf("%s ILIKE %s", col, b.bind(c.Value)))
		default:
			clauses = append(clauses, fmt.Sprintf("%s %s %s", col, c.Op, b.bind(c.Value)))
		}
	}
	return clauses, nil
}

func (t Table) where(b *binder, filters query.FilterSpec, keyset *query.Keyset) (string, error) {
	clauses, err := t.applyCriteria(b, filters)
	if err != nil {
		return "", err
	}

	if keyset != nil {
		col, err := t.column(keyset.Field)
		if err != nil {
			return "", err
		}
		if keyset.TieField == "" {
			clauses = append(clauses, fmt.Sprintf("%s %s %s", col, keyset.Op, b.bind(keyset.Value)))
		} else {
			tie, err := t.column(keyset.TieField)
			if err != nil {
				return "", err
			}
			clauses = append(clauses, fmt.Sprintf("(%s, %s) %s (%s, %s)",
				col, tie, keyset.Op, b.bind(keyset.Value), b.bind(keyset.TieValue)))
		}
	}

	return strings.Join(clauses, " AND "), nil
}

func (t Table) orderBy(sort query.SortSpec, tieBreak string) (string, error) {
	field := sort.Field
	if field == "" {
		field = t.Fields.PrimaryKey()
	}
	col, err := t.column(field)
	if err != nil {
		return "", err
	}
	dir := sharedUtils.Ternary(sort.Desc(), "DESC", "ASC")

	order := fmt.Sprintf("%s %s", col, dir)
	if tieBreak != "" && tieBreak != field {
		tie, err := t.column(tieBreak)
		if err != nil {
			return "", err
		}
		order += fmt.Sprintf(", %s %s", tie, dir)
	}
	return order, nil
}

// likeToGlob convierte un patrón LIKE en un patrón GLOB (sensible a mayúsculas).
func likeToGlob(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteByte('*')
		case '_':
			b.WriteByte('?')
		case '*', '?', '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
