package query

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType es el tipo declarado de un campo filtrable.
type FieldType int

const (
	FieldInt FieldType = iota + 1
	FieldString
	FieldTime
	FieldBool
)

func (t FieldType) String() string {
	switch t {
	case FieldInt:
		return "int"
	case FieldString:
		return "string"
	case FieldTime:
		return "time"
	case FieldBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Field describe un campo expuesto: nombre público, columna del store y tipo.
type Field struct {
	Name   string
	Column string
	Type   FieldType
}

// FieldTable es la lista de campos legales de una entidad. Solo estos campos
// pueden filtrarse u ordenarse.
type FieldTable struct {
	primaryKey string
	fields     map[string]Field
}

// NewFieldTable crea la tabla. primaryKey debe estar entre los campos.
func NewFieldTable(primaryKey string, fields ...Field) FieldTable {
	t := FieldTable{primaryKey: primaryKey, fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		if f.Column == "" {
			f.Column = f.Name
		}
		t.fields[f.Name] = f
	}
	if _, ok := t.fields[primaryKey]; !ok {
		panic(fmt.Sprintf("query: primary key %q is not a declared field", primaryKey))
	}
	return t
}

// PrimaryKey devuelve el nombre del campo clave primaria.
func (t FieldTable) PrimaryKey() string {
	return t.primaryKey
}

// Lookup busca un campo por nombre público.
func (t FieldTable) Lookup(name string) (Field, bool) {
	f, ok := t.fields[name]
	return f, ok
}

// Columns devuelve el mapeo nombre público -> columna.
func (t FieldTable) Columns() map[string]string {
	cols := make(map[string]string, len(t.fields))
	for name, f := range t.fields {
		cols[name] = f.Column
	}
	return cols
}

// Coerce convierte el valor crudo al tipo declarado del campo.
func (t FieldTable) Coerce(name, raw string) (interface{}, error) {
	f, ok := t.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	switch f.Type {
	case FieldInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q expects an integer, got %q", ErrInvalidFilterValue, name, raw)
		}
		return v, nil
	case FieldTime:
		v, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q expects an RFC3339 timestamp, got %q", ErrInvalidFilterValue, name, raw)
		}
		return v.UTC(), nil
	case FieldBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q expects a boolean, got %q", ErrInvalidFilterValue, name, raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// FormatValue convierte un valor de fila a su representación en la query string.
func FormatValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case int64:
		return strconv.FormatInt(val, 10), true
	case int:
		return strconv.Itoa(val), true
	case bool:
		return strconv.FormatBool(val), true
	case string:
		return val, true
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano), true
	case *time.Time:
		if val == nil {
			return "", false
		}
		return val.UTC().Format(time.RFC3339Nano), true
	default:
		return fmt.Sprint(val), true
	}
}
