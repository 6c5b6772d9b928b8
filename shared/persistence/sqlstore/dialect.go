package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect encapsula las diferencias entre SQLite (modernc) y Postgres (pgx).
type Dialect int

const (
	SQLite Dialect = iota + 1
	Postgres
)

// sqliteTimeLayout es de ancho fijo para que las comparaciones de texto en
// SQLite respeten el orden cronológico.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000000-07:00"

// DialectFor resuelve el dialecto a partir del nombre de driver configurado.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("unsupported sql driver %q", driver)
	}
}

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	default:
		return "unknown"
	}
}

// DriverName es el nombre registrado en database/sql.
func (d Dialect) DriverName() string {
	if d == Postgres {
		return "pgx"
	}
	return "sqlite"
}

// Placeholder devuelve el marcador del argumento n (1-based).
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Rebind reescribe los '?' de una sentencia al estilo del dialecto.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Arg adapta un argumento antes de enviarlo al driver.
func (d Dialect) Arg(v interface{}) interface{} {
	if d != SQLite {
		return v
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(sqliteTimeLayout)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(sqliteTimeLayout)
	}
	return v
}

// Args aplica Arg a todos los argumentos.
func (d Dialect) Args(args ...interface{}) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		out[i] = d.Arg(a)
	}
	return out
}

// Serial es la definición de una clave primaria entera autoincremental.
func (d Dialect) Serial() string {
	if d == Postgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// Timestamp es el tipo de columna para instantes.
func (d Dialect) Timestamp() string {
	if d == Postgres {
		return "TIMESTAMP WITH TIME ZONE"
	}
	return "DATETIME"
}

// JSON es el tipo de columna para payloads JSON.
func (d Dialect) JSON() string {
	if d == Postgres {
		return "JSONB"
	}
	return "TEXT"
}

// Bool es el literal booleano del dialecto.
func (d Dialect) Bool(v bool) string {
	if d == Postgres {
		if v {
			return "true"
		}
		return "false"
	}
	if v {
		return "1"
	}
	return "0"
}
