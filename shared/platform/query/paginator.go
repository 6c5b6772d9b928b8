package query

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Cursor lleva la clave primaria de la última fila de una página llena.
type Cursor struct {
	After interface{} `json:"after"`
}

// PageResult es el sobre de respuesta de un listado.
// En modo offset Count es el total de filas; en modo cursor, las filas devueltas.
type PageResult[T any] struct {
	Mode   Mode
	Data   []T
	Count  int64
	Cursor Cursor
	Next   *string
}

// MarshalJSON emite {data,total} en modo offset y {data,cursor,count,next} en modo cursor.
func (r PageResult[T]) MarshalJSON() ([]byte, error) {
	data := r.Data
	if data == nil {
		data = []T{}
	}
	if r.Mode == ModeOffset {
		return json.Marshal(struct {
			Data  []T   `json:"data"`
			Total int64 `json:"total"`
		}{data, r.Count})
	}
	return json.Marshal(struct {
		Data   []T     `json:"data"`
		Cursor Cursor  `json:"cursor"`
		Count  int64   `json:"count"`
		Next   *string `json:"next"`
	}{data, r.Cursor, r.Count, r.Next})
}

// Paginator ejecuta listados paginados sobre un RowStore. No guarda estado
// entre peticiones y es seguro para uso concurrente.
type Paginator[T Row] struct {
	store RowStore[T]
	table FieldTable
	opts  Options
}

// NewPaginator crea un paginador para una entidad.
func NewPaginator[T Row](store RowStore[T], table FieldTable, opts Options) *Paginator[T] {
	return &Paginator[T]{store: store, table: table, opts: opts}
}

// Table devuelve la tabla de campos de la entidad.
func (p *Paginator[T]) Table() FieldTable {
	return p.table
}

// Parse valida los parámetros crudos con la tabla y las opciones del paginador.
func (p *Paginator[T]) Parse(params map[string]string) (PageRequest, error) {
	return ParseRequest(p.table, params, p.opts)
}

// Paginate despacha a offset o cursor según el modo de la petición.
// linkBase es la URL del recurso sobre la que se construye el enlace next.
func (p *Paginator[T]) Paginate(ctx context.Context, req PageRequest, linkBase string) (*PageResult[T], error) {
	if req.Mode == ModeOffset {
		return p.Offset(ctx, req.Spec, req.Page, req.Take)
	}

	result, boundary, err := p.Cursor(ctx, req.Spec, req.Take)
	if err != nil {
		return nil, err
	}
	if boundary != nil {
		next := NextLink(linkBase, req.Params, req.Spec.Sort, p.table.PrimaryKey(), *boundary)
		result.Next = &next
	}
	return result, nil
}

// Offset pagina con skip/limit y cuenta el total bajo los mismos filtros.
// Una página más allá del total devuelve data vacía.
func (p *Paginator[T]) Offset(ctx context.Context, spec Spec, page, take int) (*PageResult[T], error) {
	// Un skip que no cabe en int queda siempre más allá del total.
	if take > 0 && page-1 > math.MaxInt/take {
		total, err := p.store.Count(ctx, spec.Filters)
		if err != nil {
			return nil, fmt.Errorf("count rows: %w", err)
		}
		return &PageResult[T]{Mode: ModeOffset, Data: []T{}, Count: total}, nil
	}

	q := Query{
		Filters:  spec.Filters,
		Sort:     spec.Sort,
		TieBreak: p.tieBreak(spec.Sort),
		Limit:    take,
		Offset:   take * (page - 1),
	}

	var (
		rows  []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = p.store.Find(gctx, q)
		if err != nil {
			return fmt.Errorf("find page: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = p.store.Count(gctx, spec.Filters)
		if err != nil {
			return fmt.Errorf("count rows: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []T{}
	}
	return &PageResult[T]{Mode: ModeOffset, Data: rows, Count: total}, nil
}

// Cursor pagina por keyset. La cota del campo de orden en la dirección de
// avance (more_than para ASC, less_than para DESC) se convierte en el keyset;
// el resto de filtros se aplica tal cual. Devuelve la frontera de la
// siguiente página solo cuando la página está llena.
func (p *Paginator[T]) Cursor(ctx context.Context, spec Spec, take int) (*PageResult[T], *Boundary, error) {
	filters, keyset := p.splitKeyset(spec)
	q := Query{
		Filters:  filters,
		Sort:     spec.Sort,
		TieBreak: p.tieBreak(spec.Sort),
		Keyset:   keyset,
		Limit:    take,
	}

	rows, err := p.store.Find(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("find page: %w", err)
	}
	if rows == nil {
		rows = []T{}
	}

	result := &PageResult[T]{Mode: ModeCursor, Data: rows, Count: int64(len(rows))}
	if take <= 0 || len(rows) != take {
		return result, nil, nil
	}

	boundary, pkValue, ok := p.boundary(spec.Sort, rows[len(rows)-1])
	if !ok {
		return result, nil, nil
	}
	result.Cursor.After = pkValue
	return result, &boundary, nil
}

func (p *Paginator[T]) tieBreak(sort SortSpec) string {
	if sort.Field == p.table.PrimaryKey() {
		return ""
	}
	return p.table.PrimaryKey()
}

func (p *Paginator[T]) splitKeyset(spec Spec) (FilterSpec, *Keyset) {
	boundOp := spec.Sort.BoundOperator().Native()

	var (
		filters = make(FilterSpec, 0, len(spec.Filters))
		keyset  *Keyset
	)
	for _, c := range spec.Filters {
		if keyset == nil && c.Field == spec.Sort.Field && c.Op == boundOp {
			keyset = &Keyset{Field: c.Field, Op: c.Op, Value: c.Value}
			continue
		}
		filters = append(filters, c)
	}

	if keyset != nil && spec.After != nil && p.tieBreak(spec.Sort) != "" {
		keyset.TieField = p.table.PrimaryKey()
		keyset.TieValue = spec.After
	}
	return filters, keyset
}

func (p *Paginator[T]) boundary(sort SortSpec, last T) (Boundary, interface{}, bool) {
	pk := p.table.PrimaryKey()

	pkValue, ok := last.FieldValue(pk)
	if !ok {
		return Boundary{}, nil, false
	}
	sortValue, ok := last.FieldValue(sort.Field)
	if !ok {
		return Boundary{}, nil, false
	}
	value, ok := FormatValue(sortValue)
	if !ok {
		return Boundary{}, nil, false
	}

	b := Boundary{Key: WhereKey(sort.Field, sort.BoundOperator()), Value: value}
	if sort.Field != pk {
		tie, ok := FormatValue(pkValue)
		if !ok {
			return Boundary{}, nil, false
		}
		b.TieKey = AfterKey(pk)
		b.TieValue = tie
	}
	return b, pkValue, true
}
