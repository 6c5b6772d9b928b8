package mocks

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/platform/query"
)

// MemoryRowStore es un query.RowStore en memoria que respeta filtros, keyset,
// orden con desempate, offset y límite.
type MemoryRowStore[T query.Row] struct {
	mu   sync.RWMutex
	rows []T

	// Err, si no es nil, se devuelve en Find y Count.
	Err error
	// Queries registra las consultas recibidas por Find.
	Queries []query.Query
}

func NewMemoryRowStore[T query.Row](rows ...T) *MemoryRowStore[T] {
	return &MemoryRowStore[T]{rows: append([]T(nil), rows...)}
}

// Add añade filas al store.
func (s *MemoryRowStore[T]) Add(rows ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}

// Remove elimina las filas para las que match devuelve true.
func (s *MemoryRowStore[T]) Remove(match func(T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	removed := 0
	for _, r := range s.rows {
		if match(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.rows = kept
	return removed
}

// Replace sustituye la primera fila para la que match devuelve true.
func (s *MemoryRowStore[T]) Replace(match func(T) bool, row T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if match(r) {
			s.rows[i] = row
			return true
		}
	}
	return false
}

// Mutate aplica fn a las filas para las que match devuelve true.
func (s *MemoryRowStore[T]) Mutate(match func(T) bool, fn func(T)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rows {
		if match(r) {
			fn(r)
			n++
		}
	}
	return n
}

// Rows devuelve una copia de todas las filas.
func (s *MemoryRowStore[T]) Rows() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.rows...)
}

func (s *MemoryRowStore[T]) Find(ctx context.Context, q query.Query) ([]T, error) {
	s.mu.Lock()
	s.Queries = append(s.Queries, q)
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var list []T
	for _, r := range s.rows {
		if !matchAll(r, q.Filters) {
			continue
		}
		if q.Keyset != nil && !matchKeyset(r, q.Keyset) {
			continue
		}
		list = append(list, r)
	}

	sort.SliceStable(list, func(i, j int) bool {
		c := compareField(list[i], list[j], q.Sort.Field)
		if c == 0 && q.TieBreak != "" {
			c = compareField(list[i], list[j], q.TieBreak)
		}
		if q.Sort.Desc() {
			return c > 0
		}
		return c < 0
	})

	if q.Offset > 0 {
		if q.Offset >= len(list) {
			return []T{}, nil
		}
		list = list[q.Offset:]
	}
	if q.Limit > 0 && len(list) > q.Limit {
		list = list[:q.Limit]
	}
	return list, nil
}

func (s *MemoryRowStore[T]) Count(ctx context.Context, filters query.FilterSpec) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return 0, s.Err
	}

	var n int64
	for _, r := range s.rows {
		if matchAll(r, filters) {
			n++
		}
	}
	return n, nil
}

// --- Lógica de filtrado y ordenamiento del mock ---

func matchAll(r query.Row, conds []sharedDomain.Criterion) bool {
	for _, c := range conds {
		v, ok := r.FieldValue(c.Field)
		if !ok || !matchCriterion(v, c) {
			return false
		}
	}
	return true
}

func matchCriterion(v interface{}, c sharedDomain.Criterion) bool {
	switch c.Op {
	case sharedDomain.OpLike, sharedDomain.OpILike:
		s, ok := v.(string)
		p, okp := c.Value.(string)
		if !ok || !okp {
			return false
		}
		return likeMatch(s, p, c.Op == sharedDomain.OpILike)
	}

	cmp, ok := compareValues(v, c.Value)
	if !ok {
		return false
	}
	return satisfies(cmp, c.Op)
}

func matchKeyset(r query.Row, k *query.Keyset) bool {
	v, ok := r.FieldValue(k.Field)
	if !ok {
		return false
	}
	cmp, ok := compareValues(v, k.Value)
	if !ok {
		return false
	}
	if cmp == 0 && k.TieField != "" {
		tv, ok := r.FieldValue(k.TieField)
		if !ok {
			return false
		}
		cmp, ok = compareValues(tv, k.TieValue)
		if !ok {
			return false
		}
	}
	return satisfies(cmp, k.Op)
}

func satisfies(cmp int, op sharedDomain.Operator) bool {
	switch op {
	case sharedDomain.OpEq:
		return cmp == 0
	case sharedDomain.OpNeq:
		return cmp != 0
	case sharedDomain.OpGt:
		return cmp > 0
	case sharedDomain.OpGte:
		return cmp >= 0
	case sharedDomain.OpLt:
		return cmp < 0
	case sharedDomain.OpLte:
		return cmp <= 0
	}
	return false
}

func compareField(a, b query.Row, field string) int {
	va, _ := a.FieldValue(field)
	vb, _ := b.FieldValue(field)
	c, _ := compareValues(va, vb)
	return c
}

func compareValues(a, b interface{}) (int, bool) {
	switch x := a.(type) {
	case int64:
		y, ok := b.(int64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if x == y {
			return 0, true
		}
		if !x {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func likeMatch(s, pattern string, fold bool) bool {
	var b strings.Builder
	b.WriteString("^")
	if fold {
		b.WriteString("(?i)")
	}
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String()).MatchString(s)
}
