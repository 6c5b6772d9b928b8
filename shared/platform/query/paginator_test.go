package query_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/davicafu/hexasocial/shared/platform/query"
	"github.com/davicafu/hexasocial/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkBase = "https://api.test/items"

func newItemPaginator(items ...item) (*query.Paginator[item], *mocks.MemoryRowStore[item]) {
	store := mocks.NewMemoryRowStore(items...)
	return query.NewPaginator[item](store, itemFields, query.DefaultOptions), store
}

func paginate(t *testing.T, p *query.Paginator[item], params map[string]string) *query.PageResult[item] {
	t.Helper()
	req, err := p.Parse(params)
	require.NoError(t, err)
	res, err := p.Paginate(context.Background(), req, linkBase)
	require.NoError(t, err)
	return res
}

func follow(t *testing.T, p *query.Paginator[item], next *string) *query.PageResult[item] {
	t.Helper()
	require.NotNil(t, next)
	u, err := url.Parse(*next)
	require.NoError(t, err)
	return paginate(t, p, query.FlattenValues(u.Query()))
}

func TestCursor_AscendingWalk(t *testing.T) {
	// Arrange
	p, _ := newItemPaginator(seq(3)...)

	// Act
	first := paginate(t, p, map[string]string{"order__id": "ASC", "take": "2"})

	// Assert
	assert.Equal(t, []int64{1, 2}, ids(first.Data))
	assert.Equal(t, int64(2), first.Count)
	assert.Equal(t, int64(2), first.Cursor.After)
	require.NotNil(t, first.Next)
	assert.Equal(t, linkBase+"?order__id=ASC&take=2&where__id__more_than=2", *first.Next)

	second := follow(t, p, first.Next)
	assert.Equal(t, []int64{3}, ids(second.Data))
	assert.Equal(t, int64(1), second.Count)
	assert.Nil(t, second.Next)
	assert.Nil(t, second.Cursor.After)
}

func TestCursor_DescendingWalk(t *testing.T) {
	p, _ := newItemPaginator(seq(3)...)

	first := paginate(t, p, map[string]string{"order__id": "DESC", "take": "2"})

	assert.Equal(t, []int64{3, 2}, ids(first.Data))
	require.NotNil(t, first.Next)
	assert.Equal(t, linkBase+"?order__id=DESC&take=2&where__id__less_than=2", *first.Next)

	second := follow(t, p, first.Next)
	assert.Equal(t, []int64{1}, ids(second.Data))
	assert.Nil(t, second.Next)
}

func TestCursor_FullLastPageGivesOneEmptyFollowUp(t *testing.T) {
	p, _ := newItemPaginator(seq(4)...)

	first := paginate(t, p, map[string]string{"take": "2"})
	second := follow(t, p, first.Next)
	assert.Equal(t, []int64{3, 4}, ids(second.Data))

	third := follow(t, p, second.Next)
	assert.Empty(t, third.Data)
	assert.Equal(t, int64(0), third.Count)
	assert.Nil(t, third.Next)
}

func TestCursor_EmptyStore(t *testing.T) {
	p, _ := newItemPaginator()

	res := paginate(t, p, map[string]string{})

	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Nil(t, res.Next)
}

func TestCursor_BoundBecomesKeysetAndOtherFiltersStay(t *testing.T) {
	items := seq(6)
	items[4].Title = "golang"
	items[5].Title = "Go tips"
	p, store := newItemPaginator(items...)

	res := paginate(t, p, map[string]string{
		"where__id__more_than": "1",
		"where__title__i_like": "%go%",
		"take":                 "5",
	})

	assert.Equal(t, []int64{5, 6}, ids(res.Data))
	require.Len(t, store.Queries, 1)
	q := store.Queries[0]
	require.NotNil(t, q.Keyset)
	assert.Equal(t, "id", q.Keyset.Field)
	assert.Equal(t, int64(1), q.Keyset.Value)
	require.Len(t, q.Filters, 1)
	assert.Equal(t, "title", q.Filters[0].Field)
	assert.Empty(t, q.TieBreak)
}

func TestCursor_OppositeBoundIsAPlainFilter(t *testing.T) {
	p, store := newItemPaginator(seq(5)...)

	res := paginate(t, p, map[string]string{"where__id__less_than": "4", "take": "10"})

	assert.Equal(t, []int64{1, 2, 3}, ids(res.Data))
	assert.Nil(t, store.Queries[0].Keyset)
	assert.Nil(t, res.Next)
}

func TestCursor_NextLinkIsIdempotent(t *testing.T) {
	p, _ := newItemPaginator(seq(5)...)
	params := map[string]string{"order__id": "ASC", "take": "2", "where__id__more_than": "1"}

	a := paginate(t, p, params)
	b := paginate(t, p, params)

	require.NotNil(t, a.Next)
	assert.Equal(t, *a.Next, *b.Next)
	assert.Equal(t, "1", params["where__id__more_than"])
}

func TestCursor_TieBreakOnDuplicateSortValues(t *testing.T) {
	items := []item{
		{ID: 1, Score: 10},
		{ID: 2, Score: 10},
		{ID: 3, Score: 10},
		{ID: 4, Score: 20},
	}
	p, store := newItemPaginator(items...)

	first := paginate(t, p, map[string]string{"order__score": "ASC", "take": "2"})
	assert.Equal(t, []int64{1, 2}, ids(first.Data))
	assert.Equal(t, int64(2), first.Cursor.After)
	require.NotNil(t, first.Next)
	assert.Equal(t, linkBase+"?after__id=2&order__score=ASC&take=2&where__score__more_than=10", *first.Next)
	assert.Equal(t, "id", store.Queries[0].TieBreak)

	second := follow(t, p, first.Next)
	assert.Equal(t, []int64{3, 4}, ids(second.Data))
	ks := store.Queries[1].Keyset
	require.NotNil(t, ks)
	assert.Equal(t, "id", ks.TieField)
	assert.Equal(t, int64(2), ks.TieValue)

	third := follow(t, p, second.Next)
	assert.Empty(t, third.Data)
	assert.Nil(t, third.Next)
}

func TestCursor_AfterIsPrimaryKeyWhenSortingByOtherField(t *testing.T) {
	items := []item{
		{ID: 1, Score: 100},
		{ID: 2, Score: 99},
		{ID: 3, Score: 98},
		{ID: 4, Score: 97},
	}
	p, _ := newItemPaginator(items...)

	first := paginate(t, p, map[string]string{"order__score": "ASC", "take": "2"})

	assert.Equal(t, []int64{4, 3}, ids(first.Data))
	assert.Equal(t, int64(3), first.Cursor.After)
	require.NotNil(t, first.Next)
	// El enlace sigue llevando el valor de orden como cota.
	assert.Equal(t, linkBase+"?after__id=3&order__score=ASC&take=2&where__score__more_than=98", *first.Next)
}

func TestCursor_TieBreakDescending(t *testing.T) {
	items := []item{
		{ID: 1, Score: 30},
		{ID: 2, Score: 20},
		{ID: 3, Score: 20},
		{ID: 4, Score: 20},
	}
	p, _ := newItemPaginator(items...)

	first := paginate(t, p, map[string]string{"order__score": "DESC", "take": "2"})
	assert.Equal(t, []int64{1, 4}, ids(first.Data))

	second := follow(t, p, first.Next)
	assert.Equal(t, []int64{3, 2}, ids(second.Data))
}

func TestCursor_ConflictingSortRejectedBeforeQuery(t *testing.T) {
	p, store := newItemPaginator(seq(3)...)

	_, err := p.Parse(map[string]string{"order__id": "ASC", "order__score": "DESC"})

	assert.ErrorIs(t, err, query.ErrConflictingSort)
	assert.Empty(t, store.Queries)
}

func TestCursor_StoreErrorPropagates(t *testing.T) {
	p, store := newItemPaginator(seq(3)...)
	store.Err = errors.New("connection refused")

	req, err := p.Parse(map[string]string{})
	require.NoError(t, err)
	_, err = p.Paginate(context.Background(), req, linkBase)

	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, query.IsInputError(err))
}

func TestOffset_SecondPage(t *testing.T) {
	p, _ := newItemPaginator(seq(15)...)

	res := paginate(t, p, map[string]string{"page": "2", "take": "10"})

	assert.Equal(t, query.ModeOffset, res.Mode)
	assert.Equal(t, []int64{11, 12, 13, 14, 15}, ids(res.Data))
	assert.Equal(t, int64(15), res.Count)
	assert.Nil(t, res.Next)
}

func TestOffset_BeyondTotalIsEmpty(t *testing.T) {
	p, _ := newItemPaginator(seq(15)...)

	res := paginate(t, p, map[string]string{"page": "5", "take": "10"})

	assert.Empty(t, res.Data)
	assert.Equal(t, int64(15), res.Count)
}

func TestOffset_HugePageIsEmptyNotFirstPage(t *testing.T) {
	p, store := newItemPaginator(seq(5)...)

	res := paginate(t, p, map[string]string{"page": strconv.Itoa(math.MaxInt), "take": "2"})

	assert.Empty(t, res.Data)
	assert.Equal(t, int64(5), res.Count)
	assert.Empty(t, store.Queries, "no debe lanzarse la consulta de página")
}

func TestOffset_TotalHonoursFilters(t *testing.T) {
	p, _ := newItemPaginator(seq(15)...)

	res := paginate(t, p, map[string]string{"page": "1", "take": "3", "where__score__more_than": "100", "order__id": "DESC"})

	assert.Equal(t, []int64{15, 14, 13}, ids(res.Data))
	assert.Equal(t, int64(5), res.Count)
}

func TestPageResult_JSONEnvelopes(t *testing.T) {
	p, _ := newItemPaginator(seq(3)...)

	cursor := paginate(t, p, map[string]string{"take": "2"})
	raw, err := json.Marshal(cursor)
	require.NoError(t, err)
	var c map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &c))
	assert.ElementsMatch(t, []string{"data", "cursor", "count", "next"}, keys(c))
	assert.Equal(t, float64(2), c["cursor"].(map[string]interface{})["after"])

	offset := paginate(t, p, map[string]string{"page": "9"})
	raw, err = json.Marshal(offset)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"total":3}`, string(raw))
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
