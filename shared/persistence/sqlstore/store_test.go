package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/platform/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type note struct {
	ID        int64
	Title     string
	CreatedAt time.Time
}

func (n note) FieldValue(field string) (interface{}, bool) {
	switch field {
	case "id":
		return n.ID, true
	case "title":
		return n.Title, true
	case "createdAt":
		return n.CreatedAt, true
	}
	return nil, false
}

func scanNote(s Scanner) (note, error) {
	var n note
	err := s.Scan(&n.ID, &n.Title, &n.CreatedAt)
	return n, err
}

func setupNotes(t *testing.T, titles ...string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(fmt.Sprintf(`CREATE TABLE notes (id %s, title TEXT NOT NULL, created_at %s NOT NULL)`,
		SQLite.Serial(), SQLite.Timestamp()))
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range titles {
		_, err := db.Exec(`INSERT INTO notes (title, created_at) VALUES (?, ?)`,
			SQLite.Args(title, base.Add(time.Duration(i)*time.Minute))...)
		require.NoError(t, err)
	}
	return db
}

func TestStore_PaginatesWithQueryEngine(t *testing.T) {
	// Arrange
	db := setupNotes(t, "a", "b", "c")
	store := NewStore[note](db, noteTable(SQLite), scanNote)
	p := query.NewPaginator[note](store, noteFields, query.DefaultOptions)

	req, err := p.Parse(map[string]string{"order__id": "ASC", "take": "2"})
	require.NoError(t, err)

	// Act
	first, err := p.Paginate(context.Background(), req, "/notes")

	// Assert
	require.NoError(t, err)
	require.Len(t, first.Data, 2)
	assert.Equal(t, int64(1), first.Data[0].ID)
	assert.Equal(t, int64(2), first.Data[1].ID)
	require.NotNil(t, first.Next)
	assert.Equal(t, "/notes?order__id=ASC&take=2&where__id__more_than=2", *first.Next)

	req, err = p.Parse(map[string]string{"order__id": "ASC", "take": "2", "where__id__more_than": "2"})
	require.NoError(t, err)
	second, err := p.Paginate(context.Background(), req, "/notes")
	require.NoError(t, err)
	require.Len(t, second.Data, 1)
	assert.Equal(t, "c", second.Data[0].Title)
	assert.Nil(t, second.Next)
}

func TestStore_OffsetCount(t *testing.T) {
	db := setupNotes(t, "go", "Go", "rust", "golang", "zig")
	store := NewStore[note](db, noteTable(SQLite), scanNote)

	n, err := store.Count(context.Background(), query.FilterSpec{
		{Field: "title", Op: sharedDomain.OpILike, Value: "go%"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = store.Count(context.Background(), query.FilterSpec{
		{Field: "title", Op: sharedDomain.OpLike, Value: "go%"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStore_TimeFiltersKeepChronologicalOrder(t *testing.T) {
	db := setupNotes(t, "a", "b", "c", "d")
	store := NewStore[note](db, noteTable(SQLite), scanNote)
	since := time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)

	rows, err := store.Find(context.Background(), query.Query{
		Filters: query.FilterSpec{{Field: "createdAt", Op: sharedDomain.OpGte, Value: since}},
		Sort:    query.SortSpec{Field: "createdAt", Direction: query.SortDesc},
		Limit:   10,
	})

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "d", rows[0].Title)
	assert.Equal(t, "b", rows[2].Title)
	assert.True(t, rows[2].CreatedAt.Equal(since))
}
