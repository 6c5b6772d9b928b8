package query_test

import (
	"time"

	"github.com/davicafu/hexasocial/shared/platform/query"
)

type item struct {
	ID        int64
	Score     int64
	Title     string
	CreatedAt time.Time
}

func (i item) FieldValue(field string) (interface{}, bool) {
	switch field {
	case "id":
		return i.ID, true
	case "score":
		return i.Score, true
	case "title":
		return i.Title, true
	case "createdAt":
		return i.CreatedAt, true
	}
	return nil, false
}

var itemFields = query.NewFieldTable("id",
	query.Field{Name: "id", Type: query.FieldInt},
	query.Field{Name: "score", Type: query.FieldInt},
	query.Field{Name: "title", Type: query.FieldString},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.FieldTime},
)

func seq(n int) []item {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]item, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, item{
			ID:        int64(i),
			Score:     int64(i * 10),
			Title:     "item",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return items
}

func ids(items []item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
