package query_test

import (
	"testing"

	"github.com/davicafu/hexasocial/shared/platform/query"
	"github.com/stretchr/testify/assert"
)

func TestNextLink_ReplacesBothBoundsAndKeepsTheRest(t *testing.T) {
	params := map[string]string{
		"order__id":            "ASC",
		"take":                 "2",
		"where__id__less_than": "100",
		"where__id__more_than": "2",
		"where__title__i_like": "%go%",
	}
	sort := query.SortSpec{Field: "id", Direction: query.SortAsc}

	link := query.NextLink("https://api.test/posts", params, sort, "id",
		query.Boundary{Key: "where__id__more_than", Value: "4"})

	assert.Equal(t,
		"https://api.test/posts?order__id=ASC&take=2&where__id__more_than=4&where__title__i_like=%25go%25",
		link)
	// params no se modifica
	assert.Equal(t, "2", params["where__id__more_than"])
	assert.Len(t, params, 5)
}

func TestNextLink_WithTieBreak(t *testing.T) {
	params := map[string]string{"order__score": "DESC", "take": "2", "after__id": "9"}
	sort := query.SortSpec{Field: "score", Direction: query.SortDesc}

	link := query.NextLink("/posts", params, sort, "id", query.Boundary{
		Key: "where__score__less_than", Value: "30",
		TieKey: "after__id", TieValue: "3",
	})

	assert.Equal(t, "/posts?after__id=3&order__score=DESC&take=2&where__score__less_than=30", link)
}
