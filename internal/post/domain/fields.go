package domain

import "github.com/davicafu/hexasocial/shared/platform/query"

// PostFields son los campos por los que se puede filtrar y ordenar un listado de posts.
var PostFields = query.NewFieldTable("id",
	query.Field{Name: "id", Type: query.FieldInt},
	query.Field{Name: "authorId", Column: "author_id", Type: query.FieldInt},
	query.Field{Name: "title", Type: query.FieldString},
	query.Field{Name: "content", Type: query.FieldString},
	query.Field{Name: "likeCount", Column: "like_count", Type: query.FieldInt},
	query.Field{Name: "commentCount", Column: "comment_count", Type: query.FieldInt},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.FieldTime},
	query.Field{Name: "updatedAt", Column: "updated_at", Type: query.FieldTime},
)
