package domain

import "github.com/davicafu/hexasocial/shared/platform/query"

// CommentFields son los campos filtrables y ordenables de un comentario.
var CommentFields = query.NewFieldTable("id",
	query.Field{Name: "id", Type: query.FieldInt},
	query.Field{Name: "postId", Column: "post_id", Type: query.FieldInt},
	query.Field{Name: "authorId", Column: "author_id", Type: query.FieldInt},
	query.Field{Name: "comment", Type: query.FieldString},
	query.Field{Name: "likeCount", Column: "like_count", Type: query.FieldInt},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.FieldTime},
	query.Field{Name: "updatedAt", Column: "updated_at", Type: query.FieldTime},
)
