package domain

import "github.com/davicafu/hexasocial/shared/platform/query"

var ChatFields = query.NewFieldTable("id",
	query.Field{Name: "id", Type: query.FieldInt},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.FieldTime},
	query.Field{Name: "updatedAt", Column: "updated_at", Type: query.FieldTime},
)

var MessageFields = query.NewFieldTable("id",
	query.Field{Name: "id", Type: query.FieldInt},
	query.Field{Name: "chatId", Column: "chat_id", Type: query.FieldInt},
	query.Field{Name: "authorId", Column: "author_id", Type: query.FieldInt},
	query.Field{Name: "message", Type: query.FieldString},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.FieldTime},
	query.Field{Name: "updatedAt", Column: "updated_at", Type: query.FieldTime},
)
