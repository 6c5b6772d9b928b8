package domain

import "github.com/davicafu/hexasocial/shared/platform/query"

var UserFields = query.NewFieldTable("id",
	query.Field{Name: "id", Type: query.FieldInt},
	query.Field{Name: "nickname", Type: query.FieldString},
	query.Field{Name: "email", Type: query.FieldString},
	query.Field{Name: "followerCount", Column: "follower_count", Type: query.FieldInt},
	query.Field{Name: "followeeCount", Column: "followee_count", Type: query.FieldInt},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.FieldTime},
	query.Field{Name: "updatedAt", Column: "updated_at", Type: query.FieldTime},
)

// FollowFields lista seguidores de un usuario; dentro de ese ámbito
// followerId identifica la fila.
var FollowFields = query.NewFieldTable("followerId",
	query.Field{Name: "followerId", Column: "follower_id", Type: query.FieldInt},
	query.Field{Name: "followeeId", Column: "followee_id", Type: query.FieldInt},
	query.Field{Name: "isConfirmed", Column: "is_confirmed", Type: query.FieldBool},
	query.Field{Name: "createdAt", Column: "created_at", Type: query.FieldTime},
	query.Field{Name: "updatedAt", Column: "updated_at", Type: query.FieldTime},
)
