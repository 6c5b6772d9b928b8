package domain

import (
	"context"
	"errors"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/platform/query"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidComment  = errors.New("invalid comment")
	ErrPostNotFound    = errors.New("post not found")
)

type CommentRepository interface {
	query.RowStore[*Comment]
	Create(ctx context.Context, c *Comment, newEvent sharedDomain.OutboxFactory[*Comment]) error
	Update(ctx context.Context, c *Comment, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error
	GetByID(ctx context.Context, id int64) (*Comment, error)
}

// PostLookup comprueba la existencia del post padre.
type PostLookup interface {
	PostExists(ctx context.Context, id int64) (bool, error)
}

// PostScope acota un listado de comentarios a un post.
func PostScope(postID int64) sharedDomain.Criteria {
	return sharedDomain.FieldEquals{Field: "postId", Value: postID}
}
