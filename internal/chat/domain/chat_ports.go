package domain

import (
	"context"
	"errors"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/platform/query"
)

var (
	ErrChatNotFound   = errors.New("chat not found")
	ErrInvalidChat    = errors.New("a chat needs at least two distinct users")
	ErrInvalidMessage = errors.New("invalid message")
	ErrNotChatMember  = errors.New("user is not a member of the chat")
)

type ChatRepository interface {
	query.RowStore[*Chat]
	Create(ctx context.Context, c *Chat, newEvent sharedDomain.OutboxFactory[*Chat]) error
	GetByID(ctx context.Context, id int64) (*Chat, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type MessageRepository interface {
	query.RowStore[*Message]
	Create(ctx context.Context, m *Message, newEvent sharedDomain.OutboxFactory[*Message]) error
}

// ChatScope acota un listado de mensajes a una sala.
func ChatScope(chatID int64) sharedDomain.Criteria {
	return sharedDomain.FieldEquals{Field: "chatId", Value: chatID}
}
