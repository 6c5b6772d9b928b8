package application

import (
	"context"
	"strconv"

	chatDomain "github.com/davicafu/hexasocial/internal/chat/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	sharedEvents "github.com/davicafu/hexasocial/shared/events"
	"github.com/davicafu/hexasocial/shared/platform/query"
	"go.uber.org/zap"
)

// ChatService define los casos de uso de salas y mensajes.
type ChatService struct {
	chats    chatDomain.ChatRepository
	messages chatDomain.MessageRepository
	chatPage *query.Paginator[*chatDomain.Chat]
	msgPage  *query.Paginator[*chatDomain.Message]
	log      *zap.Logger
}

func NewChatService(
	chats chatDomain.ChatRepository,
	messages chatDomain.MessageRepository,
	pageOpts query.Options,
	log *zap.Logger,
) *ChatService {
	return &ChatService{
		chats:    chats,
		messages: messages,
		chatPage: query.NewPaginator[*chatDomain.Chat](chats, chatDomain.ChatFields, pageOpts),
		msgPage:  query.NewPaginator[*chatDomain.Message](messages, chatDomain.MessageFields, pageOpts),
		log:      log,
	}
}

func chatCreatedEvent(c *chatDomain.Chat) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(chatDomain.ChatAggregate, strconv.FormatInt(c.ID, 10), chatDomain.ChatCreated,
		sharedEvents.ChatCreated{ID: c.ID, UserIDs: c.UserIDs})
}

func messageSentEvent(m *chatDomain.Message) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(chatDomain.ChatAggregate, strconv.FormatInt(m.ChatID, 10), chatDomain.MessageSent,
		sharedEvents.MessageSent{ID: m.ID, ChatID: m.ChatID, AuthorID: m.AuthorID, Message: m.Message})
}

// CreateChat crea una sala con los usuarios dados.
func (s *ChatService) CreateChat(ctx context.Context, userIDs []int64) (*chatDomain.Chat, error) {
	chat, err := chatDomain.NewChat(userIDs)
	if err != nil {
		return nil, err
	}
	if err := s.chats.Create(ctx, chat, chatCreatedEvent); err != nil {
		s.log.Error("Failed to create chat", zap.Error(err))
		return nil, err
	}
	return chat, nil
}

func (s *ChatService) GetChat(ctx context.Context, id int64) (*chatDomain.Chat, error) {
	return s.chats.GetByID(ctx, id)
}

func (s *ChatService) ChatExists(ctx context.Context, id int64) (bool, error) {
	return s.chats.Exists(ctx, id)
}

// ListChats pagina las salas.
func (s *ChatService) ListChats(ctx context.Context, params map[string]string, linkBase string) (*query.PageResult[*chatDomain.Chat], error) {
	req, err := s.chatPage.Parse(params)
	if err != nil {
		return nil, err
	}
	return s.chatPage.Paginate(ctx, req, linkBase)
}

// SendMessage guarda un mensaje de un miembro de la sala.
func (s *ChatService) SendMessage(ctx context.Context, chatID, authorID int64, text string) (*chatDomain.Message, error) {
	msg, err := chatDomain.NewMessage(chatID, authorID, text)
	if err != nil {
		return nil, err
	}
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasMember(authorID) {
		return nil, chatDomain.ErrNotChatMember
	}

	if err := s.messages.Create(ctx, msg, messageSentEvent); err != nil {
		s.log.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
		return nil, err
	}
	return msg, nil
}

// ListMessages pagina los mensajes de una sala. La sala viene de la ruta.
func (s *ChatService) ListMessages(ctx context.Context, chatID int64, params map[string]string, linkBase string) (*query.PageResult[*chatDomain.Message], error) {
	req, err := s.msgPage.Parse(params)
	if err != nil {
		return nil, err
	}
	ok, err := s.chats.Exists(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, chatDomain.ErrChatNotFound
	}
	return s.msgPage.Paginate(ctx, req.Scope(chatDomain.ChatScope(chatID)), linkBase)
}
