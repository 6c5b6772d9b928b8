package mocks

import (
	"context"
	"sync"

	chatDomain "github.com/davicafu/hexasocial/internal/chat/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
)

// InMemoryChatRepo simula ChatRepository con outbox incluido.
type InMemoryChatRepo struct {
	*MemoryRowStore[*chatDomain.Chat]
	Outbox []sharedDomain.OutboxEvent
	mu     sync.Mutex
	nextID int64
}

func NewInMemoryChatRepo() *InMemoryChatRepo {
	return &InMemoryChatRepo{MemoryRowStore: NewMemoryRowStore[*chatDomain.Chat]()}
}

var _ chatDomain.ChatRepository = (*InMemoryChatRepo)(nil)

func (r *InMemoryChatRepo) Create(ctx context.Context, c *chatDomain.Chat, newEvent sharedDomain.OutboxFactory[*chatDomain.Chat]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.Add(&cp)
	r.Outbox = append(r.Outbox, newEvent(c))
	return nil
}

func (r *InMemoryChatRepo) GetByID(ctx context.Context, id int64) (*chatDomain.Chat, error) {
	for _, c := range r.Rows() {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, chatDomain.ErrChatNotFound
}

func (r *InMemoryChatRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := r.GetByID(ctx, id)
	return err == nil, nil
}

// InMemoryMessageRepo simula MessageRepository.
type InMemoryMessageRepo struct {
	*MemoryRowStore[*chatDomain.Message]
	Outbox []sharedDomain.OutboxEvent
	mu     sync.Mutex
	nextID int64
}

func NewInMemoryMessageRepo() *InMemoryMessageRepo {
	return &InMemoryMessageRepo{MemoryRowStore: NewMemoryRowStore[*chatDomain.Message]()}
}

var _ chatDomain.MessageRepository = (*InMemoryMessageRepo)(nil)

func (r *InMemoryMessageRepo) Create(ctx context.Context, m *chatDomain.Message, newEvent sharedDomain.OutboxFactory[*chatDomain.Message]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	cp := *m
	r.Add(&cp)
	r.Outbox = append(r.Outbox, newEvent(m))
	return nil
}
