package mocks

import (
	"context"
	"sync"

	commentDomain "github.com/davicafu/hexasocial/internal/comment/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
)

// InMemoryCommentRepo simula CommentRepository con outbox incluido.
type InMemoryCommentRepo struct {
	*MemoryRowStore[*commentDomain.Comment]
	Outbox []sharedDomain.OutboxEvent
	mu     sync.Mutex
	nextID int64
}

func NewInMemoryCommentRepo() *InMemoryCommentRepo {
	return &InMemoryCommentRepo{
		MemoryRowStore: NewMemoryRowStore[*commentDomain.Comment](),
		Outbox:         []sharedDomain.OutboxEvent{},
	}
}

var _ commentDomain.CommentRepository = (*InMemoryCommentRepo)(nil)

func commentID(id int64) func(*commentDomain.Comment) bool {
	return func(c *commentDomain.Comment) bool { return c.ID == id }
}

func (r *InMemoryCommentRepo) Create(ctx context.Context, c *commentDomain.Comment, newEvent sharedDomain.OutboxFactory[*commentDomain.Comment]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.Add(&cp)
	r.Outbox = append(r.Outbox, newEvent(c))
	return nil
}

func (r *InMemoryCommentRepo) GetByID(ctx context.Context, id int64) (*commentDomain.Comment, error) {
	for _, c := range r.Rows() {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, commentDomain.ErrCommentNotFound
}

func (r *InMemoryCommentRepo) Update(ctx context.Context, c *commentDomain.Comment, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	if !r.Replace(commentID(c.ID), &cp) {
		return commentDomain.ErrCommentNotFound
	}
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryCommentRepo) DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Remove(commentID(id)) == 0 {
		return commentDomain.ErrCommentNotFound
	}
	r.Outbox = append(r.Outbox, evt)
	return nil
}

// PostSet simula la comprobación de existencia de posts.
type PostSet map[int64]bool

func (s PostSet) PostExists(ctx context.Context, id int64) (bool, error) {
	return s[id], nil
}
