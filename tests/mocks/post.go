package mocks

import (
	"context"
	"sync"
	"time"

	postDomain "github.com/davicafu/hexasocial/internal/post/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
)

// InMemoryPostRepo simula PostRepository con outbox incluido.
type InMemoryPostRepo struct {
	*MemoryRowStore[*postDomain.Post]
	Outbox []sharedDomain.OutboxEvent
	mu     sync.Mutex
	nextID int64
}

func NewInMemoryPostRepo() *InMemoryPostRepo {
	return &InMemoryPostRepo{
		MemoryRowStore: NewMemoryRowStore[*postDomain.Post](),
		Outbox:         []sharedDomain.OutboxEvent{},
	}
}

var _ postDomain.PostRepository = (*InMemoryPostRepo)(nil)

func postID(id int64) func(*postDomain.Post) bool {
	return func(p *postDomain.Post) bool { return p.ID == id }
}

func (r *InMemoryPostRepo) Create(ctx context.Context, p *postDomain.Post, newEvent sharedDomain.OutboxFactory[*postDomain.Post]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.Add(&cp)
	r.Outbox = append(r.Outbox, newEvent(p))
	return nil
}

func (r *InMemoryPostRepo) GetByID(ctx context.Context, id int64) (*postDomain.Post, error) {
	for _, p := range r.Rows() {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, postDomain.ErrPostNotFound
}

func (r *InMemoryPostRepo) Update(ctx context.Context, p *postDomain.Post, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	if !r.Replace(postID(p.ID), &cp) {
		return postDomain.ErrPostNotFound
	}
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryPostRepo) DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Remove(postID(id)) == 0 {
		return postDomain.ErrPostNotFound
	}
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryPostRepo) AddCommentCount(ctx context.Context, id int64, delta int64) error {
	n := r.Mutate(postID(id), func(p *postDomain.Post) {
		p.CommentCount += delta
		if p.CommentCount < 0 {
			p.CommentCount = 0
		}
	})
	if n == 0 {
		return postDomain.ErrPostNotFound
	}
	return nil
}

// InMemoryPostAnalytics simula PostAnalyticsRepository.
type InMemoryPostAnalytics struct {
	mu         sync.Mutex
	Activities []postDomain.Activity
	Trend      []postDomain.DailyPostTrend
	Err        error
}

func (a *InMemoryPostAnalytics) LogBatch(ctx context.Context, activities []postDomain.Activity) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Activities = append(a.Activities, activities...)
	return nil
}

func (a *InMemoryPostAnalytics) GetDailyTrend(ctx context.Context, start, end time.Time) ([]postDomain.DailyPostTrend, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	return a.Trend, nil
}
