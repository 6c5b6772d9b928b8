package mocks

import (
	"context"
	"sync"

	userDomain "github.com/davicafu/hexasocial/internal/user/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
)

// InMemoryUserRepo simula UserRepository con outbox incluido.
type InMemoryUserRepo struct {
	*MemoryRowStore[*userDomain.User]
	Outbox []sharedDomain.OutboxEvent
	mu     sync.Mutex
	nextID int64
}

func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{
		MemoryRowStore: NewMemoryRowStore[*userDomain.User](),
		Outbox:         []sharedDomain.OutboxEvent{},
	}
}

var _ userDomain.UserRepository = (*InMemoryUserRepo)(nil)

func userID(id int64) func(*userDomain.User) bool {
	return func(u *userDomain.User) bool { return u.ID == id }
}

func (r *InMemoryUserRepo) Create(ctx context.Context, u *userDomain.User, newEvent sharedDomain.OutboxFactory[*userDomain.User]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Rows() {
		if existing.Nickname == u.Nickname || existing.Email == u.Email {
			return userDomain.ErrUserAlreadyExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.Add(&cp)
	r.Outbox = append(r.Outbox, newEvent(u))
	return nil
}

func (r *InMemoryUserRepo) GetByID(ctx context.Context, id int64) (*userDomain.User, error) {
	for _, u := range r.Rows() {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, userDomain.ErrUserNotFound
}

func (r *InMemoryUserRepo) addCounts(followerID, followeeID, delta int64) {
	r.Mutate(userID(followeeID), func(u *userDomain.User) { u.FollowerCount += delta })
	r.Mutate(userID(followerID), func(u *userDomain.User) { u.FolloweeCount += delta })
}

// InMemoryFollowRepo simula FollowRepository y mantiene los contadores de Users.
type InMemoryFollowRepo struct {
	*MemoryRowStore[*userDomain.Follow]
	Users  *InMemoryUserRepo
	Outbox []sharedDomain.OutboxEvent
	mu     sync.Mutex
}

func NewInMemoryFollowRepo(users *InMemoryUserRepo) *InMemoryFollowRepo {
	return &InMemoryFollowRepo{MemoryRowStore: NewMemoryRowStore[*userDomain.Follow](), Users: users}
}

var _ userDomain.FollowRepository = (*InMemoryFollowRepo)(nil)

func followKey(followerID, followeeID int64) func(*userDomain.Follow) bool {
	return func(f *userDomain.Follow) bool { return f.FollowerID == followerID && f.FolloweeID == followeeID }
}

func (r *InMemoryFollowRepo) Create(ctx context.Context, f *userDomain.Follow, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.Get(ctx, f.FollowerID, f.FolloweeID); err == nil {
		return userDomain.ErrFollowAlreadyExists
	}
	cp := *f
	r.Add(&cp)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryFollowRepo) Get(ctx context.Context, followerID, followeeID int64) (*userDomain.Follow, error) {
	match := followKey(followerID, followeeID)
	for _, f := range r.Rows() {
		if match(f) {
			cp := *f
			return &cp, nil
		}
	}
	return nil, userDomain.ErrFollowNotFound
}

func (r *InMemoryFollowRepo) Confirm(ctx context.Context, f *userDomain.Follow, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	if !r.Replace(followKey(f.FollowerID, f.FolloweeID), &cp) {
		return userDomain.ErrFollowNotFound
	}
	r.Users.addCounts(f.FollowerID, f.FolloweeID, 1)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryFollowRepo) Delete(ctx context.Context, f *userDomain.Follow, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Remove(followKey(f.FollowerID, f.FolloweeID)) == 0 {
		return userDomain.ErrFollowNotFound
	}
	if f.IsConfirmed {
		r.Users.addCounts(f.FollowerID, f.FolloweeID, -1)
	}
	r.Outbox = append(r.Outbox, evt)
	return nil
}
