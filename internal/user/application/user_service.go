package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	userDomain "github.com/davicafu/hexasocial/internal/user/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	sharedEvents "github.com/davicafu/hexasocial/shared/events"
	sharedCache "github.com/davicafu/hexasocial/shared/platform/cache"
	"github.com/davicafu/hexasocial/shared/platform/query"
	sharedUtils "github.com/davicafu/hexasocial/shared/utils"
	"go.uber.org/zap"
)

const userCacheTTL = 60

// UserService define los casos de uso de usuarios y follows.
type UserService struct {
	users      userDomain.UserRepository
	follows    userDomain.FollowRepository
	cache      sharedCache.Cache
	userPage   *query.Paginator[*userDomain.User]
	followPage *query.Paginator[*userDomain.Follow]
	log        *zap.Logger
}

// NewUserService constructor. cache puede ser nil.
func NewUserService(
	users userDomain.UserRepository,
	follows userDomain.FollowRepository,
	cache sharedCache.Cache,
	pageOpts query.Options,
	log *zap.Logger,
) *UserService {
	return &UserService{
		users:      users,
		follows:    follows,
		cache:      cache,
		userPage:   query.NewPaginator[*userDomain.User](users, userDomain.UserFields, pageOpts),
		followPage: query.NewPaginator[*userDomain.Follow](follows, userDomain.FollowFields, pageOpts),
		log:        log,
	}
}

func userCreatedEvent(u *userDomain.User) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(userDomain.UserAggregate, strconv.FormatInt(u.ID, 10), userDomain.UserCreated,
		sharedEvents.UserCreated{ID: u.ID, Nickname: u.Nickname, Email: u.Email})
}

func followEvent(eventType string, f *userDomain.Follow) sharedDomain.OutboxEvent {
	aggregateID := fmt.Sprintf("%d:%d", f.FollowerID, f.FolloweeID)
	var payload interface{}
	switch eventType {
	case userDomain.FollowConfirmed:
		payload = sharedEvents.FollowConfirmed{FollowerID: f.FollowerID, FolloweeID: f.FolloweeID}
	case userDomain.FollowDeleted:
		payload = sharedEvents.FollowDeleted{FollowerID: f.FollowerID, FolloweeID: f.FolloweeID}
	default:
		payload = sharedEvents.FollowRequested{FollowerID: f.FollowerID, FolloweeID: f.FolloweeID}
	}
	return sharedDomain.NewOutboxEvent(userDomain.FollowAggregate, aggregateID, eventType, payload)
}

func (s *UserService) CreateUser(ctx context.Context, nickname, email string) (*userDomain.User, error) {
	user, err := userDomain.NewUser(nickname, email)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user, userCreatedEvent); err != nil {
		if !errors.Is(err, userDomain.ErrUserAlreadyExists) {
			s.log.Error("Failed to create user", zap.Error(err))
		}
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, userDomain.CacheKeyByID(user.ID), user, userCacheTTL, s.log)
	return user, nil
}

// GetUser obtiene un usuario (primero intenta desde cache).
func (s *UserService) GetUser(ctx context.Context, id int64) (*userDomain.User, error) {
	if s.cache != nil {
		var u userDomain.User
		if ok, _ := s.cache.Get(ctx, userDomain.CacheKeyByID(id), &u); ok {
			return &u, nil
		}
	}

	var user *userDomain.User
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		user, err = s.users.GetByID(ctx, id)
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return sharedUtils.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, userDomain.CacheKeyByID(user.ID), user, userCacheTTL, s.log)
	return user, nil
}

// ListUsers pagina los usuarios.
func (s *UserService) ListUsers(ctx context.Context, params map[string]string, linkBase string) (*query.PageResult[*userDomain.User], error) {
	req, err := s.userPage.Parse(params)
	if err != nil {
		return nil, err
	}
	return s.userPage.Paginate(ctx, req, linkBase)
}

func (s *UserService) ensureUser(ctx context.Context, id int64) error {
	_, err := s.users.GetByID(ctx, id)
	return err
}

// Follow crea una solicitud pendiente de followerID hacia followeeID.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID int64) (*userDomain.Follow, error) {
	follow, err := userDomain.NewFollow(followerID, followeeID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, followerID); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, followeeID); err != nil {
		return nil, err
	}

	if err := s.follows.Create(ctx, follow, followEvent(userDomain.FollowRequested, follow)); err != nil {
		if !errors.Is(err, userDomain.ErrFollowAlreadyExists) {
			s.log.Error("Failed to create follow", zap.Int64("follower_id", followerID),
				zap.Int64("followee_id", followeeID), zap.Error(err))
		}
		return nil, err
	}
	return follow, nil
}

// ConfirmFollow acepta la solicitud y actualiza los contadores de ambos usuarios.
func (s *UserService) ConfirmFollow(ctx context.Context, followerID, followeeID int64) (*userDomain.Follow, error) {
	follow, err := s.follows.Get(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}
	if err := follow.Confirm(); err != nil {
		return nil, err
	}

	if err := s.follows.Confirm(ctx, follow, followEvent(userDomain.FollowConfirmed, follow)); err != nil {
		s.log.Error("Failed to confirm follow", zap.Int64("follower_id", followerID),
			zap.Int64("followee_id", followeeID), zap.Error(err))
		return nil, err
	}

	s.InvalidateUsers(ctx, followerID, followeeID)
	return follow, nil
}

// DeleteFollow borra la relación. Los contadores solo bajan si estaba confirmada.
func (s *UserService) DeleteFollow(ctx context.Context, followerID, followeeID int64) error {
	follow, err := s.follows.Get(ctx, followerID, followeeID)
	if err != nil {
		return err
	}

	if err := s.follows.Delete(ctx, follow, followEvent(userDomain.FollowDeleted, follow)); err != nil {
		s.log.Error("Failed to delete follow", zap.Int64("follower_id", followerID),
			zap.Int64("followee_id", followeeID), zap.Error(err))
		return err
	}

	if follow.IsConfirmed {
		s.InvalidateUsers(ctx, followerID, followeeID)
	}
	return nil
}

// ListFollowers pagina los seguidores de userID. Sin includeNotConfirmed
// solo aparecen los confirmados.
func (s *UserService) ListFollowers(ctx context.Context, userID int64, includeNotConfirmed bool, params map[string]string, linkBase string) (*query.PageResult[*userDomain.Follow], error) {
	req, err := s.followPage.Parse(params)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	scope := []sharedDomain.Criteria{userDomain.FolloweeScope(userID)}
	if !includeNotConfirmed {
		scope = append(scope, userDomain.ConfirmedOnly())
	}
	return s.followPage.Paginate(ctx, req.Scope(scope...), linkBase)
}

// InvalidateUsers borra de la caché las entradas de los usuarios dados.
func (s *UserService) InvalidateUsers(ctx context.Context, ids ...int64) {
	for _, id := range ids {
		sharedCache.AsyncCacheDelete(ctx, s.cache, userDomain.CacheKeyByID(id), s.log)
	}
}
