package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	userDomain "github.com/davicafu/hexasocial/internal/user/domain"
	sharedEvents "github.com/davicafu/hexasocial/shared/events"
	sharedUtils "github.com/davicafu/hexasocial/shared/utils"
)

// UserService es lo que el consumidor necesita del servicio de usuarios.
type UserService interface {
	GetUser(ctx context.Context, id int64) (*userDomain.User, error)
	InvalidateUsers(ctx context.Context, ids ...int64)
}

// UserConsumer mantiene la caché de usuarios coherente entre instancias:
// precarga al crear y descarta las entradas cuyos contadores cambian.
type UserConsumer struct {
	service UserService
	log     *zap.Logger
}

func NewUserConsumer(service UserService, logger *zap.Logger) *UserConsumer {
	return &UserConsumer{
		service: service,
		log:     logger,
	}
}

func (c *UserConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event for user", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case userDomain.UserCreated:
		sharedUtils.UnmarshalAndHandle[sharedEvents.UserCreated](c.log, base.Data, func(evt sharedEvents.UserCreated) {
			c.withContext(ctx, evt.ID, func(ctxUser context.Context) error {
				_, err := c.service.GetUser(ctxUser, evt.ID)
				return err
			}, "User cache warmed via event")
		})

	case userDomain.FollowConfirmed:
		sharedUtils.UnmarshalAndHandle[sharedEvents.FollowConfirmed](c.log, base.Data, func(evt sharedEvents.FollowConfirmed) {
			c.withContext(ctx, evt.FolloweeID, func(ctxUser context.Context) error {
				c.service.InvalidateUsers(ctxUser, evt.FollowerID, evt.FolloweeID)
				return nil
			}, "User cache invalidated via event")
		})

	case userDomain.FollowDeleted:
		sharedUtils.UnmarshalAndHandle[sharedEvents.FollowDeleted](c.log, base.Data, func(evt sharedEvents.FollowDeleted) {
			c.withContext(ctx, evt.FolloweeID, func(ctxUser context.Context) error {
				c.service.InvalidateUsers(ctxUser, evt.FollowerID, evt.FolloweeID)
				return nil
			}, "User cache invalidated via event")
		})

	default:
		c.log.Debug("Ignoring event", zap.String("type", base.Type), zap.String("key", key))
	}
}

// Helper para ejecutar acción con contexto limitado y log
func (c *UserConsumer) withContext(ctx context.Context, userID int64, action func(ctx context.Context) error, successMsg string) {
	ctxUser, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	if err := action(ctxUser); err != nil {
		c.log.Warn("Failed to process user event", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	c.log.Info(successMsg, zap.Int64("user_id", userID))
}
