package events

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	postDomain "github.com/davicafu/hexasocial/internal/post/domain"
	sharedEvents "github.com/davicafu/hexasocial/shared/events"
	sharedUtils "github.com/davicafu/hexasocial/shared/utils"
)

// PostService es lo que el consumidor necesita del servicio de posts.
type PostService interface {
	ApplyCommentDelta(ctx context.Context, postID, delta int64) error
	RecordActivity(ctx context.Context, activities ...postDomain.Activity) error
}

// PostConsumer mantiene el contador de comentarios y el registro de actividad.
type PostConsumer struct {
	service PostService
	log     *zap.Logger
}

func NewPostConsumer(service PostService, logger *zap.Logger) *PostConsumer {
	return &PostConsumer{
		service: service,
		log:     logger,
	}
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
func (c *PostConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event for post", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case sharedEvents.TypePostCreated:
		sharedUtils.UnmarshalAndHandle[sharedEvents.PostCreated](c.log, base.Data, func(evt sharedEvents.PostCreated) {
			c.withContext(ctx, evt.ID, func(ctxPost context.Context) error {
				return c.service.RecordActivity(ctxPost, activity(base, evt.ID, evt.AuthorID))
			}, "Post activity recorded")
		})

	case sharedEvents.TypePostDeleted:
		sharedUtils.UnmarshalAndHandle[sharedEvents.PostDeleted](c.log, base.Data, func(evt sharedEvents.PostDeleted) {
			c.withContext(ctx, evt.ID, func(ctxPost context.Context) error {
				return c.service.RecordActivity(ctxPost, activity(base, evt.ID, 0))
			}, "Post activity recorded")
		})

	case sharedEvents.TypeCommentCreated:
		sharedUtils.UnmarshalAndHandle[sharedEvents.CommentCreated](c.log, base.Data, func(evt sharedEvents.CommentCreated) {
			c.withContext(ctx, evt.PostID, func(ctxPost context.Context) error {
				if err := c.service.ApplyCommentDelta(ctxPost, evt.PostID, 1); err != nil {
					return err
				}
				return c.service.RecordActivity(ctxPost, activity(base, evt.PostID, evt.AuthorID))
			}, "Comment count incremented via event")
		})

	case sharedEvents.TypeCommentDeleted:
		sharedUtils.UnmarshalAndHandle[sharedEvents.CommentDeleted](c.log, base.Data, func(evt sharedEvents.CommentDeleted) {
			c.withContext(ctx, evt.PostID, func(ctxPost context.Context) error {
				return c.service.ApplyCommentDelta(ctxPost, evt.PostID, -1)
			}, "Comment count decremented via event")
		})

	default:
		// El topic es compartido: el resto de eventos no interesa aquí.
		c.log.Debug("Ignoring event", zap.String("type", base.Type), zap.String("key", key))
	}
}

func activity(base sharedEvents.IntegrationEvent, postID, actorID int64) postDomain.Activity {
	return postDomain.Activity{
		EventType: base.Type,
		PostID:    postID,
		ActorID:   actorID,
		EventTime: base.Timestamp,
	}
}

// Helper para ejecutar acción con contexto limitado y log.
func (c *PostConsumer) withContext(ctx context.Context, postID int64, action func(ctx context.Context) error, successMsg string) {
	ctxPost, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	if err := action(ctxPost); err != nil {
		c.log.Warn("Failed to process post event", zap.Int64("post_id", postID), zap.Error(err))
		return
	}
	c.log.Info(successMsg, zap.Int64("post_id", postID))
}
