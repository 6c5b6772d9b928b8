package application

import (
	"context"
	"strconv"

	commentDomain "github.com/davicafu/hexasocial/internal/comment/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	sharedEvents "github.com/davicafu/hexasocial/shared/events"
	"github.com/davicafu/hexasocial/shared/platform/query"
	"go.uber.org/zap"
)

// CommentService define los casos de uso de comentarios de un post.
type CommentService struct {
	repo      commentDomain.CommentRepository
	posts     commentDomain.PostLookup
	paginator *query.Paginator[*commentDomain.Comment]
	log       *zap.Logger
}

func NewCommentService(
	repo commentDomain.CommentRepository,
	posts commentDomain.PostLookup,
	pageOpts query.Options,
	log *zap.Logger,
) *CommentService {
	return &CommentService{
		repo:      repo,
		posts:     posts,
		paginator: query.NewPaginator[*commentDomain.Comment](repo, commentDomain.CommentFields, pageOpts),
		log:       log,
	}
}

func (s *CommentService) ensurePost(ctx context.Context, postID int64) error {
	ok, err := s.posts.PostExists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return commentDomain.ErrPostNotFound
	}
	return nil
}

func commentCreatedEvent(c *commentDomain.Comment) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(commentDomain.CommentAggregate, strconv.FormatInt(c.ID, 10), commentDomain.CommentCreated,
		sharedEvents.CommentCreated{ID: c.ID, PostID: c.PostID, AuthorID: c.AuthorID, Comment: c.Comment})
}

// CreateComment crea un comentario en un post existente.
func (s *CommentService) CreateComment(ctx context.Context, postID, authorID int64, text string) (*commentDomain.Comment, error) {
	comment, err := commentDomain.NewComment(postID, authorID, text)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, comment, commentCreatedEvent); err != nil {
		s.log.Error("Failed to create comment", zap.Int64("post_id", postID), zap.Error(err))
		return nil, err
	}
	return comment, nil
}

// GetComment devuelve el comentario si pertenece al post.
func (s *CommentService) GetComment(ctx context.Context, postID, id int64) (*commentDomain.Comment, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, commentDomain.ErrCommentNotFound
	}
	return comment, nil
}

// UpdateComment cambia el texto del comentario.
func (s *CommentService) UpdateComment(ctx context.Context, postID, id int64, text string) (*commentDomain.Comment, error) {
	comment, err := s.GetComment(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if err := comment.Edit(text); err != nil {
		return nil, err
	}

	evt := sharedDomain.NewOutboxEvent(commentDomain.CommentAggregate, strconv.FormatInt(id, 10), commentDomain.CommentUpdated,
		sharedEvents.CommentUpdated{ID: id, PostID: postID, Comment: comment.Comment})
	if err := s.repo.Update(ctx, comment, evt); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment elimina el comentario; el evento lleva el post para ajustar su contador.
func (s *CommentService) DeleteComment(ctx context.Context, postID, id int64) error {
	if _, err := s.GetComment(ctx, postID, id); err != nil {
		return err
	}

	evt := sharedDomain.NewOutboxEvent(commentDomain.CommentAggregate, strconv.FormatInt(id, 10), commentDomain.CommentDeleted,
		sharedEvents.CommentDeleted{ID: id, PostID: postID})
	return s.repo.DeleteByID(ctx, id, evt)
}

// ListComments pagina los comentarios de un post. El post se toma de la ruta
// y no forma parte del enlace next.
func (s *CommentService) ListComments(ctx context.Context, postID int64, params map[string]string, linkBase string) (*query.PageResult[*commentDomain.Comment], error) {
	req, err := s.paginator.Parse(params)
	if err != nil {
		return nil, err
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.paginator.Paginate(ctx, req.Scope(commentDomain.PostScope(postID)), linkBase)
}
