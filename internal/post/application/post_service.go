package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	postDomain "github.com/davicafu/hexasocial/internal/post/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	sharedEvents "github.com/davicafu/hexasocial/shared/events"
	sharedCache "github.com/davicafu/hexasocial/shared/platform/cache"
	"github.com/davicafu/hexasocial/shared/platform/query"
	sharedUtils "github.com/davicafu/hexasocial/shared/utils"
	"go.uber.org/zap"
)

const (
	postCacheTTL      = 60
	maxTrendDays      = 90
	maxGeneratedPosts = 1000
)

// PostService define los casos de uso de Post.
// Incorpora repositorio, caché, registro de actividad opcional y logger.
type PostService struct {
	repo      postDomain.PostRepository
	cache     sharedCache.Cache
	analytics postDomain.PostAnalyticsRepository
	paginator *query.Paginator[*postDomain.Post]
	log       *zap.Logger
}

// NewPostService es el constructor del servicio. analytics puede ser nil.
func NewPostService(
	repo postDomain.PostRepository,
	cache sharedCache.Cache,
	analytics postDomain.PostAnalyticsRepository,
	pageOpts query.Options,
	log *zap.Logger,
) *PostService {
	return &PostService{
		repo:      repo,
		cache:     cache,
		analytics: analytics,
		paginator: query.NewPaginator[*postDomain.Post](repo, postDomain.PostFields, pageOpts),
		log:       log,
	}
}

func postCreatedEvent(p *postDomain.Post) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(postDomain.PostAggregate, strconv.FormatInt(p.ID, 10), postDomain.PostCreated,
		sharedEvents.PostCreated{ID: p.ID, AuthorID: p.AuthorID, Title: p.Title, CreatedAt: p.CreatedAt})
}

// CreatePost crea un post, su evento de outbox y actualiza la caché.
func (s *PostService) CreatePost(ctx context.Context, authorID int64, title, content string) (*postDomain.Post, error) {
	post, err := postDomain.NewPost(authorID, title, content)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, post, postCreatedEvent); err != nil {
		s.log.Error("Failed to create post", zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, postDomain.PostCacheKeyByID(post.ID), post, postCacheTTL, s.log)
	return post, nil
}

// GetPostByID obtiene un post con cache-aside y reintentos.
func (s *PostService) GetPostByID(ctx context.Context, id int64) (*postDomain.Post, error) {
	if s.cache != nil {
		var p postDomain.Post
		if hit, _ := s.cache.Get(ctx, postDomain.PostCacheKeyByID(id), &p); hit {
			return &p, nil
		}
	}

	var post *postDomain.Post
	err := sharedUtils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var errRetry error
		post, errRetry = s.repo.GetByID(ctx, id)
		if errors.Is(errRetry, postDomain.ErrPostNotFound) {
			return sharedUtils.Permanent(errRetry)
		}
		return errRetry
	})
	if err != nil {
		if errors.Is(err, postDomain.ErrPostNotFound) {
			s.log.Warn("Post not found", zap.Int64("post_id", id))
		} else {
			s.log.Error("Failed to fetch post", zap.Int64("post_id", id), zap.Error(err))
		}
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, postDomain.PostCacheKeyByID(post.ID), post, 2*postCacheTTL, s.log)
	return post, nil
}

// PostExists indica si el post existe, sin pasar por la caché.
func (s *PostService) PostExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, postDomain.ErrPostNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdatePost aplica los campos presentes, emite el evento y refresca la caché.
func (s *PostService) UpdatePost(ctx context.Context, id int64, title, content *string) (*postDomain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := post.Update(title, content); err != nil {
		return nil, err
	}

	evt := sharedDomain.NewOutboxEvent(postDomain.PostAggregate, strconv.FormatInt(id, 10), postDomain.PostUpdated,
		sharedEvents.PostUpdated{ID: post.ID, Title: post.Title, Content: post.Content, UpdatedAt: post.UpdatedAt})
	if err := s.repo.Update(ctx, post, evt); err != nil {
		s.log.Error("Failed to update post", zap.Int64("post_id", id), zap.Error(err))
		return nil, err
	}

	sharedCache.AsyncCacheSet(ctx, s.cache, postDomain.PostCacheKeyByID(id), post, postCacheTTL, s.log)
	return post, nil
}

// DeletePost elimina un post, emite el evento y limpia la caché.
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	evt := sharedDomain.NewOutboxEvent(postDomain.PostAggregate, strconv.FormatInt(id, 10), postDomain.PostDeleted,
		sharedEvents.PostDeleted{ID: id})
	if err := s.repo.DeleteByID(ctx, id, evt); err != nil {
		return err
	}

	sharedCache.AsyncCacheDelete(ctx, s.cache, postDomain.PostCacheKeyByID(id), s.log)
	return nil
}

// ListPosts pagina los posts con los parámetros crudos de la query string.
func (s *PostService) ListPosts(ctx context.Context, params map[string]string, linkBase string) (*query.PageResult[*postDomain.Post], error) {
	req, err := s.paginator.Parse(params)
	if err != nil {
		return nil, err
	}
	return s.paginator.Paginate(ctx, req, linkBase)
}

// GeneratePosts crea n posts de prueba para un autor.
func (s *PostService) GeneratePosts(ctx context.Context, authorID int64, n int) ([]*postDomain.Post, error) {
	if n < 1 || n > maxGeneratedPosts {
		return nil, fmt.Errorf("%w: cannot generate %d posts", postDomain.ErrInvalidPost, n)
	}

	posts := make([]*postDomain.Post, 0, n)
	for i := 1; i <= n; i++ {
		p, err := s.CreatePost(ctx, authorID,
			fmt.Sprintf("Post %d", i),
			fmt.Sprintf("Contenido generado %d para el autor %d", i, authorID))
		if err != nil {
			return posts, err
		}
		posts = append(posts, p)
	}
	s.log.Info("Generated posts", zap.Int64("author_id", authorID), zap.Int("count", len(posts)))
	return posts, nil
}

// ApplyCommentDelta ajusta el contador de comentarios e invalida la caché.
func (s *PostService) ApplyCommentDelta(ctx context.Context, postID, delta int64) error {
	if err := s.repo.AddCommentCount(ctx, postID, delta); err != nil {
		return err
	}
	sharedCache.AsyncCacheDelete(ctx, s.cache, postDomain.PostCacheKeyByID(postID), s.log)
	return nil
}

// RecordActivity registra actividad si hay analítica configurada.
func (s *PostService) RecordActivity(ctx context.Context, activities ...postDomain.Activity) error {
	if s.analytics == nil || len(activities) == 0 {
		return nil
	}
	if err := s.analytics.LogBatch(ctx, activities); err != nil {
		s.log.Warn("Failed to log post activity", zap.Int("count", len(activities)), zap.Error(err))
		return err
	}
	return nil
}

// DailyTrend devuelve la tendencia diaria de los últimos days días.
func (s *PostService) DailyTrend(ctx context.Context, days int) ([]postDomain.DailyPostTrend, error) {
	if s.analytics == nil {
		return nil, postDomain.ErrAnalyticsDisabled
	}
	if days < 1 || days > maxTrendDays {
		return nil, fmt.Errorf("%w: %d days", postDomain.ErrInvalidTrendWindow, days)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	return s.analytics.GetDailyTrend(ctx, start, end)
}
