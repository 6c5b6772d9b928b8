package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/platform/query"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidPost        = errors.New("invalid post")
	ErrAnalyticsDisabled  = errors.New("post analytics not configured")
	ErrInvalidTrendWindow = errors.New("invalid trend window")
)

// --- Repositorio de Posts ---
type PostRepository interface {
	query.RowStore[*Post]

	Create(ctx context.Context, p *Post, newEvent sharedDomain.OutboxFactory[*Post]) error
	Update(ctx context.Context, p *Post, evt sharedDomain.OutboxEvent) error
	DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	// AddCommentCount suma delta al contador de comentarios sin bajar de cero.
	AddCommentCount(ctx context.Context, id int64, delta int64) error
}

// Activity es una entrada del registro de actividad de posts.
type Activity struct {
	EventType string
	PostID    int64
	ActorID   int64
	EventTime time.Time
}

// DTO para transportar los resultados de la consulta de tendencia.
type DailyPostTrend struct {
	Day             time.Time `json:"day"`
	PostsCreated    int64     `json:"postsCreated"`
	CommentsCreated int64     `json:"commentsCreated"`
}

type PostAnalyticsRepository interface {
	LogBatch(ctx context.Context, activities []Activity) error
	GetDailyTrend(ctx context.Context, start, end time.Time) ([]DailyPostTrend, error)
}

// ---------- Helpers comunes ----------

func PostCacheKeyByID(id int64) string {
	return fmt.Sprintf("post:id:%d", id)
}
