package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	postDomain "github.com/davicafu/hexasocial/internal/post/domain"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// PostActivityRepo implementa PostAnalyticsRepository para ClickHouse.
type PostActivityRepo struct {
	db *sql.DB
}

// NewPostActivityRepo abre la conexión y verifica que responde.
func NewPostActivityRepo(ctx context.Context, addr string, dbName string) (*PostActivityRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout: 5 * time.Second,
	})

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &PostActivityRepo{db: conn}, nil
}

// Close cierra la conexión.
func (r *PostActivityRepo) Close() error {
	return r.db.Close()
}

// LogBatch inserta un lote de actividad en una sola transacción.
func (r *PostActivityRepo) LogBatch(ctx context.Context, activities []postDomain.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO post_activity (event_type, post_id, actor_id, event_time)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, a := range activities {
		eventTime := a.EventTime
		if eventTime.IsZero() {
			eventTime = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx, a.EventType, a.PostID, a.ActorID, eventTime); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for post %d: %w", a.PostID, err)
		}
	}

	return tx.Commit()
}

// GetDailyTrend agrupa por día los posts y comentarios creados en [start, end].
func (r *PostActivityRepo) GetDailyTrend(ctx context.Context, start, end time.Time) ([]postDomain.DailyPostTrend, error) {
	query := `
		SELECT
			toStartOfDay(event_time) AS day,
			countIf(event_type = 'post.created') AS posts,
			countIf(event_type = 'comment.created') AS comments
		FROM post_activity
		WHERE event_time BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []postDomain.DailyPostTrend
	for rows.Next() {
		var (
			trend           postDomain.DailyPostTrend
			posts, comments uint64
		)
		if err := rows.Scan(&trend.Day, &posts, &comments); err != nil {
			return nil, err
		}
		trend.PostsCreated = int64(posts)
		trend.CommentsCreated = int64(comments)
		trends = append(trends, trend)
	}
	return trends, rows.Err()
}

// InitSchema crea la tabla de actividad si no existe.
func (r *PostActivityRepo) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS post_activity (
			event_type String,
			post_id    Int64,
			actor_id   Int64,
			event_time DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(event_time)
		ORDER BY (post_id, event_time);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Verificación estática de la interfaz.
var _ postDomain.PostAnalyticsRepository = (*PostActivityRepo)(nil)
