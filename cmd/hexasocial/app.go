package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	chatApp "github.com/davicafu/hexasocial/internal/chat/application"
	chatDomain "github.com/davicafu/hexasocial/internal/chat/domain"
	chatRepo "github.com/davicafu/hexasocial/internal/chat/infra/outbound/db/sqldb"
	commentApp "github.com/davicafu/hexasocial/internal/comment/application"
	commentDomain "github.com/davicafu/hexasocial/internal/comment/domain"
	commentRepo "github.com/davicafu/hexasocial/internal/comment/infra/outbound/db/sqldb"
	"github.com/davicafu/hexasocial/internal/config"
	infraCache "github.com/davicafu/hexasocial/internal/infra/cache"
	infraMongo "github.com/davicafu/hexasocial/internal/infra/db/mongodb"
	"github.com/davicafu/hexasocial/internal/infra/db/postgres"
	"github.com/davicafu/hexasocial/internal/infra/db/relational"
	"github.com/davicafu/hexasocial/internal/infra/db/sqlite"
	postApp "github.com/davicafu/hexasocial/internal/post/application"
	postDomain "github.com/davicafu/hexasocial/internal/post/domain"
	postAnalytics "github.com/davicafu/hexasocial/internal/post/infra/outbound/analytics/clickhouse"
	postMongo "github.com/davicafu/hexasocial/internal/post/infra/outbound/db/mongodb"
	postSQL "github.com/davicafu/hexasocial/internal/post/infra/outbound/db/sqldb"
	userApp "github.com/davicafu/hexasocial/internal/user/application"
	userDomain "github.com/davicafu/hexasocial/internal/user/domain"
	userRepo "github.com/davicafu/hexasocial/internal/user/infra/outbound/db/sqldb"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	sharedEvents "github.com/davicafu/hexasocial/shared/events"
	"github.com/davicafu/hexasocial/shared/persistence/sqlstore"
	sharedCache "github.com/davicafu/hexasocial/shared/platform/cache"
	"github.com/davicafu/hexasocial/shared/platform/query"
)

// outboxSource es una tabla/colección outbox que necesita su propio worker.
type outboxSource struct {
	name string
	repo sharedDomain.OutboxRepository
}

// app agrupa las dependencias construidas a partir de la configuración.
type app struct {
	cfg *config.Config
	log *zap.Logger

	db      *sql.DB
	dialect sqlstore.Dialect
	mongo   *mongo.Client
	cache   sharedCache.Cache

	posts    *postApp.PostService
	comments *commentApp.CommentService
	chats    *chatApp.ChatService
	users    *userApp.UserService

	outboxes []outboxSource
	closers  []func()
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}
	if err := a.openSQL(ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.cache = a.openCache(ctx)

	pageOpts := query.Options{DefaultTake: cfg.PageDefaultTake, MaxTake: cfg.PageMaxTake}

	posts, err := a.postRepository(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.posts = postApp.NewPostService(posts, a.cache, a.postAnalytics(ctx), pageOpts, log)

	a.comments = commentApp.NewCommentService(commentRepo.NewCommentRepoSQL(a.db, a.dialect), a.posts, pageOpts, log)
	a.chats = chatApp.NewChatService(
		chatRepo.NewChatRepoSQL(a.db, a.dialect),
		chatRepo.NewMessageRepoSQL(a.db, a.dialect),
		pageOpts, log)
	users := userRepo.NewUserRepoSQL(a.db, a.dialect)
	a.users = userApp.NewUserService(users, userRepo.NewFollowRepoSQL(a.db, a.dialect), a.cache, pageOpts, log)

	a.outboxes = append(a.outboxes, outboxSource{name: a.dialect.String(), repo: relational.NewOutboxRepo(a.db, a.dialect)})
	return a, nil
}

func (a *app) openSQL(ctx context.Context) error {
	dialect, err := sqlstore.DialectFor(a.cfg.DBDriver)
	if err != nil {
		return err
	}

	var db *sql.DB
	if dialect == sqlstore.Postgres {
		db, err = postgres.Open(ctx, a.cfg.PostgresDSN)
	} else {
		db, err = sqlite.Open(ctx, a.cfg.SQLitePath)
	}
	if err != nil {
		return err
	}
	a.db, a.dialect = db, dialect
	a.closers = append(a.closers, func() { db.Close() })

	if err := relational.InitSchema(ctx, db, dialect); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	a.log.Info("✅ SQL store listo", zap.String("dialect", dialect.String()))
	return nil
}

func (a *app) openCache(ctx context.Context) sharedCache.Cache {
	rdb := redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		a.log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		_ = rdb.Close()
		mem := infraCache.NewInMemoryCache(a.cfg.CacheTTL, 3*a.cfg.CacheTTL)
		a.closers = append(a.closers, mem.Stop)
		return mem
	}
	a.closers = append(a.closers, func() { rdb.Close() })
	a.log.Info("✅ Redis conectado, cache habilitado")
	return infraCache.NewRedisCache(rdb, a.cfg.CacheTTL, "hexasocial")
}

func (a *app) postRepository(ctx context.Context) (postDomain.PostRepository, error) {
	if a.cfg.PostStore != "mongo" {
		return postSQL.NewPostRepoSQL(a.db, a.dialect), nil
	}

	client, err := infraMongo.Connect(ctx, a.cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	a.mongo = client
	a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })

	repo := postMongo.NewPostRepoMongoDB(client, a.cfg.MongoDB)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	a.outboxes = append(a.outboxes, outboxSource{
		name: "mongodb",
		repo: infraMongo.NewOutboxRepoMongoDB(client.Database(a.cfg.MongoDB)),
	})
	a.log.Info("✅ Posts en MongoDB", zap.String("db", a.cfg.MongoDB))
	return repo, nil
}

// postAnalytics devuelve nil si ClickHouse no está configurado o no responde.
func (a *app) postAnalytics(ctx context.Context) postDomain.PostAnalyticsRepository {
	if a.cfg.ClickHouseAddr == "" {
		return nil
	}
	repo, err := postAnalytics.NewPostActivityRepo(ctx, a.cfg.ClickHouseAddr, a.cfg.ClickHouseDB)
	if err != nil {
		a.log.Warn("⚠️ ClickHouse no disponible, actividad desactivada", zap.Error(err))
		return nil
	}
	if err := repo.InitSchema(ctx); err != nil {
		a.log.Warn("⚠️ No se pudo crear la tabla de actividad", zap.Error(err))
		_ = repo.Close()
		return nil
	}
	a.closers = append(a.closers, func() { _ = repo.Close() })
	return repo
}

// eventRegistry une los registros de todos los dominios sobre el mismo topic.
func (a *app) eventRegistry() map[string]sharedEvents.EventMetadata {
	registry := make(map[string]sharedEvents.EventMetadata)
	for _, r := range []map[string]sharedEvents.EventMetadata{
		postDomain.NewEventRegistry(a.cfg.KafkaTopic),
		commentDomain.NewEventRegistry(a.cfg.KafkaTopic),
		chatDomain.NewEventRegistry(a.cfg.KafkaTopic),
		userDomain.NewEventRegistry(a.cfg.KafkaTopic),
	} {
		for k, v := range r {
			registry[k] = v
		}
	}
	return registry
}

// Close libera los recursos en orden inverso al de apertura.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
