package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	chatHttp "github.com/davicafu/hexasocial/internal/chat/infra/inbound/http"
	commentHttp "github.com/davicafu/hexasocial/internal/comment/infra/inbound/http"
	"github.com/davicafu/hexasocial/internal/config"
	infraEvents "github.com/davicafu/hexasocial/internal/infra/events"
	infraRelayer "github.com/davicafu/hexasocial/internal/infra/relayer"
	postEvents "github.com/davicafu/hexasocial/internal/post/infra/inbound/events"
	postHttp "github.com/davicafu/hexasocial/internal/post/infra/inbound/http"
	userEvents "github.com/davicafu/hexasocial/internal/user/infra/inbound/events"
	userHttp "github.com/davicafu/hexasocial/internal/user/infra/inbound/http"
	"github.com/davicafu/hexasocial/pkg/logger"
	sharedBus "github.com/davicafu/hexasocial/shared/platform/bus"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Arranca el API HTTP, los consumidores y los workers de outbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log := logger.Logger()
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	// ---------------- Events ---------------
	postConsumer := postEvents.NewPostConsumer(a.posts, log)
	userConsumer := userEvents.NewUserConsumer(a.users, log)

	var publisher sharedBus.EventPublisher
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.String("topic", cfg.KafkaTopic))

		writer := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.Hash{},
		}
		defer writer.Close()
		publisher = infraEvents.NewKafkaPublisher(writer, log)

		for name, handler := range map[string]infraEvents.MessageHandler{
			"post": postConsumer,
			"user": userConsumer,
		} {
			reader := kafka.NewReader(kafka.ReaderConfig{
				Brokers:  cfg.KafkaBrokers,
				Topic:    cfg.KafkaTopic,
				GroupID:  cfg.KafkaGroupID + "-" + name,
				MinBytes: 10e3, // 10KB
				MaxBytes: 10e6, // 10MB
			})
			defer reader.Close()
			infraEvents.NewConsumerAdapter(reader, handler, log).Start(ctx)
		}
	} else {
		log.Info("⚡️ Usando bus de eventos en memoria (canales de Go)")

		bus := infraEvents.NewInMemoryEventBus(cfg.KafkaTopic)
		publisher = bus
		infraEvents.BackgroundConsumerChan(ctx, bus.Subscribe(100), postConsumer, log)
		infraEvents.BackgroundConsumerChan(ctx, bus.Subscribe(100), userConsumer, log)
	}

	// ------------ Outbox Workers ------------
	g, gctx := errgroup.WithContext(ctx)
	registry := a.eventRegistry()
	for _, src := range a.outboxes {
		worker := infraRelayer.NewOutboxWorker(src.name, src.repo, publisher, registry, cfg.OutboxPeriod, cfg.OutboxLimit, log)
		g.Go(func() error {
			worker.Start(gctx)
			return nil
		})
	}

	// ---------------- HTTP ----------------
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           newRouter(a),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Apagando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newRouter(a *app) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	base := a.cfg.PublicBaseURL
	postHttp.RegisterPostRoutes(router, postHttp.NewPostHandler(a.posts, base))
	commentHttp.RegisterCommentRoutes(router, commentHttp.NewCommentHandler(a.comments, base))
	chatHttp.RegisterChatRoutes(router, chatHttp.NewChatHandler(a.chats, base))
	userHttp.RegisterUserRoutes(router, userHttp.NewUserHandler(a.users, base))

	router.GET("/health", func(c *gin.Context) {
		if err := a.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}
