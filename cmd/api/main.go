package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/eparcel/eparcel-api/internal/api"
	"github.com/eparcel/eparcel-api/internal/api/handler"
	"github.com/eparcel/eparcel-api/internal/core/ports"
	"github.com/eparcel/eparcel-api/internal/core/service"
	"github.com/eparcel/eparcel-api/internal/infrastructure/ai"
	"github.com/eparcel/eparcel-api/internal/infrastructure/config"
	"github.com/eparcel/eparcel-api/internal/infrastructure/db/memory"
	"github.com/eparcel/eparcel-api/internal/infrastructure/db/mongo"
	"github.com/eparcel/eparcel-api/internal/infrastructure/db/redis"
	"github.com/eparcel/eparcel-api/internal/infrastructure/queue"
	"github.com/eparcel/eparcel-api/pkg/logger"
)

// @title        eParcel API
// @version      1.0
// @description  Logistics tracking and parcel management API.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	var (
		userRepo     ports.UserRepository
		parcelRepo   ports.ParcelRepository
		messageRepo  ports.MessageRepository
		dedup        service.TransitionDeduper
		healthChecks []handler.DependencyCheck
	)

	if cfg.UseMemoryStore {
		store := memory.NewStore()
		if err := store.Seed(); err != nil {
			log.Fatal().Err(err).Msg("seeding memory store failed")
		}
		userRepo = store
		parcelRepo = store.Parcels()
		messageRepo = store
		dedup = store
		log.Info().Msg("using seeded in-memory store")
	} else {
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		rdb, err := redis.Connect(ctx, redis.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()

		users := mongo.NewUserRepository(db)
		parcels := mongo.NewParcelRepository(db)
		messages := mongo.NewMessageRepository(db)
		for _, idx := range []interface{ EnsureIndexes(context.Context) error }{users, parcels, messages} {
			if err := idx.EnsureIndexes(ctx); err != nil {
				log.Fatal().Err(err).Msg("index creation failed")
			}
		}

		userRepo = users
		parcelRepo = parcels
		messageRepo = messages
		dedup = redis.NewTransitionDeduper(rdb)
		healthChecks = dependencyChecks(client, rdb)
	}

	generator := ai.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, log)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, log)
	parcelService := service.NewParcelService(parcelRepo, userRepo, dedup, log)
	chatService := service.NewChatService(messageRepo, generator, log)
	insightService := service.NewInsightService(parcelService, userRepo, generator, log)

	dispatcher := queue.NewDispatcher(0, chatService, log)
	dispatcher.Start(ctx)
	chatService.SetQueue(dispatcher)

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		UserService:    userService,
		ParcelService:  parcelService,
		ChatService:    chatService,
		InsightService: insightService,
		JWTSecret:      cfg.JWTSecret,
		HealthChecks:   healthChecks,
		Logger:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func dependencyChecks(client *gomongo.Client, rdb *goredis.Client) []handler.DependencyCheck {
	return []handler.DependencyCheck{
		{Name: "mongo", Check: func(ctx context.Context) error { return client.Ping(ctx, nil) }},
		{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}
}
