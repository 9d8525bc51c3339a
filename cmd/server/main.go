package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/stuffhub/inventory-system/internal/api"
	"github.com/stuffhub/inventory-system/internal/core/accounts"
	"github.com/stuffhub/inventory-system/internal/core/collection"
	"github.com/stuffhub/inventory-system/internal/core/domain"
	"github.com/stuffhub/inventory-system/internal/core/ports"
	"github.com/stuffhub/inventory-system/internal/infrastructure/config"
	"github.com/stuffhub/inventory-system/internal/infrastructure/db/memory"
	mongodb "github.com/stuffhub/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/stuffhub/inventory-system/internal/infrastructure/db/redis"
	"github.com/stuffhub/inventory-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode(),
	})

	// --- Storage backend ---
	var opener ports.StoreOpener
	var mongoDB *mongodriver.Database
	switch cfg.Store {
	case "memory":
		opener = memory.NewOpener()
		log.Warn().Msg("using in-process memory store; data will not survive restarts")
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(shutdownCtx)
		}()
		mongoDB = db
		opener = mongodb.NewOpener(db)
	}

	// --- Redis (optional) ---
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisClient.Close()
	}

	// --- Directory and collections ---
	directory := accounts.NewDirectory(
		opener.Open("accounts"),
		opener.Open("roles"),
		cfg.DevMode(),
		log,
	)

	stuffs := collection.NewStuffCollection(opener.Open("StuffCollection"), directory, log)
	adminProfiles := collection.NewAdminProfileCollection(opener.Open("AdminProfileCollection"), directory, log)
	userProfiles := collection.NewUserProfileCollection(opener.Open("UserProfileCollection"), directory, log)

	directory.SetReferenceChecker(stuffs)
	directory.AttachProfileSources(adminProfiles, userProfiles)

	// Load sequence: admin profiles first (they create accounts other data
	// references), then stuff, then user profiles.
	registry := collection.NewRegistry(adminProfiles, stuffs, userProfiles)

	if err := directory.EnsureRoles(ctx); err != nil {
		log.Fatal().Err(err).Msg("role registration failed")
	}

	if cfg.AdminEmail != "" {
		if _, err := adminProfiles.Define(ctx, domain.Doc{
			"email":     cfg.AdminEmail,
			"firstName": cfg.AdminFirstName,
			"lastName":  cfg.AdminLastName,
			"password":  cfg.AdminPassword,
		}); err != nil {
			log.Fatal().Err(err).Msg("admin account seeding failed")
		}
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Registry:     registry,
		Directory:    directory,
		UserProfiles: userProfiles,
		Mongo:        mongoDB,
		Redis:        redisClient,
		JWTSecret:    cfg.JWTSecret,
		Log:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
