package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/authcore/auth-service/internal/api"
	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/core/service"
	"github.com/authcore/auth-service/internal/core/token"
	"github.com/authcore/auth-service/internal/infrastructure/config"
	mongodb "github.com/authcore/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/authcore/auth-service/internal/infrastructure/db/redis"
	"github.com/authcore/auth-service/pkg/logger"
)

func main() {
	// Load environment variables from .env file (optional).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	roles, err := domain.NewRoleSet(cfg.Auth.Roles)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid role configuration")
	}

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodb.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}

	// --- Redis (optional refresh-token denylist) ---
	var denylist ports.TokenDenylist
	deps := api.Dependencies{Mongo: db}
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		denylist = redisdb.NewTokenDenylist(rdb)
		deps.Redis = rdb
	} else {
		log.Warn().Msg("redis not configured, refresh-token revocation disabled")
	}

	// --- Super admin seed ---
	if cfg.Auth.SuperAdminEmail != "" && cfg.Auth.SuperAdminPassword != "" {
		if err := service.EnsureSuperAdmin(ctx, repo, roles, cfg.Auth.SuperAdminEmail, cfg.Auth.SuperAdminPassword, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed super admin")
		}
	} else {
		log.Warn().Msg("super admin credentials not configured, skipping seed")
	}

	deps.Repo = repo
	deps.Denylist = denylist
	deps.Issuer = token.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	deps.Roles = roles
	deps.DefaultRole = cfg.Auth.DefaultRole
	deps.RotateRefresh = cfg.JWT.RotateRefresh
	deps.Logger = log

	e, err := api.NewRouter(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting auth service")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
