package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social-platform/internal/audit"
	"social-platform/internal/auth"
	"social-platform/internal/comments"
	"social-platform/internal/config"
	"social-platform/internal/httpapi"
	"social-platform/internal/posts"
	"social-platform/internal/rbac"
	"social-platform/internal/users"
	"social-platform/pkg/logger"
	"social-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Fail fast on auth misconfiguration (missing signing secret).
	tokenManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Wiring: repositories, the static permission table, services.
	userRepo := users.NewPostgresRepository(db)
	userSvc := users.NewService(userRepo)

	auditSvc := audit.NewService(audit.NewPostgresRepo(db))

	resolver := rbac.NewResolver(userRepo, rbac.DefaultTable())
	authorizer := rbac.NewAuthorizer(resolver, auditSvc)

	authSvc := auth.NewService(tokenManager, auth.NewRedisTokenStore(rdb))
	postSvc := posts.NewService(posts.NewPostgresRepository(db), authorizer)
	commentSvc := comments.NewService(comments.NewPostgresRepository(db), authorizer)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	h := httpapi.Handlers{
		Auth:     authSvc,
		Users:    userSvc,
		Posts:    postSvc,
		Comments: commentSvc,
		Audit:    auditSvc,
		Redis:    rdb,
	}
	registerRoutes(r, h, authSvc, resolver)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
