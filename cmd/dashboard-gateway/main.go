package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/revitalisasi-dashboard/api/swagger"
	"github.com/noah-isme/revitalisasi-dashboard/internal/discussion"
	"github.com/noah-isme/revitalisasi-dashboard/internal/forms"
	"github.com/noah-isme/revitalisasi-dashboard/internal/handler"
	"github.com/noah-isme/revitalisasi-dashboard/internal/middleware"
	"github.com/noah-isme/revitalisasi-dashboard/internal/repository"
	"github.com/noah-isme/revitalisasi-dashboard/internal/router"
	"github.com/noah-isme/revitalisasi-dashboard/internal/service"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/apiclient"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/cache"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/config"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/database"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/logger"
	"github.com/noah-isme/revitalisasi-dashboard/pkg/storage"
)

// @title Revitalisasi Dashboard Gateway
// @version 1.0.0
// @description Multi-role monitoring dashboard for the school revitalisation program, served over the program REST API.
// @BasePath /
// @schemes http

const sessionJanitorInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	backend := apiclient.New(apiclient.Config{
		BaseURL:  cfg.Backend.BaseURL,
		Timeout:  cfg.Backend.Timeout,
		Logger:   logr,
		Observer: metrics,
	})

	repo, checks, closeStore, err := openSessionStore(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("session store unavailable", "store", cfg.Session.Store, "error", err)
	}
	defer closeStore()

	catalogCache, closeCache := openCache(ctx, cfg, metrics, checks, logr)
	defer closeCache()

	validate := forms.NewValidator()
	sessions := service.NewSessionService(repo, backend, validate, logr, metrics, service.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Issuer: "revitalisasi-dashboard",
	})
	resourcesSvc := service.NewResourceService(backend, validate, logr)
	downloads := service.NewDownloadService(backend, storage.NewSigner(cfg.Downloads.SignedURLSecret, cfg.Downloads.SignedURLTTL), logr)
	reviews := service.NewReviewService(backend, validate, logr)
	reviews.SetCache(catalogCache)
	dashboard := service.NewDashboardService(backend, logr)
	discussions := service.NewDiscussionService(backend, nil, validate, logr)

	hub := discussion.NewHub(discussions.GetThread, discussion.Config{
		WriteTimeout:   cfg.Discussion.WriteTimeout,
		AllowedOrigins: cfg.Discussion.AllowedOrigins,
		Logger:         logr,
		Observer:       metrics,
	})
	defer hub.Close()
	discussions.SetPublisher(hub)

	listSettings := handler.ListSettings{
		PageSizes: cfg.List.PageSizes,
		Window:    cfg.List.PaginationWindow,
		Debounce:  cfg.List.Debounce,
	}
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(sessions, logr),
		Pages:       handler.NewPageHandler(resourcesSvc, downloads, sessions, listSettings, logr),
		Live:        handler.NewLiveHandler(resourcesSvc, listSettings, handler.LiveConfig{WriteTimeout: cfg.Discussion.WriteTimeout, AllowedOrigins: cfg.Discussion.AllowedOrigins, Observer: metrics}, logr),
		Reviews:     handler.NewReviewHandler(reviews, sessions, logr),
		Discussions: handler.NewDiscussionHandler(discussions, hub, sessions, logr),
		Dashboard:   handler.NewDashboardHandler(dashboard, sessions, logr),
	}
	if cfg.Metrics.Enabled {
		handlers.Metrics = handler.NewMetricsHandler(metrics, checks)
	} else {
		handlers.Metrics = handler.NewMetricsHandler(nil, checks)
	}

	opts := router.Options{
		Sessions: sessions,
		Cookie: middleware.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			MaxAge: int(cfg.Session.TTL.Seconds()),
		},
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Swagger:     cfg.Env != config.EnvProduction,
		Logger:      logr,
	}
	if cfg.Metrics.Enabled {
		opts.Observer = metrics
	}
	engine, err := router.New(handlers, opts)
	if err != nil {
		logr.Sugar().Fatalw("failed to build router", "error", err)
	}

	go runJanitor(ctx, sessions, logr)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: engine, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openSessionStore selects the session backend named by SESSION_STORE.
func openSessionStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (service.SessionRepository, map[string]handler.ReadinessCheck, func(), error) {
	checks := map[string]handler.ReadinessCheck{}
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		repo := repository.NewRedisSessionRepository(client, logr)
		return repo, checks, func() { _ = repo.Close() }, nil
	case config.SessionStorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := repository.NewPostgresSessionRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		checks["postgres"] = db.PingContext
		return repo, checks, func() { _ = db.Close() }, nil
	default:
		return repository.NewMemorySessionRepository(), checks, func() {}, nil
	}
}

// openCache connects the catalog cache when ENABLE_CACHE is set. An unreachable Redis only
// disables caching.
func openCache(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, checks map[string]handler.ReadinessCheck, logr *zap.Logger) (*service.CacheService, func()) {
	if !cfg.Cache.Enabled {
		return service.NewCacheService(nil, metrics, cfg.Cache.TTL, logr), func() {}
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("cache disabled, redis unavailable", zap.Error(err))
		return service.NewCacheService(nil, metrics, cfg.Cache.TTL, logr), func() {}
	}
	if _, exists := checks["redis"]; !exists {
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}
	repo := repository.NewCacheRepository(client, logr)
	return service.NewCacheService(repo, metrics, cfg.Cache.TTL, logr), func() { _ = client.Close() }
}

type purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func runJanitor(ctx context.Context, sessions purger, logr *zap.Logger) {
	ticker := time.NewTicker(sessionJanitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := sessions.PurgeExpired(ctx)
			if err != nil {
				logr.Warn("purge expired sessions failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				logr.Debug("expired sessions purged", zap.Int64("count", purged))
			}
		}
	}
}
