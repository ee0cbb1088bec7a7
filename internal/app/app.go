package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/contactdesk/internal/data/db"
	"github.com/yungbote/contactdesk/internal/http"
	"github.com/yungbote/contactdesk/internal/http/flash"
	"github.com/yungbote/contactdesk/internal/observability"
	"github.com/yungbote/contactdesk/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Store    *db.Store
	Cfg      Config
	Repos    Repos
	Services Services
	Server   *http.Server
	Metrics  *observability.Metrics

	otelShutdown func(context.Context) error
}

// New wires the whole application from cfg. The schema is migrated before
// anything is served.
func New(cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.SecretKey == defaultSecretKey && isProd(cfg.LogMode) {
		log.Warn("SECRET_KEY is the built-in default; flash cookies can be forged")
	}
	if isProd(cfg.LogMode) {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(context.Background(), log, cfg.Otel)

	store, err := db.Open(cfg.Database, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := store.AutoMigrate(); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	reposet := wireRepos(store.DB(), log)
	serviceset := wireServices(store, log, reposet)
	codec := flash.NewCodec(cfg.SecretKey, cfg.FlashTTL)
	metrics := observability.NewMetrics(cfg.MetricsEnabled)
	handlerset := wireHandlers(log, store, serviceset, codec)
	server, err := wireServer(cfg, log, handlerset, codec, metrics)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, err
	}

	return &App{
		Log:          log,
		Store:        store,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		Metrics:      metrics,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Metrics.StartStoreCollector(ctx, a.Log, a.Store.DB(), a.Cfg.MetricsInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Server.Addr())
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		a.Log.Info("Shutting down HTTP server")
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("Closing store failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

func isProd(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		return true
	}
	return false
}
