package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"feed/internal/config"
	"feed/internal/db"
	"feed/internal/repository"
	"feed/internal/router"
	"feed/internal/services"
	"feed/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lcf := zap.NewDevelopmentConfig() // level is switched once the config is read
	lcf.Level.SetLevel(zapcore.DebugLevel)
	lcf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	lcf.DisableCaller = true
	log, _ := lcf.Build()
	defer log.Sync() //nolint:errcheck

	if err := run(ctx, lcf, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Sugar().Fatalf("Server crashed: %s.", err)
	}
}

func run(ctx context.Context, lcf zap.Config, log *zap.Logger) error {
	log.Debug("Loading configuration.")
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("couldn't load configuration: %w", err)
	}
	lcf.Level.SetLevel(cfg.Logging.Level)
	gin.SetMode(cfg.Server.Mode)

	if cfg.InsecureSession() {
		log.Warn("SESSION_SECRET is not set, using the development secret.")
	}

	log.Debug("Connecting to PostgreSQL.")
	gdb, err := db.Open(cfg.Database.URL, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			log.Sugar().Errorf("Couldn't close database: %s.", err)
		}
	}()

	markdown, err := utils.NewMarkdownRenderer(cfg.Render.CacheSize, cfg.Render.CacheTTL)
	if err != nil {
		return fmt.Errorf("couldn't create markdown renderer: %w", err)
	}

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400 * 30, HttpOnly: true, SameSite: http.SameSiteLaxMode})

	engine := router.New(router.Deps{
		Feed:         services.NewFeedService(repository.NewGormRepository(gdb)),
		Markdown:     markdown,
		Log:          log,
		Ping:         pinger(gdb),
		SessionName:  cfg.Session.Name,
		SessionStore: store,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Signal received, shutting down.")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("couldn't shut down server: %w", err)
	}
	return nil
}

func pinger(gdb *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
