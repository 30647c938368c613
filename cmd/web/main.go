package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/datatalks/config"
	"github.com/spacesedan/datatalks/internal/clients"
	"github.com/spacesedan/datatalks/internal/logging"
	"github.com/spacesedan/datatalks/internal/monitoring"
	"github.com/spacesedan/datatalks/internal/session"
	"github.com/spacesedan/datatalks/internal/web"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	webCfg := config.GetWebConfig()
	analyzerCfg := config.GetAnalyzerConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := newStore(webCfg)
	defer closeStore()

	analyzer := clients.NewAnalyzerClient(analyzerCfg)
	manager := session.NewManager(store, analyzer)

	analyzerHealthy := &atomic.Bool{}
	analyzerHealthy.Store(true)
	go monitoring.MonitorAnalyzerHealth(ctx, analyzer, analyzerHealthy, analyzerCfg.HealthInterval)

	srv := &http.Server{
		Addr:              webCfg.Addr,
		Handler:           web.NewServer(manager, analyzerHealthy, webCfg).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("[Main] Web server listening",
			slog.String("addr", webCfg.Addr),
			slog.String("env", env),
			slog.String("session_store", webCfg.SessionStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Web server failed",
				slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down web server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), analyzerCfg.Timeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed",
			slog.String("error", err.Error()))
	}
}

func newStore(cfg config.WebConfig) (session.Store, func()) {
	switch cfg.SessionStore {
	case config.SESSION_STORE_VALKEY:
		for {
			vc, err := clients.NewValkeyClient(config.GetValkeyConfig())
			if err == nil {
				return session.NewValkeyStore(vc, cfg.SessionTTL), vc.Close
			}

			slog.Warn("Valkey init failed, retrying...", slog.String("error", err.Error()))
			time.Sleep(5 * time.Second)
		}
	case config.SESSION_STORE_MEMORY:
	default:
		slog.Warn("[Main] Unknown session store, falling back to memory",
			slog.String("session_store", cfg.SessionStore))
	}
	return session.NewMemoryStore(cfg.SessionTTL), func() {}
}
