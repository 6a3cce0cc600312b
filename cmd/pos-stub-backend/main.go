package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/grocery-pos/internal/config"
	"github.com/jcmexdev/grocery-pos/internal/pkg/cache"
	"github.com/jcmexdev/grocery-pos/internal/pkg/telemetry"
	"github.com/jcmexdev/grocery-pos/internal/stub-backend/httpx"
	"github.com/jcmexdev/grocery-pos/internal/stub-backend/store"
)

const serviceName = "pos-stub-backend"

func main() {
	if err := run(); err != nil {
		slog.Error("stub backend stopped", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	telemetry.InitLogger(os.Stderr, telemetry.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown := telemetry.ShutdownFunc(telemetry.NoopShutdown)
	if cfg.OTelEnabled {
		if shutdown, err = telemetry.SetupTracer(ctx, serviceName); err != nil {
			return fmt.Errorf("initialise tracer: %w", err)
		}
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	replay := cache.New(cfg.RedisAddr, "invoice")
	defer replay.Close()

	handler := httpx.NewHandler(store.New(store.SeedProducts(), store.SeedCustomers()), replay)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(httpx.NewRouter(handler), serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("stub invoicing backend running", "addr", srv.Addr, "redis", cfg.RedisAddr != "")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
