package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcmexdev/grocery-pos/internal/config"
	"github.com/jcmexdev/grocery-pos/internal/pkg/cache"
	"github.com/jcmexdev/grocery-pos/internal/pkg/telemetry"
	"github.com/jcmexdev/grocery-pos/internal/pos/checkoutlog"
	"github.com/jcmexdev/grocery-pos/internal/pos/checkoutlog/sqlite"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/domain/entity"
	"github.com/jcmexdev/grocery-pos/internal/pos/core/ports"
	"github.com/jcmexdev/grocery-pos/internal/pos/infra/cachedsearch"
	"github.com/jcmexdev/grocery-pos/internal/pos/infra/httpapi"
	"github.com/jcmexdev/grocery-pos/internal/pos/session"
	"github.com/jcmexdev/grocery-pos/internal/pos/terminal"
	"github.com/jcmexdev/grocery-pos/internal/pos/view"
)

func main() {
	if err := run(); err != nil {
		slog.Error("pos terminal stopped", "error", err)
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
		if shutdown, err = telemetry.SetupTracer(ctx, cfg.ServiceName); err != nil {
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

	method, err := entity.ParsePaymentMethod(cfg.PaymentMethod)
	if err != nil {
		return fmt.Errorf("POS_PAYMENT_METHOD: %w", err)
	}

	api := httpapi.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	if cfg.Username != "" {
		loginCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
		err := api.Login(loginCtx, cfg.Username, cfg.Password)
		cancel()
		if err != nil {
			return err
		}
	}

	var search ports.ProductSearcher = api
	if cfg.SearchCacheTTL > 0 {
		searchCache := cache.New(cfg.RedisAddr, cfg.ServiceName)
		defer searchCache.Close()
		search = cachedsearch.New(api, searchCache, cfg.SearchCacheTTL)
	}

	var journal checkoutlog.Repository
	if cfg.JournalPath != "" {
		repo, err := sqlite.Open(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("open checkout journal %s: %w", cfg.JournalPath, err)
		}
		defer repo.Close()
		journal = repo
	}

	out := os.Stdout
	sess := session.New(session.Deps{
		Invoices: api,
		Products: api,
		Search:   search,
		Renderer: view.NewCartRenderer(out),
		Receipts: view.NewReceiptPresenter(out, cfg.APIBaseURL),
		Notifier: view.NewNoticeWriter(out),
		Journal:  journal,
	},
		session.WithDebounce(cfg.SearchDebounce),
		session.WithPaymentMethod(method),
		session.WithCatalogView(func(ps []entity.Product) { view.WriteProducts(out, ps) }),
	)
	defer sess.Close()

	loadCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
	if err := sess.ReloadCatalog(loadCtx); err != nil {
		// scan still works against the backend without a local catalog.
		slog.Warn("catalog not loaded", "base_url", cfg.APIBaseURL, "error", err)
	}
	cancel()

	slog.Info("pos terminal ready", "base_url", cfg.APIBaseURL, "journal", cfg.JournalPath != "")
	fmt.Fprintln(out, "Grocery POS. Type help for commands.")
	sess.Render()

	if err := terminal.New(sess, out, cfg.APIBaseURL).Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
