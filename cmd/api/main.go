package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/offerdesk/offerdesk/internal/adapters/http"
	"github.com/offerdesk/offerdesk/internal/bootstrap"
	"github.com/offerdesk/offerdesk/internal/config"
	"github.com/offerdesk/offerdesk/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("offerdesk-api", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	go app.Sweeper.RunPeriodic(ctx, cfg.SweepInterval)

	router := httpadapter.NewRouter(
		app.Customers,
		app.Offers,
		app.Comments,
		app.Files,
		app.Search,
		httpadapter.NewGate(httpadapter.DefaultRoleResolver()),
		app.AssetsDir,
		app.Metrics.Handler(),
	)
	handler := app.Metrics.Middleware(
		httpadapter.RateLimitMiddleware(cfg.APIRateLimitRPS, cfg.APIRateLimitBurst)(router.Handler()),
	)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort, "store_driver", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_error", "error", err)
	}
}
