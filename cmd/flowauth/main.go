package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flowauth/internal/authn/catalog"
	"flowauth/internal/authn/flow"
	"flowauth/internal/authn/metrics"
	"flowauth/internal/authn/redirect"
	"flowauth/internal/authn/service"
	"flowauth/internal/authn/token"
	"flowauth/internal/authn/transport"
	"flowauth/internal/platform/config"
	"flowauth/internal/platform/logger"
)

// main wires high-level dependencies and runs the interactive login prompt.
// Flow logic lives in the internal authn packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New()

	log.Info("initializing flowauth",
		"base_url", cfg.BaseURL,
		"client_id", cfg.ClientID,
	)

	collectors := metrics.New()

	client := transport.New(cfg, transport.WithLogger(log))
	resolver := catalog.New(client, catalog.WithLogger(log))
	tracker := flow.New(resolver, flow.WithLogger(log))

	var store token.Store = token.NewMemoryStore()
	if cfg.TokenFile != "" {
		store = token.NewFileStore(cfg.TokenFile)
	}
	exchanger := token.NewExchanger(cfg, token.ExchangerWithLogger(log))
	tokens := token.NewManager(store, exchanger,
		token.ManagerWithLogger(log),
		token.ManagerWithMetrics(collectors),
	)

	correlator := redirect.New(
		redirect.WithLogger(log),
		redirect.WithLauncher(browserLauncher(log)),
		redirect.WithTimeout(5*time.Minute),
	)
	listener := redirect.NewListener(correlator, cfg.CallbackAddr,
		redirect.ListenerWithLogger(log))
	if err := listener.Start(); err != nil {
		log.Error("failed to start redirect listener", "error", err)
		os.Exit(1)
	}
	log.Info("redirect callback ready", "url", listener.CallbackURL())

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		router := chi.NewRouter()
		router.Use(middleware.Recoverer)
		router.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server stopped", "error", err)
			}
		}()
		log.Info("metrics server started", "addr", cfg.MetricsAddr)
	}

	session := service.New(client, tracker, tokens, correlator,
		service.WithLogger(log),
		service.WithMetrics(collectors),
	)

	// SIGINT cancels the prompt and any suspended redirect wait.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	promptErr := runPrompt(ctx, session, os.Stdin, os.Stdout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := listener.Shutdown(shutdownCtx); err != nil {
		log.Error("redirect listener shutdown failed", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics server shutdown failed", "error", err)
		}
	}

	if promptErr != nil && promptErr != context.Canceled {
		log.Error("prompt ended with error", "error", promptErr)
		os.Exit(1)
	}
	log.Info("flowauth stopped")
}
