package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/daphnetxg/homepage-audit/internal/audit"
	"github.com/daphnetxg/homepage-audit/internal/platform/config"
	"github.com/daphnetxg/homepage-audit/internal/platform/logger"
	"github.com/daphnetxg/homepage-audit/internal/platform/middleware"
	"github.com/daphnetxg/homepage-audit/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	engine := audit.NewEngine(audit.NewHTTPFetcher(cfg.FetchTimeout))
	svc := server.NewService(engine, log)

	transport, err := server.NewTransport(svc, log, cfg.UpgradeURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "templates: %v\n", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler := middleware.RequestID(middleware.Logging(log)(limiter.Limit(mux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("audit server listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
