package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/adresse-fr/pkg/api"
	"github.com/hazyhaar/adresse-fr/pkg/pipeline"
)

// swapHandler serves the latest router; SIGHUP rebuilds it.
type swapHandler struct {
	h atomic.Pointer[http.Handler]
}

func (s *swapHandler) store(h http.Handler) { s.h.Store(&h) }

func (s *swapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	(*s.h.Load()).ServeHTTP(w, r)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	addr := fs.String("addr", "", "listen address (overrides config)")
	fs.Parse(args)

	cfg, logger := loadConfig(*cfgPath)
	if *addr != "" {
		cfg.Addr = *addr
	}

	p := buildPipeline(cfg, logger)
	router := &swapHandler{}
	router.store(api.NewRouter(p, logger, cfg.RateLimit))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// SIGHUP: reload config and tables.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading pipeline")
			next, p, err := reload(*cfgPath, logger)
			if err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			router.store(api.NewRouter(p, logger, next.RateLimit))
			logger.Info("pipeline reloaded",
				"tables", p.Rules().Tables().Version, "rate_limit", next.RateLimit)
		}
	}()

	go func() {
		logger.Info("adresse listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

// reload rebuilds the pipeline from path. Errors leave the running
// pipeline in place.
func reload(path string, logger *slog.Logger) (config, *pipeline.Pipeline, error) {
	cfg, _, err := readConfig(path)
	if err != nil {
		return cfg, nil, err
	}
	p, err := pipeline.New(cfg.pipelineConfig(), logger)
	return cfg, p, err
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	// stdout carries the protocol; logs stay on stderr.
	cfg, logger := loadConfig(*cfgPath)
	p := buildPipeline(cfg, logger)

	srv := server.NewMCPServer("adresse", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, p, logger)

	logger.Info("serving MCP on stdio")
	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server", "error", err)
		os.Exit(1)
	}
}
