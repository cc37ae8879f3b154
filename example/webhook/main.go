package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/tbxark/locationagent/config"
)

func main() {
	conf := flag.String("config", "config.example.yaml", "path to yaml config file")
	flag.Parse()
	cfg, err := config.Load(*conf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, cfg); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	flow, cleanup, err := config.BuildFlow(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := cfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	e := newServer(flow, logger)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Wrap(err, "failed to serve http")
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return errors.WithStack(e.Shutdown(shutdownCtx))
}
