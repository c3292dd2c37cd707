package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ent0n29/speechkit/internal/app"
	"github.com/ent0n29/speechkit/internal/config"
)

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP text-to-speech server",
		Example: `speechkit serve --addr :8000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			if strings.TrimSpace(addr) != "" {
				cfg.BindAddr = addr
			}
			return runServer(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides APP_BIND_ADDR)")
	// The server never opens a browser; the flag is accepted so existing launch scripts keep working.
	cmd.Flags().Bool("no-browser", false, "accepted for compatibility; no browser is opened")
	return cmd
}

func runServer(parent context.Context, cfg config.Config, log *zap.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	built, err := app.Build(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := built.Cleanup(); err != nil {
			log.Warn("cleanup failed", zap.Error(err))
		}
	}()

	if built.Engine == nil {
		log.Warn("speech engine unavailable; synthesis endpoints will answer 503",
			zap.String("detail", built.Info.Detail))
	} else {
		log.Info("speech engine ready", zap.String("engine", built.Info.Name))
	}

	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: built.API.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", cfg.BindAddr),
			zap.String("audio_dir", built.Files.Dir()),
			zap.String("history", built.History.Mode()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
		_ = httpServer.Close()
	}

	log.Info("shutdown complete")
	return nil
}
