package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"example.com/notely-web/internal/api"
	"example.com/notely-web/internal/lib/logger/sl"
	"example.com/notely-web/internal/state"
	"example.com/notely-web/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	log.Info("starting notely", slog.String("env", cfg.Env), slog.String("api", cfg.APIBaseURL))
	log.Debug("debug log enabled")

	upstream := api.New(cfg.APIBaseURL, api.WithLogger(log))
	registry := state.NewRegistry(log.With(slog.String("component", "state")), state.Options{
		IdleTTL:       cfg.ScopeIdleTTL,
		ToastDuration: cfg.ToastDuration,
		StaleTime:     cfg.QueryStaleTime,
		RetryHref:     web.RetryHref,
	})
	if cfg.ScopeIdleTTL > 0 {
		go registry.Run(ctx, cfg.ScopeIdleTTL/2)
	}

	server, err := web.NewServer(cfg, log, upstream, registry)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("address", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", sl.Err(err))
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", sl.Err(err))
		return err
	}
	log.Info("stopped")
	return nil
}
