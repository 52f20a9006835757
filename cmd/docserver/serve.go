package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/docserver"
	"github.com/sagarc03/docserver/config"
	"github.com/sagarc03/docserver/filesystem"
	dochttp "github.com/sagarc03/docserver/http"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	resolver, err := docserver.NewResolver(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("resolve public root: %w", err)
	}

	if err := os.MkdirAll(resolver.Root(), 0o755); err != nil {
		return fmt.Errorf("create public root: %w", err)
	}

	root, err := os.OpenRoot(resolver.Root())
	if err != nil {
		return fmt.Errorf("open public root: %w", err)
	}
	defer func() { _ = root.Close() }()

	service, err := docserver.NewDocumentService(filesystem.NewFileStorage(root))
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	handlerConfig := dochttp.HandlerConfig{
		Credentials:   cfg.Auth.Credentials(),
		Realm:         cfg.Auth.Realm,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		CORS:          cfg.CORS,
	}
	handler := dochttp.NewHandler(&handlerConfig, resolver, service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	server := &http.Server{
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, server, ln, cfg.Server.ShutdownTimeout, resolver.Root())
}

// serve runs server on ln until ctx is done, then shuts it down within
// shutdownTimeout.
func serve(ctx context.Context, server *http.Server, ln net.Listener, shutdownTimeout time.Duration, root string) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP/1.1 server listening", "addr", ln.Addr().String(), "root", root)
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	shutdownCtx := context.Background()
	if shutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, shutdownTimeout)
		defer cancel()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
