package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/specialistvlad/dagcheck/internal/realtime"
	"github.com/specialistvlad/dagcheck/internal/server"
)

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully. If ready is non-nil it receives the bound address once the
// listener is open.
func (a *App) Serve(ctx context.Context, ready chan<- net.Addr) error {
	ctx = a.withLogger(ctx)
	a.logger.Debug("App.Serve method started.")

	opts := server.Options{
		AllowedOrigins: a.config.AllowedOrigins,
		MaxBodyBytes:   a.config.MaxBodyBytes,
	}

	var rt *realtime.Server
	if a.config.RealtimeEnabled {
		rt = realtime.New(ctx, a.config.AllowedOrigins)
		opts.Realtime = rt.Handler()
		a.logger.Debug("Socket.IO transport enabled.")
	}

	httpServer := &http.Server{
		Handler:      server.NewHandler(a.logger, opts),
		ReadTimeout:  a.config.ReadTimeout,
		WriteTimeout: a.config.WriteTimeout,
	}

	listener, err := net.Listen("tcp", a.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.config.ListenAddr, err)
	}
	if ready != nil {
		ready <- listener.Addr()
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("🚀 Server starting", "address", listener.Addr().String(), "realtime", rt != nil)
		// Serve returns http.ErrServerClosed on graceful shutdown.
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed unexpectedly: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("🏁 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.config.ShutdownTimeout)
	defer cancel()

	if rt != nil {
		rt.Close()
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server shutdown failed", "error", err)
		return err
	}

	a.logger.Debug("Server shut down gracefully.")
	return nil
}
