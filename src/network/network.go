package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"elevbank/src/elev"
	"elevbank/src/types"
)

const shutdownTimeout = 5 * time.Second

// Bank is the part of the elevator system exposed over HTTP.
type Bank interface {
	Submit(request types.Request) (elev.Assignment, bool, error)
	Status() ([]types.Elevator, error)
	PendingFloors() []int
}

// NewHandler routes the /api/elevator endpoints to bank.
func NewHandler(bank Bank) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/elevator/status", statusHandler(bank))
	mux.HandleFunc("POST /api/elevator/request", requestHandler(bank))
	mux.HandleFunc("GET /api/elevator/pending-floors", pendingFloorsHandler(bank))
	return mux
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, bank Bank) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return serveListener(ctx, listener, bank)
}

func serveListener(ctx context.Context, listener net.Listener, bank Bank) error {
	server := &http.Server{
		Handler:           NewHandler(bank),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", listener.Addr().String())
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}
