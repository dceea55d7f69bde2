package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the prometheus registry over HTTP. Individual packages
// register their own collectors via promauto at init time.
type Server struct {
	port uint16
	path string
}

func NewServer(port uint16, path string) *Server {
	if path == "" {
		path = "/metrics"
	}
	return &Server{port: port, path: path}
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(s.path, promhttp.Handler())

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			svr.Shutdown(shutdownCtx)
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "metrics server starting", "port", s.port, "path", s.path)

	err := svr.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serving metrics on port %d: %w", s.port, err)
	}
	return nil
}
