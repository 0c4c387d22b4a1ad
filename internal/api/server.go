package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ignite/mailroom/internal/pkg/logger"
)

// Server wraps http.Server with sane timeouts and graceful shutdown.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second, // mail relay calls are blocking
			IdleTimeout:  120 * time.Second,
		},
		log: log,
	}
}

// Start blocks serving requests until Shutdown is called or the listener
// fails.
func (s *Server) Start() error {
	s.log.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
