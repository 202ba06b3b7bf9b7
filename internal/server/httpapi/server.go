package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/careerhub/jobportal/internal/logging"
	"github.com/julienschmidt/httprouter"
)

// Server wraps the HTTP listener and route table.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

// NewServer builds the router and the underlying http.Server.
func NewServer(addr string, h *Handler, logger logging.Logger) *Server {
	router := httprouter.New()

	router.POST("/api/v1/user/register", h.Register)
	router.POST("/api/v1/user/login", h.Login)
	router.GET("/api/v1/user/logout", h.Logout)
	router.POST("/api/v1/user/profile/update", h.authenticated(h.UpdateProfile))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger.With("component", "httpserver"),
	}
}

// ListenAndServe blocks until the listener fails or is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.Info(context.Background(), "http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
