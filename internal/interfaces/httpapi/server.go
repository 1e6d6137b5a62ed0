package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/errs"
	"devpulse/internal/usecase/dashboard"
)

// Server exposes the dashboard data contract over HTTP.
type Server struct {
	dashboards *dashboard.Service
	httpServer *http.Server
}

func NewServer(addr string, dashboards *dashboard.Service) *Server {
	s := &Server{dashboards: dashboards}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Route("/api", func(r chi.Router) {
		r.Get("/contributors/{contributorID}/dashboard", s.handleContributorDashboard)
		r.Get("/org/dashboard", s.handleOrgDashboard)
	})

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe(ctx context.Context) error {
	logging.Info(ctx, "http api listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errs.Wrap(err, "serve http api")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
