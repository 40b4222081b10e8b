package httpserver

import (
	"context"
	"errors"
	"expvar"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Clark-Hu/movie-space/internal/config"
	"github.com/Clark-Hu/movie-space/internal/dashboard"
	"github.com/Clark-Hu/movie-space/internal/store"
)

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg     config.Config
	backend store.Backend
	dash    *dashboard.Dashboard
	logger  *log.Logger
	router  chi.Router
	httpSrv *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, backend store.Backend, dash *dashboard.Dashboard, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:     cfg,
		backend: backend,
		dash:    dash,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics)
	r.Use(newRateLimiter(cfg, s.respondError).middleware)
	s.router = r

	s.registerRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Method(http.MethodGet, "/debug/vars", expvar.Handler())
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/page", s.handlePage)
		r.Get("/genres", s.handleGenres)
		r.Post("/credential", s.handleCredential)
		r.Post("/settings/open", s.handleOpenSettings)
		r.Post("/settings/close", s.handleCloseSettings)
		r.Post("/view/{view}", s.handleNavigate)
		r.Post("/search/input", s.handleSearchInput)
		r.Post("/search/submit", s.handleSearchSubmit)
		r.Post("/filter", s.handleFilter)
		r.Post("/details/close", s.handleCloseDetails)
		r.Post("/compare/open", s.handleOpenCompare)
		r.Post("/compare/close", s.handleCloseCompare)
		r.Post("/random", s.handleRandom)
		r.Route("/movies/{id}", func(r chi.Router) {
			r.Post("/open", s.handleOpenMovie)
			r.Post("/bookmark", s.handleBookmark)
			r.Post("/compare", s.handleCompare)
		})
	})
}

// Start boots the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.backend.HealthCheck(ctx); err != nil {
		s.logger.Printf("healthz: %v", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
