package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Clark-Hu/catalog-engine/internal/batchio"
	"github.com/Clark-Hu/catalog-engine/internal/config"
	"github.com/Clark-Hu/catalog-engine/internal/metrics"
	"github.com/Clark-Hu/catalog-engine/internal/repository"
)

// BatchStore persists named batch fixtures. *repository.BatchesRepository
// satisfies it.
type BatchStore interface {
	Save(ctx context.Context, name string, in batchio.Input) error
	Load(ctx context.Context, name string) (batchio.Input, error)
	List(ctx context.Context) ([]repository.BatchSummary, error)
	Delete(ctx context.Context, name string) error
}

// HealthChecker reports backing-store reachability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg     config.Config
	health  HealthChecker
	batches BatchStore
	logger  zerolog.Logger
	router  chi.Router
	httpSrv *http.Server
}

// New constructs the HTTP server with base middleware and routes. health and
// batches may be nil, in which case the server runs stateless.
func New(cfg config.Config, health HealthChecker, batches BatchStore, logger zerolog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	s := &Server{
		cfg:     cfg,
		health:  health,
		batches: batches,
		logger:  logger.With().Str("component", "http").Logger(),
		router:  r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Post("/evaluations", s.handleEvaluate)
	s.router.Route("/batches", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.handleListBatches)
		r.Route("/{name}", func(r chi.Router) {
			r.Put("/", s.handlePutBatch)
			r.Delete("/", s.handleDeleteBatch)
			r.Post("/evaluations", s.handleEvaluateBatch)
		})
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
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
	mode := "stateless"
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.HealthCheck(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("health check failed")
			s.respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Store unreachable")
			return
		}
		mode = "store"
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "mode": mode})
}

func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.batches == nil {
			s.respondError(w, http.StatusServiceUnavailable, "STORE_DISABLED", "Batch store is not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request and counts it under its route
// pattern.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routeLabel(r)
			metrics.ObserveRequest(route, status)
			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("route", route).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}

// unmatchedRoute is the route label for requests no pattern matched.
const unmatchedRoute = "unmatched"

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return unmatchedRoute
}
