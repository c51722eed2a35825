// internal/web/server.go
// Package web serves the APE metrics dashboard, its charts and its downloads.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mitsiuTrimble/CV-dashboard/internal/ape"
	"github.com/mitsiuTrimble/CV-dashboard/internal/appconfig"
	"github.com/mitsiuTrimble/CV-dashboard/internal/logging"
)

// Server is the dashboard HTTP server. The results file is read again on every
// request so the page always reflects the file on disk.
type Server struct {
	cfg    appconfig.Config
	router chi.Router
	load   func(path string) (ape.Table, error)
}

// New builds a server for cfg.
func New(cfg appconfig.Config) *Server {
	s := &Server{cfg: cfg, load: ape.Load}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.handleDashboard)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/download", func(r chi.Router) {
		r.Get("/csv", s.handleCSV)
		r.Get("/plots.zip", s.handlePlotsZip)
	})
	r.Get("/previews/{name}", s.handlePreview)
	r.Route("/charts", func(r chi.Router) {
		r.Get("/bar/{metric}.png", s.handleBarChart)
		r.Get("/box/{metric}.png", s.handleBoxChart)
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/records", s.handleRecords)
		r.Get("/summary", s.handleSummary)
	})

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("[SERVE] listening on http://%s (data=%s plots=%s previews=%s)",
			srv.Addr, s.cfg.ResultsPath(), s.cfg.PlotsDirectory(), s.cfg.PreviewsDirectory())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.LogEvent("[SERVE] shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// table loads the results file, answering 500 itself on failure.
func (s *Server) table(w http.ResponseWriter) (ape.Table, bool) {
	t, err := s.load(s.cfg.ResultsPath())
	if err != nil {
		logging.LogEvent("[SERVE] %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return t, true
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logging.LogRequest(r.Method, r.URL.Path, status, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
