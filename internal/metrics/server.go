package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agbru/progressrace/internal/logging"
)

const shutdownTimeout = 2 * time.Second

// SnapshotFunc returns a JSON-serializable view of the current progress.
type SnapshotFunc func() any

// Server exposes /metrics, /healthz and /progress while a run is active.
type Server struct {
	router   chi.Router
	logger   logging.Logger
	snapshot SnapshotFunc
}

// NewServer builds the router. snapshot may be nil, in which case /progress
// answers 404.
func NewServer(race *Race, snapshot SnapshotFunc, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop{}
	}
	s := &Server{logger: logger, snapshot: snapshot}

	r := chi.NewRouter()
	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", race.Handler())
	r.Get("/progress", s.progress)
	s.router = r
	return s
}

// Handler returns the router for use with http.Server or httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
// The returned channel yields the listener's bound address once it is ready.
func (s *Server) Serve(ctx context.Context, addr string) (<-chan string, <-chan error) {
	ready := make(chan string, 1)
	done := make(chan error, 1)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		done <- err
		close(done)
		close(ready)
		return ready, done
	}
	ready <- ln.Addr().String()
	close(ready)

	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("metrics server shutdown", logging.Err(err))
		}
	}()
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
		close(done)
	}()
	return ready, done
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) progress(w http.ResponseWriter, _ *http.Request) {
	if s.snapshot == nil {
		http.NotFound(w, nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.snapshot()); err != nil {
		s.logger.Error("encode progress snapshot", err)
	}
}
