package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/npillmayer/chomsky/cnf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxBodyBytes bounds request bodies unless configured otherwise.
const DefaultMaxBodyBytes = 1 << 20

// Server is the HTTP front end of a CNF converter. Create one with New.
type Server struct {
	converter   *cnf.Converter
	maxBody     int64
	router      *mux.Router
	metrics     *metrics
	conversions atomic.Int64
	failures    atomic.Int64
}

// Option configures a server.
type Option func(s *Server)

// WithMaxBodyBytes bounds the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a server for a converter. If converter is nil, a converter with
// default settings is used.
func New(converter *cnf.Converter, opts ...Option) *Server {
	if converter == nil {
		converter = cnf.NewConverter()
	}
	s := &Server{
		converter: converter,
		maxBody:   DefaultMaxBodyBytes,
		metrics:   newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	router := mux.NewRouter()
	router.Use(traceRequests)
	router.HandleFunc("/convert", s.handleConvert).Methods(http.MethodPost)
	router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	// HTTP path for prometheus.
	router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet)
	s.router = router
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on addr and serves requests until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves requests arriving at ln until ctx is done, then shuts down
// gracefully. It returns nil after a regular shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		tracer().Infof("serving on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		tracer().Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

// --- Request tracing -------------------------------------------------------

type ctxKey int

const requestIDKey ctxKey = 0

// traceRequests assigns an ID to every request. IDs supplied by clients are
// kept if they are valid UUIDs.
func traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		tracer().P("request", id).Debugf("%s %s", req.Method, req.URL.Path)
		ctx := context.WithValue(req.Context(), requestIDKey, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requestTracer returns a tracer carrying the ID of req.
func requestTracer(req *http.Request) tracing.Trace {
	id, _ := req.Context().Value(requestIDKey).(string)
	return tracer().P("request", id)
}
