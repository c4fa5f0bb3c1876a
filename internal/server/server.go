// Package server exposes a loaded article graph over HTTP.
//
// The graph is immutable, so handlers share it without locking. The
// statistics report is computed on first request, or restored from the
// report cache when one for the same graph file exists.
//
// # Endpoints
//
//	GET /healthz                 liveness
//	GET /v1/info                 graph size, snapshot id, build version
//	GET /v1/articles/{id}        one article by id
//	GET /v1/articles?title=...   one article by title (first match)
//	GET /v1/path?from=...&to=... shortest link path; format=svg for a diagram
//	GET /v1/stats                link distribution statistics
//	GET /metrics                 Prometheus metrics
//
// Errors are JSON objects {"code": ..., "message": ...}. A search that finds
// no path is not an error: it answers 200 with "found": false.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/wikigraph/pkg/cache"
	"github.com/matzehuels/wikigraph/pkg/stats"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// serve context ends.
const shutdownTimeout = 10 * time.Second

// Config holds everything a Server needs.
type Config struct {
	Graph     *wiki.Graph
	GraphHash string // content hash of the graph file, keys the report cache

	Cache    cache.Cache // nil disables report caching
	CacheTTL time.Duration

	Logger  *log.Logger // nil uses log.Default()
	Metrics *Metrics    // nil creates a private set
}

// Server answers graph queries over HTTP.
type Server struct {
	graph    *wiki.Graph
	hash     string
	snapshot uuid.UUID
	cache    cache.Cache
	ttl      time.Duration
	logger   *log.Logger
	metrics  *Metrics
	router   chi.Router

	statsFlight singleflight.Group
	mu          sync.Mutex
	stats       *stats.Report
}

// New builds a server for cfg.Graph.
func New(cfg Config) *Server {
	s := &Server{
		graph:    cfg.Graph,
		hash:     cfg.GraphHash,
		snapshot: snapshotID(cfg.GraphHash),
		cache:    cfg.Cache,
		ttl:      cfg.CacheTTL,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache("no cache configured")
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.metrics.GraphArticles.Set(float64(s.graph.PageCount()))
	s.metrics.GraphLinks.Set(float64(s.graph.LinkCount()))
	s.router = s.routes()
	return s
}

// snapshotID derives a stable id from the graph content hash, so restarts
// over the same file keep the same id.
func snapshotID(hash string) uuid.UUID {
	if hash == "" {
		return uuid.New()
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("wikigraph:graph:"+hash))
}

// Snapshot returns the id of the served graph. It is sent as the ETag of
// every graph response.
func (s *Server) Snapshot() uuid.UUID { return s.snapshot }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.etag)
		r.Get("/info", s.handleInfo)
		r.Get("/articles", s.handleArticleByTitle)
		r.Get("/articles/{id}", s.handleArticle)
		r.Get("/path", s.handlePath)
		r.Get("/stats", s.handleStats)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr, "snapshot", s.snapshot)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// instrument logs each request and records it in the HTTP metrics, labelled
// by route pattern rather than raw path.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		s.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(d.Seconds())
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"took", d.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// etag tags graph responses with the snapshot id and answers conditional
// requests for it.
func (s *Server) etag(next http.Handler) http.Handler {
	tag := `"` + s.snapshot.String() + `"`
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == tag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", tag)
		next.ServeHTTP(w, r)
	})
}
