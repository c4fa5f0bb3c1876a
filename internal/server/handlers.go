package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wikigraph/pkg/buildinfo"
	"github.com/matzehuels/wikigraph/pkg/cache"
	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/pathfind"
	"github.com/matzehuels/wikigraph/pkg/render/pathviz"
	"github.com/matzehuels/wikigraph/pkg/stats"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

type infoResponse struct {
	Snapshot  string `json:"snapshot"`
	GraphHash string `json:"graph_hash,omitempty"`
	Articles  int    `json:"articles"`
	Links     int    `json:"links"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
}

type articleResponse struct {
	wiki.Article
	OutDegree int `json:"out_degree"`
}

type pathStep struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type pathResponse struct {
	From    string     `json:"from"`
	To      string     `json:"to"`
	Found   bool       `json:"found"`
	Length  *int       `json:"length,omitempty"`
	Path    []pathStep `json:"path,omitempty"`
	Visited int        `json:"visited"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	build := buildinfo.Get()
	writeJSON(w, http.StatusOK, infoResponse{
		Snapshot:  s.snapshot.String(),
		GraphHash: s.hash,
		Articles:  s.graph.PageCount(),
		Links:     s.graph.LinkCount(),
		Version:   build.Version,
		Commit:    build.Commit,
	})
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "article id %q is not an integer", raw))
		return
	}
	if !s.graph.Contains(id) {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeNotFound, "no article with id %d", id))
		return
	}
	s.writeArticle(w, id)
}

func (s *Server) handleArticleByTitle(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if err := apperrors.ValidateTitle(title); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, ok := s.graph.FindByTitle(title)
	if !ok {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeNotFound, "no such article: %q", title))
		return
	}
	s.writeArticle(w, id)
}

func (s *Server) writeArticle(w http.ResponseWriter, id int) {
	writeJSON(w, http.StatusOK, articleResponse{
		Article:   s.graph.Article(id),
		OutDegree: s.graph.OutDegree(id),
	})
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, format := q.Get("from"), q.Get("to"), q.Get("format")
	for _, title := range []string{from, to} {
		if err := apperrors.ValidateTitle(title); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if format != "" && format != "json" && format != "svg" {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid format %q (must be 'json' or 'svg')", format))
		return
	}

	visited := 0
	path, err := pathfind.Find(r.Context(), s.graph, from, to, pathfind.WithVisitor(func(int) { visited++ }))
	resp := pathResponse{From: from, To: to, Visited: visited}

	switch {
	case apperrors.Is(err, apperrors.ErrCodeNoPath):
		s.metrics.PathSearches.WithLabelValues("no_path").Inc()
		writeJSON(w, http.StatusOK, resp)
		return
	case apperrors.Is(err, apperrors.ErrCodeNotFound):
		s.metrics.PathSearches.WithLabelValues("not_found").Inc()
		s.writeError(w, r, err)
		return
	case err != nil:
		s.metrics.PathSearches.WithLabelValues("error").Inc()
		s.writeError(w, r, err)
		return
	}
	s.metrics.PathSearches.WithLabelValues("found").Inc()

	if format == "svg" {
		svg, err := pathviz.RenderSVG(r.Context(), pathviz.ToDOT(s.graph, path, pathviz.Options{}))
		if err != nil {
			s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render path"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
		return
	}

	length := len(path) - 1
	resp.Found = true
	resp.Length = &length
	resp.Path = make([]pathStep, len(path))
	for i, id := range path {
		resp.Path[i] = pathStep{ID: id, Title: s.graph.Title(id)}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	report, err := s.report(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// report returns the statistics report, computing it at most once per
// server. Concurrent requests share one computation, which runs detached
// from any single request so a caller that goes away does not abort it
// for the others.
func (s *Server) report(r *http.Request) (*stats.Report, error) {
	if report := s.cachedReport(); report != nil {
		return report, nil
	}

	ctx := r.Context()
	ch := s.statsFlight.DoChan("stats", func() (any, error) {
		return s.computeReport(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*stats.Report), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Server) cachedReport() *stats.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// computeReport restores the report from the cache or scans the graph,
// and keeps the result for later requests.
func (s *Server) computeReport(ctx context.Context) (*stats.Report, error) {
	if report := s.cachedReport(); report != nil {
		return report, nil
	}

	key := cache.StatsKey(s.hash)
	report, ok := s.readReport(ctx, key)
	if !ok {
		var err error
		report, err = stats.Collect(ctx, s.graph)
		if err != nil {
			return nil, err
		}
		report.Samples = stats.Samples{}
		if s.hash != "" {
			if err := cache.SetJSON(ctx, s.cache, "stats", key, report, s.ttl); err != nil {
				s.logger.Warn("cache write failed", "err", err)
			}
		}
	}

	s.mu.Lock()
	s.stats = report
	s.mu.Unlock()
	return report, nil
}

func (s *Server) readReport(ctx context.Context, key string) (*stats.Report, bool) {
	if s.hash == "" {
		return nil, false
	}
	var cached stats.Report
	ok, err := cache.GetJSON(ctx, s.cache, "stats", key, &cached)
	if err != nil {
		s.logger.Warn("cache read failed", "err", err)
	}
	if !ok {
		return nil, false
	}
	return &cached, true
}
