package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/matzehuels/wikigraph/pkg/cache"
	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/stats"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// loadedGraph is a graph together with the hash of the file it came from.
type loadedGraph struct {
	*wiki.Graph
	path string
	hash string
}

// loadGraph reads the graph file at path, hashing its content on the way.
func loadGraph(ctx context.Context, path string) (*loadedGraph, error) {
	logger := loggerFromContext(ctx)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidPath, "graph file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer f.Close()

	logger.Debug("loading graph", "path", path)
	prog := newProgress(logger)
	spin := newSpinner(ctx, "Loading graph from "+path)
	spin.Start()

	hr := cache.NewHashReader(f)
	g, err := wiki.Load(ctx, hr)
	if err == nil {
		// Trailing bytes after the last article still belong to the file.
		_, err = io.Copy(io.Discard, hr)
	}
	spin.Stop()
	if err != nil {
		return nil, err
	}

	prog.done(fmt.Sprintf("Loaded graph: %d articles, %d links", g.PageCount(), g.LinkCount()))
	return &loadedGraph{Graph: g, path: path, hash: hr.Sum()}, nil
}

// computeReport returns the statistics report for lg, from store when a
// report for the same file content exists. needSamples forces a fresh
// scan, since cached reports carry no samples.
func computeReport(ctx context.Context, lg *loadedGraph, store cache.Cache, ttl time.Duration, needSamples bool) (*stats.Report, bool, error) {
	logger := loggerFromContext(ctx)
	key := cache.StatsKey(lg.hash)

	if !needSamples {
		var cached stats.Report
		ok, err := cache.GetJSON(ctx, store, "stats", key, &cached)
		if err != nil {
			logger.Warn("cache read failed", "err", err)
		}
		if ok {
			logger.Debug("stats cache hit", "key", key)
			return &cached, true, nil
		}
	}

	prog := newProgress(logger)
	r, err := stats.Collect(ctx, lg.Graph)
	if err != nil {
		return nil, false, err
	}
	prog.done("Collected statistics")

	if err := cache.SetJSON(ctx, store, "stats", key, r, ttl); err != nil {
		logger.Warn("cache write failed", "err", err)
	}
	return r, false, nil
}
