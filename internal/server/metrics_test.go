package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/wikigraph/pkg/observability"
)

func TestMetricsHooks(t *testing.T) {
	m := NewMetrics()
	m.Install()
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	observability.Graph().OnLoadComplete(ctx, 7, 11, time.Second, nil)
	observability.Graph().OnLoadComplete(ctx, 99, 99, time.Second, errors.New("bad file"))
	observability.Cache().OnCacheHit(ctx, "stats")
	observability.Cache().OnCacheMiss(ctx, "stats")
	observability.Cache().OnCacheMiss(ctx, "stats")
	observability.Query().OnPathSearch(ctx, 10, 3, time.Millisecond, nil)
	observability.Query().OnPathSearch(ctx, 10, -1, time.Millisecond, nil)

	if got := testutil.ToFloat64(m.GraphArticles); got != 7 {
		t.Errorf("articles gauge = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.GraphLinks); got != 11 {
		t.Errorf("links gauge = %v, want 11", got)
	}
	if got := testutil.ToFloat64(m.CacheEvents.WithLabelValues("stats", "hit")); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CacheEvents.WithLabelValues("stats", "miss")); got != 2 {
		t.Errorf("cache misses = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.PathVisited); got != 1 {
		t.Errorf("visited histogram series = %d, want 1", got)
	}
}
