package pathfind

import (
	"context"
	"slices"
	"time"

	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/observability"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// ctxCheckInterval is how many dequeues happen between context checks.
const ctxCheckInterval = 4096

const none = -1

// Option configures a search.
type Option func(*options)

type options struct {
	visit func(id int)
}

// WithVisitor calls fn for every article taken off the queue, in order,
// including the target when it is reached.
func WithVisitor(fn func(id int)) Option {
	return func(o *options) { o.visit = fn }
}

// ResolveStartAndTarget looks up both titles. The first title that does
// not resolve is reported as a NOT_FOUND error wrapping [*NotFoundError].
func ResolveStartAndTarget(g *wiki.Graph, from, to string) (int, int, error) {
	start, ok := g.FindByTitle(from)
	if !ok {
		return none, none, notFound(from)
	}
	target, ok := g.FindByTitle(to)
	if !ok {
		return none, none, notFound(to)
	}
	return start, target, nil
}

// Find resolves both titles and returns the shortest path between them.
func Find(ctx context.Context, g *wiki.Graph, from, to string, opts ...Option) ([]int, error) {
	start, target, err := ResolveStartAndTarget(g, from, to)
	if err != nil {
		return nil, err
	}
	return ShortestPath(ctx, g, start, target, opts...)
}

// ShortestPath returns the ids of one shortest path from start to target,
// both inclusive. It returns a NO_PATH error wrapping [ErrNoPath] when the
// target is unreachable, and ctx.Err() if ctx is cancelled.
func ShortestPath(ctx context.Context, g *wiki.Graph, start, target int, opts ...Option) ([]int, error) {
	if !g.Contains(start) || !g.Contains(target) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "article id out of range [0,%d): %d -> %d", g.PageCount(), start, target)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	began := time.Now()
	path, visited, err := bfs(ctx, g, start, target, o.visit)

	length := -1
	if path != nil {
		length = len(path) - 1
	}
	observability.Query().OnPathSearch(ctx, visited, length, time.Since(began), err)
	return path, err
}

func bfs(ctx context.Context, g *wiki.Graph, start, target int, visit func(int)) ([]int, int, error) {
	m := g.PageCount()
	visited := make([]bool, m)
	pred := make([]int32, m)
	for i := range pred {
		pred[i] = none
	}

	// Each id is enqueued at most once; head indexes the next dequeue.
	queue := make([]int32, 0, 64)
	queue = append(queue, int32(start))
	visited[start] = true

	dequeued := 0
	for head := 0; head < len(queue); head++ {
		if dequeued%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, dequeued, err
			}
		}

		u := int(queue[head])
		dequeued++
		if visit != nil {
			visit(u)
		}
		if u == target {
			break
		}
		for _, v := range g.LinksFrom(u) {
			if !visited[v] {
				visited[v] = true
				pred[v] = int32(u)
				queue = append(queue, v)
			}
		}
	}

	if !visited[target] {
		return nil, dequeued, noPath(start, target)
	}
	return walkBack(pred, target), dequeued, nil
}

// walkBack follows predecessors from target to the start and reverses.
func walkBack(pred []int32, target int) []int {
	var path []int
	for cur := int32(target); cur != none; cur = pred[cur] {
		path = append(path, int(cur))
	}
	slices.Reverse(path)
	return path
}
