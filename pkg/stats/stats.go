package stats

import (
	"context"
	"time"

	mstats "github.com/montanaflynn/stats"

	"github.com/matzehuels/wikigraph/pkg/observability"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// ctxCheckInterval is how many articles are scanned between context checks.
const ctxCheckInterval = 4096

// Summary describes one distribution.
type Summary struct {
	Min      int     `json:"min"`
	Max      int     `json:"max"`
	MinCount int     `json:"min_count"` // articles attaining Min
	MaxCount int     `json:"max_count"` // articles attaining Max
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stddev"`
	MaxID    int     `json:"max_id"` // first article attaining Max, -1 if none
	MaxTitle string  `json:"max_title,omitempty"`
}

// Samples holds the raw per-article values, indexed by article id.
type Samples struct {
	OutLinks    []int
	InLinks     []int
	InRedirects []int
}

// Report is the result of [Collect].
type Report struct {
	Pages           int     `json:"pages"`
	Links           int     `json:"links"`
	RedirectPages   int     `json:"redirect_pages"`
	RedirectPercent float64 `json:"redirect_percent"`
	OutLinks        Summary `json:"out_links"`
	InLinks         Summary `json:"in_links"`
	InRedirects     Summary `json:"in_redirects"`

	// Samples is not serialized; a report restored from a cache has none.
	Samples Samples `json:"-"`
}

// Collect scans g once and summarizes its link distributions. It only
// fails if ctx is cancelled.
func Collect(ctx context.Context, g *wiki.Graph) (*Report, error) {
	start := time.Now()
	r, err := collect(ctx, g)
	observability.Query().OnStatsComplete(ctx, g.PageCount(), time.Since(start), err)
	return r, err
}

func collect(ctx context.Context, g *wiki.Graph) (*Report, error) {
	m := g.PageCount()
	s := Samples{
		OutLinks:    make([]int, m),
		InLinks:     make([]int, m),
		InRedirects: make([]int, m),
	}

	redirects := 0
	for u := 0; u < m; u++ {
		if u%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		s.OutLinks[u] = g.OutDegree(u)
		in := s.InLinks
		if g.IsRedirect(u) {
			redirects++
			in = s.InRedirects
		}
		for _, v := range g.LinksFrom(u) {
			in[v]++
		}
	}

	r := &Report{
		Pages:         m,
		Links:         g.LinkCount(),
		RedirectPages: redirects,
		OutLinks:      Summarize(s.OutLinks),
		InLinks:       Summarize(s.InLinks),
		InRedirects:   Summarize(s.InRedirects),
		Samples:       s,
	}
	if m > 0 {
		r.RedirectPercent = float64(redirects) / float64(m) * 100
	}
	for _, sum := range []*Summary{&r.OutLinks, &r.InLinks, &r.InRedirects} {
		if sum.MaxID >= 0 {
			sum.MaxTitle = g.Title(sum.MaxID)
		}
	}
	return r, nil
}

// Summarize reduces a sample sequence. MaxTitle is left empty; MaxID is the
// first index attaining the maximum, or -1 for an empty sequence.
func Summarize(samples []int) Summary {
	if len(samples) == 0 {
		return Summary{MaxID: -1}
	}

	sum := Summary{Min: samples[0], Max: samples[0], MaxID: 0}
	for i, x := range samples {
		switch {
		case x < sum.Min:
			sum.Min, sum.MinCount = x, 1
		case x == sum.Min:
			sum.MinCount++
		}
		switch {
		case x > sum.Max:
			sum.Max, sum.MaxCount, sum.MaxID = x, 1, i
		case x == sum.Max:
			sum.MaxCount++
		}
	}

	data := mstats.LoadRawData(samples)
	sum.Mean, _ = mstats.Mean(data)
	if len(samples) > 1 {
		sum.StdDev, _ = mstats.StandardDeviationSample(data)
	}
	return sum
}
