package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wikigraph/pkg/config"
	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/render/hist"
	"github.com/matzehuels/wikigraph/pkg/stats"
)

var validHistFormats = map[string]bool{"svg": true, "png": true, "pdf": true}

// statsOpts holds the command-line flags for the stats command.
type statsOpts struct {
	histDir    string // directory for histograms; none when empty
	histFormat string // svg, png or pdf
	bins       int    // overrides chart.bins when positive
	noCache    bool
	json       bool // print the report as JSON
}

// statsCommand creates the stats command for link distribution statistics.
func (c *CLI) statsCommand() *cobra.Command {
	opts := statsOpts{histFormat: "svg"}

	cmd := &cobra.Command{
		Use:   "stats <graph-file>",
		Short: "Summarize the link distributions of a graph",
		Long: `Summarize out-links, in-links and in-redirects per article: minimum and
maximum with the number of articles attaining them, the article with the
most, and the mean with sample standard deviation.

Reports are cached by graph file content. With --hist-dir, a histogram of
each distribution is written as well.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return c.runStats(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.histDir, "hist-dir", "", "write histograms of the distributions to this directory")
	cmd.Flags().StringVar(&opts.histFormat, "hist-format", opts.histFormat, "histogram format: svg, png or pdf")
	cmd.Flags().IntVar(&opts.bins, "bins", 0, "histogram bins (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "ignore and do not update the report cache")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")

	return cmd
}

func (o statsOpts) validate() error {
	if !validHistFormats[o.histFormat] {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid histogram format: %s (must be 'svg', 'png' or 'pdf')", o.histFormat)
	}
	if o.bins < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "bins must not be negative, got %d", o.bins)
	}
	return nil
}

func (c *CLI) runStats(ctx context.Context, graphFile string, opts statsOpts) error {
	store, err := newCache(ctx, c.Config.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	lg, err := loadGraph(ctx, graphFile)
	if err != nil {
		return err
	}

	r, cached, err := computeReport(ctx, lg, store, c.Config.Cache.TTL.Duration, opts.histDir != "")
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	printGraphInfo(lg.Graph)
	printReport(r, cached)

	if opts.histDir != "" {
		return c.writeHistograms(r, opts)
	}
	return nil
}

// histogram describes one chart written by --hist-dir.
type histogram struct {
	name    string
	title   string
	xlabel  string
	samples []int
}

func histograms(s stats.Samples) []histogram {
	return []histogram{
		{"out_links", "Links from article", "Number of links", s.OutLinks},
		{"in_links", "Links to article", "Number of links", s.InLinks},
		{"in_redirects", "Redirects to article", "Number of redirects", s.InRedirects},
	}
}

func (c *CLI) writeHistograms(r *stats.Report, opts statsOpts) error {
	chart := c.Config.Chart
	if opts.bins > 0 {
		chart.Bins = opts.bins
	}

	for _, h := range histograms(r.Samples) {
		path := filepath.Join(opts.histDir, h.name+"."+opts.histFormat)
		err := hist.Write(path, h.samples, chartOptions(chart, h.title, h.xlabel, "Number of articles")...)
		if err != nil {
			return fmt.Errorf("write histogram %s: %w", h.name, err)
		}
		printFile(path)
	}
	return nil
}

// chartOptions turns the [chart] configuration into histogram options.
func chartOptions(chart config.Chart, title, xlabel, ylabel string) []hist.Option {
	return []hist.Option{
		hist.WithBins(chart.Bins),
		hist.WithTitle(title),
		hist.WithLabels(xlabel, ylabel),
		hist.WithFont(chart.FontFamily, chart.FontSize, chart.FontWeight),
		hist.WithFill(chart.FaceColor, chart.Alpha),
		hist.WithTransparent(chart.Transparent),
		hist.WithSize(chart.Width, chart.Height),
	}
}
