package pathviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wikigraph/pkg/render"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// Options configures path diagram rendering.
type Options struct {
	// Detailed adds id, size and out-degree below each title.
	Detailed bool
}

// ToDOT converts a path of article ids in g to Graphviz DOT source.
// Ids must be valid in g.
func ToDOT(g *wiki.Graph, path []int, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph path {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, id := range path {
		attrs := []string{fmt.Sprintf("label=%q", label(g, id, opts.Detailed))}
		if g.IsRedirect(id) {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		if i == 0 || i == len(path)-1 {
			attrs = append(attrs, "penwidth=2")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, strings.Join(attrs, ", "))
	}

	if len(path) > 1 {
		buf.WriteString("\n")
		for i := 1; i < len(path); i++ {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", path[i-1], path[i])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(g *wiki.Graph, id int, detailed bool) string {
	title := g.Title(id)
	if !detailed {
		return title
	}
	return fmt.Sprintf("%s\nid: %d\nsize: %d\nlinks: %d", title, id, g.Size(id), g.OutDegree(id))
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one
// sized in pixels from the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// Write renders DOT source and saves it to path; the extension selects
// SVG, PNG or PDF.
func Write(ctx context.Context, path, dot string) error {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return err
	}
	return render.WriteFile(path, svg)
}
