// Package render turns graph query results into images.
//
// # Overview
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Histograms of link-count distributions (in [hist] subpackage)
//   - Node-link diagrams of found paths (in [pathviz] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := hist.Render(samples, hist.WithBins(50))
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [hist]: github.com/matzehuels/wikigraph/pkg/render/hist
// [pathviz]: github.com/matzehuels/wikigraph/pkg/render/pathviz
package render
