// Package pathviz renders a found article path as a node-link diagram.
//
// Each article on the path becomes a box labelled with its title; the links
// followed by the search connect them left to right. Redirect articles are
// drawn dashed.
//
//	dot := pathviz.ToDOT(g, path, pathviz.Options{Detailed: true})
//	svg, err := pathviz.RenderSVG(ctx, dot)
//
// [RenderSVG] uses [github.com/goccy/go-graphviz] in-process; PNG and PDF go
// through [render.ToPNG] and [render.ToPDF] and need librsvg.
package pathviz
