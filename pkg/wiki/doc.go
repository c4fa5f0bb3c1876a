// Package wiki holds the immutable article link graph.
//
// A [Graph] is built once, either by [Load] from the line-oriented text
// format or by [FromArticles], and is never mutated afterwards. All
// accessors are pure reads, so a single *Graph may be shared by any number
// of goroutines without locking.
//
// # Layout
//
// Articles are identified by dense ids in [0, PageCount). Outgoing links
// are stored in compressed sparse row form: a flat links array and an
// offset array of length PageCount+1, where the links of article i are
// links[offset[i]:offset[i+1]]. Link order is the order of the source file
// and is significant: it decides tie-breaks in shortest-path search.
//
// # File Format
//
//	<pages> <links>
//	<title 0>
//	<size 0> <redirect 0> <outdegree 0>
//	<target>
//	...
//	<title 1>
//	...
//
// The links value in the header must equal the sum of all out-degrees.
// Redirect flags are 0 or 1. Any violation is reported as a [*FormatError]
// carrying the 1-based line number, wrapped in the INVALID_FORMAT code.
//
// # Example
//
//	g, err := wiki.LoadFile(ctx, "wiki_small.txt")
//	if err != nil {
//	    return err
//	}
//	id, ok := g.FindByTitle("Python")
//	for _, v := range g.LinksFrom(id) {
//	    fmt.Println(g.Title(int(v)))
//	}
package wiki
