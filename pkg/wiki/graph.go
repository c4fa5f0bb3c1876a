package wiki

import (
	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
)

// Graph is the frozen article graph. The zero value is an empty graph.
//
// Accessors taking an id panic when the id is outside [0, PageCount),
// the same way slice indexing does. Use [Graph.Contains] to check ids
// that come from untrusted input.
type Graph struct {
	titles   []string
	sizes    []int
	redirect []bool
	offset   []int   // len(titles)+1; offset[i]..offset[i+1] are i's links
	links    []int32 // len == offset[len(titles)]
	index    map[string]int
}

// Article is the plain description of one node, used by [FromArticles]
// and returned by [Graph.Article].
type Article struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Size     int     `json:"size"`
	Redirect bool    `json:"redirect"`
	Links    []int32 `json:"links,omitempty"`
}

// FromArticles builds a graph from in-memory articles. Article ids are
// taken from slice positions; the ID field is ignored. Link targets must be
// valid positions in articles.
func FromArticles(articles []Article) (*Graph, error) {
	m := len(articles)
	total := 0
	for _, a := range articles {
		total += len(a.Links)
	}

	g := newGraph(m, total)
	for i, a := range articles {
		if a.Size < 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "article %d: negative size %d", i, a.Size)
		}
		g.offset = append(g.offset, len(g.links))
		g.titles = append(g.titles, a.Title)
		g.sizes = append(g.sizes, a.Size)
		g.redirect = append(g.redirect, a.Redirect)
		for _, v := range a.Links {
			if v < 0 || int(v) >= m {
				return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "article %d: link target %d out of range [0,%d)", i, v, m)
			}
			g.links = append(g.links, v)
		}
	}
	g.offset = append(g.offset, len(g.links))
	g.buildIndex()
	return g, nil
}

// newGraph returns an empty graph with capacity reserved for the given
// counts. Callers append one entry per article and a final offset.
func newGraph(pages, links int) *Graph {
	return &Graph{
		titles:   make([]string, 0, pages),
		sizes:    make([]int, 0, pages),
		redirect: make([]bool, 0, pages),
		offset:   make([]int, 0, pages+1),
		links:    make([]int32, 0, links),
	}
}

// buildIndex maps each title to its first occurrence.
func (g *Graph) buildIndex() {
	g.index = make(map[string]int, len(g.titles))
	for i, t := range g.titles {
		if _, dup := g.index[t]; !dup {
			g.index[t] = i
		}
	}
}

// PageCount returns the number of articles.
func (g *Graph) PageCount() int { return len(g.titles) }

// LinkCount returns the total number of links (offset[PageCount]).
func (g *Graph) LinkCount() int { return len(g.links) }

// Contains reports whether id is a valid article id.
func (g *Graph) Contains(id int) bool { return id >= 0 && id < len(g.titles) }

// OutDegree returns the number of links leaving article id.
func (g *Graph) OutDegree(id int) int {
	return g.offset[id+1] - g.offset[id]
}

// LinksFrom returns the targets of article id in source order.
// The returned slice aliases the graph's storage and must not be modified.
func (g *Graph) LinksFrom(id int) []int32 {
	return g.links[g.offset[id]:g.offset[id+1]:g.offset[id+1]]
}

// FindByTitle returns the id of the first article with the given title.
func (g *Graph) FindByTitle(title string) (int, bool) {
	id, ok := g.index[title]
	return id, ok
}

// Title returns the title of article id.
func (g *Graph) Title(id int) string { return g.titles[id] }

// Size returns the source size of article id.
func (g *Graph) Size(id int) int { return g.sizes[id] }

// IsRedirect reports whether article id is a redirect.
func (g *Graph) IsRedirect(id int) bool { return g.redirect[id] }

// Article returns a copy of everything known about article id.
func (g *Graph) Article(id int) Article {
	links := g.LinksFrom(id)
	return Article{
		ID:       id,
		Title:    g.titles[id],
		Size:     g.sizes[id],
		Redirect: g.redirect[id],
		Links:    append([]int32(nil), links...),
	}
}
