package pathviz

import (
	"strings"
	"testing"

	"github.com/matzehuels/wikigraph/pkg/wiki"
)

func testGraph(t *testing.T) *wiki.Graph {
	t.Helper()
	g, err := wiki.FromArticles([]wiki.Article{
		{Title: "Python", Size: 100, Links: []int32{1}},
		{Title: "Змея", Size: 50, Redirect: true, Links: []int32{2}},
		{Title: "Боль \"острая\"", Size: 10},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := testGraph(t)
	dot := ToDOT(g, []int{0, 1, 2}, Options{})

	for _, want := range []string{
		"digraph path {",
		`n0 [label="Python", penwidth=2];`,
		`n1 [label="Змея", style="rounded,filled,dashed", fillcolor=lightgrey];`,
		`n2 [label="Боль \"острая\"", penwidth=2];`,
		"n0 -> n1;",
		"n1 -> n2;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "n2 -> ") {
		t.Error("DOT has an edge leaving the target")
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := testGraph(t)
	dot := ToDOT(g, []int{0}, Options{Detailed: true})

	if !strings.Contains(dot, `label="Python\nid: 0\nsize: 100\nlinks: 1"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("single-article path has edges")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", got, want)
	}
}
