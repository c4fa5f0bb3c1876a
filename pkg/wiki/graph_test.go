package wiki

import (
	"testing"

	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
)

func TestFindByTitleFirstMatch(t *testing.T) {
	g, err := FromArticles([]Article{
		{Title: "Dup"},
		{Title: "Other"},
		{Title: "Dup"},
	})
	if err != nil {
		t.Fatalf("FromArticles: %v", err)
	}

	id, ok := g.FindByTitle("Dup")
	if !ok || id != 0 {
		t.Errorf("FindByTitle(Dup) = %d, %v, want 0, true", id, ok)
	}
	if _, ok := g.FindByTitle("Missing"); ok {
		t.Error("FindByTitle(Missing) should not be found")
	}
}

func TestFromArticles(t *testing.T) {
	g, err := FromArticles([]Article{
		{Title: "A", Size: 10, Links: []int32{1, 2}},
		{Title: "B", Redirect: true, Links: []int32{2}},
		{Title: "C"},
	})
	if err != nil {
		t.Fatalf("FromArticles: %v", err)
	}

	if g.PageCount() != 3 || g.LinkCount() != 3 {
		t.Fatalf("got %d pages, %d links, want 3, 3", g.PageCount(), g.LinkCount())
	}
	if !g.IsRedirect(1) {
		t.Error("IsRedirect(1) = false, want true")
	}
	if got := g.LinksFrom(1); len(got) != 1 || got[0] != 2 {
		t.Errorf("LinksFrom(1) = %v, want [2]", got)
	}
}

func TestFromArticlesInvalid(t *testing.T) {
	tests := []struct {
		name     string
		articles []Article
	}{
		{"target too large", []Article{{Title: "A", Links: []int32{1}}}},
		{"negative target", []Article{{Title: "A", Links: []int32{-1}}}},
		{"negative size", []Article{{Title: "A", Size: -5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromArticles(tt.articles)
			if err == nil {
				t.Fatal("expected error")
			}
			if g != nil {
				t.Error("graph returned alongside error")
			}
			if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestLinksFromCannotGrowIntoNeighbour(t *testing.T) {
	g := loadString(t, diamond)

	links := g.LinksFrom(0)
	_ = append(links, 3)

	if got := g.LinksFrom(1); got[0] != 2 {
		t.Errorf("append through LinksFrom(0) clobbered article 1: %v", got)
	}
}

func TestArticleCopiesLinks(t *testing.T) {
	g := loadString(t, diamond)

	a := g.Article(0)
	if a.ID != 0 || a.Title != "A" || a.Size != 100 || a.Redirect {
		t.Errorf("Article(0) = %+v", a)
	}
	a.Links[0] = 3
	if g.LinksFrom(0)[0] != 1 {
		t.Error("Article links alias graph storage")
	}
}

func TestContains(t *testing.T) {
	g := loadString(t, diamond)
	for _, tt := range []struct {
		id   int
		want bool
	}{{-1, false}, {0, true}, {3, true}, {4, false}} {
		if got := g.Contains(tt.id); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestZeroGraph(t *testing.T) {
	var g Graph
	if g.PageCount() != 0 || g.LinkCount() != 0 {
		t.Error("zero Graph should be empty")
	}
	if _, ok := g.FindByTitle("A"); ok {
		t.Error("zero Graph should not find titles")
	}
}
