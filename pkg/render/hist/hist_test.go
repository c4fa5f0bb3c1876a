package hist

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestBin(t *testing.T) {
	tests := []struct {
		name       string
		samples    []int
		bins       int
		wantEdges  []float64
		wantCounts []int
	}{
		{
			name:       "last bin closed",
			samples:    []int{1, 2, 3, 4},
			bins:       3,
			wantEdges:  []float64{1, 2, 3, 4},
			wantCounts: []int{1, 1, 2},
		},
		{
			name:       "constant samples widen range",
			samples:    []int{5, 5},
			bins:       2,
			wantEdges:  []float64{4.5, 5, 5.5},
			wantCounts: []int{0, 2},
		},
		{
			name:       "empty uses unit range",
			samples:    nil,
			bins:       2,
			wantEdges:  []float64{0, 0.5, 1},
			wantCounts: []int{0, 0},
		},
		{
			name:       "zero bins means one",
			samples:    []int{0, 10},
			bins:       0,
			wantEdges:  []float64{0, 10},
			wantCounts: []int{2},
		},
		{
			name:       "unsorted input",
			samples:    []int{8, 0, 4, 0},
			bins:       2,
			wantEdges:  []float64{0, 4, 8},
			wantCounts: []int{2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges, counts := Bin(tt.samples, tt.bins)
			if !slices.Equal(edges, tt.wantEdges) {
				t.Errorf("edges = %v, want %v", edges, tt.wantEdges)
			}
			if !slices.Equal(counts, tt.wantCounts) {
				t.Errorf("counts = %v, want %v", counts, tt.wantCounts)
			}
		})
	}
}

func TestRender(t *testing.T) {
	svg := string(Render([]int{1, 2, 3, 4},
		WithBins(3),
		WithTitle("Out <links>"),
		WithLabels("links", "articles"),
		WithFill("red", 0.25),
		WithSize(400, 300),
	))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if got := strings.Count(svg, `class="bar"`); got != 3 {
		t.Errorf("bars = %d, want 3", got)
	}
	for _, want := range []string{
		`width="400" height="300"`,
		`Out &lt;links&gt;`,
		`>links</text>`,
		`>articles</text>`,
		`fill="red" fill-opacity="0.25"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(svg, `fill="white"`) {
		t.Error("transparent chart has a background")
	}
}

func TestRenderBackground(t *testing.T) {
	svg := string(Render([]int{1}, WithTransparent(false)))
	if !strings.Contains(svg, `fill="white"`) {
		t.Error("opaque chart has no background")
	}
}

func TestRenderSkipsEmptyBins(t *testing.T) {
	svg := string(Render([]int{0, 0, 100}, WithBins(10)))
	if got := strings.Count(svg, `class="bar"`); got != 2 {
		t.Errorf("bars = %d, want 2", got)
	}
}

func TestNiceCeil(t *testing.T) {
	tests := []struct {
		in   int
		want float64
	}{
		{0, 1},
		{1, 1},
		{3, 5},
		{7, 10},
		{21, 25},
		{180, 200},
	}
	for _, tt := range tests {
		if got := niceCeil(tt.in); got != tt.want {
			t.Errorf("niceCeil(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out_links.svg")
	if err := Write(path, []int{1, 2, 2, 3}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `class="bar"`) {
		t.Error("written chart has no bars")
	}
}
