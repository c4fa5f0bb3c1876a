package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/stats"
)

// testGraphFile is A->B, A->C, B->C, C->D and the redirect E->D.
const testGraphFile = `5 5
A
10 0 2
1
2
B
20 0 1
2
C
30 0 1
3
D
40 0 0
E
5 1 1
3
`

// setup writes the test graph, points the caches at a temp dir and
// returns the graph path.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	path := filepath.Join(dir, "wiki.txt")
	if err := os.WriteFile(path, []byte(testGraphFile), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	old := out
	out = &buf
	t.Cleanup(func() { out = old })

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.Execute()
	return buf.String(), err
}

func TestPathCommand(t *testing.T) {
	graph := setup(t)

	got, err := runCLI(t, "path", graph, "--from", "A", "--to", "D")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if !strings.Contains(got, "Found path of length 2") {
		t.Errorf("output lacks path length:\n%s", got)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	tail := strings.Join(lines[len(lines)-3:], "|")
	for _, title := range []string{"A", "C", "D"} {
		if !strings.Contains(tail, title) {
			t.Errorf("path lines %q lack %s", tail, title)
		}
	}
}

func TestPathCommandNoPath(t *testing.T) {
	graph := setup(t)

	got, err := runCLI(t, "path", graph, "--from", "D", "--to", "A")
	if err != nil {
		t.Fatalf("no path must not be an error: %v", err)
	}
	if !strings.Contains(got, `No path from "D" to "A"`) {
		t.Errorf("output lacks no-path notice:\n%s", got)
	}
}

func TestPathCommandErrors(t *testing.T) {
	graph := setup(t)

	tests := []struct {
		name string
		args []string
		code apperrors.Code
	}{
		{"unknown title", []string{"path", graph, "--from", "A", "--to", "Z"}, apperrors.ErrCodeNotFound},
		{"default titles absent", []string{"path", graph}, apperrors.ErrCodeNotFound},
		{"missing file", []string{"path", graph + ".missing", "--from", "A", "--to", "D"}, apperrors.ErrCodeInvalidPath},
		{"bad diagram ext", []string{"path", graph, "--from", "A", "--to", "D", "-o", "out.gif"}, apperrors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !apperrors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestStatsCommand(t *testing.T) {
	graph := setup(t)

	got, err := runCLI(t, "stats", graph)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"articles", "1 (20.00%)", "Links from article", "Redirects to article", "fresh"} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}

	again, err := runCLI(t, "stats", graph)
	if err != nil {
		t.Fatalf("stats (cached): %v", err)
	}
	if !strings.Contains(again, "cached") {
		t.Errorf("second run not served from cache:\n%s", again)
	}
}

func TestStatsCommandJSON(t *testing.T) {
	graph := setup(t)

	got, err := runCLI(t, "stats", graph, "--json", "--no-cache")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var r stats.Report
	if err := json.Unmarshal([]byte(got), &r); err != nil {
		t.Fatalf("decode report: %v\n%s", err, got)
	}
	if r.Pages != 5 || r.Links != 5 || r.RedirectPages != 1 {
		t.Errorf("report = %+v", r)
	}
	if r.OutLinks.Max != 2 || r.OutLinks.MaxTitle != "A" {
		t.Errorf("out links = %+v", r.OutLinks)
	}
	if r.InLinks.Max != 2 || r.InLinks.MaxTitle != "C" {
		t.Errorf("in links = %+v", r.InLinks)
	}
	if r.InRedirects.Max != 1 || r.InRedirects.MaxTitle != "D" {
		t.Errorf("in redirects = %+v", r.InRedirects)
	}
}

func TestStatsCommandHistograms(t *testing.T) {
	graph := setup(t)
	dir := filepath.Join(t.TempDir(), "hist")

	if _, err := runCLI(t, "stats", graph, "--hist-dir", dir, "--bins", "4"); err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, name := range []string{"out_links.svg", "in_links.svg", "in_redirects.svg"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("histogram %s: %v", name, err)
			continue
		}
		if !bytes.HasPrefix(data, []byte("<svg")) {
			t.Errorf("%s is not an svg", name)
		}
	}
}

func TestStatsCommandBadFormat(t *testing.T) {
	graph := setup(t)
	_, err := runCLI(t, "stats", graph, "--hist-format", "gif")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestReportCommand(t *testing.T) {
	graph := setup(t)

	got, err := runCLI(t, "report", graph, "--from", "A", "--to", "D", "--no-cache")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{`Path from "A" to "D"`, "Found path of length 2", "Links to article"} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
}

func TestConfigFile(t *testing.T) {
	graph := setup(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(cfg, []byte("[path]\ndefault_from = \"B\"\ndefault_to = \"D\"\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	got, err := runCLI(t, "--config", cfg, "path", graph)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if !strings.Contains(got, "Found path of length 2") {
		t.Errorf("config defaults not applied:\n%s", got)
	}
}

func TestConfigFileInvalid(t *testing.T) {
	graph := setup(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[chart]\nbinz = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "--config", cfg, "stats", graph); err == nil {
		t.Error("unknown config key accepted")
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "version: ") {
		t.Errorf("version output = %q", got)
	}
}
