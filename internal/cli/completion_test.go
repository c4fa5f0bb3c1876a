package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wikigraph/pkg/wiki"
)

func TestCompleteGraphFile(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantExts      []string
		wantDirective cobra.ShellCompDirective
	}{
		{"first argument", nil, []string{"txt"}, cobra.ShellCompDirectiveFilterFileExt},
		{"after graph file", []string{"wiki.txt"}, nil, cobra.ShellCompDirectiveNoFileComp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, directive := completeGraphFile(nil, tt.args, "")
			if !slices.Equal(got, tt.wantExts) {
				t.Errorf("completions = %v, want %v", got, tt.wantExts)
			}
			if directive != tt.wantDirective {
				t.Errorf("directive = %v, want %v", directive, tt.wantDirective)
			}
		})
	}
}

func TestMatchTitles(t *testing.T) {
	g, err := wiki.FromArticles([]wiki.Article{
		{Title: "Alpha"},
		{Title: "Beta"},
		{Title: "Alps"},
		{Title: "Alpha"},
		{Title: "Alto"},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		prefix string
		limit  int
		want   []string
	}{
		{"prefix", "Al", 10, []string{"Alpha", "Alps", "Alto"}},
		{"limit", "Al", 2, []string{"Alpha", "Alps"}},
		{"empty prefix", "", 10, []string{"Alpha", "Beta", "Alps", "Alto"}},
		{"no match", "Gamma", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchTitles(g, tt.prefix, tt.limit)
			if !slices.Equal(got, tt.want) {
				t.Errorf("matchTitles(%q, %d) = %v, want %v", tt.prefix, tt.limit, got, tt.want)
			}
		})
	}
}

// complete runs cobra's hidden completion command and returns its output.
func complete(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, args...))
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestCompletionTitlesFromGraphFile(t *testing.T) {
	graph := setup(t)

	got := complete(t, "path", graph, "--to", "")
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		if !strings.Contains(got, title+"\n") {
			t.Errorf("completions missing %q:\n%s", title, got)
		}
	}

	got = complete(t, "path", graph, "--from", "D")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 || lines[0] != "D" {
		t.Errorf("completions for prefix D = %q, want only D and the directive", lines)
	}
}

func TestCompletionTitlesBadGraphFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("not a graph\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, directive := completeTitle(&cobra.Command{}, []string{bad}, "")
	if got != nil {
		t.Errorf("completions = %v, want none", got)
	}
	if directive&cobra.ShellCompDirectiveError == 0 {
		t.Errorf("directive = %v, want error bit set", directive)
	}
}

func TestCompletionScript(t *testing.T) {
	var buf bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"completion", "bash"})
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "wikigraph") {
		t.Error("bash completion script does not mention the program name")
	}
}
