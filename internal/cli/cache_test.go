package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePathCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "wikigraph"); strings.TrimSpace(got) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(got), want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	graph := setup(t)

	if _, err := runCLI(t, "stats", graph); err != nil {
		t.Fatalf("stats: %v", err)
	}
	got, err := runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(got, "Cleared 1 cached entries") {
		t.Errorf("cache clear output:\n%s", got)
	}

	again, err := runCLI(t, "stats", graph)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(again, "fresh") {
		t.Errorf("report still cached after clear:\n%s", again)
	}
}
