package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	path := filepath.Join(t.TempDir(), "nested", "out.svg")

	if err := WriteFile(path, svg); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(svg) {
		t.Errorf("file content = %q, want %q", got, svg)
	}
}

func TestWriteFileUnsupported(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "out.gif"), []byte("<svg/>"))
	if err == nil {
		t.Error("expected error for .gif output")
	}
}
