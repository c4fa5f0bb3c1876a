package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = old })

	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.Contains(got, "version: v1.2.3") {
		t.Errorf("String() = %q", got)
	}
}

func TestResolve(t *testing.T) {
	embedded := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name    string
		version string
		commit  string
		bi      *debug.BuildInfo
		want    Info
	}{
		{"no embedded info", "dev", "none", nil,
			Info{Version: "dev", Commit: "none", Date: "unknown"}},
		{"embedded fills defaults", "dev", "none", embedded,
			Info{Version: "v0.4.0", Commit: "abc123", Date: "2026-01-02T03:04:05Z", Modified: true}},
		{"ldflags win", "v1.0.0", "fff", embedded,
			Info{Version: "v1.0.0", Commit: "fff", Date: "2026-01-02T03:04:05Z", Modified: true}},
		{"devel module version ignored", "dev", "none", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			Info{Version: "dev", Commit: "none", Date: "unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldV, oldC := Version, Commit
			Version, Commit = tt.version, tt.commit
			t.Cleanup(func() { Version, Commit = oldV, oldC })

			got := resolve(tt.bi)
			got.GoVersion = ""
			if got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
