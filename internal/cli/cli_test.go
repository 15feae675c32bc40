package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glasspiral/glasspiral/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/xdg-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback []string
		want     []string
	}{
		{"explicit", "html,svg", nil, []string{"html", "svg"}},
		{"single", "json", nil, []string{"json"}},
		{"empty uses fallback", "", []string{"svg"}, []string{"svg"}},
		{"empty no fallback", "", nil, []string{pipeline.FormatHTML}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, tt.fallback)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"parse", "place", "render", "visualize", "steps", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("RootCommand() missing subcommand %q", name)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
	if !root.SilenceUsage {
		t.Error("root.SilenceUsage should be true")
	}
}

func TestReadTrace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.txt")
	content := "CALL|main||0x0|1|0\nDECL|x|5|0x4|2|1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	steps, text, err := readTrace(path)
	if err != nil {
		t.Fatalf("readTrace() error: %v", err)
	}
	if text != content {
		t.Errorf("readTrace() text = %q, want %q", text, content)
	}
	if len(steps) != 2 {
		t.Fatalf("readTrace() returned %d steps, want 2", len(steps))
	}
	if steps[0].Name != "main" {
		t.Errorf("steps[0].Name = %q, want %q", steps[0].Name, "main")
	}
}

func TestReadTraceMissing(t *testing.T) {
	_, _, err := readTrace("/nonexistent/trace.txt")
	if err == nil {
		t.Fatal("readTrace() should fail for missing file")
	}
	if !strings.Contains(err.Error(), "read trace") {
		t.Errorf("error should mention the trace path, got %v", err)
	}
}
