package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/facet/internal/config"
	"github.com/dshills/facet/internal/review"
)

func TestSplitComma(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{"a, b , c", []string{"a", "b", "c"}},
		{"", nil},
		{",,", nil},
		{"single", []string{"single"}},
	}

	for _, tt := range tests {
		got := splitComma(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitComma(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitComma(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBuildOverrides(t *testing.T) {
	origType, origProvider, origMax := flagType, flagProvider, flagMaxTokens
	defer func() {
		flagType, flagProvider, flagMaxTokens = origType, origProvider, origMax
	}()

	flagType = "security"
	flagProvider = "openai"
	flagMaxTokens = 4096

	m := buildOverrides()
	if m["review_type"] != "security" {
		t.Errorf("review_type = %q, want %q", m["review_type"], "security")
	}
	if m["provider"] != "openai" {
		t.Errorf("provider = %q, want %q", m["provider"], "openai")
	}
	if m["max_tokens"] != "4096" {
		t.Errorf("max_tokens = %q, want %q", m["max_tokens"], "4096")
	}
	if _, ok := m["model"]; ok {
		t.Error("unset flags should not appear in overrides")
	}
}

func TestContentDigest(t *testing.T) {
	files := []review.FileRecord{
		{RelativePath: "a.go", Content: "package a"},
		{RelativePath: "b.go", Content: "package b"},
	}

	d1 := contentDigest(files)
	d2 := contentDigest(files)
	if d1 != d2 {
		t.Error("digest should be deterministic for identical inputs")
	}

	edited := []review.FileRecord{
		{RelativePath: "a.go", Content: "package a // changed"},
		{RelativePath: "b.go", Content: "package b"},
	}
	if contentDigest(edited) == d1 {
		t.Error("editing a file should change the digest")
	}

	renamed := []review.FileRecord{
		{RelativePath: "c.go", Content: "package a"},
		{RelativePath: "b.go", Content: "package b"},
	}
	if contentDigest(renamed) == d1 {
		t.Error("renaming a file should change the digest")
	}
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()

	got, err := resolveRoot([]string{dir})
	if err != nil {
		t.Fatalf("resolveRoot error: %v", err)
	}
	if got != dir {
		// TempDir may be a symlink target on some platforms; compare resolved.
		want, _ := filepath.Abs(dir)
		if got != want {
			t.Errorf("resolveRoot = %q, want %q", got, want)
		}
	}

	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveRoot([]string{file}); err == nil {
		t.Error("resolveRoot should reject a regular file")
	}

	if _, err := resolveRoot([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("resolveRoot should reject a nonexistent path")
	}
}

func TestConfigSet_FreshInstallKeepsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Setting one key on a fresh install must not pin the rest of the
	// config to zero values in the saved file.
	if err := configSetCmd.RunE(configSetCmd, []string{"model", "gpt-4o"}); err != nil {
		t.Fatalf("config set error: %v", err)
	}

	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want %q", cfg.Model, "gpt-4o")
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want default %q", cfg.Provider, "anthropic")
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want default %q", cfg.Format, "text")
	}
	if !cfg.Privacy.RedactSecrets {
		t.Error("Privacy.RedactSecrets should keep its default")
	}
}

func TestConfigSet_PreservesExistingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	saved := config.Default()
	saved.Provider = "openai"
	if err := config.Save(saved); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := configSetCmd.RunE(configSetCmd, []string{"cache.ttl_seconds", "3600"}); err != nil {
		t.Fatalf("config set error: %v", err)
	}

	cfg, err := config.LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "openai")
	}
	if cfg.Cache.TTLSeconds != 3600 {
		t.Errorf("Cache.TTLSeconds = %d, want 3600", cfg.Cache.TTLSeconds)
	}
}

func TestProjectNameFor(t *testing.T) {
	orig := flagProjectName
	defer func() { flagProjectName = orig }()

	flagProjectName = ""
	if got := projectNameFor("/tmp/myproject"); got != "myproject" {
		t.Errorf("projectNameFor = %q, want %q", got, "myproject")
	}

	flagProjectName = "custom"
	if got := projectNameFor("/tmp/myproject"); got != "custom" {
		t.Errorf("projectNameFor = %q, want %q", got, "custom")
	}
}
