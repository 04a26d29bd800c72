package review

import (
	"strings"
	"testing"
)

func TestSystemPrompt_TypeFocus(t *testing.T) {
	for _, rt := range []string{TypeArchitectural, TypeSecurity, TypePerformance, TypeQuickFixes, TypeBestPractices} {
		p := SystemPrompt(rt)
		if !strings.Contains(p, "Focus on") {
			t.Errorf("SystemPrompt(%q) missing type focus", rt)
		}
		if !strings.HasPrefix(p, basePrompt) {
			t.Errorf("SystemPrompt(%q) should extend the base prompt", rt)
		}
	}

	if got := SystemPrompt("unknown"); got != basePrompt {
		t.Error("unknown review type should fall back to the base prompt")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	files := []FileRecord{
		{Path: "/p/main.go", RelativePath: "main.go", Content: "package main"},
		{Path: "/p/web/app.ts", RelativePath: "web/app.ts", Content: "export {}"},
	}
	opts := Options{ReviewType: TypeSecurity, PassNumber: 2, TotalPasses: 5}

	prompt := BuildUserPrompt(files, "myproj", "ARCHITECTURE NOTES", opts)

	for _, want := range []string{
		"Project: myproj",
		"This is pass 2 of 5",
		"Go", "TypeScript",
		"--- PROJECT DOCUMENTATION ---",
		"ARCHITECTURE NOTES",
		"### main.go",
		"```go\npackage main\n```",
		"### web/app.ts",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildUserPrompt_SinglePassOmitsPassHeader(t *testing.T) {
	files := []FileRecord{{RelativePath: "a.go", Content: "package a"}}
	prompt := BuildUserPrompt(files, "p", "", Options{ReviewType: TypeSecurity})

	if strings.Contains(prompt, "This is pass") {
		t.Error("single-pass prompts should not mention pass numbering")
	}
	if strings.Contains(prompt, "PROJECT DOCUMENTATION") {
		t.Error("empty docs should not emit a documentation section")
	}
}

func TestBuildUserPrompt_RulesSection(t *testing.T) {
	files := []FileRecord{{RelativePath: "a.go", Content: "package a"}}
	rules := &Rules{
		Focus:    []string{"error handling"},
		Required: []RequiredCheck{{ID: "SEC-1", Text: "No secrets in source"}},
	}

	prompt := BuildUserPrompt(files, "p", "", Options{ReviewType: TypeSecurity, Rules: rules})

	if !strings.Contains(prompt, "Focus areas: error handling") {
		t.Error("prompt missing rules focus section")
	}
	if !strings.Contains(prompt, "[SEC-1] No secrets in source") {
		t.Error("prompt missing required checks")
	}
}

func TestInferLang(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"app.py", "python"},
		{"script.sh", "bash"},
		{"deploy.yaml", "yaml"},
		{"README", ""},
	}
	for _, tt := range tests {
		if got := inferLang(tt.path); got != tt.want {
			t.Errorf("inferLang(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
