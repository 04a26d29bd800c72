package review

import (
	"fmt"
	"strings"
)

// Review types supported by facet.
const (
	TypeArchitectural = "architectural"
	TypeSecurity      = "security"
	TypePerformance   = "performance"
	TypeQuickFixes    = "quick-fixes"
	TypeBestPractices = "best-practices"
)

const basePrompt = `You are a strict, expert code reviewer producing a structured Markdown review report.

Rules:
1. Review the complete source files provided. Look for bugs, security issues, performance problems, correctness issues, design flaws, and maintainability concerns.
2. Be concise and actionable. Every issue must include a concrete suggestion.
3. Always name the file a problem occurs in, using the exact relative path shown in the file header.
4. Group your report into sections: Summary, Issues (one paragraph per issue), Strengths, Recommendations.
5. When prior-pass context is provided, build on it: do not repeat issues already recorded, and note cross-file concerns the context reveals.`

var typeFocus = map[string]string{
	TypeArchitectural: "Focus on structure: package boundaries, dependency direction, coupling, cohesion, and design consistency across the codebase.",
	TypeSecurity:      "Focus on security: input validation, injection, unsafe deserialization, secret handling, authentication and authorization gaps.",
	TypePerformance:   "Focus on performance: algorithmic complexity, unnecessary allocation, I/O in hot paths, and concurrency bottlenecks.",
	TypeQuickFixes:    "Focus on small, high-confidence fixes: obvious bugs, unhandled errors, and one-line improvements. Skip large refactors.",
	TypeBestPractices: "Focus on idiom and convention: naming, error handling patterns, test coverage gaps, and documentation.",
}

// SystemPrompt returns the system prompt for a review type.
func SystemPrompt(reviewType string) string {
	if focus, ok := typeFocus[reviewType]; ok {
		return basePrompt + "\n\n" + focus
	}
	return basePrompt
}

// BuildUserPrompt assembles the user prompt: project framing, pass metadata,
// documentation bundle (including any injected prior-pass context), rules,
// and the fenced file contents.
func BuildUserPrompt(files []FileRecord, projectName, docs string, opts Options) string {
	var b strings.Builder

	if projectName != "" {
		fmt.Fprintf(&b, "Project: %s\n", projectName)
	}
	if opts.TotalPasses > 1 {
		fmt.Fprintf(&b, "This is pass %d of %d. Each pass reviews a subset of the codebase; prior-pass context is included below.\n", opts.PassNumber, opts.TotalPasses)
	}

	langs := detectLanguages(files)
	if len(langs) > 0 {
		fmt.Fprintf(&b, "Languages: %s\n", strings.Join(langs, ", "))
	}

	if section := BuildRulesPromptSection(opts.Rules); section != "" {
		b.WriteString(section)
	}

	if docs != "" {
		b.WriteString("\n--- PROJECT DOCUMENTATION ---\n")
		b.WriteString(docs)
		b.WriteString("\n--- END PROJECT DOCUMENTATION ---\n")
	}

	b.WriteString("\n--- BEGIN SOURCE FILES ---\n")
	for _, f := range files {
		fmt.Fprintf(&b, "\n### %s\n", f.RelativePath)
		fmt.Fprintf(&b, "```%s\n%s\n```\n", inferLang(f.RelativePath), f.Content)
	}
	b.WriteString("\n--- END SOURCE FILES ---\n")

	return b.String()
}

var langMap = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".tsx":   "tsx",
	".jsx":   "jsx",
	".rs":    "rust",
	".java":  "java",
	".rb":    "ruby",
	".cpp":   "cpp",
	".c":     "c",
	".h":     "c",
	".cs":    "csharp",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".sql":   "sql",
	".sh":    "bash",
	".yaml":  "yaml",
	".yml":   "yaml",
	".json":  "json",
	".tf":    "hcl",
}

var langNames = map[string]string{
	"go": "Go", "python": "Python", "javascript": "JavaScript",
	"typescript": "TypeScript", "tsx": "TypeScript/React", "jsx": "JavaScript/React",
	"rust": "Rust", "java": "Java", "ruby": "Ruby", "cpp": "C++", "c": "C",
	"csharp": "C#", "php": "PHP", "swift": "Swift", "kotlin": "Kotlin",
	"sql": "SQL", "bash": "Shell", "yaml": "YAML", "json": "JSON", "hcl": "Terraform",
}

func inferLang(path string) string {
	for ext, lang := range langMap {
		if strings.HasSuffix(path, ext) {
			return lang
		}
	}
	return ""
}

func detectLanguages(files []FileRecord) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, f := range files {
		if lang := inferLang(f.RelativePath); lang != "" {
			name := langNames[lang]
			if name != "" && !seen[name] {
				seen[name] = true
				langs = append(langs, name)
			}
		}
	}
	return langs
}
