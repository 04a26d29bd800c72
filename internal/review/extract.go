package review

import (
	"strings"
)

// FindingExtractor pulls structured findings out of a pass's raw output.
// The keyword heuristic is the default; a structured-output mode (providers
// returning schema-validated JSON findings) can replace it without touching
// the pass loop.
type FindingExtractor interface {
	Extract(content string, files []FileRecord, passNumber int) []Finding
}

// keywordFamily maps a finding type to its trigger keywords and the fixed
// severity assigned to matches. Families are checked in order; the first
// family with a hit claims the paragraph.
type keywordFamily struct {
	ftype    FindingType
	severity int
	keywords []string
}

var keywordFamilies = []keywordFamily{
	{FindingSecurity, 8, []string{
		"security", "vulnerability", "vulnerable", "injection", "xss",
		"csrf", "unsafe", "unsanitized", "hardcoded secret", "credential",
	}},
	{FindingBug, 7, []string{
		"bug", "crash", "incorrect", "race condition", "nil pointer",
		"null pointer", "off-by-one", "memory leak", "deadlock", "error is ignored",
		"unhandled error",
	}},
	{FindingPerformance, 5, []string{
		"performance", "inefficient", "slow", "bottleneck", "quadratic",
		"unnecessary allocation", "n+1",
	}},
	{FindingMaintainability, 3, []string{
		"maintainability", "readability", "refactor", "duplicated",
		"duplication", "complexity", "hard to follow", "naming",
	}},
}

// KeywordExtractor scans pass output paragraph by paragraph for keyword
// families. A finding is attributed to a file only when that file's path or
// relative path literally appears in the paragraph.
type KeywordExtractor struct{}

// Extract implements FindingExtractor.
func (KeywordExtractor) Extract(content string, files []FileRecord, passNumber int) []Finding {
	var findings []Finding
	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lower := strings.ToLower(para)

		for _, fam := range keywordFamilies {
			if !matchesFamily(lower, fam.keywords) {
				continue
			}
			findings = append(findings, Finding{
				Type:        fam.ftype,
				Description: truncate(para, 300),
				File:        attributeFile(para, files),
				Severity:    fam.severity,
				PassNumber:  passNumber,
			})
			break
		}
	}
	return findings
}

func matchesFamily(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func attributeFile(para string, files []FileRecord) string {
	for _, f := range files {
		if strings.Contains(para, f.RelativePath) || strings.Contains(para, f.Path) {
			return f.RelativePath
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
