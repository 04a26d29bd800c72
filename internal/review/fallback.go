package review

import (
	"fmt"
	"regexp"
	"strings"
)

// Keyword sets for bucketing extracted issues. Matched case-insensitively.
var (
	highKeywords = []string{
		"security", "vulnerability", "critical", "error", "bug", "crash",
		"memory leak", "performance", "sql injection", "xss",
	}
	mediumKeywords = []string{
		"warning", "deprecated", "inefficient", "refactor", "improve",
		"optimization", "maintainability", "readability",
	}
)

var listItemRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+(.+)$`)

// FallbackGrade computes the overall letter grade from bucket sizes.
// Thresholds are checked in order; the first match wins.
func FallbackGrade(high, medium, low int) string {
	total := high + medium + low
	switch {
	case high > 5:
		return "D"
	case high > 2:
		return "C"
	case medium > 10:
		return "C+"
	case medium > 5:
		return "B"
	case total > 10:
		return "B+"
	case total > 5:
		return "A-"
	case total > 0:
		return "A"
	default:
		return "A+"
	}
}

// FallbackReport renders the heuristic consolidated report from raw pass
// outputs without further LLM calls. It never fails: any panic during
// generation degrades to the raw-content last resort.
func FallbackReport(interim *Result, passes []PassResult) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = lastResortReport(interim)
		}
	}()
	return fallbackReport(interim, passes)
}

// bucket accumulates unique issue texts in insertion order. Dedup is by
// exact text; classification alone is case-insensitive.
type bucket struct {
	seen  map[string]struct{}
	items []string
}

func (b *bucket) add(s string) {
	if b.seen == nil {
		b.seen = make(map[string]struct{})
	}
	if _, ok := b.seen[s]; ok {
		return
	}
	b.seen[s] = struct{}{}
	b.items = append(b.items, s)
}

func fallbackReport(interim *Result, passes []PassResult) string {
	var high, medium, low bucket

	for _, p := range passes {
		for _, line := range strings.Split(p.Content, "\n") {
			m := listItemRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			issue := strings.TrimSpace(m[1])
			if issue == "" {
				continue
			}
			switch classifyIssue(issue) {
			case "high":
				high.add(issue)
			case "medium":
				medium.add(issue)
			default:
				low.add(issue)
			}
		}
	}

	nHigh, nMed, nLow := len(high.items), len(medium.items), len(low.items)
	total := nHigh + nMed + nLow
	grade := FallbackGrade(nHigh, nMed, nLow)

	var b strings.Builder
	b.WriteString("# Consolidated Code Review Report\n\n")
	fmt.Fprintf(&b, "- Review type: %s\n", interim.ReviewType)
	fmt.Fprintf(&b, "- Model: %s\n", interim.Model)
	fmt.Fprintf(&b, "- Generated: %s\n", interim.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString("- Consolidation: heuristic (AI consolidation unavailable)\n\n")

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "The review surfaced %d distinct issues across %d passes: %d high priority, %d medium priority, and %d lower priority.\n\n",
		total, len(passes), nHigh, nMed, nLow)

	fmt.Fprintf(&b, "## Grade: %s\n\n", grade)

	writeBucket(&b, "High Priority", high.items, 5)
	writeBucket(&b, "Medium Priority", medium.items, 3)
	writeBucket(&b, "Low Priority", low.items, 2)

	b.WriteString("## Recommendations\n\n")
	for _, rec := range buildRecommendations(high.items, medium.items, low.items) {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	b.WriteString("\n")

	b.WriteString("## Pass Summary\n\n")
	for _, p := range passes {
		fmt.Fprintf(&b, "- Pass %d: %d files, %d words of review output\n",
			p.PassNumber, len(p.Files), len(strings.Fields(p.Content)))
	}

	return b.String()
}

func classifyIssue(issue string) string {
	lower := strings.ToLower(issue)
	for _, kw := range highKeywords {
		if strings.Contains(lower, kw) {
			return "high"
		}
	}
	for _, kw := range mediumKeywords {
		if strings.Contains(lower, kw) {
			return "medium"
		}
	}
	return "low"
}

func writeBucket(b *strings.Builder, title string, items []string, preview int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s Findings (%d)\n\n", title, len(items))
	n := len(items)
	if n > preview {
		n = preview
	}
	for _, item := range items[:n] {
		fmt.Fprintf(b, "- %s\n", item)
	}
	if len(items) > n {
		fmt.Fprintf(b, "- ...and %d more\n", len(items)-n)
	}
	b.WriteString("\n")
}

func buildRecommendations(high, medium, low []string) []string {
	var recs []string

	// Compilation problems block everything else; surface them first.
	if containsAny(high, "compil") || containsAny(medium, "compil") || containsAny(low, "compil") {
		recs = append(recs, "Fix compilation errors before addressing any other findings.")
	}

	switch {
	case len(high) > 0:
		recs = append(recs, fmt.Sprintf("Address the %d high-priority findings first; several may be security-relevant.", len(high)))
	case len(medium) > 0:
		recs = append(recs, "No high-priority issues were found; work through the medium-priority list in order.")
	}
	if len(medium) > 5 {
		recs = append(recs, "Schedule a refactoring pass: the volume of medium-priority findings suggests structural debt.")
	}
	if len(high)+len(medium)+len(low) == 0 {
		recs = append(recs, "No significant issues were identified. Keep the current review cadence.")
	}
	return recs
}

func containsAny(items []string, substr string) bool {
	for _, s := range items {
		if strings.Contains(strings.ToLower(s), substr) {
			return true
		}
	}
	return false
}

// lastResortReport is the final defensive fallback: metadata plus the raw
// multi-pass content verbatim. It must never fail.
func lastResortReport(interim *Result) string {
	var b strings.Builder
	b.WriteString("# Code Review Report\n\n")
	if interim != nil {
		fmt.Fprintf(&b, "- Review type: %s\n", interim.ReviewType)
		fmt.Fprintf(&b, "- Model: %s\n", interim.Model)
		fmt.Fprintf(&b, "- Generated: %s\n\n", interim.Timestamp.Format("2006-01-02 15:04:05"))
		b.WriteString("> Note: automated consolidation was unavailable. The raw multi-pass output follows unmodified.\n\n")
		b.WriteString(interim.Content)
	}
	return b.String()
}
