package review

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackGrade(t *testing.T) {
	tests := []struct {
		name              string
		high, medium, low int
		want              string
	}{
		{"many high", 6, 0, 0, "D"},
		{"several high", 3, 2, 1, "C"},
		{"boundary high", 2, 0, 0, "A"},
		{"many medium", 0, 11, 0, "C+"},
		{"several medium", 0, 6, 0, "B"},
		{"many total", 2, 2, 7, "B+"},
		{"few total", 1, 1, 4, "A-"},
		{"couple", 0, 0, 2, "A"},
		{"clean", 0, 0, 0, "A+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackGrade(tt.high, tt.medium, tt.low))
		})
	}
}

func fallbackInterim() *Result {
	return &Result{
		Content:    "raw multi-pass content",
		ReviewType: "security",
		Model:      "claude-sonnet-4-6",
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFallbackReport_BucketsAndGrade(t *testing.T) {
	passes := []PassResult{
		{PassNumber: 1, Files: []string{"a.go"}, Content: strings.Join([]string{
			"- SQL injection vulnerability in query builder",
			"- crash when the config file is missing",
			"- deprecated API usage in the HTTP client",
			"prose line without a bullet is ignored",
		}, "\n")},
		{PassNumber: 2, Files: []string{"b.go", "c.go"}, Content: strings.Join([]string{
			"1. memory leak in the worker pool",
			"2. refactor the handler for maintainability",
			"3. variable naming could be clearer",
		}, "\n")},
	}

	report := FallbackReport(fallbackInterim(), passes)

	// 3 high (injection, crash, leak), 2 medium (deprecated, refactor), 1 low
	assert.Contains(t, report, "## Grade: C")
	assert.Contains(t, report, "High Priority Findings (3)")
	assert.Contains(t, report, "Medium Priority Findings (2)")
	assert.Contains(t, report, "Low Priority Findings (1)")
	assert.Contains(t, report, "heuristic (AI consolidation unavailable)")
	assert.Contains(t, report, "Pass 1: 1 files")
	assert.Contains(t, report, "Pass 2: 2 files")
	assert.NotContains(t, report, "prose line without a bullet")
}

func TestFallbackReport_DeduplicatesExactText(t *testing.T) {
	passes := []PassResult{
		{PassNumber: 1, Content: "- crash on nil input"},
		{PassNumber: 2, Content: "- crash on nil input"},
	}

	report := FallbackReport(fallbackInterim(), passes)
	assert.Contains(t, report, "High Priority Findings (1)")
}

func TestFallbackReport_PreviewCaps(t *testing.T) {
	var lines []string
	for _, s := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		lines = append(lines, "- critical issue "+s)
	}
	passes := []PassResult{{PassNumber: 1, Content: strings.Join(lines, "\n")}}

	report := FallbackReport(fallbackInterim(), passes)

	assert.Contains(t, report, "High Priority Findings (7)")
	assert.Contains(t, report, "...and 2 more")
	assert.NotContains(t, report, "critical issue six")
}

func TestFallbackReport_CompilationErrorsFirst(t *testing.T) {
	passes := []PassResult{
		{PassNumber: 1, Content: "- security hole in token validation\n- compilation error in parser.go"},
	}

	report := FallbackReport(fallbackInterim(), passes)

	recs := report[strings.Index(report, "## Recommendations"):]
	first := strings.Index(recs, "Fix compilation errors")
	second := strings.Index(recs, "high-priority findings first")
	require.Positive(t, first)
	require.Positive(t, second)
	assert.Less(t, first, second)
}

func TestFallbackReport_CleanRun(t *testing.T) {
	passes := []PassResult{{PassNumber: 1, Content: "Everything is in order."}}

	report := FallbackReport(fallbackInterim(), passes)

	assert.Contains(t, report, "## Grade: A+")
	assert.Contains(t, report, "No significant issues were identified")
}

func TestFallbackReport_NeverPanics(t *testing.T) {
	// A nil interim panics inside the renderer; the recover path must still
	// produce a string.
	assert.NotPanics(t, func() {
		out := FallbackReport(nil, nil)
		assert.Contains(t, out, "# Code Review Report")
	})
}

func TestLastResortReport(t *testing.T) {
	out := lastResortReport(fallbackInterim())

	assert.Contains(t, out, "raw multi-pass content")
	assert.Contains(t, out, "consolidation was unavailable")
	assert.Contains(t, out, "security")
}
