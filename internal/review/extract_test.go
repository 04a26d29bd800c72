package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var extractFiles = []FileRecord{
	{Path: "/proj/internal/auth/login.go", RelativePath: "internal/auth/login.go"},
	{Path: "/proj/main.go", RelativePath: "main.go"},
}

func TestKeywordExtractor_Classification(t *testing.T) {
	content := "The login handler has a SQL injection vulnerability.\n\n" +
		"There is a potential nil pointer bug in the shutdown path.\n\n" +
		"This loop is inefficient and creates a performance bottleneck.\n\n" +
		"Consider a refactor of the config loading for readability.\n\n" +
		"The code is generally well organized."

	findings := KeywordExtractor{}.Extract(content, extractFiles, 2)

	require.Len(t, findings, 4)
	assert.Equal(t, FindingSecurity, findings[0].Type)
	assert.Equal(t, 8, findings[0].Severity)
	assert.Equal(t, FindingBug, findings[1].Type)
	assert.Equal(t, 7, findings[1].Severity)
	assert.Equal(t, FindingPerformance, findings[2].Type)
	assert.Equal(t, 5, findings[2].Severity)
	assert.Equal(t, FindingMaintainability, findings[3].Type)
	assert.Equal(t, 3, findings[3].Severity)

	for _, f := range findings {
		assert.Equal(t, 2, f.PassNumber)
	}
}

func TestKeywordExtractor_FirstFamilyWins(t *testing.T) {
	// Paragraph matches both security and performance; security is checked first.
	content := "This endpoint is both a security risk and a performance problem."

	findings := KeywordExtractor{}.Extract(content, extractFiles, 1)

	require.Len(t, findings, 1)
	assert.Equal(t, FindingSecurity, findings[0].Type)
}

func TestKeywordExtractor_FileAttribution(t *testing.T) {
	content := "internal/auth/login.go builds queries by string concatenation, " +
		"which is a classic SQL injection vector.\n\n" +
		"Somewhere in the project there is a crash on empty input."

	findings := KeywordExtractor{}.Extract(content, extractFiles, 1)

	require.Len(t, findings, 2)
	assert.Equal(t, "internal/auth/login.go", findings[0].File)
	assert.Empty(t, findings[1].File, "findings naming no file stay unattributed")
}

func TestKeywordExtractor_NoMatches(t *testing.T) {
	findings := KeywordExtractor{}.Extract("Everything looks great.\n\nNice work.", extractFiles, 1)
	assert.Empty(t, findings)
}

func TestKeywordExtractor_TruncatesLongParagraphs(t *testing.T) {
	long := "This is a bug. " + strings.Repeat("More detail about the problem. ", 30)
	findings := KeywordExtractor{}.Extract(long, nil, 1)

	require.Len(t, findings, 1)
	assert.LessOrEqual(t, len(findings[0].Description), 303)
	assert.True(t, strings.HasSuffix(findings[0].Description, "..."))
}

func TestApplySeverityOverrides(t *testing.T) {
	findings := []Finding{
		{Type: FindingSecurity, Severity: 8},
		{Type: FindingBug, Severity: 7},
	}
	rules := &Rules{SeverityOverrides: map[string]int{"security": 10}}

	out := ApplySeverityOverrides(findings, rules)

	assert.Equal(t, 10, out[0].Severity)
	assert.Equal(t, 7, out[1].Severity)
}

func TestApplySeverityOverrides_NilRules(t *testing.T) {
	findings := []Finding{{Type: FindingBug, Severity: 7}}
	out := ApplySeverityOverrides(findings, nil)
	assert.Equal(t, findings, out)
}
