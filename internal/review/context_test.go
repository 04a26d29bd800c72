package review

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_PassNumbering(t *testing.T) {
	c := NewContext()
	assert.Equal(t, 0, c.CurrentPass())
	assert.Equal(t, 1, c.StartPass())
	assert.Equal(t, 2, c.StartPass())
	assert.Equal(t, 2, c.CurrentPass())
}

func TestContext_EmptyDigest(t *testing.T) {
	c := NewContext()
	c.StartPass()
	assert.Empty(t, c.NextPassContext([]string{"a.go"}))
}

func TestContext_Deterministic(t *testing.T) {
	build := func() *Context {
		c := NewContext()
		c.StartPass()
		c.AddFinding(Finding{Type: FindingBug, Description: "nil deref", File: "a.go", Severity: 7, PassNumber: 1})
		c.AddFinding(Finding{Type: FindingSecurity, Description: "sql injection", File: "b.go", Severity: 9, PassNumber: 1})
		c.AddFileSummary(FileSummary{Path: "a.go", Description: "entrypoint", PassNumber: 1})
		c.AddGeneralNote("project uses custom error wrapping")
		return c
	}

	d1 := build().NextPassContext([]string{"c.go"})
	d2 := build().NextPassContext([]string{"c.go"})
	assert.Equal(t, d1, d2, "same accumulated state must yield identical digests")
}

func TestContext_UpcomingFilesSortFirst(t *testing.T) {
	c := NewContext()
	c.StartPass()
	c.AddFinding(Finding{Type: FindingSecurity, Description: "critical elsewhere", File: "other.go", Severity: 10, PassNumber: 1})
	c.AddFinding(Finding{Type: FindingMaintainability, Description: "minor but relevant", File: "next.go", Severity: 2, PassNumber: 1})

	digest := c.NextPassContext([]string{"next.go"})

	relevant := strings.Index(digest, "minor but relevant")
	elsewhere := strings.Index(digest, "critical elsewhere")
	require.Positive(t, relevant)
	require.Positive(t, elsewhere)
	assert.Less(t, relevant, elsewhere,
		"findings touching upcoming files must sort before higher-severity ones elsewhere")
}

func TestContext_SeverityOrderWithinGroup(t *testing.T) {
	c := NewContext()
	c.StartPass()
	c.AddFinding(Finding{Type: FindingMaintainability, Description: "low severity issue", File: "x.go", Severity: 2, PassNumber: 1})
	c.AddFinding(Finding{Type: FindingSecurity, Description: "high severity issue", File: "y.go", Severity: 9, PassNumber: 1})

	digest := c.NextPassContext(nil)

	hi := strings.Index(digest, "high severity issue")
	lo := strings.Index(digest, "low severity issue")
	assert.Less(t, hi, lo)
}

func TestContext_FindingCap(t *testing.T) {
	c := NewContext()
	c.StartPass()
	for i := 0; i < 30; i++ {
		c.AddFinding(Finding{Type: FindingBug, Description: fmt.Sprintf("finding %d", i), Severity: 5, PassNumber: 1})
	}

	digest := c.NextPassContext(nil)
	assert.Contains(t, digest, "...and 10 more findings")
	assert.Equal(t, maxContextFindings, strings.Count(digest, "- (bug"))
}

func TestContext_SummaryAndNoteCaps(t *testing.T) {
	c := NewContext()
	c.StartPass()
	for i := 0; i < 40; i++ {
		c.AddFileSummary(FileSummary{Path: fmt.Sprintf("f%d.go", i), Description: "reviewed", PassNumber: 1})
	}
	for i := 0; i < 15; i++ {
		c.AddGeneralNote(fmt.Sprintf("note %d", i))
	}

	digest := c.NextPassContext(nil)
	// Most recent entries survive the cap.
	assert.Contains(t, digest, "f39.go")
	assert.NotContains(t, digest, "f0.go:")
	assert.Contains(t, digest, "note 14")
	assert.NotContains(t, digest, "note 0\n")
}

func TestContext_FindingsReturnsCopy(t *testing.T) {
	c := NewContext()
	c.StartPass()
	c.AddFinding(Finding{Type: FindingBug, Description: "original", Severity: 5, PassNumber: 1})

	got := c.Findings()
	got[0].Description = "mutated"

	assert.Equal(t, "original", c.Findings()[0].Description)
}

func TestCost_AggregateEqualsSumOfPasses(t *testing.T) {
	c := &Cost{}
	passes := []PassCost{
		{PassNumber: 1, InputTokens: 100, OutputTokens: 50, TotalTokens: 150, EstimatedCost: 0.01},
		{PassNumber: 2, InputTokens: 200, OutputTokens: 80, TotalTokens: 280, EstimatedCost: 0.02},
		{PassNumber: 3, InputTokens: 50, OutputTokens: 20, TotalTokens: 70, EstimatedCost: 0.005},
	}

	var in, out, total int
	var cost float64
	for _, p := range passes {
		c.AddPass(p)
		in += p.InputTokens
		out += p.OutputTokens
		total += p.TotalTokens
		cost += p.EstimatedCost

		assert.Equal(t, in, c.InputTokens)
		assert.Equal(t, out, c.OutputTokens)
		assert.Equal(t, total, c.TotalTokens)
		assert.InDelta(t, cost, c.EstimatedCost, 1e-12)
		assert.Equal(t, len(c.PerPass), c.PassCount)
	}
}
