package review

import (
	"fmt"
	"sort"
	"strings"
)

// Context accumulates cross-pass state during a multi-pass review. It is
// append-only: passes add summaries, findings, and notes; nothing is ever
// removed or deduplicated here (deduplication is the consolidator's job).
// A Context is owned by exactly one review execution and is not safe for
// concurrent use.
type Context struct {
	currentPass int
	summaries   []FileSummary
	findings    []Finding
	notes       []string
}

// NewContext creates an empty accumulator. Pass numbering starts at 1 after
// the first StartPass call.
func NewContext() *Context {
	return &Context{}
}

// StartPass advances the pass counter and returns the new pass number.
func (c *Context) StartPass() int {
	c.currentPass++
	return c.currentPass
}

// CurrentPass returns the active pass number (0 before the first StartPass).
func (c *Context) CurrentPass() int {
	return c.currentPass
}

// AddFileSummary appends a file summary from the current pass.
func (c *Context) AddFileSummary(s FileSummary) {
	c.summaries = append(c.summaries, s)
}

// AddFinding appends a finding from the current pass.
func (c *Context) AddFinding(f Finding) {
	c.findings = append(c.findings, f)
}

// AddGeneralNote appends a free-text note.
func (c *Context) AddGeneralNote(note string) {
	c.notes = append(c.notes, note)
}

// Findings returns a copy of all accumulated findings.
func (c *Context) Findings() []Finding {
	out := make([]Finding, len(c.findings))
	copy(out, c.findings)
	return out
}

// Limits on how much accumulated state is replayed into the next pass's
// prompt. The digest competes with file content for context window space.
const (
	maxContextFindings  = 20
	maxContextSummaries = 30
	maxContextNotes     = 10
)

// NextPassContext renders a deterministic textual digest of accumulated state
// for injection into the next pass's documentation bundle. Findings touching
// the upcoming files sort first, then by severity descending; order is fully
// determined by the accumulated state so repeated runs produce identical
// prompts.
func (c *Context) NextPassContext(upcoming []string) string {
	if len(c.summaries) == 0 && len(c.findings) == 0 && len(c.notes) == 0 {
		return ""
	}

	upcomingSet := make(map[string]bool, len(upcoming))
	for _, p := range upcoming {
		upcomingSet[p] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Context From Previous Passes (pass %d complete)\n\n", c.currentPass)

	if len(c.findings) > 0 {
		b.WriteString("### Findings So Far\n\n")
		ordered := make([]Finding, len(c.findings))
		copy(ordered, c.findings)
		sort.SliceStable(ordered, func(i, j int) bool {
			ri, rj := upcomingSet[ordered[i].File], upcomingSet[ordered[j].File]
			if ri != rj {
				return ri
			}
			return ordered[i].Severity > ordered[j].Severity
		})
		n := len(ordered)
		if n > maxContextFindings {
			n = maxContextFindings
		}
		for _, f := range ordered[:n] {
			loc := ""
			if f.File != "" {
				loc = fmt.Sprintf(" [%s]", f.File)
			}
			fmt.Fprintf(&b, "- (%s, severity %d, pass %d)%s %s\n", f.Type, f.Severity, f.PassNumber, loc, f.Description)
		}
		if len(ordered) > n {
			fmt.Fprintf(&b, "- ...and %d more findings\n", len(ordered)-n)
		}
		b.WriteString("\n")
	}

	if len(c.summaries) > 0 {
		b.WriteString("### Files Reviewed\n\n")
		n := len(c.summaries)
		start := 0
		if n > maxContextSummaries {
			start = n - maxContextSummaries
		}
		for _, s := range c.summaries[start:] {
			fmt.Fprintf(&b, "- %s: %s (pass %d)\n", s.Path, s.Description, s.PassNumber)
		}
		b.WriteString("\n")
	}

	if len(c.notes) > 0 {
		b.WriteString("### General Notes\n\n")
		n := len(c.notes)
		start := 0
		if n > maxContextNotes {
			start = n - maxContextNotes
		}
		for _, note := range c.notes[start:] {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	return b.String()
}
