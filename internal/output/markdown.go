package output

import (
	"fmt"
	"io"

	"github.com/dshills/facet/internal/review"
)

// MarkdownWriter outputs the report with a metadata header, suitable for
// committing alongside the code or posting to a PR.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}

	ew.printf("---\n")
	ew.printf("reviewType: %s\n", result.ReviewType)
	if result.ProjectName != "" {
		ew.printf("project: %s\n", result.ProjectName)
	}
	ew.printf("model: %s/%s\n", result.Provider, result.Model)
	ew.printf("generated: %s\n", result.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	ew.printf("multiPass: %t\n", result.MultiPass)
	if result.MultiPass {
		ew.printf("passes: %d\n", result.TotalPasses)
	}
	if result.Cost != nil {
		ew.printf("cost: %s\n", result.Cost.FormattedCost)
	}
	ew.printf("---\n\n")

	ew.println(result.Content)

	if result.Structured != nil && len(result.Structured.Findings) > 0 {
		ew.printf("\n## Extracted Findings (%d)\n\n", len(result.Structured.Findings))
		for _, f := range result.Structured.Findings {
			loc := ""
			if f.File != "" {
				loc = fmt.Sprintf(" `%s`", f.File)
			}
			ew.printf("- **%s** (severity %d, pass %d)%s: %s\n",
				f.Type, f.Severity, f.PassNumber, loc, f.Description)
		}
	}

	return ew.err
}
