package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/facet/internal/review"
)

// TextWriter outputs a human-readable report for terminal consumption.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}

	ew.printf("Facet Code Review (%s)\n", result.ReviewType)
	if result.ProjectName != "" {
		ew.printf("Project: %s\n", result.ProjectName)
	}
	ew.printf("Model: %s/%s\n", result.Provider, result.Model)
	if result.MultiPass {
		ew.printf("Passes: %d (multi-pass)\n", result.TotalPasses)
	}
	ew.printf("Files reviewed: %d\n", len(result.Files))
	if result.Cost != nil {
		ew.printf("Tokens: %d in / %d out, %s\n",
			result.Cost.InputTokens, result.Cost.OutputTokens, result.Cost.FormattedCost)
	}
	ew.println(strings.Repeat("─", 60))
	ew.println("")
	ew.println(result.Content)

	return ew.err
}

// errWriter folds write errors so formatting code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
