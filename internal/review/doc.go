// Package review implements the review core: single-pass generation,
// multi-pass orchestration over chunked codebases with cross-pass context
// propagation, heuristic finding extraction, and two-tier consolidation of
// pass outputs into a final graded report.
package review
