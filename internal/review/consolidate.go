package review

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/facet/internal/models"
	"github.com/dshills/facet/internal/providers"
)

const consolidationSystemPrompt = `You are consolidating a multi-pass code review into one coherent final report. You receive the raw output of every pass. Merge them.

Produce a Markdown report with exactly these sections:
1. "# Consolidated Code Review Report" title.
2. "## Executive Summary" - three to five sentences on overall code health.
3. "## Grade" - a single letter grade from A+ to F, with a short per-category breakdown (security, bugs, performance, maintainability).
4. "## Critical Issues" - prioritized list of the most important problems, deduplicated across passes. Name files.
5. "## Strengths" - what the codebase does well.
6. "## Detailed Findings" - remaining issues grouped by category.
7. "## Recommendations" - concrete next steps in priority order.

Deduplicate aggressively: passes overlap in what they notice. Never invent issues not present in the pass outputs.`

// ConsolidationService is the two-tier consolidator: an LLM merge first,
// falling back to heuristic extraction when the LLM call fails or returns
// nothing. Consolidation never causes a review to fail.
type ConsolidationService struct {
	client providers.Generator
	model  models.Info
	log    *zap.Logger
}

// NewConsolidationService wires a consolidator onto an existing provider client.
func NewConsolidationService(client providers.Generator, model models.Info, log *zap.Logger) *ConsolidationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConsolidationService{client: client, model: model, log: log}
}

// Consolidate implements Consolidator. The returned PassCost is non-nil only
// when the AI tier produced the report (the fallback makes no LLM calls).
func (c *ConsolidationService) Consolidate(ctx context.Context, interim *Result, passes []PassResult) (string, *PassCost, error) {
	content, pc, err := c.aiConsolidate(ctx, interim)
	if err == nil && strings.TrimSpace(content) != "" {
		return content, pc, nil
	}
	c.log.Warn("AI consolidation unavailable, generating heuristic report", zap.Error(err))
	return FallbackReport(interim, passes), nil, nil
}

func (c *ConsolidationService) aiConsolidate(ctx context.Context, interim *Result) (string, *PassCost, error) {
	if c.client == nil {
		return "", nil, fmt.Errorf("no consolidation client configured")
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Project: %s\nReview type: %s\nPasses: %d\n\n", interim.ProjectName, interim.ReviewType, interim.TotalPasses)
	user.WriteString("--- BEGIN MULTI-PASS OUTPUT ---\n")
	user.WriteString(interim.Content)
	user.WriteString("\n--- END MULTI-PASS OUTPUT ---\n")

	maxTokens := c.model.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	resp, err := c.client.Generate(ctx, providers.Request{
		System:    consolidationSystemPrompt,
		User:      user.String(),
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", nil, fmt.Errorf("empty consolidation response")
	}

	in := resp.InputTokens
	if in == 0 {
		in = user.Len() / 4
	}
	out := resp.OutputTokens
	if out == 0 {
		out = len(resp.Content) / 4
	}
	pc := &PassCost{
		PassNumber:    interim.TotalPasses + 1,
		InputTokens:   in,
		OutputTokens:  out,
		TotalTokens:   in + out,
		EstimatedCost: c.model.Cost(in, out),
	}
	return resp.Content, pc, nil
}
