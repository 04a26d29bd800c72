package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/facet/internal/models"
	"github.com/dshills/facet/internal/providers"
	"github.com/dshills/facet/internal/tokens"
)

// PassResult is one pass's output, kept for consolidation.
type PassResult struct {
	PassNumber int
	Files      []string
	Content    string
}

// Consolidator merges per-pass outputs into one final report. It must not
// fail the review: implementations recover internally and only return an
// error as a last resort, in which case the interim content stands.
type Consolidator interface {
	Consolidate(ctx context.Context, interim *Result, passes []PassResult) (string, *PassCost, error)
}

// Strategy orchestrates multi-pass review: token analysis, the sequential
// pass loop with context propagation, and consolidation.
type Strategy struct {
	gen       PassGenerator
	analyzer  *tokens.Analyzer
	extractor FindingExtractor
	cons      Consolidator
	log       *zap.Logger
}

// NewStrategy wires a strategy. A nil extractor gets the keyword default;
// a nil consolidator skips consolidation (interim content is final).
func NewStrategy(gen PassGenerator, analyzer *tokens.Analyzer, cons Consolidator, log *zap.Logger) *Strategy {
	if log == nil {
		log = zap.NewNop()
	}
	return &Strategy{
		gen:       gen,
		analyzer:  analyzer,
		extractor: KeywordExtractor{},
		cons:      cons,
		log:       log,
	}
}

// WithExtractor replaces the default keyword extractor.
func (s *Strategy) WithExtractor(e FindingExtractor) *Strategy {
	s.extractor = e
	return s
}

// Execute runs the full review. When the codebase fits the model's context
// window it delegates straight to the pass generator and returns its result
// unchanged. Otherwise it reviews chunk by chunk, strictly in order: each
// pass's prompt depends on context accumulated by all prior passes, so
// passes are never parallelized.
//
// A failing pass aborts the whole review; partial multi-pass reports are
// not produced. Consolidation failures never abort: the interim multi-pass
// content is already a usable result.
func (s *Strategy) Execute(ctx context.Context, files []FileRecord, projectName, docs string, opts Options, client providers.ClientConfig) (*Result, error) {
	if !client.Initialized {
		return nil, fmt.Errorf("API client for %s is not initialized; configure credentials before reviewing", client.Provider)
	}

	analysis := s.analyzer.AnalyzeFiles(tokenFiles(files), tokens.Options{
		ReviewType:        opts.ReviewType,
		Provider:          client.Provider,
		ModelName:         client.Model,
		MaintenanceFactor: opts.MaintenanceFactor,
	})

	if !analysis.Recommendation.ChunkingRecommended {
		return s.gen.Generate(ctx, files, projectName, docs, opts)
	}

	chunks := analysis.Recommendation.Chunks
	totalPasses := len(chunks)
	s.log.Info("codebase exceeds context window, running multi-pass review",
		zap.Int("passes", totalPasses),
		zap.Int("estimatedTokens", analysis.EstimatedTotalTokens),
		zap.Int("contextWindow", analysis.ContextWindow),
	)

	byPath := make(map[string]FileRecord, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}

	rc := NewContext()
	agg := &Cost{ContextMaintenanceFactor: opts.MaintenanceFactor}
	var sections strings.Builder
	passes := make([]PassResult, 0, totalPasses)

	for _, chunk := range chunks {
		pass := rc.StartPass()

		chunkFiles := make([]FileRecord, 0, len(chunk.Files))
		for _, p := range chunk.Files {
			chunkFiles = append(chunkFiles, byPath[p])
		}

		if chunk.Oversized {
			s.log.Warn("single file exceeds the context window; reviewing it alone and relying on provider-side truncation",
				zap.String("file", chunk.Files[0]),
				zap.Int("tokens", chunk.Tokens),
			)
		}

		mergedDocs := docs
		if digest := rc.NextPassContext(chunk.Files); digest != "" {
			if mergedDocs != "" {
				mergedDocs += "\n\n"
			}
			mergedDocs += digest
		}

		passOpts := opts
		passOpts.PassNumber = pass
		passOpts.TotalPasses = totalPasses

		res, err := s.gen.Generate(ctx, chunkFiles, projectName, mergedDocs, passOpts)
		if err != nil {
			return nil, fmt.Errorf("pass %d of %d: %w", pass, totalPasses, err)
		}

		findings := s.extractor.Extract(res.Content, chunkFiles, pass)
		findings = ApplySeverityOverrides(findings, opts.Rules)
		for _, f := range findings {
			rc.AddFinding(f)
		}

		for _, f := range chunkFiles {
			rc.AddFileSummary(FileSummary{
				Path:        f.RelativePath,
				Type:        inferLang(f.RelativePath),
				Description: fmt.Sprintf("reviewed in pass %d (%d tokens)", pass, analysis.PerFileTokens[f.Path]),
				PassNumber:  pass,
			})
		}

		agg.AddPass(passCostOf(res, pass))

		fmt.Fprintf(&sections, "\n## Pass %d: Review of %d Files\n\n", pass, len(chunkFiles))
		sections.WriteString(res.Content)
		sections.WriteString("\n")

		passes = append(passes, PassResult{
			PassNumber: pass,
			Files:      relativePaths(chunkFiles),
			Content:    res.Content,
		})
	}

	agg.FormattedCost = models.FormatCost(agg.EstimatedCost)

	interim := &Result{
		Content:     buildMultiPassSummary(analysis, agg, totalPasses) + sections.String(),
		Files:       relativePaths(files),
		ReviewType:  opts.ReviewType,
		ProjectName: projectName,
		Provider:    client.Provider,
		Model:       client.Model,
		RunID:       uuid.NewString(),
		Timestamp:   time.Now(),
		Cost:        agg,
		MultiPass:   true,
		TotalPasses: totalPasses,
		Structured:  &Structured{Findings: rc.Findings()},
	}

	if s.cons == nil {
		return interim, nil
	}

	content, consPass, err := s.cons.Consolidate(ctx, interim, passes)
	if err != nil || strings.TrimSpace(content) == "" {
		s.log.Warn("consolidation unavailable, returning interim multi-pass report", zap.Error(err))
		return interim, nil
	}

	interim.Content = content
	if consPass != nil {
		agg.AddPass(*consPass)
		agg.FormattedCost = models.FormatCost(agg.EstimatedCost)
		interim.TotalPasses = totalPasses + 1
	}
	return interim, nil
}

// buildMultiPassSummary renders the header prepended to the interim report.
func buildMultiPassSummary(analysis tokens.Analysis, cost *Cost, totalPasses int) string {
	var b strings.Builder
	b.WriteString("# Multi-Pass Review\n\n")
	fmt.Fprintf(&b, "- Passes: %d\n", totalPasses)
	fmt.Fprintf(&b, "- Files analyzed: %d (%d bytes)\n", len(analysis.PerFileTokens), analysis.TotalBytes)
	fmt.Fprintf(&b, "- Estimated tokens: %d (context window %d)\n", analysis.EstimatedTotalTokens, analysis.ContextWindow)
	if totalPasses > 0 && analysis.ContextWindow > 0 {
		utilization := float64(analysis.EstimatedTotalTokens) / float64(totalPasses*analysis.ContextWindow) * 100
		fmt.Fprintf(&b, "- Context utilization: %.1f%% per pass\n", utilization)
	}
	fmt.Fprintf(&b, "- Tokens used: %d in / %d out\n", cost.InputTokens, cost.OutputTokens)
	fmt.Fprintf(&b, "- Estimated cost: %s\n", cost.FormattedCost)
	return b.String()
}

func passCostOf(res *Result, passNumber int) PassCost {
	if res.Cost != nil && len(res.Cost.PerPass) > 0 {
		pc := res.Cost.PerPass[0]
		pc.PassNumber = passNumber
		return pc
	}
	return PassCost{PassNumber: passNumber}
}

func relativePaths(files []FileRecord) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelativePath
	}
	return out
}

func tokenFiles(files []FileRecord) []tokens.File {
	out := make([]tokens.File, len(files))
	for i, f := range files {
		out[i] = tokens.File{Path: f.Path, Content: f.Content}
	}
	return out
}
