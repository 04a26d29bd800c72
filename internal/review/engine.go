package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/facet/internal/models"
	"github.com/dshills/facet/internal/providers"
)

// PassGenerator produces a review for one set of files in one LLM call.
// The multi-pass strategy uses it for individual chunk passes and for the
// non-chunked shortcut.
type PassGenerator interface {
	Generate(ctx context.Context, files []FileRecord, projectName, docs string, opts Options) (*Result, error)
}

// Engine is the default PassGenerator: it builds prompts, calls the
// provider, and accounts tokens and cost against the model registry.
type Engine struct {
	client providers.Generator
	model  models.Info
	log    *zap.Logger
}

// NewEngine creates an engine for one provider/model pairing.
func NewEngine(client providers.Generator, model models.Info, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{client: client, model: model, log: log}
}

// Generate runs a single review pass over files.
func (e *Engine) Generate(ctx context.Context, files []FileRecord, projectName, docs string, opts Options) (*Result, error) {
	system := SystemPrompt(opts.ReviewType)
	user := BuildUserPrompt(files, projectName, docs, opts)

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = e.model.MaxOutputTokens
	}
	if maxTokens == 0 {
		maxTokens = 8192
	}

	resp, err := e.client.Generate(ctx, providers.Request{
		System:      system,
		User:        user,
		MaxTokens:   maxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", e.client.Name(), err)
	}

	passNumber := opts.PassNumber
	if passNumber == 0 {
		passNumber = 1
	}

	pass := e.accountPass(passNumber, system+user, resp)
	e.log.Debug("pass complete",
		zap.Int("pass", passNumber),
		zap.Int("files", len(files)),
		zap.Int("inputTokens", pass.InputTokens),
		zap.Int("outputTokens", pass.OutputTokens),
		zap.Float64("cost", pass.EstimatedCost),
	)

	cost := &Cost{ContextMaintenanceFactor: opts.MaintenanceFactor}
	cost.AddPass(pass)
	cost.FormattedCost = models.FormatCost(cost.EstimatedCost)

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.RelativePath
	}

	return &Result{
		Content:     resp.Content,
		Files:       paths,
		ReviewType:  opts.ReviewType,
		ProjectName: projectName,
		Provider:    e.client.Name(),
		Model:       e.model.Name,
		RunID:       uuid.NewString(),
		Timestamp:   time.Now(),
		Cost:        cost,
		MultiPass:   false,
		TotalPasses: 1,
	}, nil
}

// accountPass builds the pass cost record. Providers that do not report
// usage get a character-based estimate; accounting problems never block
// report generation.
func (e *Engine) accountPass(passNumber int, prompt string, resp providers.Response) PassCost {
	in := resp.InputTokens
	if in == 0 {
		in = len(prompt) / 4
	}
	out := resp.OutputTokens
	if out == 0 {
		out = len(resp.Content) / 4
	}
	return PassCost{
		PassNumber:    passNumber,
		InputTokens:   in,
		OutputTokens:  out,
		TotalTokens:   in + out,
		EstimatedCost: e.model.Cost(in, out),
	}
}
