package review

import (
	"time"
)

// FileRecord is one input file. Owned by the caller; the review core never
// mutates it.
type FileRecord struct {
	Path         string `json:"path"`
	RelativePath string `json:"relativePath"`
	Content      string `json:"-"`
}

// FindingType classifies an extracted issue.
type FindingType string

const (
	FindingBug             FindingType = "bug"
	FindingSecurity        FindingType = "security"
	FindingPerformance     FindingType = "performance"
	FindingMaintainability FindingType = "maintainability"
)

// Finding is a discrete issue pulled out of a pass's output.
type Finding struct {
	Type        FindingType `json:"type"`
	Description string      `json:"description"`
	File        string      `json:"file,omitempty"`
	Severity    int         `json:"severity"` // 1 (minor) to 10 (critical)
	PassNumber  int         `json:"passNumber"`
}

// FileSummary records what a pass learned about one file.
type FileSummary struct {
	Path        string   `json:"path"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	KeyElements []string `json:"keyElements,omitempty"`
	PassNumber  int      `json:"passNumber"`
}

// PassCost is the token and dollar accounting for a single pass.
type PassCost struct {
	PassNumber    int     `json:"passNumber"`
	InputTokens   int     `json:"inputTokens"`
	OutputTokens  int     `json:"outputTokens"`
	TotalTokens   int     `json:"totalTokens"`
	EstimatedCost float64 `json:"estimatedCost"`
}

// Cost aggregates accounting over all passes. The aggregate fields equal the
// sum over PerPass at all times; AddPass is the only mutator.
type Cost struct {
	InputTokens              int        `json:"inputTokens"`
	OutputTokens             int        `json:"outputTokens"`
	TotalTokens              int        `json:"totalTokens"`
	EstimatedCost            float64    `json:"estimatedCost"`
	FormattedCost            string     `json:"formattedCost"`
	PassCount                int        `json:"passCount"`
	PerPass                  []PassCost `json:"perPassCosts"`
	ContextMaintenanceFactor float64    `json:"contextMaintenanceFactor"`
}

// AddPass folds one pass's accounting into the aggregate.
func (c *Cost) AddPass(p PassCost) {
	c.PerPass = append(c.PerPass, p)
	c.InputTokens += p.InputTokens
	c.OutputTokens += p.OutputTokens
	c.TotalTokens += p.TotalTokens
	c.EstimatedCost += p.EstimatedCost
	c.PassCount = len(c.PerPass)
}

// Structured carries machine-readable review data alongside the prose report.
type Structured struct {
	Findings []Finding `json:"findings,omitempty"`
	Grade    string    `json:"grade,omitempty"`
}

// Result is the output of a review run, single- or multi-pass.
type Result struct {
	Content     string      `json:"content"`
	Files       []string    `json:"files"`
	ReviewType  string      `json:"reviewType"`
	ProjectName string      `json:"projectName,omitempty"`
	Provider    string      `json:"provider,omitempty"`
	Model       string      `json:"model,omitempty"`
	RunID       string      `json:"runId"`
	Timestamp   time.Time   `json:"timestamp"`
	Cost        *Cost       `json:"costInfo,omitempty"`
	MultiPass   bool        `json:"isMultiPass"`
	TotalPasses int         `json:"totalPasses"`
	Structured  *Structured `json:"structuredData,omitempty"`
}

// Options controls a single generation call.
type Options struct {
	ReviewType        string
	MaxTokens         int
	Temperature       float64
	MaintenanceFactor float64
	PassNumber        int
	TotalPasses       int
	Rules             *Rules
}
