package tokens

import (
	"sort"

	"github.com/dshills/facet/internal/models"
)

// File is the unit of analysis: a path and its full content.
type File struct {
	Path    string
	Content string
}

// Options controls how an analysis is performed.
type Options struct {
	ReviewType        string
	Provider          string
	ModelName         string
	MaintenanceFactor float64
}

// Chunk is a set of file paths assigned to one review pass.
type Chunk struct {
	Files []string
	// Tokens is the raw (pre-overhead) token sum of the chunk's files.
	Tokens int
	// Oversized marks a single file whose content alone exceeds the
	// context window. Downstream must handle this explicitly; the
	// analyzer never drops a file.
	Oversized bool
}

// Recommendation describes whether and how to chunk the input.
type Recommendation struct {
	ChunkingRecommended bool
	Chunks              []Chunk
}

// Analysis is the result of analyzing a file set against a model.
type Analysis struct {
	TotalTokens          int
	EstimatedTotalTokens int
	ContextWindow        int
	TotalBytes           int
	EstimatedPasses      int
	PerFileTokens        map[string]int
	Recommendation       Recommendation
}

// promptOverhead is the review-type multiplier covering instructions,
// formatting scaffolding, and expected response headroom.
var promptOverhead = map[string]float64{
	"architectural":  1.15,
	"security":       1.10,
	"performance":    1.10,
	"quick-fixes":    1.05,
	"best-practices": 1.10,
}

const defaultOverhead = 1.10

// Analyzer estimates token usage and plans review chunks.
type Analyzer struct {
	est *Estimator
}

// NewAnalyzer creates an analyzer backed by a model-appropriate estimator.
// A nil estimator (codec construction failed) degrades to character counting.
func NewAnalyzer(modelName string) *Analyzer {
	est, err := NewEstimator(modelName)
	if err != nil {
		est = nil
	}
	return &Analyzer{est: est}
}

// AnalyzeFiles estimates total token usage for files under opts and, when the
// estimate exceeds the model's context window, plans chunks such that every
// file lands in exactly one chunk.
func (a *Analyzer) AnalyzeFiles(files []File, opts Options) Analysis {
	perFile := make(map[string]int, len(files))
	total := 0
	bytes := 0
	for _, f := range files {
		n := a.est.Count(f.Content)
		perFile[f.Path] = n
		total += n
		bytes += len(f.Content)
	}

	overhead, ok := promptOverhead[opts.ReviewType]
	if !ok {
		overhead = defaultOverhead
	}
	factor := opts.MaintenanceFactor
	if factor < 0 {
		factor = 0
	}
	estimated := int(float64(total) * overhead * (1 + factor))

	window := models.Lookup(opts.Provider, opts.ModelName).ContextWindow

	an := Analysis{
		TotalTokens:          total,
		EstimatedTotalTokens: estimated,
		ContextWindow:        window,
		TotalBytes:           bytes,
		PerFileTokens:        perFile,
	}

	if estimated <= window || len(files) == 0 {
		an.EstimatedPasses = 1
		an.Recommendation = Recommendation{
			ChunkingRecommended: false,
			Chunks:              []Chunk{chunkOf(files, perFile, window)},
		}
		return an
	}

	chunks := planChunks(files, perFile, estimated, window)
	an.EstimatedPasses = len(chunks)
	an.Recommendation = Recommendation{
		ChunkingRecommended: true,
		Chunks:              chunks,
	}
	return an
}

// planChunks distributes files over ceil(estimated/window) chunks by greedy
// load balancing: files sorted by token count descending, each assigned to
// the lightest chunk. If any chunk's raw token sum still exceeds the window,
// the chunk count is raised and planning retried, up to one file per chunk.
// A single file larger than the window becomes its own oversized chunk.
func planChunks(files []File, perFile map[string]int, estimated, window int) []Chunk {
	passes := (estimated + window - 1) / window
	if passes < 2 {
		passes = 2
	}

	sorted := make([]File, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return perFile[sorted[i].Path] > perFile[sorted[j].Path]
	})

	for ; passes < len(files); passes++ {
		chunks := distribute(sorted, perFile, passes)
		if fitsWindow(chunks, window) {
			return markOversized(chunks, window)
		}
	}

	// One file per chunk. Oversized files are flagged, never dropped.
	chunks := make([]Chunk, 0, len(sorted))
	for _, f := range sorted {
		chunks = append(chunks, Chunk{
			Files:  []string{f.Path},
			Tokens: perFile[f.Path],
		})
	}
	return markOversized(chunks, window)
}

func distribute(sorted []File, perFile map[string]int, passes int) []Chunk {
	chunks := make([]Chunk, passes)
	for _, f := range sorted {
		lightest := 0
		for i := 1; i < passes; i++ {
			if chunks[i].Tokens < chunks[lightest].Tokens {
				lightest = i
			}
		}
		chunks[lightest].Files = append(chunks[lightest].Files, f.Path)
		chunks[lightest].Tokens += perFile[f.Path]
	}
	// Drop empty chunks (more passes than files).
	out := chunks[:0]
	for _, c := range chunks {
		if len(c.Files) > 0 {
			out = append(out, c)
		}
	}
	return out
}

func fitsWindow(chunks []Chunk, window int) bool {
	for _, c := range chunks {
		if c.Tokens > window && len(c.Files) > 1 {
			return false
		}
	}
	return true
}

func markOversized(chunks []Chunk, window int) []Chunk {
	for i := range chunks {
		if len(chunks[i].Files) == 1 && chunks[i].Tokens > window {
			chunks[i].Oversized = true
		}
	}
	return chunks
}

func chunkOf(files []File, perFile map[string]int, window int) Chunk {
	c := Chunk{}
	for _, f := range files {
		c.Files = append(c.Files, f.Path)
		c.Tokens += perFile[f.Path]
	}
	if len(c.Files) == 1 && c.Tokens > window {
		c.Oversized = true
	}
	return c
}
