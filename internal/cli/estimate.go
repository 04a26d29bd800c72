package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/facet/internal/config"
	"github.com/dshills/facet/internal/discover"
	"github.com/dshills/facet/internal/models"
	"github.com/dshills/facet/internal/review"
	"github.com/dshills/facet/internal/tokens"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [path]",
	Short: "Estimate tokens, passes, and cost for a review without calling any provider",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		root, err := resolveRoot(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		files, err := discover.Files(root, discoverOptions(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error discovering files: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "No reviewable files found.")
			exitCode = ExitRuntimeError
			return nil
		}

		analyzer := tokens.NewAnalyzer(cfg.Model)
		analysis := analyzer.AnalyzeFiles(tokenFilesOf(files), tokens.Options{
			ReviewType:        cfg.ReviewType,
			Provider:          cfg.Provider,
			ModelName:         cfg.Model,
			MaintenanceFactor: cfg.MaintenanceFactor,
		})

		if cfg.Format == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(analysis)
		}

		printEstimate(analysis, cfg, len(files))
		return nil
	},
}

func tokenFilesOf(files []review.FileRecord) []tokens.File {
	out := make([]tokens.File, len(files))
	for i, f := range files {
		out[i] = tokens.File{Path: f.Path, Content: f.Content}
	}
	return out
}

func printEstimate(analysis tokens.Analysis, cfg config.Config, fileCount int) {
	info := models.Lookup(cfg.Provider, cfg.Model)

	fmt.Fprintf(os.Stdout, "Model:            %s/%s\n", cfg.Provider, cfg.Model)
	fmt.Fprintf(os.Stdout, "Files:            %d (%d bytes)\n", fileCount, analysis.TotalBytes)
	fmt.Fprintf(os.Stdout, "Tokens:           %d\n", analysis.TotalTokens)
	fmt.Fprintf(os.Stdout, "Estimated tokens: %d (review type %q, maintenance factor %g)\n",
		analysis.EstimatedTotalTokens, cfg.ReviewType, cfg.MaintenanceFactor)
	fmt.Fprintf(os.Stdout, "Context window:   %d\n", analysis.ContextWindow)

	if !analysis.Recommendation.ChunkingRecommended {
		fmt.Fprintln(os.Stdout, "Passes:           1 (fits in a single pass)")
	} else {
		fmt.Fprintf(os.Stdout, "Passes:           %d\n", len(analysis.Recommendation.Chunks))
		for i, chunk := range analysis.Recommendation.Chunks {
			marker := ""
			if chunk.Oversized {
				marker = "  [exceeds context window]"
			}
			fmt.Fprintf(os.Stdout, "  pass %d: %d files, %d tokens%s\n", i+1, len(chunk.Files), chunk.Tokens, marker)
		}
	}

	// Rough cost: full input once, plus a nominal response per pass.
	passes := 1
	if analysis.Recommendation.ChunkingRecommended {
		passes = len(analysis.Recommendation.Chunks)
	}
	outTokens := passes * 2048
	estCost := info.Cost(analysis.EstimatedTotalTokens, outTokens)
	fmt.Fprintf(os.Stdout, "Estimated cost:   %s (assuming ~2048 response tokens per pass)\n", models.FormatCost(estCost))
}

func init() {
	addReviewFlags(estimateCmd)
}
