package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/facet/internal/cache"
	"github.com/dshills/facet/internal/config"
	"github.com/dshills/facet/internal/discover"
	"github.com/dshills/facet/internal/logging"
	"github.com/dshills/facet/internal/models"
	"github.com/dshills/facet/internal/output"
	"github.com/dshills/facet/internal/providers"
	"github.com/dshills/facet/internal/redact"
	"github.com/dshills/facet/internal/review"
	"github.com/dshills/facet/internal/tokens"
)

// Shared review/estimate flags
var (
	flagType        string
	flagProvider    string
	flagModel       string
	flagFormat      string
	flagOut         string
	flagInclude     string
	flagExclude     string
	flagRules       string
	flagDocs        string
	flagProjectName string
	flagMaxTokens   int
	flagTemperature float64
	flagMaintenance float64
	flagNoRedact    bool
	flagNoCache     bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagType, "type", "", "Review type (architectural, security, performance, quick-fixes, best-practices)")
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, openrouter)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "Include file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "Rules file path")
	cmd.Flags().StringVar(&flagDocs, "docs", "", "Project documentation files to include in the prompt (comma-separated)")
	cmd.Flags().StringVar(&flagProjectName, "project-name", "", "Project name (default: directory name)")
	cmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0, "Maximum response tokens per pass")
	cmd.Flags().Float64Var(&flagTemperature, "temperature", 0, "Sampling temperature")
	cmd.Flags().Float64Var(&flagMaintenance, "maintenance-factor", 0, "Cross-pass context overhead factor (0.0-1.0)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the result cache")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagType != "" {
		m["review_type"] = flagType
	}
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagRules != "" {
		m["rules_file"] = flagRules
	}
	if flagMaxTokens > 0 {
		m["max_tokens"] = fmt.Sprintf("%d", flagMaxTokens)
	}
	if flagTemperature > 0 {
		m["temperature"] = fmt.Sprintf("%g", flagTemperature)
	}
	if flagMaintenance > 0 {
		m["maintenance_factor"] = fmt.Sprintf("%g", flagMaintenance)
	}
	return m
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func discoverOptions(cfg config.Config) discover.Options {
	opts := discover.Options{
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		MaxFileSize: int(cfg.MaxFileSize),
	}
	if flagInclude != "" {
		opts.Include = splitComma(flagInclude)
	}
	if flagExclude != "" {
		opts.Exclude = append(opts.Exclude, splitComma(flagExclude)...)
	}
	return opts
}

// resolveRoot turns the optional positional arg into an absolute project root.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

func projectNameFor(root string) string {
	if flagProjectName != "" {
		return flagProjectName
	}
	return filepath.Base(root)
}

func loadDocs() (string, error) {
	if flagDocs == "" {
		return "", nil
	}
	var b strings.Builder
	for _, path := range splitComma(flagDocs) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading docs file %s: %w", path, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.Write(data)
	}
	return b.String(), nil
}

// contentDigest hashes every file's path and content so any edit, rename, or
// added file invalidates cached results.
func contentDigest(files []review.FileRecord) string {
	var b strings.Builder
	for _, f := range files {
		b.WriteString(f.RelativePath)
		b.WriteByte('\n')
		b.WriteString(f.Content)
		b.WriteByte('\n')
	}
	return cache.HashKey(b.String())
}

var reviewCmd = &cobra.Command{
	Use:   "review [path]",
	Short: "Review a codebase",
	Long: "Review the codebase rooted at path (default: current directory). Projects\n" +
		"that exceed the model's context window are reviewed in multiple passes and\n" +
		"consolidated into a single report.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		log, err := logging.New(flagVerbose)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		root, err := resolveRoot(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		runReview(root, cfg, log)
		return nil
	},
}

func runReview(root string, cfg config.Config, log *zap.Logger) {
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}

	files, err := discover.Files(root, discoverOptions(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error discovering files: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No reviewable files found.")
		exitCode = ExitRuntimeError
		return
	}
	log.Debug("discovered files", zap.Int("count", len(files)))

	if cfg.Privacy.RedactSecrets {
		policy := redact.Policy{Paths: cfg.Privacy.RedactPaths}
		masked := 0
		for i := range files {
			content, n := redact.File(files[i].Content, files[i].RelativePath, policy)
			files[i].Content = content
			masked += n
		}
		if masked > 0 {
			log.Debug("masked secrets", zap.Int("count", masked))
		}
	}

	docs, err := loadDocs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	rules, err := review.LoadRules(cfg.RulesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	cacheEnabled := cfg.Cache.Enabled && !flagNoCache
	store, err := cache.New(cacheEnabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	key := cache.BuildCacheKey(cfg.Provider, cfg.Model, cfg.ReviewType, contentDigest(files))
	if raw, ok := store.Get(key); ok {
		var cached review.Result
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			log.Debug("cache hit", zap.String("runId", cached.RunID))
			if err := output.WriteResult(&cached, cfg.Format, flagOut); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
				exitCode = ExitRuntimeError
			}
			return
		}
	}

	clientCfg, err := providers.Resolve(cfg.Provider, cfg.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitAuthError
		return
	}
	client, err := providers.New(clientCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitAuthError
		return
	}

	info := models.Lookup(cfg.Provider, cfg.Model)
	engine := review.NewEngine(client, info, log)
	analyzer := tokens.NewAnalyzer(cfg.Model)
	cons := review.NewConsolidationService(client, info, log)
	strategy := review.NewStrategy(engine, analyzer, cons, log)

	opts := review.Options{
		ReviewType:        cfg.ReviewType,
		MaxTokens:         cfg.MaxTokens,
		Temperature:       cfg.Temperature,
		MaintenanceFactor: cfg.MaintenanceFactor,
		Rules:             rules,
	}

	result, err := strategy.Execute(context.Background(), files, projectNameFor(root), docs, opts, clientCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if providers.IsAuthError(err) {
			exitCode = ExitAuthError
		} else {
			exitCode = ExitRuntimeError
		}
		return
	}

	if err := output.WriteResult(result, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if data, err := json.Marshal(result); err == nil {
		if err := store.Put(key, string(data)); err != nil {
			log.Debug("cache store failed", zap.Error(err))
		}
	}
}

func init() {
	addReviewFlags(reviewCmd)
}
