package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alpdilgen/memoq-qa-resolver/internal/annotation"
	"github.com/alpdilgen/memoq-qa-resolver/internal/config"
	"github.com/alpdilgen/memoq-qa-resolver/internal/console"
	"github.com/alpdilgen/memoq-qa-resolver/internal/detect"
	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
	"github.com/alpdilgen/memoq-qa-resolver/internal/oracle"
	"github.com/alpdilgen/memoq-qa-resolver/internal/report"
	"github.com/alpdilgen/memoq-qa-resolver/internal/resolve"
)

var resolveCommand = &cobra.Command{
	Use:   "resolve",
	Short: "Detect and resolve QA warnings in an MQXLIFF file",
	Long: `Parses the file, backs it up, then walks each requested QA category:
every detected error is evaluated by the oracle and either fixed in place or
flagged as ignored. Without --auto each decision is confirmed on the terminal.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runResolveCmd,
}

var (
	resolveConfigPath      string
	resolveFile            string
	resolveCategories      []string
	resolveAuto            bool
	resolveModel           string
	resolveDebug           bool
	resolveIgnoreRemaining bool
	resolveAPIKey          string
	resolveReportDir       string
)

func init() {
	// Config file flag (processed first)
	resolveCommand.Flags().StringVar(&resolveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	resolveCommand.Flags().StringVarP(&resolveFile, "file", "f", "", "Path to the MQXLIFF file to process")
	resolveCommand.Flags().StringSliceVarP(&resolveCategories, "categories", "c", nil, "QA categories to process (default: all)")
	resolveCommand.Flags().BoolVarP(&resolveAuto, "auto", "a", false, "Apply oracle decisions without prompting")
	resolveCommand.Flags().StringVarP(&resolveModel, "model", "m", "", "Oracle model id")
	resolveCommand.Flags().BoolVarP(&resolveDebug, "debug", "d", false, "Verbose logging; also disables the already-translated shortcut")
	resolveCommand.Flags().BoolVarP(&resolveIgnoreRemaining, "ignore-remaining", "i", false, "Flag all leftover uncategorized warnings as ignored after processing")
	resolveCommand.Flags().StringVar(&resolveReportDir, "report-dir", "", "Directory for the run report (default: current directory)")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	resolveCommand.Flags().StringVar(&resolveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(resolveCommand)
}

func runResolveCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if resolveConfigPath != "" {
		loadedCfg, err := config.LoadConfig(resolveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("file") {
		cfg.File = resolveFile
	}
	if cmd.Flags().Changed("categories") {
		cfg.Categories = resolveCategories
	}
	if cmd.Flags().Changed("auto") {
		cfg.Auto = resolveAuto
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = resolveModel
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = resolveDebug
	}
	if cmd.Flags().Changed("ignore-remaining") {
		cfg.IgnoreRemaining = resolveIgnoreRemaining
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = resolveAPIKey
	}
	if cmd.Flags().Changed("report-dir") {
		cfg.ReportDir = resolveReportDir
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		Categories: detect.CategoryNames(),
		Model:      oracle.DefaultModel,
		ReportDir:  ".",
	})

	// Step 4: Validate
	if cfg.File == "" {
		return fmt.Errorf("--file is required (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	printer := console.NewPrinter(os.Stdout)

	// Step 5: Oracle client. A missing key downgrades the run instead of
	// failing it: every decision becomes "no fix needed".
	var client oracle.Client
	if cfg.APIKey == "" {
		printer.Notice("No API key configured; oracle decisions default to no-fix.")
		logger.Warn("running without oracle API key")
		client = oracle.Disabled("no API key configured")
	} else {
		client, err = oracle.NewClient(ctx, oracle.DefaultConfig().WithModel(cfg.Model), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create oracle client: %w", err)
		}
	}
	defer func() { _ = client.Close() }()

	// Step 6: Parse. A timestamped backup is written before anything else.
	doc, err := mqxliff.Parse(cfg.File)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", cfg.File, err)
	}
	logger.Info("parsed document", zap.String("file", cfg.File), zap.Int("units", len(doc.Units())))

	registry := detect.Registry(logger)
	for _, name := range cfg.Categories {
		if _, ok := registry[name]; !ok {
			return fmt.Errorf("unknown category: %s", name)
		}
	}

	var asker resolve.Asker
	if !cfg.Auto {
		asker = console.NewPrompter(os.Stdin, os.Stdout)
	}

	engine := resolve.NewEngine(doc, registry, oracle.NewEvaluator(client, cfg.Model, logger), asker,
		resolve.Options{Auto: cfg.Auto, Debug: cfg.Debug}, logger)

	// Step 7: Process each category, saving after every category that
	// changed something. An operator abort stops further categories but
	// keeps everything already resolved.
	processed := orderedCategories(cfg.Categories)
	total, categoryResults, savedPath, runErr := processCategories(ctx, engine, printer, doc, cfg.File, processed)
	if runErr != nil {
		logger.Warn("run aborted", zap.Error(runErr))
	}

	// Step 8: Bulk-ignore leftovers. Only codes owned by the categories
	// processed this run stay visible; an abort ends the run with whatever
	// was already saved, without the bulk pass.
	bulkIgnored := 0
	if cfg.IgnoreRemaining && runErr == nil {
		bulkIgnored = annotation.IgnoreRemaining(doc, excludedCodes(registry, processed))
		logger.Info("ignored remaining warnings", zap.Int("count", bulkIgnored))
	}

	if bulkIgnored > 0 {
		if err := doc.Save(cfg.File); err != nil {
			return fmt.Errorf("failed to save %s: %w", cfg.File, err)
		}
		savedPath = cfg.File
	}

	reportPath, err := report.Write(cfg.ReportDir, report.Summary{
		SourcePath:  cfg.File,
		SavedPath:   savedPath,
		Categories:  categoryResults,
		BulkIgnored: bulkIgnored,
	})
	if err != nil {
		logger.Warn("failed to write report", zap.Error(err))
	}

	printer.RunSummary(total, bulkIgnored, savedPath, reportPath)
	return runErr
}

// processCategories runs the engine over each category in order, saving the
// document after every category that changed it. Processing stops at the
// first category error; everything already applied stays saved.
func processCategories(ctx context.Context, engine *resolve.Engine, printer *console.Printer, doc *mqxliff.Document, path string, categories []string) (resolve.Stats, []report.CategoryResult, string, error) {
	var total resolve.Stats
	var results []report.CategoryResult
	savedPath := ""

	for _, name := range categories {
		stats, err := engine.ProcessCategory(ctx, name)
		total.Merge(stats)
		results = append(results, report.CategoryResult{Name: name, Stats: stats})
		printer.CategorySummary(name, stats)
		if stats.Fixed+stats.Ignored > 0 {
			if serr := doc.Save(path); serr != nil {
				return total, results, savedPath, fmt.Errorf("failed to save %s: %w", path, serr)
			}
			savedPath = path
		}
		if err != nil {
			return total, results, savedPath, err
		}
	}
	return total, results, savedPath, nil
}

// excludedCodes collects the error codes owned by the categories processed
// this run. Unresolved findings of a processed category stay visible for a
// later run; every other warning is fair game for the bulk-ignore pass.
func excludedCodes(registry map[string]detect.Entry, processed []string) map[string]bool {
	excluded := make(map[string]bool)
	for _, name := range processed {
		for _, code := range registry[name].Codes {
			excluded[code] = true
		}
	}
	return excluded
}

// orderedCategories returns the requested categories in registry processing
// order, so runs are deterministic regardless of flag order.
func orderedCategories(requested []string) []string {
	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		want[name] = true
	}
	var ordered []string
	for _, name := range detect.CategoryNames() {
		if want[name] {
			ordered = append(ordered, name)
		}
	}
	return ordered
}
