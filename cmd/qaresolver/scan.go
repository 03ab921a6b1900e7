package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alpdilgen/memoq-qa-resolver/internal/console"
	"github.com/alpdilgen/memoq-qa-resolver/internal/detect"
	"github.com/alpdilgen/memoq-qa-resolver/internal/mqxliff"
)

var scanCommand = &cobra.Command{
	Use:   "scan",
	Short: "List QA warnings without modifying the file",
	Long: `Parses the file read-only and prints every detected error per category,
with the extracted terminology or consistency details. No backup is created
and nothing is written.`,
	RunE: runScanCmd,
}

var (
	scanFile       string
	scanCategories []string
	scanDebug      bool
)

func init() {
	scanCommand.Flags().StringVarP(&scanFile, "file", "f", "", "Path to the MQXLIFF file to scan")
	scanCommand.Flags().StringSliceVarP(&scanCategories, "categories", "c", nil, "QA categories to scan (default: all)")
	scanCommand.Flags().BoolVarP(&scanDebug, "debug", "d", false, "Verbose logging")
	_ = scanCommand.MarkFlagRequired("file")

	rootCmd.AddCommand(scanCommand)
}

func runScanCmd(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(scanDebug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Load, not Parse: a scan must not leave a backup behind.
	doc, err := mqxliff.Load(scanFile)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", scanFile, err)
	}

	registry := detect.Registry(logger)
	categories := scanCategories
	if len(categories) == 0 {
		categories = detect.CategoryNames()
	}
	for _, name := range categories {
		if _, ok := registry[name]; !ok {
			return fmt.Errorf("unknown category: %s", name)
		}
	}

	printer := console.NewPrinter(os.Stdout)
	printer.ScanHeader(scanFile, len(doc.Units()))

	for _, name := range orderedCategories(categories) {
		findings := registry[name].Detector.Detect(doc)
		printer.CategoryFindings(name, findings)
	}
	return nil
}
