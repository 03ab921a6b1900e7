// Package main provides the entry point for the memoQ QA resolver CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qaresolver",
	Short: "memoQ QA warning resolver",
	Long:  "qaresolver reads memoQ bilingual MQXLIFF files, finds the QA warnings embedded in them, and resolves terminology and consistency errors automatically or interactively.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
