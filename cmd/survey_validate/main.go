// Package main provides the survey_validate CLI, which checks a survey
// dataset against its codebook and reports every discrepancy found.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "survey_validate",
	Short: "Survey dataset validation engine",
	Long:  "survey_validate checks a tabular survey dataset against the codebook describing its allowed structure: identifier uniqueness, answer-domain membership, published-frequency reconciliation, and null absence. All findings are collected and reported in one pass.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
