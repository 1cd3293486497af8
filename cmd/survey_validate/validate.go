package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/survey-validator/internal/codebook"
	"github.com/jonathan/survey-validator/internal/config"
	"github.com/jonathan/survey-validator/internal/dataset"
	"github.com/jonathan/survey-validator/internal/db"
	"github.com/jonathan/survey-validator/internal/report"
	"github.com/jonathan/survey-validator/internal/rules"
	"github.com/jonathan/survey-validator/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the survey data file against the codebook",
	Long: `Runs all four checks over the dataset: identifier uniqueness, answer-domain
membership, frequency reconciliation against the codebook's published counts,
and null absence. Every finding is reported; nothing short-circuits.

Exit status is 0 only when the dataset conforms. Violations go to stderr,
summary and progress to stdout, so the diagnostics can be redirected
independently.`,
	RunE:         runValidateCmd,
	SilenceUsage: true,
}

var (
	validateConfigPath   string
	validateDataPath     string
	validateCodebookPath string
	validateIDColumn     string
	validateWeightColumn string
	validateTolerance    float64
	validateDatabaseURL  string
	validateVerbose      bool
)

func init() {
	// Config file flag (processed first)
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	validateCmd.Flags().StringVarP(&validateDataPath, "data-path", "i", "", "Path to the survey data CSV file")
	validateCmd.Flags().StringVarP(&validateCodebookPath, "codebook-path", "s", "", "Path to the survey variables JSON file")
	validateCmd.Flags().StringVar(&validateIDColumn, "id-column", "", "Name of the unique identifier column")
	validateCmd.Flags().StringVar(&validateWeightColumn, "weight-column", "", "Name of the survey weight column")
	validateCmd.Flags().Float64Var(&validateTolerance, "tolerance", 0, "Absolute tolerance for weighted-frequency comparison (default 0.5)")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print detailed progress information")

	// Database URL can be passed as a flag, or read from env var DATABASE_URL
	validateCmd.Flags().StringVar(&validateDatabaseURL, "db-url", "", "PostgreSQL connection URL for run history (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(validateCmd)
}

// defaultConfig holds the repository-bundled input paths and the survey's
// conventional column names.
func defaultConfig() config.Config {
	return config.Config{
		DataPath:     "data/clps.csv",
		CodebookPath: "data/survey_vars.json",
		IDColumn:     "PUMFID",
		WeightColumn: "WTPP",
		Tolerance:    rules.DefaultWeightTolerance,
	}
}

func runValidateCmd(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	var cfg config.Config
	if validateConfigPath != "" {
		loadedCfg, err := config.LoadConfig(validateConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: CLI flags override config file values
	if validateDataPath != "" {
		cfg.DataPath = validateDataPath
	}
	if validateCodebookPath != "" {
		cfg.CodebookPath = validateCodebookPath
	}
	if validateIDColumn != "" {
		cfg.IDColumn = validateIDColumn
	}
	if validateWeightColumn != "" {
		cfg.WeightColumn = validateWeightColumn
	}
	if validateTolerance != 0 {
		cfg.Tolerance = validateTolerance
	}
	if validateDatabaseURL != "" {
		cfg.DatabaseURL = validateDatabaseURL
	} else if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if validateVerbose {
		cfg.Verbose = true
	}

	// Step 3: Fill remaining gaps from defaults and validate
	cfg = cfg.MergeWithDefaults(defaultConfig())
	if err := cfg.Validate(); err != nil {
		return err
	}

	rep, err := runValidation(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if !rep.Passed() {
		return fmt.Errorf("validation failed: %d violation(s) found", len(rep.Violations))
	}
	return nil
}

// runValidation loads both inputs, runs every rule, prints the report, and
// optionally persists it. A non-nil error means a structural failure (the
// input could not be interpreted); violations are returned in the report,
// never as an error.
func runValidation(ctx context.Context, cfg config.Config, out, diag io.Writer) (*types.Report, error) {
	if cfg.Verbose {
		fmt.Fprintf(out, "loading codebook from %s\n", cfg.CodebookPath)
	}
	cb, err := codebook.Load(cfg.CodebookPath)
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		fmt.Fprintf(out, "loading dataset from %s\n", cfg.DataPath)
	}
	tbl, err := dataset.Load(cfg.DataPath, cfg.IDColumn, cfg.WeightColumn)
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		fmt.Fprintf(out, "validating %d records, %d variables against %d codebook entries\n",
			len(tbl.Records), len(tbl.Variables), cb.Len())
	}

	rep := rules.RunAll(tbl, cb, cfg.Tolerance)

	printer := report.NewPrinter(out, diag)
	printer.PrintViolations(rep)
	printer.PrintCoverage(report.Coverage(tbl.Variables, cb.Variables()))
	printer.PrintSummary(rep)

	if cfg.DatabaseURL != "" {
		persistReport(ctx, cfg, rep, diag)
	}

	return rep, nil
}

// persistReport saves the run to PostgreSQL. Persistence failures are
// reported but never change the validation verdict.
func persistReport(ctx context.Context, cfg config.Config, rep *types.Report, diag io.Writer) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(diag, "warning: could not connect to run-history database: %v\n", err)
		return
	}
	defer database.Close()

	runID, err := database.CreateRun(ctx, cfg.DataPath, cfg.CodebookPath)
	if err != nil {
		fmt.Fprintf(diag, "warning: could not record run: %v\n", err)
		return
	}
	if err := database.SaveReport(ctx, runID, rep); err != nil {
		fmt.Fprintf(diag, "warning: could not save report: %v\n", err)
	}

	status := db.StatusPassed
	if !rep.Passed() {
		status = db.StatusFailed
	}
	if err := database.CompleteRun(ctx, runID, status); err != nil {
		fmt.Fprintf(diag, "warning: could not complete run: %v\n", err)
	}
}
