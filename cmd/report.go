// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matks/traces/internal/config"
	"github.com/matks/traces/internal/gateway"
	"github.com/matks/traces/internal/progress"
	"github.com/matks/traces/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregates contributor statistics and writes the ranked report",
	Long: `Fetches the contributors of every eligible repository of an organization
(or of a single repository), merges them into a deduplicated user table
enriched with profile data, and writes the result sorted by contribution
count to ` + usecase.OutputPath + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// Credentials may live in a local .env file (ignored when absent).
		_ = godotenv.Load()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		level := log.WarnLevel
		if verbose {
			level = log.DebugLevel
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		})

		user, _ := cmd.Flags().GetString("user")
		password, _ := cmd.Flags().GetString("password")
		organization, _ := cmd.Flags().GetString("organization")
		repository, _ := cmd.Flags().GetString("repository")
		configPath, _ := cmd.Flags().GetString("config")
		timeoutSeconds, _ := cmd.Flags().GetFloat64("timeout")

		reporter := progress.NewTerminal(os.Stderr)

		// Soft guards: warn and exit cleanly rather than fail.
		if user == "" {
			reporter.Warnf("No user given, nothing to do")
			return nil
		}
		if organization == "" && repository == "" {
			reporter.Warnf("Neither an organization nor a repository given, nothing to do")
			return nil
		}

		if password == "" {
			password = os.Getenv("TRACES_PASSWORD")
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		timeout := time.Duration(timeoutSeconds * float64(time.Second))
		client := gateway.NewClient(gateway.DefaultEndpoints(), user, password, timeout, logger)

		repositories := []string{repository}
		if organization != "" {
			lister := usecase.NewLister(client, cfg, reporter, logger)
			repositories, err = lister.List(ctx, organization)
			if err != nil {
				return fmt.Errorf("list repositories: %w", err)
			}
			reporter.Statusf("Found %d eligible repositories in %s", len(repositories), organization)
		}

		aggregator := usecase.NewAggregator(client, cfg, reporter, logger)
		table, err := aggregator.Aggregate(ctx, repositories)
		if err != nil {
			return fmt.Errorf("aggregate contributors: %w", err)
		}

		if err := usecase.WriteReport(table, usecase.OutputPath); err != nil {
			return err
		}

		if summary, err := usecase.Summarize(table.Users()); err == nil && summary.Users > 0 {
			reporter.Statusf("Contributions: mean %.1f, median %.1f, max %.0f",
				summary.Mean, summary.Median, summary.Max)
		}
		reporter.Successf("Wrote %d contributors to %s", table.Len(), usecase.OutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("user", "u", "", "Account used for authenticated requests (required)")
	reportCmd.Flags().StringP("password", "p", "", "Credential for the account (falls back to TRACES_PASSWORD)")
	reportCmd.Flags().StringP("organization", "o", "", "Organization whose repositories are aggregated")
	reportCmd.Flags().StringP("repository", "r", "", "Single repository (owner/name) to aggregate")
	reportCmd.Flags().StringP("config", "c", "", "Path to the YAML configuration document")
	reportCmd.Flags().Float64P("timeout", "t", 2.0, "Per-request timeout in seconds")
}
