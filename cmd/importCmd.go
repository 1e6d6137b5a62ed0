package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/errs"
	"devpulse/internal/usecase/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Run import scripts for configured data sources",
	RunE: withApp(func(cmd *cobra.Command, services *appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		dataSourceID, _ := cmd.Flags().GetString("data-source")
		resource, _ := cmd.Flags().GetString("resource")
		fromRaw, _ := cmd.Flags().GetString("from")
		toRaw, _ := cmd.Flags().GetString("to")

		input := ingest.RunImportsInput{
			DataSourceID: dataSourceID,
			Resource:     resource,
		}
		if fromRaw != "" {
			from, err := time.ParseInLocation("2006-01-02", fromRaw, time.UTC)
			if err != nil {
				return errs.Wrap(err, "parse --from")
			}
			input.StartDate = &from
		}
		if toRaw != "" {
			to, err := time.ParseInLocation("2006-01-02", toRaw, time.UTC)
			if err != nil {
				return errs.Wrap(err, "parse --to")
			}
			input.EndDate = &to
		}

		result, err := services.Ingest.RunImports(ctx, input)
		if err != nil {
			return errs.Wrap(err, "run imports")
		}

		for _, report := range result.Reports {
			if report.Err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s/%s run=%s: %v\n",
					report.Provider, report.Resource, report.RunID, report.Err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK   %s/%s run=%s records=%d\n",
				report.Provider, report.Resource, report.RunID, report.RecordsImported)
		}

		if result.Failed() {
			return errs.Wrap(fmt.Errorf("%d of %d scripts failed", failedCount(result), len(result.Reports)), "import pass")
		}
		return nil
	}),
}

func failedCount(result ingest.RunImportsResult) int {
	failed := 0
	for _, report := range result.Reports {
		if report.Err != nil {
			failed++
		}
	}
	return failed
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("data-source", "", "Limit the pass to one data source id")
	importCmd.Flags().String("resource", "", "Limit the pass to one resource (issue|commit|pull_request)")
	importCmd.Flags().String("from", "", "Window start (YYYY-MM-DD), default: per-script lookback")
	importCmd.Flags().String("to", "", "Window end (YYYY-MM-DD), default: now")
}
