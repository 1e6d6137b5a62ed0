package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"devpulse/internal/bootstrap/logging"
	"devpulse/internal/errs"
	"devpulse/internal/usecase/catalog"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Data source catalog commands",
}

var sourcesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync data sources, projects and repositories from a TOML file",
	RunE: withApp(func(cmd *cobra.Command, services *appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		path, _ := cmd.Flags().GetString("file")
		result, err := services.Catalog.SyncFromFile(ctx, catalog.SyncInput{Path: path})
		if err != nil {
			return errs.Wrap(err, "sync sources")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(),
			"synced %d data sources, %d projects, %d repositories from %s\n",
			result.DataSources, result.Projects, result.Repositories, path,
		); err != nil {
			return errs.Wrap(err, "write sources output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesSyncCmd)
	sourcesSyncCmd.Flags().String("file", "configs/sources.toml", "Path to sources.toml")
}
