package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cherdeman/COPA-Project/internal/config"
	"github.com/cherdeman/COPA-Project/internal/errors"
	"github.com/cherdeman/COPA-Project/internal/exporter"
)

func newExportCmd(app *application) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the aggregated table with every count column as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.load(args)
			if err != nil {
				return err
			}

			if err := app.paths.EnsureDirectories(); err != nil {
				return errors.NewStorageError("failed to create output directories", err)
			}

			writer := exporter.NewCSVWriter(app.paths, app.logger)
			path, err := app.service.Export(app.ctx, data, writer, out)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d complaints to %s\n", data.Working.Len(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", config.AggregatedTableCSV, "Output CSV path; relative paths go under output.reports_dir")

	return cmd
}
