package cli

import (
	"github.com/spf13/cobra"

	"github.com/cherdeman/COPA-Project/internal/validation"
)

func newCrossCmd(app *application) *cobra.Command {
	var (
		query validation.CrossQuery
		dates dateFlags
	)

	cmd := &cobra.Command{
		Use:   "cross [file]",
		Short: "Cross officer and complainant characteristics",
		Long: `Build a table with one row per officer category and one column per
complainant category. Each complaint adds officers x complainants to the
cells its people fall in.`,
		Example: `  copa cross complaints.csv --officer-by race --complainant-by race`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.load(args)
			if err != nil {
				return err
			}

			query.DateFilter = dates.filter(cmd)
			table, err := app.service.Cross(app.ctx, data, query)
			if err != nil {
				return err
			}

			app.printer(cmd).PrintCrossTable(table)
			if w := app.chartWriter(); w != nil {
				if _, err := w.WriteCrossChart(app.chartPath, table); err != nil {
					return err
				}
			}
			if err := app.writeCrossCSV(table); err != nil {
				return err
			}
			return app.writeJSON(table)
		},
	}

	cmd.Flags().StringVar(&query.OfficerBy, "officer-by", "", "Officer characteristic: race, sex, age or years")
	cmd.Flags().StringVar(&query.ComplainantBy, "complainant-by", "", "Complainant characteristic: race, sex or age")
	dates.register(cmd)
	_ = cmd.MarkFlagRequired("officer-by")
	_ = cmd.MarkFlagRequired("complainant-by")

	return cmd
}
