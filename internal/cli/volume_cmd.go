package cli

import (
	"github.com/spf13/cobra"

	"github.com/cherdeman/COPA-Project/internal/validation"
)

func newVolumeCmd(app *application) *cobra.Command {
	var (
		query validation.VolumeQuery
		dates dateFlags
	)

	cmd := &cobra.Command{
		Use:   "volume [file]",
		Short: "Count complainants or officers by a demographic characteristic",
		Long: `Count complainants or officers by race, sex, age or years on force.

By default every person is counted, so a complaint with two male officers
adds two to Male. With --complaints each complaint is counted once per
category it has at least one person in.`,
		Example: `  copa volume complaints.csv --entity complainant --by sex
  copa volume complaints.csv --entity officer --by years --complaints --year 2017`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.load(args)
			if err != nil {
				return err
			}

			query.DateFilter = dates.filter(cmd)
			result, err := app.service.Volume(app.ctx, data, query)
			if err != nil {
				return err
			}

			app.printer(cmd).PrintBarChart(result.Title, result.Counts)
			if w := app.chartWriter(); w != nil {
				if _, err := w.WriteBarChart(app.chartPath, result.Title, result.Counts); err != nil {
					return err
				}
			}
			if err := app.writeBreakdownCSV(result); err != nil {
				return err
			}
			return app.writeJSON(result)
		},
	}

	cmd.Flags().StringVar(&query.Entity, "entity", "", "complainant or officer")
	cmd.Flags().StringVar(&query.Characteristic, "by", "", "race, sex, age or years (officers only)")
	cmd.Flags().BoolVar(&query.Complaints, "complaints", false, "Count complaints instead of people")
	dates.register(cmd)
	_ = cmd.MarkFlagRequired("entity")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}
