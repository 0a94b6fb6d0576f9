package cli

import (
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [file]",
		Short: "Print the dataset and jurisdiction overviews",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.load(args)
			if err != nil {
				return err
			}

			summaries := app.service.Summaries(app.ctx, data)
			printer := app.printer(cmd)
			for _, s := range summaries {
				printer.PrintSummary(s)
			}

			if w := app.chartWriter(); w != nil {
				last := summaries[len(summaries)-1]
				byYear := last.Breakdowns[0]
				if _, err := w.WriteBarChart(app.chartPath, last.Title+" by year", byYear.Counts); err != nil {
					return err
				}
			}
			return app.writeJSON(summaries)
		},
	}
}
