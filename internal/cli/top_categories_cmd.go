package cli

import (
	"github.com/spf13/cobra"

	"github.com/cherdeman/COPA-Project/internal/validation"
)

func newTopCategoriesCmd(app *application) *cobra.Command {
	var (
		beat  string
		k     int
		dates dateFlags
	)

	cmd := &cobra.Command{
		Use:   "top-categories [file]",
		Short: "Show the most frequent complaint categories on a beat",
		Example: `  copa top-categories complaints.csv --beat 0412 -k 5
  copa top-categories complaints.csv --beat 1123 --year 2017 --month 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top") {
				k = app.cfg.Analysis.TopK
			}

			data, err := app.load(args)
			if err != nil {
				return err
			}

			result, err := app.service.TopCategories(app.ctx, data, validation.TopCategoriesQuery{
				DateFilter: dates.filter(cmd),
				Beat:       beat,
				K:          k,
			})
			if err != nil {
				return err
			}

			app.printer(cmd).PrintBreakdown(result)
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

	cmd.Flags().StringVar(&beat, "beat", "", "Beat code to match exactly, e.g. 0412")
	cmd.Flags().IntVarP(&k, "top", "k", 0, "Number of categories to show (default from analysis.top_k)")
	dates.register(cmd)
	_ = cmd.MarkFlagRequired("beat")

	return cmd
}
