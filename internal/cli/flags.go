package cli

import (
	"github.com/spf13/cobra"

	"github.com/cherdeman/COPA-Project/internal/validation"
)

// dateFlags registers --year and --month. Unset flags mean no filter.
type dateFlags struct {
	year  int
	month int
}

func (d *dateFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&d.year, "year", 0, "Only count complaints from this year")
	cmd.Flags().IntVar(&d.month, "month", 0, "Only count complaints from this month (1-12)")
}

func (d *dateFlags) filter(cmd *cobra.Command) validation.DateFilter {
	var f validation.DateFilter
	if cmd.Flags().Changed("year") {
		year := d.year
		f.Year = &year
	}
	if cmd.Flags().Changed("month") {
		month := d.month
		f.Month = &month
	}
	return f
}
