package options

import (
	"github.com/spf13/cobra"
)

// MonthOptions captures the month filter flag.
type MonthOptions struct {
	Month string
}

// AddMonthArgs wires the --month flag on the provided command.
func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Limit output to one month, example: --month="2026-02".`)
}
