// Package options defines shared flag helpers for CLI commands.
package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/entry"
)

// DateOptions captures the date selection flag.
type DateOptions struct {
	OnString string
}

// AddDateArgs wires the --on flag on the provided command.
func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2026-02-28".`)
}

// GetOn resolves the flag to a canonical date. An empty flag resolves to
// today.
func (o *DateOptions) GetOn(now time.Time) (string, error) {
	if o.OnString == "" {
		return entry.DateOf(now), nil
	}
	return entry.Normalize(o.OnString)
}
