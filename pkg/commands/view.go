package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	teaui "tableflip.dev/planner/pkg/runner/tea"
	"tableflip.dev/planner/pkg/store"
)

func addView(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the calendar month by month",
		Example: `
planner view
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			svc := &app.Service{Persistence: p}
			return teaui.RunView(svc)
		},
	}

	topLevel.AddCommand(cmd)
}
