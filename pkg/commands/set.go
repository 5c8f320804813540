package commands

import (
	"context"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/set"
	teaui "tableflip.dev/planner/pkg/runner/tea"
	"tableflip.dev/planner/pkg/store"
)

func addSet(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}

	var (
		date string
		note string
	)

	cmd := &cobra.Command{
		Use:   "set [date] [note]",
		Short: "Save the plan for a date",
		Long: base.Wrap80("Save the plan for a calendar date, replacing any existing note. " +
			"Dates must fall between today and three years out. With no arguments the " +
			"full-screen setup flow opens."),
		Example: `
planner set 2026-02-28 dentist at nine
planner set --interactive
planner set
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				date = args[0]
			}
			if len(args) > 1 {
				note = strings.Join(args[1:], " ")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return dateCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			svc := &app.Service{Persistence: p}

			if i.Interactive {
				date, note, err = promptPlan(svc, date)
				if err != nil {
					return err
				}
			}

			if date == "" {
				saved, err := teaui.RunSetup(svc, "")
				if err != nil || !saved {
					return output.HandleError(err)
				}
				return nil
			}

			s := set.Set{
				Date:        date,
				Note:        note,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, i)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
