package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/get"
	"tableflip.dev/planner/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	do := &options.DateOptions{}

	var date string

	cmd := &cobra.Command{
		Use:   "get [date]",
		Short: "Print saved plans",
		Long: base.Wrap80("Print the plan for one date, the plans for one month, or the " +
			"whole collection grouped by month."),
		Example: `
planner get
planner get 2026-02-28
planner get --on 2026-02-28
planner get --month 2026-02
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one date")
			}
			if len(args) == 1 {
				date = args[0]
			}
			if date != "" && mo.Month != "" {
				return errors.New("use a date or --month, not both")
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
			if cmd.Flags().Changed("on") {
				if date != "" {
					return errors.New("use a positional date or --on, not both")
				}
				if mo.Month != "" {
					return errors.New("use --on or --month, not both")
				}
				var err error
				// An empty --on resolves to today.
				if date, err = do.GetOn(time.Now()); err != nil {
					return err
				}
			}

			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := get.Get{
				Date:        date,
				Month:       strings.TrimSpace(mo.Month),
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddMonthArgs(cmd, mo)
	options.AddDateArgs(cmd, do)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
