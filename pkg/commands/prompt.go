package commands

import (
	"github.com/manifoldco/promptui"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
)

// promptPlan collects a date and note on the terminal. An initial date skips
// straight to the note prompt.
func promptPlan(svc *app.Service, initialDate string) (date, note string, err error) {
	date = initialDate
	if date == "" {
		prompt := promptui.Prompt{
			Label: "Date (YYYY-MM-DD)",
			Validate: func(input string) error {
				if err := svc.ValidateHorizon(input); err != nil {
					return err
				}
				return nil
			},
		}
		if date, err = prompt.Run(); err != nil {
			return "", "", err
		}
	}
	if date, err = entry.Normalize(date); err != nil {
		return "", "", err
	}

	notePrompt := promptui.Prompt{
		Label: "Plan for " + date,
	}
	if e, ok := svc.Persistence.Get(date); ok {
		notePrompt.Default = e.Note
	}
	if note, err = notePrompt.Run(); err != nil {
		return "", "", err
	}
	return date, note, nil
}
