package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/cli/prompts"
	"github.com/asteroid-belt/trickplanner/internal/planner"
)

var comboCmd = &cobra.Command{
	Use:   "combo",
	Short: "Roll a random combo",
	Long: `Roll a random combo from your trick list.

Without --pick or --interactive one trick is drawn from every category
that has an eligible trick. Tricks harder than --max are never drawn.

Examples:
  trickplanner combo
  trickplanner combo --max easy
  trickplanner combo --pick Flips=2 --pick Grinds
  trickplanner combo --interactive --save`,
	Args: cobra.NoArgs,
	RunE: runCombo,
}

type comboOptions struct {
	max         string
	all         bool
	picks       []string
	interactive bool
	save        bool
	date        string
}

var comboOpts comboOptions

func init() {
	comboCmd.Flags().StringVar(&comboOpts.max, "max", "hard", "Hardest difficulty to include")
	comboCmd.Flags().BoolVar(&comboOpts.all, "all", false, "One trick from every category (ignores --pick)")
	comboCmd.Flags().StringArrayVar(&comboOpts.picks, "pick", nil, "Category=count to draw from (repeatable)")
	comboCmd.Flags().BoolVarP(&comboOpts.interactive, "interactive", "i", false, "Choose categories and counts interactively")
	comboCmd.Flags().BoolVar(&comboOpts.save, "save", false, "Save the combo as a challenge")
	comboCmd.Flags().StringVar(&comboOpts.date, "date", "", "Challenge day when saving (YYYY-MM-DD, default today)")
}

func runCombo(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "combo", func(a *app) error {
		return a.combo(comboOpts)
	})
}

func (a *app) combo(opts comboOptions) error {
	ceiling, err := parseDifficulty(opts.max)
	if err != nil {
		return err
	}

	req := planner.ComboRequest{MaxDifficulty: ceiling}
	switch {
	case opts.all:
		req.RandomAll = true
	case len(opts.picks) > 0:
		if req.Selections, err = parsePicks(opts.picks); err != nil {
			return err
		}
	case opts.interactive:
		eligible := eligibleCounts(a.store.Tricks(), ceiling)
		if req.Selections, err = prompts.RunComboPicker(a.store.Categories(), eligible); err != nil {
			return err
		}
	default:
		req.RandomAll = true
	}

	combo := a.store.RandomCombo(req)
	if len(combo) == 0 {
		a.println("No tricks match. Try a higher --max or other categories.")
		return nil
	}

	a.println(headerStyle.Render("🎲 Your combo"))
	for i, t := range combo {
		a.printf("  %d. %-28s %s %s\n", i+1, t.Name, mutedStyle.Render(t.Category), difficultyLabel(t.Difficulty))
	}
	a.printf("\n  %s\n", titleStyle.Render(comboLine(combo)))

	if !opts.save {
		return nil
	}
	day, err := a.parseDay(opts.date)
	if err != nil {
		return err
	}
	challenge, err := a.store.AddChallenge(combo, day)
	if err != nil {
		return err
	}
	a.printf("\n✓ Saved as challenge %s for %s\n", shortID(challenge.ID), challenge.Date.Format(dayLayout))
	return nil
}

// parsePicks reads Category=count pairs. A bare category means one trick.
func parsePicks(picks []string) (map[string]int, error) {
	selections := make(map[string]int, len(picks))
	for _, p := range picks {
		category, count := p, "1"
		if i := strings.LastIndex(p, "="); i >= 0 {
			category, count = p[:i], p[i+1:]
		}
		category = strings.TrimSpace(category)
		if category == "" {
			return nil, fmt.Errorf("invalid --pick %q: missing category", p)
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid --pick %q: count must be a positive number", p)
		}
		selections[category] += n
	}
	return selections, nil
}
