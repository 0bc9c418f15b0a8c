package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

var trickCmd = &cobra.Command{
	Use:     "trick",
	Aliases: []string{"t"},
	Short:   "Manage your trick list (alias: t)",
	Long: `Manage your trick list.

Tricks are referenced by name (case-insensitive) or by the first
characters of their id as shown by 'trick list'.

Subcommands:
  add <name>          Add a trick
  edit <trick>        Rename, recategorize or re-rate a trick
  rm <trick>...       Remove tricks
  list                List tricks by category`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var trickAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a trick",
	Long: `Add a trick. An unknown category is created; no category means Uncategorized.

Examples:
  trickplanner trick add "Varial Flip" --category Flips --difficulty medium`,
	Args: cobra.ExactArgs(1),
	RunE: runTrickAdd,
}

var trickEditCmd = &cobra.Command{
	Use:   "edit <trick>",
	Short: "Change a trick",
	Long: `Change a trick's name, category or difficulty. Flags left unset keep
their current value. Combos already saved as challenges keep the old copy.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrickEdit,
}

var trickRmCmd = &cobra.Command{
	Use:     "rm <trick>...",
	Aliases: []string{"remove"},
	Short:   "Remove tricks",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runTrickRm,
}

var trickListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tricks by category",
	Args:    cobra.NoArgs,
	RunE:    runTrickList,
}

var (
	trickName       string
	trickCategory   string
	trickDifficulty string
)

func init() {
	trickAddCmd.Flags().StringVarP(&trickCategory, "category", "c", "", "Category (default Uncategorized)")
	trickAddCmd.Flags().StringVarP(&trickDifficulty, "difficulty", "d", "", "none, easy, medium or hard")

	trickEditCmd.Flags().StringVar(&trickName, "name", "", "New name")
	trickEditCmd.Flags().StringVarP(&trickCategory, "category", "c", "", "New category")
	trickEditCmd.Flags().StringVarP(&trickDifficulty, "difficulty", "d", "", "New difficulty")

	trickListCmd.Flags().StringVarP(&trickCategory, "category", "c", "", "Only this category")

	trickCmd.AddCommand(trickAddCmd)
	trickCmd.AddCommand(trickEditCmd)
	trickCmd.AddCommand(trickRmCmd)
	trickCmd.AddCommand(trickListCmd)
}

func runTrickAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "trick add", func(a *app) error {
		return a.addTrick(args[0], trickCategory, trickDifficulty)
	})
}

func runTrickEdit(cmd *cobra.Command, args []string) error {
	edit := trickEdit{}
	if cmd.Flags().Changed("name") {
		edit.name = &trickName
	}
	if cmd.Flags().Changed("category") {
		edit.category = &trickCategory
	}
	if cmd.Flags().Changed("difficulty") {
		edit.difficulty = &trickDifficulty
	}
	return withApp(cmd, "trick edit", func(a *app) error {
		return a.editTrick(args[0], edit)
	})
}

func runTrickRm(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "trick rm", func(a *app) error {
		return a.removeTricks(args)
	})
}

func runTrickList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "trick list", func(a *app) error {
		return a.listTricks(trickCategory)
	})
}

func (a *app) addTrick(name, category, difficulty string) error {
	d, err := parseDifficulty(difficulty)
	if err != nil {
		return err
	}
	trick, err := a.store.AddTrick(name, category, d)
	if err != nil {
		return err
	}
	a.printf("✓ Added %s to %s %s\n", titleStyle.Render(trick.Name), trick.Category, mutedStyle.Render(shortID(trick.ID)))
	return nil
}

// trickEdit holds the fields to change; nil leaves a field alone.
type trickEdit struct {
	name       *string
	category   *string
	difficulty *string
}

func (a *app) editTrick(ref string, edit trickEdit) error {
	trick, err := a.resolveTrick(ref)
	if err != nil {
		return err
	}

	name, category, difficulty := trick.Name, trick.Category, trick.Difficulty
	if edit.name != nil {
		name = *edit.name
	}
	if edit.category != nil {
		category = *edit.category
	}
	if edit.difficulty != nil {
		if difficulty, err = parseDifficulty(*edit.difficulty); err != nil {
			return err
		}
	}

	updated, err := a.store.UpdateTrick(trick.ID, name, category, difficulty)
	if err != nil {
		return err
	}
	a.printf("✓ Updated %s (%s, %s)\n", titleStyle.Render(updated.Name), updated.Category, difficultyLabel(updated.Difficulty))
	return nil
}

func (a *app) removeTricks(refs []string) error {
	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		trick, err := a.resolveTrick(ref)
		if err != nil {
			return err
		}
		ids = append(ids, trick.ID)
	}
	n := a.store.DeleteTricks(ids...)
	a.printf("✓ Removed %d trick(s)\n", n)
	return nil
}

func (a *app) listTricks(category string) error {
	tricks := a.store.Tricks()
	if category != "" {
		tricks = a.store.TricksInCategory(category)
	}
	if len(tricks) == 0 {
		a.println("No tricks yet. Add one with 'trickplanner trick add <name>'.")
		return nil
	}

	current := ""
	for _, t := range tricks {
		if t.Category != current {
			if current != "" {
				a.println()
			}
			current = t.Category
			a.println(headerStyle.Render(current))
		}
		a.printf("  %s  %-28s %s\n", mutedStyle.Render(shortID(t.ID)), t.Name, difficultyLabel(t.Difficulty))
	}
	a.printf("\n%s\n", mutedStyle.Render(fmt.Sprintf("%d tricks", len(tricks))))
	return nil
}

// eligibleCounts counts tricks per category at or below ceiling.
func eligibleCounts(tricks []models.Trick, ceiling models.Difficulty) map[string]int {
	counts := make(map[string]int)
	for _, t := range tricks {
		if t.Difficulty.AtMost(ceiling) {
			counts[t.Category]++
		}
	}
	return counts
}
