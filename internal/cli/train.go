package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Plan and log daily training",
	Long: `Plan and log daily training.

Every subcommand works on today unless --date is given. Training items
are referenced by trick name or by the id prefix shown in 'train show'.

Subcommands:
  show                     Show the day's plan and progress
  add <trick>              Add reps of a trick to the day
  done <item>              Log completed reps (default 1)
  set <item> <count>       Set the completed count
  rm <item>                Remove an item
  clear                    Remove the whole day's plan`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var trainShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's training",
	Args:  cobra.NoArgs,
	RunE:  runTrainShow,
}

var trainAddCmd = &cobra.Command{
	Use:   "add <trick>",
	Short: "Add reps of a trick",
	Long:  `Add reps of a trick. Adding a trick already on the day raises its target.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTrainAdd,
}

var trainDoneCmd = &cobra.Command{
	Use:   "done <item>",
	Short: "Log completed reps",
	Long:  `Log completed reps. A negative --by undoes reps; the count stays between 0 and the target.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTrainDone,
}

var trainSetCmd = &cobra.Command{
	Use:   "set <item> <count>",
	Short: "Set the completed count",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrainSet,
}

var trainRmCmd = &cobra.Command{
	Use:     "rm <item>",
	Aliases: []string{"remove"},
	Short:   "Remove a training item",
	Args:    cobra.ExactArgs(1),
	RunE:    runTrainRm,
}

var trainClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove a day's plan",
	Args:  cobra.NoArgs,
	RunE:  runTrainClear,
}

var (
	trainDate   string
	trainTarget int
	trainBy     int
)

func init() {
	for _, cmd := range []*cobra.Command{trainShowCmd, trainAddCmd, trainDoneCmd, trainSetCmd, trainRmCmd, trainClearCmd} {
		cmd.Flags().StringVar(&trainDate, "date", "", "Day (YYYY-MM-DD, today, yesterday, tomorrow)")
		trainCmd.AddCommand(cmd)
	}
	trainAddCmd.Flags().IntVarP(&trainTarget, "target", "n", 1, "Reps to aim for")
	trainDoneCmd.Flags().IntVar(&trainBy, "by", 1, "Reps to add")
}

func runTrainShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "train show", func(a *app) error {
		day, err := a.parseDay(trainDate)
		if err != nil {
			return err
		}
		a.showTraining(day)
		return nil
	})
}

func runTrainAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "train add", func(a *app) error {
		day, err := a.parseDay(trainDate)
		if err != nil {
			return err
		}
		return a.addTraining(args[0], trainTarget, day)
	})
}

func runTrainDone(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "train done", func(a *app) error {
		day, err := a.parseDay(trainDate)
		if err != nil {
			return err
		}
		return a.logTraining(args[0], trainBy, day)
	})
}

func runTrainSet(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "train set", func(a *app) error {
		day, err := a.parseDay(trainDate)
		if err != nil {
			return err
		}
		completed, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		return a.setTraining(args[0], completed, day)
	})
}

func runTrainRm(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "train rm", func(a *app) error {
		day, err := a.parseDay(trainDate)
		if err != nil {
			return err
		}
		item, err := a.resolveTrainingItem(args[0], day)
		if err != nil {
			return err
		}
		if err := a.store.DeleteTrainingItem(item.ID, day); err != nil {
			return err
		}
		a.printf("✓ Removed %s from %s\n", item.TrickName, day.Format(dayLayout))
		return nil
	})
}

func runTrainClear(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "train clear", func(a *app) error {
		day, err := a.parseDay(trainDate)
		if err != nil {
			return err
		}
		if err := a.store.ClearTraining(day); err != nil {
			return err
		}
		a.printf("✓ Cleared training for %s\n", day.Format(dayLayout))
		return nil
	})
}

func (a *app) addTraining(ref string, target int, day time.Time) error {
	trick, err := a.resolveTrick(ref)
	if err != nil {
		return err
	}
	item, err := a.store.AddTrainingItem(trick.ID, target, day)
	if err != nil {
		return err
	}
	a.printf("✓ %s: %s\n", item.TrickName, progressBar(item.CompletedCount, item.TargetCount, 10))
	return nil
}

func (a *app) logTraining(ref string, delta int, day time.Time) error {
	item, err := a.resolveTrainingItem(ref, day)
	if err != nil {
		return err
	}
	item, err = a.store.IncrementTrainingItem(item.ID, day, delta)
	if err != nil {
		return err
	}
	a.printTrainingItem(item)
	return nil
}

func (a *app) setTraining(ref string, completed int, day time.Time) error {
	item, err := a.resolveTrainingItem(ref, day)
	if err != nil {
		return err
	}
	item, err = a.store.UpdateTrainingItem(item.ID, completed, day)
	if err != nil {
		return err
	}
	a.printTrainingItem(item)
	return nil
}

func (a *app) printTrainingItem(item models.TrainingItem) {
	mark := "  "
	if item.IsComplete() {
		mark = successStyle.Render("✓ ")
	}
	a.printf("%s%-24s %s\n", mark, item.TrickName, progressBar(item.CompletedCount, item.TargetCount, 10))
}

func (a *app) showTraining(day time.Time) {
	a.println(headerStyle.Render("Training " + day.Format(dayLayout)))

	items := a.store.TrainingItems(day)
	if len(items) == 0 {
		a.println("  Nothing planned. Add reps with 'trickplanner train add <trick>' or apply a template.")
		return
	}

	for _, item := range items {
		a.printf("  %s ", mutedStyle.Render(shortID(item.ID)))
		a.printTrainingItem(item)
		if item.TemplateID != nil {
			a.printf("      %s\n", mutedStyle.Render("from "+a.store.TemplateName(item.TemplateID)))
		}
	}

	done, target := a.store.TrainingCompletion(day)
	a.printf("\n  Overall  %s\n", progressBar(done, target, 20))

	a.println()
	for _, c := range a.store.TrainingSummaryByDifficulty(day) {
		if c.Count > 0 {
			a.printf("  %-8s %d\n", difficultyLabel(c.Difficulty), c.Count)
		}
	}
	for _, c := range a.store.TrainingSummaryByCategory(day) {
		a.printf("  %-14s %d\n", c.Category, c.Count)
	}

	applied := a.store.AppliedTemplates(day)
	if len(applied) > 0 {
		a.println()
		for _, t := range applied {
			a.printf("  %s %s\n", mutedStyle.Render("template"), t.Name)
		}
	}
}
