package cli

import (
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage reusable training templates (alias: tpl)",
	Long: `Manage reusable training templates.

A template is a named list of tricks with target reps. Applying it copies
its items into a day's training plan; applying twice does nothing.

Subcommands:
  list                            List templates and their items
  add <name>                      Create an empty template
  rename <template> <name>        Rename a template
  rm <template>                   Delete a template
  item-add <template> <trick>     Add a trick to a template
  item-rm <template> <item>       Remove a trick from a template
  apply <template>                Copy a template into a day's plan
  unapply <template>              Take a template's items back out of a day`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	Args:    cobra.NoArgs,
	RunE:    runTemplateList,
}

var templateAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateAdd,
}

var templateRenameCmd = &cobra.Command{
	Use:   "rename <template> <name>",
	Short: "Rename a template",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateRename,
}

var templateRmCmd = &cobra.Command{
	Use:     "rm <template>",
	Aliases: []string{"remove"},
	Short:   "Delete a template",
	Long:    `Delete a template. Items it already added to training plans stay.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runTemplateRm,
}

var templateItemAddCmd = &cobra.Command{
	Use:   "item-add <template> <trick>",
	Short: "Add a trick to a template",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateItemAdd,
}

var templateItemRmCmd = &cobra.Command{
	Use:   "item-rm <template> <item>",
	Short: "Remove a trick from a template",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateItemRm,
}

var templateApplyCmd = &cobra.Command{
	Use:   "apply <template>",
	Short: "Copy a template into a day's plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateApply,
}

var templateUnapplyCmd = &cobra.Command{
	Use:   "unapply <template>",
	Short: "Remove a template's items from a day's plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateUnapply,
}

var (
	templateDate   string
	templateTarget int
)

func init() {
	templateItemAddCmd.Flags().IntVarP(&templateTarget, "target", "n", 1, "Reps to aim for")
	templateApplyCmd.Flags().StringVar(&templateDate, "date", "", "Day (default today)")
	templateUnapplyCmd.Flags().StringVar(&templateDate, "date", "", "Day (default today)")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateRenameCmd)
	templateCmd.AddCommand(templateRmCmd)
	templateCmd.AddCommand(templateItemAddCmd)
	templateCmd.AddCommand(templateItemRmCmd)
	templateCmd.AddCommand(templateApplyCmd)
	templateCmd.AddCommand(templateUnapplyCmd)
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "template list", func(a *app) error {
		a.listTemplates()
		return nil
	})
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "template add", func(a *app) error {
		t, err := a.store.AddTemplate(args[0])
		if err != nil {
			return err
		}
		a.printf("✓ Created template %s %s\n", titleStyle.Render(t.Name), mutedStyle.Render(shortID(t.ID)))
		return nil
	})
}

func runTemplateRename(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "template rename", func(a *app) error {
		return a.renameTemplate(args[0], args[1])
	})
}

func runTemplateRm(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "template rm", func(a *app) error {
		t, err := a.resolveTemplate(args[0])
		if err != nil {
			return err
		}
		if err := a.store.DeleteTemplate(t.ID); err != nil {
			return err
		}
		a.printf("✓ Deleted template %s\n", t.Name)
		return nil
	})
}

func runTemplateItemAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "template item-add", func(a *app) error {
		return a.addTemplateItem(args[0], args[1], templateTarget)
	})
}

func runTemplateItemRm(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "template item-rm", func(a *app) error {
		return a.removeTemplateItem(args[0], args[1])
	})
}

func runTemplateApply(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "template apply", func(a *app) error {
		return a.applyTemplate(args[0], templateDate)
	})
}

func runTemplateUnapply(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "template unapply", func(a *app) error {
		return a.unapplyTemplate(args[0], templateDate)
	})
}

func (a *app) listTemplates() {
	templates := a.store.Templates()
	if len(templates) == 0 {
		a.println("No templates. Create one with 'trickplanner template add <name>'.")
		return
	}
	for i, t := range templates {
		if i > 0 {
			a.println()
		}
		a.printf("%s %s\n", headerStyle.Render(t.Name), mutedStyle.Render(shortID(t.ID)))
		if len(t.Items) == 0 {
			a.println(mutedStyle.Render("  (empty)"))
		}
		for _, item := range t.Items {
			a.printf("  %-24s ×%d  %s\n", item.TrickName, item.TargetCount, difficultyLabel(item.Difficulty))
		}
	}
}

func (a *app) renameTemplate(ref, name string) error {
	t, err := a.resolveTemplate(ref)
	if err != nil {
		return err
	}
	old := t.Name
	t.Name = name
	updated, err := a.store.UpdateTemplate(t)
	if err != nil {
		return err
	}
	a.printf("✓ Renamed %s to %s\n", old, titleStyle.Render(updated.Name))
	return nil
}

func (a *app) addTemplateItem(templateRef, trickRef string, target int) error {
	t, err := a.resolveTemplate(templateRef)
	if err != nil {
		return err
	}
	trick, err := a.resolveTrick(trickRef)
	if err != nil {
		return err
	}
	item, err := a.store.AddTemplateItem(t.ID, trick.ID, target)
	if err != nil {
		return err
	}
	a.printf("✓ %s: %s ×%d\n", t.Name, item.TrickName, item.TargetCount)
	return nil
}

func (a *app) removeTemplateItem(templateRef, itemRef string) error {
	t, err := a.resolveTemplate(templateRef)
	if err != nil {
		return err
	}
	item, err := a.resolveTemplateItem(t, itemRef)
	if err != nil {
		return err
	}
	if err := a.store.RemoveTemplateItem(t.ID, item.ID); err != nil {
		return err
	}
	a.printf("✓ Removed %s from %s\n", item.TrickName, t.Name)
	return nil
}

func (a *app) applyTemplate(ref, date string) error {
	t, err := a.resolveTemplate(ref)
	if err != nil {
		return err
	}
	day, err := a.parseDay(date)
	if err != nil {
		return err
	}
	applied, err := a.store.ApplyTemplate(t.ID, day)
	if err != nil {
		return err
	}
	if !applied {
		a.printf("%s is already part of %s\n", t.Name, day.Format(dayLayout))
		return nil
	}
	a.printf("✓ Applied %s to %s (%d item(s))\n", titleStyle.Render(t.Name), day.Format(dayLayout), len(t.Items))
	return nil
}

func (a *app) unapplyTemplate(ref, date string) error {
	t, err := a.resolveTemplate(ref)
	if err != nil {
		return err
	}
	day, err := a.parseDay(date)
	if err != nil {
		return err
	}
	if !a.store.HasAppliedTemplate(t.ID, day) {
		a.printf("%s is not part of %s\n", t.Name, day.Format(dayLayout))
		return nil
	}
	if err := a.store.RemoveTemplateFromPlan(t.ID, day); err != nil {
		return err
	}
	a.printf("✓ Removed %s from %s\n", t.Name, day.Format(dayLayout))
	return nil
}
