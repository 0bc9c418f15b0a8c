package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage trick categories (alias: cat)",
	Long: `Manage trick categories.

Subcommands:
  add <name>            Add a category
  rename <old> <new>    Rename a category and move its tricks
  rm <name>             Remove a category; its tricks become Uncategorized
  list                  List categories with trick counts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a category",
	Long:  `Rename a category. Renaming onto an existing category merges the two.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryRename,
}

var categoryRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Remove a category",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryRm,
}

var categoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List categories",
	Args:    cobra.NoArgs,
	RunE:    runCategoryList,
}

func init() {
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
	categoryCmd.AddCommand(categoryRmCmd)
	categoryCmd.AddCommand(categoryListCmd)
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "category add", func(a *app) error {
		if err := a.store.AddCategory(args[0]); err != nil {
			return err
		}
		a.printf("✓ Added category %s\n", titleStyle.Render(args[0]))
		return nil
	})
}

func runCategoryRename(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "category rename", func(a *app) error {
		if err := a.store.RenameCategory(args[0], args[1]); err != nil {
			return err
		}
		a.printf("✓ Renamed %s to %s\n", args[0], titleStyle.Render(args[1]))
		return nil
	})
}

func runCategoryRm(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "category rm", func(a *app) error {
		if strings.TrimSpace(args[0]) == models.UncategorizedCategory {
			a.println("Uncategorized always exists and cannot be removed.")
			return nil
		}
		moved := len(a.store.TricksInCategory(args[0]))
		if err := a.store.DeleteCategory(args[0]); err != nil {
			return err
		}
		a.printf("✓ Removed %s (%d trick(s) moved to Uncategorized)\n", args[0], moved)
		return nil
	})
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "category list", func(a *app) error {
		a.listCategories()
		return nil
	})
}

func (a *app) listCategories() {
	counts := make(map[string]int)
	for _, t := range a.store.Tricks() {
		counts[t.Category]++
	}
	for _, c := range a.store.Categories() {
		a.printf("  %-24s %s\n", c, mutedStyle.Render(pluralize(counts[c], "trick")))
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
