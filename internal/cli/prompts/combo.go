package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// MaxPerCategory caps how many tricks one category may contribute.
const MaxPerCategory = 10

// BuildCategoryOptions creates huh options showing each category's
// eligible trick count. Categories without eligible tricks are left out.
func BuildCategoryOptions(categories []string, eligible map[string]int) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		n := eligible[c]
		if n == 0 {
			continue
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%d)", c, n), c))
	}
	return options
}

// ParseCount reads a per-category trick count between 1 and MaxPerCategory.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("enter a number")
	}
	if n < 1 || n > MaxPerCategory {
		return 0, fmt.Errorf("enter a number from 1 to %d", MaxPerCategory)
	}
	return n, nil
}

// RunComboPicker asks which categories to draw from and how many tricks
// to take from each.
func RunComboPicker(categories []string, eligible map[string]int) (map[string]int, error) {
	options := BuildCategoryOptions(categories, eligible)
	if len(options) == 0 {
		return map[string]int{}, nil
	}

	var selected []string
	pick := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Categories for the combo").
				Description("Space to toggle, Enter to confirm").
				Options(options...).
				Value(&selected),
		),
	)
	if err := pick.Run(); err != nil {
		return nil, err
	}

	answers := make([]string, len(selected))
	fields := make([]huh.Field, len(selected))
	for i, c := range selected {
		answers[i] = "1"
		fields[i] = huh.NewInput().
			Title(fmt.Sprintf("How many from %s?", c)).
			Validate(func(s string) error {
				_, err := ParseCount(s)
				return err
			}).
			Value(&answers[i])
	}
	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return nil, err
		}
	}

	selections := make(map[string]int, len(selected))
	for i, c := range selected {
		n, err := ParseCount(answers[i])
		if err != nil {
			return nil, err
		}
		selections[c] = n
	}
	return selections, nil
}
