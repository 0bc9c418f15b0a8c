package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// Color styles for CLI output
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BFFF"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	easyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00"))
	hardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

func difficultyLabel(d models.Difficulty) string {
	switch d {
	case models.DifficultyEasy:
		return easyStyle.Render("easy")
	case models.DifficultyMedium:
		return mediumStyle.Render("medium")
	case models.DifficultyHard:
		return hardStyle.Render("hard")
	default:
		return mutedStyle.Render("-")
	}
}

func statusLabel(s models.ChallengeStatus) string {
	switch s {
	case models.ChallengeSuccess:
		return successStyle.Render("✓ " + s.DisplayName())
	case models.ChallengeFail:
		return errorStyle.Render("✗ " + s.DisplayName())
	default:
		return mutedStyle.Render("· " + s.DisplayName())
	}
}

// progressBar renders completed/target as a fixed-width bar.
func progressBar(completed, target, width int) string {
	if target <= 0 || width <= 0 {
		return ""
	}
	filled := min(completed*width/target, width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if completed >= target {
		bar = successStyle.Render(bar)
	}
	return fmt.Sprintf("%s %d/%d", bar, completed, target)
}

func comboLine(combo []models.Trick) string {
	names := make([]string, len(combo))
	for i, t := range combo {
		names[i] = t.Name
	}
	return strings.Join(names, " → ")
}
