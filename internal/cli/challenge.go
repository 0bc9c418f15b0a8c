package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/models"
	"github.com/asteroid-belt/trickplanner/internal/planner"
)

var challengeCmd = &cobra.Command{
	Use:     "challenge",
	Aliases: []string{"ch"},
	Short:   "Review saved combo challenges (alias: ch)",
	Long: `Review saved combo challenges.

Save a challenge with 'trickplanner combo --save'. Challenges are
referenced by the id prefix shown in 'challenge list'.

Subcommands:
  list                      List challenges, newest day first
  status <id> <status>      Mark a challenge success, fail or notdone
  rm <id>...                Remove challenges
  stats                     Show the success rate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var challengeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List challenges",
	Args:    cobra.NoArgs,
	RunE:    runChallengeList,
}

var challengeStatusCmd = &cobra.Command{
	Use:   "status <id> <success|fail|notdone>",
	Short: "Set a challenge's outcome",
	Args:  cobra.ExactArgs(2),
	RunE:  runChallengeStatus,
}

var challengeRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"remove"},
	Short:   "Remove challenges",
	Long:    `Remove challenges. With --date only challenges on that day are removed.`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runChallengeRm,
}

var challengeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the challenge success rate",
	Args:  cobra.NoArgs,
	RunE:  runChallengeStats,
}

var challengeDate string

func init() {
	challengeListCmd.Flags().StringVar(&challengeDate, "date", "", "Only this day (YYYY-MM-DD, today, yesterday)")
	challengeRmCmd.Flags().StringVar(&challengeDate, "date", "", "Only remove challenges on this day")

	challengeCmd.AddCommand(challengeListCmd)
	challengeCmd.AddCommand(challengeStatusCmd)
	challengeCmd.AddCommand(challengeRmCmd)
	challengeCmd.AddCommand(challengeStatsCmd)
}

func runChallengeList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "challenge list", func(a *app) error {
		return a.listChallenges(challengeDate)
	})
}

func runChallengeStatus(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "challenge status", func(a *app) error {
		return a.setChallengeStatus(args[0], args[1])
	})
}

func runChallengeRm(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "challenge rm", func(a *app) error {
		return a.removeChallenges(args, challengeDate)
	})
}

func runChallengeStats(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "challenge stats", func(a *app) error {
		a.challengeStats()
		return nil
	})
}

func (a *app) listChallenges(date string) error {
	challenges := a.store.Challenges()
	if date != "" {
		day, err := a.parseDay(date)
		if err != nil {
			return err
		}
		challenges = a.store.ChallengesOn(day)
	}
	if len(challenges) == 0 {
		a.println("No challenges. Roll one with 'trickplanner combo --save'.")
		return nil
	}

	current := ""
	for _, c := range challenges {
		day := c.Date.Format(dayLayout)
		if day != current {
			if current != "" {
				a.println()
			}
			current = day
			a.println(headerStyle.Render(day))
		}
		a.printf("  %s  %-14s %s\n", mutedStyle.Render(shortID(c.ID)), statusLabel(c.Status), comboLine(c.Combo))
	}
	return nil
}

func (a *app) setChallengeStatus(ref, status string) error {
	s, err := parseStatus(status)
	if err != nil {
		return err
	}
	challenge, err := a.resolveChallenge(ref)
	if err != nil {
		return err
	}
	if err := a.store.UpdateChallengeStatus(challenge.ID, s); err != nil {
		return err
	}
	a.printf("✓ %s  %s\n", statusLabel(s), comboLine(challenge.Combo))
	return nil
}

func (a *app) removeChallenges(refs []string, date string) error {
	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		challenge, err := a.resolveChallenge(ref)
		if err != nil {
			return err
		}
		ids = append(ids, challenge.ID)
	}

	removed := 0
	if date != "" {
		day, err := a.parseDay(date)
		if err != nil {
			return err
		}
		removed = a.store.DeleteChallengesOn(day, ids...)
	} else {
		for _, id := range ids {
			if err := a.store.DeleteChallenge(id); err == nil {
				removed++
			}
		}
	}
	a.printf("✓ Removed %d challenge(s)\n", removed)
	return nil
}

func (a *app) challengeStats() {
	counts := make(map[models.ChallengeStatus]int)
	challenges := a.store.Challenges()
	for _, c := range challenges {
		counts[c.Status]++
	}

	a.println(headerStyle.Render("Challenges"))
	a.printf("  Total:    %d\n", len(challenges))
	a.printf("  Success:  %d\n", counts[models.ChallengeSuccess])
	a.printf("  Fail:     %d\n", counts[models.ChallengeFail])
	a.printf("  Not done: %d\n", counts[models.ChallengeNotDone])
	a.printf("  Success rate: %s\n", titleStyle.Render(fmt.Sprintf("%.0f%%", a.store.SuccessRate()*100)))
}

func parseStatus(s string) (models.ChallengeStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success", "done", "landed":
		return models.ChallengeSuccess, nil
	case "fail", "failed":
		return models.ChallengeFail, nil
	case "notdone", "not-done", "pending", "reset":
		return models.ChallengeNotDone, nil
	}
	return "", fmt.Errorf("%w: %q (want success, fail or notdone)", planner.ErrInvalidStatus, s)
}
