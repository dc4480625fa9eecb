package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nclex-prep/backend/internal/activity"
	"github.com/nclex-prep/backend/internal/infrastructure/config"
	"github.com/nclex-prep/backend/internal/localstore"
)

// StatsCommand returns the command that prints cumulative progress.
func StatsCommand(cfg *config.ClientConfig, store *localstore.LocalStore) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cumulative progress and streaks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := store.LoadProgress()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Answered:       %d\n", p.TotalAnswered)
			fmt.Fprintf(out, "Correct:        %d\n", p.TotalCorrect)
			fmt.Fprintf(out, "Accuracy:       %d%%\n", p.Accuracy())
			fmt.Fprintf(out, "Current streak: %d\n", p.CurrentStreak)
			fmt.Fprintf(out, "Best streak:    %d\n", p.BestStreak)

			tracker := activity.NewTracker(store, cfg.ActivityTimeout)
			recent, err := tracker.IsRecent()
			if err != nil {
				return err
			}
			if recent {
				fmt.Fprintln(out, "\nYou practiced recently - keep it up!")
			}
			return nil
		},
	}
}
