package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nclex-prep/backend/internal/localstore"
)

// HistoryCommand returns the command that prints the session log.
func HistoryCommand(store *localstore.LocalStore) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show completed practice sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := store.LoadSessions()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet.")
				return nil
			}

			out := cmd.OutOrStdout()
			// Newest first.
			for i := len(sessions) - 1; i >= 0; i-- {
				s := sessions[i]
				fmt.Fprintf(out, "%s  answered %2d  correct %2d  duration %s\n",
					s.DateISO, s.Answered, s.Correct, formatDuration(s.DurationSeconds))
			}
			return nil
		},
	}
}
