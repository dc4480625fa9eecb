package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nclex-prep/backend/internal/localstore"
)

// ResetCommand returns the command that clears locally stored state.
func ResetCommand(store *localstore.LocalStore) *cobra.Command {
	var progressOnly, sessionsOnly bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear stored progress and session history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resetProgress := !sessionsOnly || progressOnly
			resetSessions := !progressOnly || sessionsOnly

			if resetProgress {
				if err := store.ResetProgress(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared.")
			}
			if resetSessions {
				if err := store.ResetSessions(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Session history cleared.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&progressOnly, "progress", false, "clear only cumulative progress")
	cmd.Flags().BoolVar(&sessionsOnly, "sessions", false, "clear only session history")

	return cmd
}
