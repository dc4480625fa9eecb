// Package main provides the terminal practice client for the NCLEX
// question service.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nclex-prep/backend/cmd/practice/commands"
	"github.com/nclex-prep/backend/internal/apiclient"
	"github.com/nclex-prep/backend/internal/infrastructure/config"
	"github.com/nclex-prep/backend/internal/localstore"
)

func main() {
	cfg := config.LoadClient()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	store, err := localstore.New(cfg.DataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open local storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	client := apiclient.New(cfg.APIBaseURL)

	rootCmd := &cobra.Command{
		Use:   "practice",
		Short: "NCLEX practice questions in your terminal",
		Long: `Practice NCLEX questions fetched from the question service.

Progress, streaks and session history are stored locally. When the
service is unreachable, a small bundled question set is used instead.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(commands.SessionCommand(cfg, store, client, logger))
	rootCmd.AddCommand(commands.HistoryCommand(store))
	rootCmd.AddCommand(commands.StatsCommand(cfg, store))
	rootCmd.AddCommand(commands.ResetCommand(store))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
