package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nclex-prep/backend/internal/infrastructure/config"
	"github.com/nclex-prep/backend/internal/localstore"
	"github.com/nclex-prep/backend/internal/question"
	"github.com/nclex-prep/backend/internal/session"
)

// SessionCommand returns the command that runs one practice session.
func SessionCommand(cfg *config.ClientConfig, store *localstore.LocalStore, fetcher session.Fetcher, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Run one practice session",
		Long:  `Run one bounded practice session. Answer with A-D; enter q to finish early.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, cfg, store, fetcher, logger)
		},
	}
}

func runSession(cmd *cobra.Command, cfg *config.ClientConfig, store *localstore.LocalStore, fetcher session.Fetcher, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := session.New(fetcher, store, session.Options{
		Fallback: question.Seed(),
		Limit:    cfg.SessionLimit,
		Logger:   logger,
	})

	fmt.Fprintln(cmd.OutOrStdout(), "Starting session...")
	if err := engine.Start(ctx); err != nil {
		return err
	}

	// Once-per-second session clock; the engine freezes it while the
	// rationale is shown and after completion.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				engine.Tick()
			}
		}
	}()

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for {
		if ctx.Err() != nil {
			engine.Finish()
		}
		snap := engine.Snapshot()
		if snap.State == session.StateComplete {
			printSummary(out, snap)
			return nil
		}

		printQuestion(out, snap)

		answer, err := readLine(in)
		if err != nil {
			engine.Finish()
			printSummary(out, engine.Snapshot())
			return nil
		}
		answer = strings.ToUpper(strings.TrimSpace(answer))
		if answer == "Q" {
			engine.Finish()
			printSummary(out, engine.Snapshot())
			return nil
		}

		outcome, err := engine.Select(answer)
		if err == session.ErrInvalidOption {
			fmt.Fprintln(out, "Please answer with one of the option letters.")
			continue
		}
		if err != nil {
			return err
		}
		if outcome.Ignored {
			continue
		}

		if outcome.Correct {
			fmt.Fprintln(out, "Correct!")
			// Brief pause so the result is visible before the next question.
			time.Sleep(cfg.AdvanceDelay)
		} else {
			fmt.Fprintln(out, "\nIncorrect. Rationale:")
			fmt.Fprintln(out, outcome.Explanation)
			fmt.Fprint(out, "\nPress Enter to continue... ")
			if _, err := readLine(in); err != nil {
				engine.Finish()
				printSummary(out, engine.Snapshot())
				return nil
			}
		}

		if err := engine.Advance(ctx); err != nil && err != context.Canceled {
			return err
		}
	}
}

func printQuestion(out io.Writer, snap session.Snapshot) {
	q := snap.Question
	if q == nil {
		return
	}

	fmt.Fprintf(out, "\n[%d/%d] %s  (streak %d)\n", snap.Answered+1, snap.Limit, formatDuration(snap.Elapsed), snap.Progress.CurrentStreak)
	if snap.UsingFallback {
		fmt.Fprintln(out, "(offline - using bundled questions)")
	}
	fmt.Fprintln(out, q.Question)

	keys := make([]string, 0, len(q.Options))
	for k := range q.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s) %s\n", k, q.Options[k])
	}
	fmt.Fprint(out, "> ")
}

func printSummary(out io.Writer, snap session.Snapshot) {
	fmt.Fprintf(out, "\nSession complete: %d answered, %d correct in %s\n",
		snap.Answered, snap.Correct, formatDuration(snap.Elapsed))
	fmt.Fprintf(out, "Overall: %d answered, %d correct, best streak %d\n",
		snap.Progress.TotalAnswered, snap.Progress.TotalCorrect, snap.Progress.BestStreak)
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
