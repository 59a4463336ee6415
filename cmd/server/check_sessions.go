package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/weapon-deck-api/internal/config"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/repositories/sessionstate"
	"github.com/KirkDiggler/weapon-deck-api/internal/services/session"
)

var dropBroken bool

var checkSessionsCmd = &cobra.Command{
	Use:   "check-sessions",
	Short: "Find stored sessions the loaded catalog cannot read",
	Long: `Read every stored session against the loaded catalog and report the ones
that hold unknown cards or cannot be read. A forced import-catalog is the
usual repair; --drop deletes sessions that still disagree with the catalog.`,
	RunE: runCheckSessions,
}

func init() {
	checkSessionsCmd.Flags().BoolVar(&dropBroken, "drop", false, "delete sessions that fail the check")
	rootCmd.AddCommand(checkSessionsCmd)
}

func runCheckSessions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("Failed to close resources", "error", err)
		}
	}()

	listed, err := a.states.List(ctx, sessionstate.ListInput{})
	if err != nil {
		return err
	}

	var broken []string
	unreadable := 0
	for _, id := range listed.SessionIDs {
		_, err := a.sessions.Read(ctx, &session.ReadInput{SessionID: id})
		switch {
		case err == nil:
		case errors.IsCatalogInconsistency(err):
			fmt.Printf("✗ %s disagrees with the catalog: %s\n", id, errors.GetMessage(err))
			broken = append(broken, id)
		default:
			// Decode failures and redis errors look alike; never drop on them
			fmt.Printf("? %s could not be read: %v\n", id, err)
			unreadable++
		}
	}

	fmt.Printf("Checked %d session(s): %d disagree with the catalog, %d unreadable\n",
		len(listed.SessionIDs), len(broken), unreadable)
	if !dropBroken || len(broken) == 0 {
		return nil
	}

	for _, id := range broken {
		if _, err := a.sessions.Delete(ctx, &session.DeleteInput{SessionID: id}); err != nil {
			return errors.Wrapf(err, "failed to delete session %s", id)
		}
		fmt.Printf("Deleted %s\n", id)
	}

	return nil
}
