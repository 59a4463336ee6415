// Package client provides commands that call a running weapon deck server
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/handlers/weapons/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running weapon deck server",
	Long:  `Client commands make real gRPC requests against a weapon deck server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(catalogCmd)

	// Deck commands
	ClientCmd.AddCommand(buildDeckCmd)
	ClientCmd.AddCommand(drawCmd)
	ClientCmd.AddCommand(discardCmd)
	ClientCmd.AddCommand(reclaimCmd)
	ClientCmd.AddCommand(deckCmd)

	// Inventory commands
	ClientCmd.AddCommand(inventoryCmd)
	ClientCmd.AddCommand(addCmd)
	ClientCmd.AddCommand(removeCmd)
	ClientCmd.AddCommand(replaceCmd)
	ClientCmd.AddCommand(historyCmd)

	// Preset commands
	ClientCmd.AddCommand(listPresetsCmd)
	ClientCmd.AddCommand(exportPresetCmd)
	ClientCmd.AddCommand(importPresetCmd)
	ClientCmd.AddCommand(applyPresetCmd)
	ClientCmd.AddCommand(diffCmd)

	ClientCmd.AddCommand(callCmd)
}

// createClient connects to the server; cleanup closes the connection
func createClient() (*v1alpha1.Client, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewClient(conn), cleanup, nil
}

// withClient runs fn with a connected client and a request deadline
func withClient(fn func(ctx context.Context, c *v1alpha1.Client) error) error {
	c, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return fn(ctx, c)
}

func parseTier(s string) (weapons.Tier, error) {
	tier := weapons.Tier(s)
	if !tier.IsValid() {
		return "", errors.InvalidArgumentf("unknown tier %q (want starting, regular or ultrared)", s)
	}
	return tier, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCard(c *v1alpha1.Card) {
	if c == nil || c.Definition == nil {
		return
	}
	d := c.Definition
	fmt.Printf("  %s  %s (%s, %s)\n", c.InstanceID, d.Name, d.Category, d.Set)
	fmt.Printf("    range %d-%d  dice %d  accuracy %d  damage %d",
		d.Stats.RangeMin, d.Stats.RangeMax, d.Stats.Dice, d.Stats.Accuracy, d.Stats.Damage)
	if d.Stats.Overload > 0 {
		fmt.Printf("  overload %d", d.Stats.Overload)
	}
	fmt.Println()
}

func printDeck(d *weapons.DeckState) {
	if d == nil {
		return
	}
	fmt.Printf("Deck %s: %d remaining, %d discarded, %d recent, %d set aside (size %d)\n",
		d.Tier, len(d.Remaining), len(d.Discard), len(d.RecentDraws), len(d.SetAside), d.Size)
}
