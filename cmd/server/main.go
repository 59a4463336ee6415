// Package main is the entry point for the weapon deck gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/weapon-deck-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "weapon-deck",
	Short: "Weapon deck gRPC server",
	Long: `Weapon deck runs the three tiered weapon decks, the player inventory and
deck customization presets behind a gRPC interface.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(importCatalogCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
