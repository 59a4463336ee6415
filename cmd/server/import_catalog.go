package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/weapon-deck-api/internal/config"
	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/catalog"
)

var (
	importForce bool
	importPath  string
)

var importCatalogCmd = &cobra.Command{
	Use:   "import-catalog",
	Short: "Import the weapon catalog into sqlite",
	Long: `Load the catalog file and apply it when its version is newer than the
stored one. --force re-applies it regardless of version, which repairs a
store that disagrees with the file.`,
	RunE: runImportCatalog,
}

func init() {
	importCatalogCmd.Flags().BoolVar(&importForce, "force", false, "apply even when the version is not newer")
	importCatalogCmd.Flags().StringVar(&importPath, "file", "", "catalog TOML file (overrides WEAPON_DECK_CATALOG_PATH)")
}

func runImportCatalog(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if importPath != "" {
		cfg.CatalogPath = importPath
	}
	setupLogging(cfg)

	db, svc, err := openCatalog(cmd.Context(), cfg, weapons.NewCatalogHandle(nil))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Warn("Failed to close sqlite", "error", err)
		}
	}()

	out, err := svc.Import(cmd.Context(), &catalog.ImportInput{Force: importForce})
	if err != nil {
		return err
	}

	fmt.Printf("Catalog %s: %s", out.Version, out.Outcome)
	if out.PreviousVersion != "" {
		fmt.Printf(" (was %s)", out.PreviousVersion)
	}
	fmt.Println()
	if out.Outcome == catalog.OutcomeApplied {
		fmt.Printf("  added %d, updated %d, deprecated %d, instances minted %d\n",
			out.Added, out.Updated, out.Deprecated, out.InstancesMinted)
	}

	return nil
}
