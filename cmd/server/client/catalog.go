package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/handlers/weapons/v1alpha1"
)

var (
	catalogTier       string
	catalogDeprecated bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the loaded card definitions",
	RunE:  listCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogTier, "tier", "", "only list one tier")
	catalogCmd.Flags().BoolVar(&catalogDeprecated, "deprecated", false, "include deprecated definitions")
}

func listCatalog(_ *cobra.Command, _ []string) error {
	req := &v1alpha1.GetCatalogRequest{IncludeDeprecated: catalogDeprecated}
	if catalogTier != "" {
		tier, err := parseTier(catalogTier)
		if err != nil {
			return err
		}
		req.Tier = tier
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.GetCatalog(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to get catalog: %w", err)
		}

		fmt.Printf("Catalog version %s, %d definitions\n", resp.Version, len(resp.Definitions))
		var tier weapons.Tier
		for _, def := range resp.Definitions {
			if def.Tier != tier {
				tier = def.Tier
				fmt.Printf("\n%s:\n", tier)
			}
			flag := ""
			if def.Deprecated {
				flag = " [deprecated]"
			}
			fmt.Printf("  %-40s x%d  %s%s\n", def.ID, def.DefaultCount, def.Category, flag)
		}
		return nil
	})
}
