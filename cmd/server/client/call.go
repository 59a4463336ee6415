package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/weapon-deck-api/internal/handlers/weapons/v1alpha1"
)

var callCmd = &cobra.Command{
	Use:   "call [service] [method] [json]",
	Short: "Call any method with a raw JSON request",
	Long: `Call any method with a raw JSON request and print the raw response.
The service is catalog, deck, inventory or customization. Examples:

  call deck Shuffle '{"session_id":"game-1","tier":"regular"}'
  call inventory SetBonusSlots '{"session_id":"game-1","bonus_slots":2}'`,
	Args: cobra.RangeArgs(2, 3),
	RunE: call,
}

var serviceAliases = map[string]string{
	"catalog":       v1alpha1.CatalogServiceName,
	"deck":          v1alpha1.DeckServiceName,
	"inventory":     v1alpha1.InventoryServiceName,
	"customization": v1alpha1.CustomizationServiceName,
}

func call(_ *cobra.Command, args []string) error {
	service, ok := serviceAliases[strings.ToLower(args[0])]
	if !ok {
		service = args[0]
	}

	req := json.RawMessage("{}")
	if len(args) == 3 {
		if !json.Valid([]byte(args[2])) {
			return fmt.Errorf("request is not valid JSON")
		}
		req = json.RawMessage(args[2])
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		var resp json.RawMessage
		if err := c.Call(ctx, service, args[1], req, &resp); err != nil {
			return fmt.Errorf("%s/%s failed: %w", service, args[1], err)
		}
		return printJSON(resp)
	})
}
