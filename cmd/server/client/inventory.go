package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/weapon-deck-api/internal/handlers/weapons/v1alpha1"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/inventory"
)

var (
	addToBackpack bool
	removeDiscard bool
	historyLimit  int
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory [session-id]",
	Short: "Show a session's active weapons and backpack",
	Args:  cobra.ExactArgs(1),
	RunE:  showInventory,
}

var addCmd = &cobra.Command{
	Use:   "add [session-id] [instance-id]",
	Short: "Pick up a drawn or discarded card",
	Args:  cobra.ExactArgs(2),
	RunE:  addItem,
}

var removeCmd = &cobra.Command{
	Use:   "remove [session-id] [item-id]",
	Short: "Drop an inventory item",
	Args:  cobra.ExactArgs(2),
	RunE:  removeItem,
}

var replaceCmd = &cobra.Command{
	Use:   "replace [session-id] [old-item-id] [new-instance-id]",
	Short: "Swap a held weapon for a drawn card",
	Args:  cobra.ExactArgs(3),
	RunE:  replaceWeapon,
}

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show inventory events, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  showHistory,
}

func init() {
	addCmd.Flags().BoolVar(&addToBackpack, "backpack", false, "add to the backpack instead of an active slot")
	removeCmd.Flags().BoolVar(&removeDiscard, "discard", false, "return the card to its deck's discard pile")
	replaceCmd.Flags().BoolVar(&removeDiscard, "discard", false, "return the old card to its deck's discard pile")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of events")
}

func showInventory(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.GetInventory(ctx, &v1alpha1.SessionRequest{SessionID: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get inventory: %w", err)
		}

		fmt.Printf("Active (%d/%d):\n", len(resp.Active), resp.ActiveCapacity)
		printHeld(resp.Active)
		fmt.Printf("Backpack (%d/%d):\n", len(resp.Backpack), resp.BackpackCapacity)
		printHeld(resp.Backpack)
		if resp.Settings != nil && resp.Settings.AllInventoryActive {
			fmt.Println("All inventory counts as active")
		}
		return nil
	})
}

func printHeld(held []*v1alpha1.HeldWeapon) {
	for _, w := range held {
		name := w.Item.InstanceID
		if w.Definition != nil {
			name = w.Definition.Name
		}
		fmt.Printf("  [%d] %s  %s (%s)\n", w.Item.SlotIndex, w.Item.ID, name, w.Item.Tier)
	}
}

func addItem(_ *cobra.Command, args []string) error {
	req := &v1alpha1.AddItemRequest{SessionID: args[0], InstanceID: args[1]}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		call := c.AddToActive
		if addToBackpack {
			call = c.AddToBackpack
		}
		resp, err := call(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		if resp.Status == inventory.StatusSlotFull {
			fmt.Printf("Slot full (capacity %d), nothing changed\n", resp.Capacity)
			return nil
		}
		fmt.Printf("Added %s as %s in %s slot %d\n",
			resp.Item.InstanceID, resp.Item.ID, resp.Item.SlotType, resp.Item.SlotIndex)
		return nil
	})
}

func removeItem(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.RemoveItem(ctx, &v1alpha1.RemoveItemRequest{
			SessionID:     args[0],
			ItemID:        args[1],
			DiscardToDeck: removeDiscard,
		})
		if err != nil {
			return fmt.Errorf("failed to remove item: %w", err)
		}
		fmt.Printf("Removed %s (%s)\n", resp.Item.ID, resp.Item.InstanceID)
		return nil
	})
}

func replaceWeapon(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.ReplaceWeapon(ctx, &v1alpha1.ReplaceWeaponRequest{
			SessionID:        args[0],
			OldItemID:        args[1],
			NewInstanceID:    args[2],
			DiscardOldToDeck: removeDiscard,
		})
		if err != nil {
			return fmt.Errorf("failed to replace weapon: %w", err)
		}
		fmt.Printf("Replaced %s with %s in %s slot %d\n",
			resp.Removed.InstanceID, resp.Added.InstanceID, resp.Added.SlotType, resp.Added.SlotIndex)
		return nil
	})
}

func showHistory(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.GetInventoryHistory(ctx, &v1alpha1.GetInventoryHistoryRequest{
			SessionID: args[0],
			Limit:     historyLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}
		for _, e := range resp.Events {
			fmt.Printf("%s  %-7s %s (%s)\n", e.OccurredAt.Format("2006-01-02 15:04:05"), e.Type, e.InstanceID, e.ItemID)
		}
		return nil
	})
}
