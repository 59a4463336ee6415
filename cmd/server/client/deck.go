package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/weapon-deck-api/internal/handlers/weapons/v1alpha1"
)

var (
	drawTwo        bool
	reclaimShuffle bool
)

var buildDeckCmd = &cobra.Command{
	Use:   "build-deck [session-id] [tier]",
	Short: "Build a tier's deck for a session",
	Args:  cobra.ExactArgs(2),
	RunE:  buildDeck,
}

var drawCmd = &cobra.Command{
	Use:   "draw [session-id] [tier]",
	Short: "Draw the top card of a deck",
	Long: `Draw the top card of a deck. Examples:

  draw game-1 starting
  draw game-1 regular --two`,
	Args: cobra.ExactArgs(2),
	RunE: draw,
}

var discardCmd = &cobra.Command{
	Use:   "discard [session-id] [tier] [instance-id]",
	Short: "Discard a drawn card",
	Args:  cobra.ExactArgs(3),
	RunE:  discard,
}

var reclaimCmd = &cobra.Command{
	Use:   "reclaim [session-id] [tier]",
	Short: "Put the discard pile back into the deck",
	Args:  cobra.ExactArgs(2),
	RunE:  reclaim,
}

var deckCmd = &cobra.Command{
	Use:   "deck [session-id] [tier]",
	Short: "Show a deck's piles",
	Args:  cobra.ExactArgs(2),
	RunE:  showDeck,
}

func init() {
	drawCmd.Flags().BoolVar(&drawTwo, "two", false, "draw two cards at once")
	reclaimCmd.Flags().BoolVar(&reclaimShuffle, "shuffle", false, "shuffle the deck afterwards")
}

func deckRequest(args []string) (*v1alpha1.DeckRequest, error) {
	tier, err := parseTier(args[1])
	if err != nil {
		return nil, err
	}
	return &v1alpha1.DeckRequest{SessionID: args[0], Tier: tier}, nil
}

func buildDeck(_ *cobra.Command, args []string) error {
	req, err := deckRequest(args)
	if err != nil {
		return err
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.BuildDeck(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to build deck: %w", err)
		}

		if resp.Built {
			fmt.Println("Built a new deck")
		} else {
			fmt.Println("Deck already existed")
		}
		printDeck(resp.Deck)
		if resp.Report.Hard() > 0 {
			fmt.Printf("Shuffle could not satisfy every rule: %+v\n", resp.Report)
		}
		return nil
	})
}

func draw(_ *cobra.Command, args []string) error {
	req, err := deckRequest(args)
	if err != nil {
		return err
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		if drawTwo {
			resp, err := c.DrawTwo(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to draw: %w", err)
			}
			if len(resp.Cards) == 0 {
				fmt.Println("No cards left")
			}
			for _, card := range resp.Cards {
				printCard(card)
			}
			if resp.Reshuffles > 0 {
				fmt.Printf("Discard pile was reshuffled in %d time(s)\n", resp.Reshuffles)
			}
			printDeck(resp.Deck)
			return nil
		}

		resp, err := c.Draw(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to draw: %w", err)
		}
		if resp.Card == nil {
			fmt.Println("No cards left")
		}
		printCard(resp.Card)
		if resp.Reshuffled {
			fmt.Println("Discard pile was reshuffled in")
		}
		printDeck(resp.Deck)
		return nil
	})
}

func discard(_ *cobra.Command, args []string) error {
	tier, err := parseTier(args[1])
	if err != nil {
		return err
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.Discard(ctx, &v1alpha1.DiscardRequest{
			SessionID:  args[0],
			Tier:       tier,
			InstanceID: args[2],
		})
		if err != nil {
			return fmt.Errorf("failed to discard: %w", err)
		}
		printDeck(resp.Deck)
		return nil
	})
}

func reclaim(_ *cobra.Command, args []string) error {
	tier, err := parseTier(args[1])
	if err != nil {
		return err
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.ReclaimDiscard(ctx, &v1alpha1.ReclaimDiscardRequest{
			SessionID: args[0],
			Tier:      tier,
			Shuffle:   reclaimShuffle,
		})
		if err != nil {
			return fmt.Errorf("failed to reclaim: %w", err)
		}
		fmt.Printf("Reclaimed %d card(s)\n", resp.Reclaimed)
		printDeck(resp.Deck)
		return nil
	})
}

func showDeck(_ *cobra.Command, args []string) error {
	req, err := deckRequest(args)
	if err != nil {
		return err
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.GetDeck(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to get deck: %w", err)
		}
		printDeck(resp.Deck)
		fmt.Printf("%d card(s) held in inventory\n", resp.InInventory)

		recent, err := c.GetRecentDraws(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to get recent draws: %w", err)
		}
		if len(recent.Cards) > 0 {
			fmt.Println("Recent draws:")
			for _, card := range recent.Cards {
				printCard(card)
			}
		}
		return nil
	})
}
