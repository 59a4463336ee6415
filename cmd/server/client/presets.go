package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/weapon-deck-api/internal/handlers/weapons/v1alpha1"
)

var (
	importName    string
	importDefault bool
	diffSession   string
	diffPreset    string
	diffTier      string
)

var listPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List customization presets",
	Args:  cobra.NoArgs,
	RunE:  listPresets,
}

var exportPresetCmd = &cobra.Command{
	Use:   "export-preset [preset-id]",
	Short: "Print a preset as a portable JSON document",
	Args:  cobra.ExactArgs(1),
	RunE:  exportPreset,
}

var importPresetCmd = &cobra.Command{
	Use:   "import-preset [file]",
	Short: "Create a preset from an exported JSON document",
	Args:  cobra.ExactArgs(1),
	RunE:  importPreset,
}

var applyPresetCmd = &cobra.Command{
	Use:   "apply-preset [session-id] [preset-id]",
	Short: "Switch a session to a preset and rebuild its decks",
	Long:  `Switch a session to a preset and rebuild its decks. Leave out the preset to go back to the default.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  applyPreset,
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show how customizations change the catalog defaults",
	Args:  cobra.NoArgs,
	RunE:  diffCustomizations,
}

func init() {
	importPresetCmd.Flags().StringVar(&importName, "name", "", "name for the imported preset")
	importPresetCmd.Flags().BoolVar(&importDefault, "default", false, "make the imported preset the default")
	diffCmd.Flags().StringVar(&diffSession, "session", "", "session whose preset and overrides to compare")
	diffCmd.Flags().StringVar(&diffPreset, "preset", "", "preset to compare")
	diffCmd.Flags().StringVar(&diffTier, "tier", "", "only compare one tier")
}

func listPresets(_ *cobra.Command, _ []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.ListPresets(ctx, &v1alpha1.ListPresetsRequest{})
		if err != nil {
			return fmt.Errorf("failed to list presets: %w", err)
		}
		for _, p := range resp.Presets {
			flag := ""
			if p.IsDefault {
				flag = " [default]"
			}
			fmt.Printf("%s  %s  %d customization(s)%s\n", p.ID, p.Name, len(p.Customizations), flag)
		}
		return nil
	})
}

func exportPreset(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.ExportPreset(ctx, &v1alpha1.PresetRequest{ID: args[0]})
		if err != nil {
			return fmt.Errorf("failed to export preset: %w", err)
		}
		_, err = os.Stdout.Write(append(resp.Data, '\n'))
		return err
	})
}

func importPreset(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.ImportPreset(ctx, &v1alpha1.ImportPresetRequest{
			Data:      data,
			Name:      importName,
			IsDefault: importDefault,
		})
		if err != nil {
			return fmt.Errorf("failed to import preset: %w", err)
		}
		fmt.Printf("Imported preset %s (%s)\n", resp.Preset.ID, resp.Preset.Name)
		if resp.CatalogVersionMismatch {
			fmt.Println("Warning: the document was exported from a different catalog version")
		}
		return nil
	})
}

func applyPreset(_ *cobra.Command, args []string) error {
	req := &v1alpha1.ApplyCustomizationsRequest{SessionID: args[0]}
	if len(args) == 2 {
		req.PresetID = args[1]
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.ApplyCustomizations(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to apply preset: %w", err)
		}
		if resp.PresetID == "" {
			fmt.Println("Using the default preset")
		} else {
			fmt.Printf("Using preset %s\n", resp.PresetID)
		}
		for _, d := range resp.Decks {
			printDeck(d)
		}
		return nil
	})
}

func diffCustomizations(_ *cobra.Command, _ []string) error {
	req := &v1alpha1.DiffCustomizationsRequest{SessionID: diffSession, PresetID: diffPreset}
	if diffTier != "" {
		tier, err := parseTier(diffTier)
		if err != nil {
			return err
		}
		req.Tier = tier
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.DiffCustomizations(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to diff customizations: %w", err)
		}
		if len(resp.Entries) == 0 {
			fmt.Println("No differences from the catalog defaults")
		}
		for _, e := range resp.Entries {
			fmt.Printf("%-10s %-30s %s  %d -> %d\n", e.Tier, e.Name, e.Kind, e.DefaultCount, e.CustomCount)
		}
		return nil
	})
}
