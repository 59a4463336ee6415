// Package v1alpha1 handles the weapon deck grpc service interface
package v1alpha1

import (
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/catalog"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/customization"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/deck"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/inventory"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CatalogService       catalog.Service
	DeckService          deck.Service
	InventoryService     inventory.Service
	CustomizationService customization.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.CatalogService == nil {
		vb.RequiredField("catalog_service")
	}
	if c.DeckService == nil {
		vb.RequiredField("deck_service")
	}
	if c.InventoryService == nil {
		vb.RequiredField("inventory_service")
	}
	if c.CustomizationService == nil {
		vb.RequiredField("customization_service")
	}
	return vb.Build()
}

// Handler implements the catalog, deck, inventory and customization services
type Handler struct {
	catalogService       catalog.Service
	deckService          deck.Service
	inventoryService     inventory.Service
	customizationService customization.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("handler config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		catalogService:       cfg.CatalogService,
		deckService:          cfg.DeckService,
		inventoryService:     cfg.InventoryService,
		customizationService: cfg.CustomizationService,
	}, nil
}

func (h *Handler) weaponDeck() {}

func requireSession(sessionID string) error {
	if sessionID == "" {
		return errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}
	return nil
}
