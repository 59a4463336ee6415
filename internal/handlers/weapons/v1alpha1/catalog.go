package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/orchestrators/catalog"
)

// GetCatalogRequest asks for the loaded card definitions
type GetCatalogRequest struct {
	Tier              weapons.Tier `json:"tier,omitempty"`
	IncludeDeprecated bool         `json:"include_deprecated,omitempty"`
}

// GetCatalogResponse carries the loaded card definitions
type GetCatalogResponse struct {
	Version     string                    `json:"version"`
	Definitions []*weapons.CardDefinition `json:"definitions"`
}

// ImportCatalogRequest asks the server to re-read its catalog source
type ImportCatalogRequest struct {
	Force bool `json:"force,omitempty"`
}

// ImportCatalogResponse reports what the import changed
type ImportCatalogResponse struct {
	Outcome         catalog.Outcome `json:"outcome"`
	PreviousVersion string          `json:"previous_version,omitempty"`
	Version         string          `json:"version"`
	Added           int             `json:"added"`
	Updated         int             `json:"updated"`
	Deprecated      int             `json:"deprecated"`
	InstancesMinted int             `json:"instances_minted"`
}

var catalogServiceDesc = serviceDesc(CatalogServiceName,
	unary(CatalogServiceName, "GetCatalog", (*Handler).GetCatalog),
	unary(CatalogServiceName, "ImportCatalog", (*Handler).ImportCatalog),
)

// GetCatalog returns the loaded definitions, optionally for one tier
func (h *Handler) GetCatalog(ctx context.Context, req *GetCatalogRequest) (*GetCatalogResponse, error) {
	if req.Tier != "" && !req.Tier.IsValid() {
		return nil, errors.ToGRPCError(errors.InvalidArgumentf("unknown tier %q", req.Tier))
	}

	out, err := h.catalogService.GetCatalog(ctx, &catalog.GetCatalogInput{
		Tier:              req.Tier,
		IncludeDeprecated: req.IncludeDeprecated,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetCatalogResponse{
		Version:     out.Version,
		Definitions: out.Definitions,
	}, nil
}

// ImportCatalog reloads the catalog from the server's configured source
func (h *Handler) ImportCatalog(ctx context.Context, req *ImportCatalogRequest) (*ImportCatalogResponse, error) {
	out, err := h.catalogService.Import(ctx, &catalog.ImportInput{Force: req.Force})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ImportCatalogResponse{
		Outcome:         out.Outcome,
		PreviousVersion: out.PreviousVersion,
		Version:         out.Version,
		Added:           out.Added,
		Updated:         out.Updated,
		Deprecated:      out.Deprecated,
		InstancesMinted: out.InstancesMinted,
	}, nil
}
