// Package catalogsource reads weapon card catalogs from TOML files
package catalogsource

//go:generate mockgen -destination=mock/mock_source.go -package=catalogsourcemock github.com/KirkDiggler/weapon-deck-api/internal/clients/catalogsource Source

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
)

//go:embed default_catalog.toml
var defaultCatalog []byte

// Record is one card definition as the catalog file describes it
type Record struct {
	Tier         weapons.Tier        `toml:"tier"`
	Name         string              `toml:"name"`
	Set          string              `toml:"set"`
	Category     weapons.Category    `toml:"category"`
	DefaultCount int                 `toml:"default_count"`
	Stats        weapons.CombatStats `toml:"stats"`
	Abilities    weapons.Abilities   `toml:"abilities"`
}

// Bundle is a versioned catalog file
type Bundle struct {
	Version string    `toml:"version"`
	Records []*Record `toml:"cards"`
}

// Source loads catalog bundles
type Source interface {
	// Load returns the bundle with every record validated
	// Returns errors.InvalidArgument if the file is malformed
	Load(ctx context.Context) (*Bundle, error)
}

// Config configures a file source
type Config struct {
	// Path to a catalog TOML file; empty uses the built-in catalog
	Path string
}

type fileSource struct {
	path string
}

// New creates a file-backed catalog source
func New(cfg *Config) Source {
	if cfg == nil {
		cfg = &Config{}
	}
	return &fileSource{path: cfg.Path}
}

func (s *fileSource) Load(_ context.Context) (*Bundle, error) {
	data := defaultCatalog
	if s.path != "" {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NotFoundf("catalog file %s not found", s.path)
			}
			return nil, errors.Wrapf(err, "failed to read catalog file %s", s.path)
		}
		data = raw
	}

	return Parse(data)
}

// Parse decodes and validates a catalog document. Unknown keys are rejected
// so a typo in a stat name fails loudly instead of zeroing the stat.
func Parse(data []byte) (*Bundle, error) {
	var bundle Bundle
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&bundle); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse catalog")
	}

	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// Validate checks every record and rejects duplicate identities
func (b *Bundle) Validate() error {
	vb := errors.NewValidationBuilder()
	if b.Version == "" {
		vb.RequiredField("version")
	}

	seen := make(map[string]int, len(b.Records))
	for i, rec := range b.Records {
		field := fmt.Sprintf("cards[%d]", i)
		if rec.Name == "" {
			vb.Field(field, "name is required")
		}
		if rec.Set == "" {
			vb.Field(field, "set is required")
		}
		if !rec.Tier.IsValid() {
			vb.Fieldf(field, "unknown tier %q", rec.Tier)
		}
		if !rec.Category.IsValid() {
			vb.Fieldf(field, "unknown category %q", rec.Category)
		}
		if rec.DefaultCount < 0 {
			vb.Fieldf(field, "default_count %d cannot be negative", rec.DefaultCount)
		}

		id := rec.DefinitionID()
		if prev, ok := seen[id]; ok {
			vb.Fieldf(field, "duplicates cards[%d] (%s)", prev, id)
			continue
		}
		seen[id] = i
	}

	return vb.Build()
}

// DefinitionID is the stable identity this record maps to
func (r *Record) DefinitionID() string {
	return weapons.DefinitionID(r.Tier, r.Name, r.Set)
}
