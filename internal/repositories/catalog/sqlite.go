package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/storage/sqlite"
)

type sqliteRepository struct {
	db *sqlite.DB
}

// SQLiteConfig contains configuration for the SQLite catalog repository
type SQLiteConfig struct {
	DB *sqlite.DB
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	return nil
}

// NewSQLite creates a new SQLite-backed catalog repository
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &sqliteRepository{db: cfg.DB}, nil
}

func (r *sqliteRepository) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	out := &LoadOutput{
		Definitions: []*weapons.CardDefinition{},
		Instances:   []*weapons.CardInstance{},
	}

	var importedAt string
	err := r.db.Conn().QueryRowContext(ctx,
		`SELECT version, imported_at FROM catalog_meta WHERE id = 1`).Scan(&out.Version, &importedAt)
	switch {
	case stderrors.Is(err, sql.ErrNoRows):
		return out, nil
	case err != nil:
		return nil, errors.Wrap(err, "failed to read catalog version")
	}
	if out.ImportedAt, err = sqlite.ParseTime(importedAt); err != nil {
		return nil, err
	}

	defs, err := r.loadDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	out.Definitions = defs

	insts, err := r.loadInstances(ctx)
	if err != nil {
		return nil, err
	}
	out.Instances = insts

	return out, nil
}

func (r *sqliteRepository) loadDefinitions(ctx context.Context) ([]*weapons.CardDefinition, error) {
	rows, err := r.db.Conn().QueryContext(ctx, `
		SELECT id, tier, name, set_name, category, default_count, stats, abilities, deprecated, updated_at
		FROM card_definitions
		ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query definitions")
	}
	defer func() { _ = rows.Close() }()

	defs := []*weapons.CardDefinition{}
	for rows.Next() {
		var (
			def                         weapons.CardDefinition
			stats, abilities, updatedAt string
		)
		if err := rows.Scan(&def.ID, &def.Tier, &def.Name, &def.Set, &def.Category, &def.DefaultCount,
			&stats, &abilities, &def.Deprecated, &updatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan definition")
		}
		if err := json.Unmarshal([]byte(stats), &def.Stats); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal stats for %s", def.ID)
		}
		if err := json.Unmarshal([]byte(abilities), &def.Abilities); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal abilities for %s", def.ID)
		}
		if def.UpdatedAt, err = sqlite.ParseTime(updatedAt); err != nil {
			return nil, err
		}
		defs = append(defs, &def)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate definitions")
	}
	return defs, nil
}

func (r *sqliteRepository) loadInstances(ctx context.Context) ([]*weapons.CardInstance, error) {
	rows, err := r.db.Conn().QueryContext(ctx,
		`SELECT id, definition_id, copy_index FROM card_instances ORDER BY definition_id, copy_index`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query instances")
	}
	defer func() { _ = rows.Close() }()

	insts := []*weapons.CardInstance{}
	for rows.Next() {
		var inst weapons.CardInstance
		if err := rows.Scan(&inst.ID, &inst.DefinitionID, &inst.CopyIndex); err != nil {
			return nil, errors.Wrap(err, "failed to scan instance")
		}
		insts = append(insts, &inst)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate instances")
	}
	return insts, nil
}

func (r *sqliteRepository) Apply(ctx context.Context, input ApplyInput) (*ApplyOutput, error) {
	if input.Version == "" {
		return nil, errors.InvalidArgument("version cannot be empty")
	}

	out := &ApplyOutput{}
	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, def := range input.Definitions {
			stats, err := json.Marshal(def.Stats)
			if err != nil {
				return errors.Wrapf(err, "failed to marshal stats for %s", def.ID)
			}
			abilities, err := json.Marshal(def.Abilities)
			if err != nil {
				return errors.Wrapf(err, "failed to marshal abilities for %s", def.ID)
			}

			if _, err := tx.ExecContext(ctx, `
				INSERT INTO card_definitions
					(id, tier, name, set_name, category, default_count, stats, abilities, deprecated, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (id) DO UPDATE SET
					category = excluded.category,
					default_count = excluded.default_count,
					stats = excluded.stats,
					abilities = excluded.abilities,
					deprecated = excluded.deprecated,
					updated_at = excluded.updated_at`,
				def.ID, string(def.Tier), def.Name, def.Set, string(def.Category), def.DefaultCount,
				string(stats), string(abilities), def.Deprecated, sqlite.FormatTime(def.UpdatedAt),
			); err != nil {
				return errors.Wrapf(err, "failed to write definition %s", def.ID)
			}
			out.DefinitionsWritten++
		}

		for _, inst := range input.Instances {
			res, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO card_instances (id, definition_id, copy_index) VALUES (?, ?, ?)`,
				inst.ID, inst.DefinitionID, inst.CopyIndex)
			if err != nil {
				return errors.Wrapf(err, "failed to write instance %s", inst.ID)
			}
			if n, err := res.RowsAffected(); err == nil {
				out.InstancesCreated += int(n)
			}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_meta (id, version, imported_at) VALUES (1, ?, ?)
			ON CONFLICT (id) DO UPDATE SET version = excluded.version, imported_at = excluded.imported_at`,
			input.Version, sqlite.FormatTime(input.ImportedAt),
		); err != nil {
			return errors.Wrap(err, "failed to record catalog version")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
