package presets

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
	"github.com/KirkDiggler/weapon-deck-api/internal/storage/sqlite"
)

const errPresetIDEmpty = "preset ID cannot be empty"

type sqliteRepository struct {
	db *sqlite.DB
}

// SQLiteConfig contains configuration for the SQLite preset repository
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

// NewSQLite creates a new SQLite-backed preset repository
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &sqliteRepository{db: cfg.DB}, nil
}

func validatePreset(p *weapons.Preset) error {
	if p == nil {
		return errors.InvalidArgument("preset cannot be nil")
	}
	if p.ID == "" {
		return errors.InvalidArgument(errPresetIDEmpty)
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.InvalidArgument("preset name cannot be empty")
	}
	return nil
}

func (r *sqliteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validatePreset(input.Preset); err != nil {
		return nil, err
	}
	p := input.Preset

	out := &CreateOutput{Preset: p}
	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM presets WHERE id = ?`, p.ID).Scan(&exists)
		if err != nil {
			return errors.Wrap(err, "failed to check preset existence")
		}
		if exists > 0 {
			return errors.AlreadyExistsf("preset %s already exists", p.ID)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO presets (id, name, is_default, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.IsDefault, sqlite.FormatTime(p.CreatedAt), sqlite.FormatTime(p.UpdatedAt),
		); err != nil {
			return errors.Wrapf(err, "failed to insert preset %s", p.ID)
		}

		if p.IsDefault {
			res, err := tx.ExecContext(ctx,
				`UPDATE presets SET is_default = 0, updated_at = ? WHERE id <> ? AND is_default = 1`,
				sqlite.FormatTime(p.UpdatedAt), p.ID)
			if err != nil {
				return errors.Wrap(err, "failed to clear other default presets")
			}
			cleared, _ := res.RowsAffected()
			out.Cleared = int(cleared)
		}

		return writeCustomizations(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}

	p.Normalize()
	return out, nil
}

func writeCustomizations(ctx context.Context, tx *sql.Tx, p *weapons.Preset) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM preset_customizations WHERE preset_id = ?`, p.ID); err != nil {
		return errors.Wrapf(err, "failed to clear customizations for preset %s", p.ID)
	}

	for i, c := range p.Customizations {
		var count sql.NullInt64
		if c.Count != nil {
			count = sql.NullInt64{Int64: int64(*c.Count), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO preset_customizations (preset_id, position, definition_id, enabled, count, priority)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, i, c.DefinitionID, c.Enabled, count, c.Priority,
		); err != nil {
			return errors.Wrapf(err, "failed to insert customization %s for preset %s", c.DefinitionID, p.ID)
		}
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadPreset(ctx context.Context, q querier, id string) (*weapons.Preset, error) {
	var (
		p                    weapons.Preset
		createdAt, updatedAt string
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, name, is_default, created_at, updated_at FROM presets WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.IsDefault, &createdAt, &updatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("preset %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get preset %s", id)
	}
	if p.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = sqlite.ParseTime(updatedAt); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT definition_id, enabled, count, priority
		FROM preset_customizations
		WHERE preset_id = ?
		ORDER BY position`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query customizations for preset %s", id)
	}
	defer func() { _ = rows.Close() }()

	p.Customizations = []*weapons.Customization{}
	for rows.Next() {
		var (
			spec  weapons.CustomizationSpec
			count sql.NullInt64
		)
		if err := rows.Scan(&spec.DefinitionID, &spec.Enabled, &count, &spec.Priority); err != nil {
			return nil, errors.Wrap(err, "failed to scan customization")
		}
		if count.Valid {
			n := int(count.Int64)
			spec.Count = &n
		}
		c, err := weapons.NewPresetCustomization(p.ID, spec)
		if err != nil {
			return nil, errors.Wrapf(err, "stored customization for preset %s is invalid", p.ID)
		}
		p.Customizations = append(p.Customizations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate customizations")
	}

	return &p, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPresetIDEmpty)
	}

	p, err := loadPreset(ctx, r.db.Conn(), input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Preset: p}, nil
}

func (r *sqliteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.Conn().QueryContext(ctx, `SELECT id FROM presets ORDER BY name, id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list presets")
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, errors.Wrap(err, "failed to scan preset id")
		}
		ids = append(ids, id)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate presets")
	}

	out := &ListOutput{Presets: make([]*weapons.Preset, 0, len(ids))}
	for _, id := range ids {
		p, err := loadPreset(ctx, r.db.Conn(), id)
		if err != nil {
			return nil, err
		}
		out.Presets = append(out.Presets, p)
	}
	return out, nil
}

func (r *sqliteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validatePreset(input.Preset); err != nil {
		return nil, err
	}
	p := input.Preset

	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE presets SET name = ?, is_default = ?, updated_at = ? WHERE id = ?`,
			p.Name, p.IsDefault, sqlite.FormatTime(p.UpdatedAt), p.ID)
		if err != nil {
			return errors.Wrapf(err, "failed to update preset %s", p.ID)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errors.NotFoundf("preset %s not found", p.ID)
		}
		return writeCustomizations(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}

	p.Normalize()
	return &UpdateOutput{Preset: p}, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPresetIDEmpty)
	}

	res, err := r.db.Conn().ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete preset %s", input.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errors.NotFoundf("preset %s not found", input.ID)
	}
	return &DeleteOutput{}, nil
}

func (r *sqliteRepository) SetDefault(ctx context.Context, input SetDefaultInput) (*SetDefaultOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errPresetIDEmpty)
	}

	out := &SetDefaultOutput{}
	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		updatedAt := sqlite.FormatTime(input.UpdatedAt)

		res, err := tx.ExecContext(ctx,
			`UPDATE presets SET is_default = 1, updated_at = ? WHERE id = ?`, updatedAt, input.ID)
		if err != nil {
			return errors.Wrapf(err, "failed to flag preset %s", input.ID)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errors.NotFoundf("preset %s not found", input.ID)
		}

		res, err = tx.ExecContext(ctx,
			`UPDATE presets SET is_default = 0, updated_at = ? WHERE id <> ? AND is_default = 1`, updatedAt, input.ID)
		if err != nil {
			return errors.Wrap(err, "failed to clear other default presets")
		}
		cleared, _ := res.RowsAffected()
		out.Cleared = int(cleared)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
