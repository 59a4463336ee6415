package weapons

import (
	"fmt"
	"time"
)

// OwnerKind says which container owns a customization
type OwnerKind string

// Owner kinds
const (
	OwnerKindPreset  OwnerKind = "preset"
	OwnerKindSession OwnerKind = "session"
)

// Owner references exactly one preset or one session override.
// Use NewPresetOwner or NewSessionOwner to build one.
type Owner struct {
	Kind OwnerKind `json:"kind"`
	ID   string    `json:"id"`
}

// NewPresetOwner returns an owner pointing at a preset
func NewPresetOwner(presetID string) (Owner, error) {
	if presetID == "" {
		return Owner{}, fmt.Errorf("preset owner requires a preset id")
	}
	return Owner{Kind: OwnerKindPreset, ID: presetID}, nil
}

// NewSessionOwner returns an owner pointing at a session override
func NewSessionOwner(sessionID string) (Owner, error) {
	if sessionID == "" {
		return Owner{}, fmt.Errorf("session owner requires a session id")
	}
	return Owner{Kind: OwnerKindSession, ID: sessionID}, nil
}

// IsValid reports whether the owner names exactly one container
func (o Owner) IsValid() bool {
	switch o.Kind {
	case OwnerKindPreset, OwnerKindSession:
		return o.ID != ""
	default:
		return false
	}
}

// CustomizationSpec is the owner-free part of a customization. It is what
// callers send and what export blobs carry.
type CustomizationSpec struct {
	DefinitionID string `json:"definition_id"`
	Enabled      bool   `json:"enabled"`
	Count        *int   `json:"count,omitempty"`
	Priority     int    `json:"priority"`
}

// Validate checks the count override bounds
func (s CustomizationSpec) Validate() error {
	if s.DefinitionID == "" {
		return fmt.Errorf("definition id is required")
	}
	if s.Count != nil && (*s.Count < 1 || *s.Count > MaxCountOverride) {
		return fmt.Errorf("count override %d for %s must be between 1 and %d", *s.Count, s.DefinitionID, MaxCountOverride)
	}
	return nil
}

// Customization adjusts one definition's enabled state and copy count
type Customization struct {
	CustomizationSpec
	Owner Owner `json:"owner"`
}

// NewPresetCustomization builds a customization owned by a preset
func NewPresetCustomization(presetID string, spec CustomizationSpec) (*Customization, error) {
	owner, err := NewPresetOwner(presetID)
	if err != nil {
		return nil, err
	}
	return newCustomization(owner, spec)
}

// NewSessionCustomization builds a customization owned by a session override
func NewSessionCustomization(sessionID string, spec CustomizationSpec) (*Customization, error) {
	owner, err := NewSessionOwner(sessionID)
	if err != nil {
		return nil, err
	}
	return newCustomization(owner, spec)
}

func newCustomization(owner Owner, spec CustomizationSpec) (*Customization, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Count != nil {
		n := *spec.Count
		spec.Count = &n
	}
	return &Customization{CustomizationSpec: spec, Owner: owner}, nil
}

// Effective collapses a list of customizations to one per definition. The
// highest priority wins; on a tie the later entry wins.
func Effective(customizations []*Customization) map[string]*Customization {
	out := make(map[string]*Customization, len(customizations))
	for _, c := range customizations {
		if c == nil {
			continue
		}
		if prev, ok := out[c.DefinitionID]; ok && prev.Priority > c.Priority {
			continue
		}
		out[c.DefinitionID] = c
	}
	return out
}

// Specs strips owners from a list of customizations
func Specs(customizations []*Customization) []CustomizationSpec {
	out := make([]CustomizationSpec, 0, len(customizations))
	for _, c := range customizations {
		out = append(out, c.CustomizationSpec)
	}
	return out
}

// Preset is a named, durable set of customizations
type Preset struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	IsDefault      bool             `json:"is_default"`
	Customizations []*Customization `json:"customizations"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Normalize replaces a nil customization list with an empty one
func (p *Preset) Normalize() {
	if p.Customizations == nil {
		p.Customizations = []*Customization{}
	}
}

// SessionOverride is the ephemeral customization overlay for one session
type SessionOverride struct {
	SessionID      string           `json:"session_id"`
	Customizations []*Customization `json:"customizations"`
}

// Normalize replaces a nil customization list with an empty one
func (o *SessionOverride) Normalize() {
	if o.Customizations == nil {
		o.Customizations = []*Customization{}
	}
}

// Upsert replaces any customization for the same definition or appends a new one
func Upsert(list []*Customization, c *Customization) []*Customization {
	for i, existing := range list {
		if existing.DefinitionID == c.DefinitionID {
			list[i] = c
			return list
		}
	}
	return append(list, c)
}
