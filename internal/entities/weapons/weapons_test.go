package weapons_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type WeaponsTestSuite struct {
	suite.Suite

	catalog *weapons.Catalog
}

func TestWeaponsSuite(t *testing.T) {
	suite.Run(t, new(WeaponsTestSuite))
}

func (s *WeaponsTestSuite) SetupTest() {
	var (
		defs  []*weapons.CardDefinition
		insts []*weapons.CardInstance
	)
	for _, d := range []struct {
		tier weapons.Tier
		name string
		cat  weapons.Category
	}{
		{weapons.TierStarting, "Pistol", weapons.CategoryRanged},
		{weapons.TierStarting, "Crowbar", weapons.CategoryMelee},
		{weapons.TierRegular, "Shotgun", weapons.CategoryRanged},
	} {
		def := &weapons.CardDefinition{
			ID:           weapons.DefinitionID(d.tier, d.name, "core"),
			Tier:         d.tier,
			Name:         d.name,
			Set:          "core",
			Category:     d.cat,
			DefaultCount: 3,
		}
		defs = append(defs, def)
		for i := 0; i < def.MintCount(); i++ {
			insts = append(insts, &weapons.CardInstance{
				ID:           weapons.InstanceID(def.ID, i),
				DefinitionID: def.ID,
				CopyIndex:    i,
			})
		}
	}

	catalog, err := weapons.NewCatalog("v1.0.0", defs, insts)
	s.Require().NoError(err)
	s.catalog = catalog
}

func (s *WeaponsTestSuite) TestDefinitionIDIsStable() {
	s.Equal("starting/sawed-off-shotgun/core", weapons.DefinitionID(weapons.TierStarting, "  Sawed Off  Shotgun", "Core"))
	s.Equal("starting/sawed-off-shotgun/core#4", weapons.InstanceID("starting/sawed-off-shotgun/core", 4))
}

func (s *WeaponsTestSuite) TestCatalogLookups() {
	pistol := weapons.DefinitionID(weapons.TierStarting, "Pistol", "core")

	s.Len(s.catalog.DefinitionsForTier(weapons.TierStarting), 2)
	s.Len(s.catalog.DefinitionsForTier(weapons.TierUltrared), 0)
	s.Len(s.catalog.InstancesOf(pistol), weapons.MaxCountOverride)

	def, ok := s.catalog.DefinitionOf(weapons.InstanceID(pistol, 7))
	s.Require().True(ok)
	s.Equal("Pistol", def.Name)

	_, ok = s.catalog.DefinitionOf("missing#0")
	s.False(ok)
}

func (s *WeaponsTestSuite) TestNewCatalogRejectsOrphanInstance() {
	_, err := weapons.NewCatalog("v1.0.0", nil, []*weapons.CardInstance{{ID: "x#0", DefinitionID: "x"}})
	s.Error(err)
}

func (s *WeaponsTestSuite) TestCatalogHandleSwap() {
	h := weapons.NewCatalogHandle(nil)
	s.Nil(h.Current())

	h.Replace(s.catalog)
	s.Equal("v1.0.0", h.Current().Version())
}

func (s *WeaponsTestSuite) TestDefaultEnabled() {
	s.True((&weapons.CardDefinition{DefaultCount: 2}).DefaultEnabled())
	s.False((&weapons.CardDefinition{DefaultCount: 0}).DefaultEnabled())
	s.False((&weapons.CardDefinition{DefaultCount: 2, Deprecated: true}).DefaultEnabled())
	s.Equal(12, (&weapons.CardDefinition{DefaultCount: 12}).MintCount())
}

func (s *WeaponsTestSuite) TestDeckStateDrawBufferOverflowDiscardsOldest() {
	deck := weapons.NewDeckState("sess", weapons.TierStarting, []string{"a", "b", "c", "d", "e"}, fixedTime)

	for i := 0; i < 4; i++ {
		_, ok := deck.PopTop()
		s.Require().True(ok)
	}

	s.Equal([]string{"d", "c", "b"}, deck.RecentDraws)
	s.Equal([]string{"a"}, deck.Discard)
	s.Equal([]string{"e"}, deck.Remaining)
	s.Equal(5, deck.Held())
}

func (s *WeaponsTestSuite) TestDeckStateDiscardAndReclaim() {
	deck := weapons.NewDeckState("sess", weapons.TierStarting, []string{"a", "b", "c"}, fixedTime)

	first, _ := deck.PopTop()
	second, _ := deck.PopTop()
	deck.PushDiscard(first)
	deck.PushDiscard(second)

	s.Equal([]string{"b", "a"}, deck.Discard)
	s.Empty(deck.RecentDraws)

	s.Equal(2, deck.ReclaimDiscard())
	s.Equal([]string{"c", "b", "a"}, deck.Remaining)
	s.Empty(deck.Discard)
}

func (s *WeaponsTestSuite) TestDeckStateTakeOnlyFromDrawnPiles() {
	deck := weapons.NewDeckState("sess", weapons.TierStarting, []string{"a", "b", "c"}, fixedTime)
	drawn, _ := deck.PopTop()

	pile, ok := deck.Take("b")
	s.False(ok)
	s.Equal(weapons.PileNone, pile)

	pile, ok = deck.Take(drawn)
	s.True(ok)
	s.Equal(weapons.PileRecentDraws, pile)
	s.Equal(weapons.PileNone, deck.Locate(drawn))
}

func (s *WeaponsTestSuite) TestDeckStateValidate() {
	pistol := weapons.DefinitionID(weapons.TierStarting, "Pistol", "core")
	shotgun := weapons.DefinitionID(weapons.TierRegular, "Shotgun", "core")
	ids := []string{weapons.InstanceID(pistol, 0), weapons.InstanceID(pistol, 1)}

	deck := weapons.NewDeckState("sess", weapons.TierStarting, ids, fixedTime)
	s.NoError(deck.Validate(s.catalog, 0))

	taken, _ := deck.PopTop()
	_, _ = deck.Take(taken)
	s.Error(deck.Validate(s.catalog, 0), "card left without being held anywhere")
	s.NoError(deck.Validate(s.catalog, 1))

	wrongTier := deck.Clone()
	wrongTier.Remaining = append(wrongTier.Remaining, weapons.InstanceID(shotgun, 0))
	wrongTier.Size++
	s.Error(wrongTier.Validate(s.catalog, 1))

	dup := deck.Clone()
	dup.Discard = append(dup.Discard, dup.Remaining[0])
	dup.Size++
	s.Error(dup.Validate(s.catalog, 1))
}

func (s *WeaponsTestSuite) TestSessionStateNormalize() {
	state := &weapons.SessionState{
		SessionID: "sess",
		Decks:     map[weapons.Tier]*weapons.DeckState{weapons.TierStarting: {}},
	}
	state.Normalize()

	s.NotNil(state.Settings)
	s.NotNil(state.Inventory.Items)
	s.NotNil(state.Override.Customizations)
	s.NotNil(state.Decks[weapons.TierStarting].SetAside)
	s.Equal(weapons.BaseBackpackCapacity, state.Settings.BackpackCapacity())
}

func (s *WeaponsTestSuite) TestSessionStateNormalizeDropsNullDecks() {
	var state weapons.SessionState
	raw := `{"session_id":"sess","decks":{"starting":null,"regular":{"tier":"regular"}}}`
	s.Require().NoError(json.Unmarshal([]byte(raw), &state))

	s.NotPanics(state.Normalize)

	_, ok := state.Deck(weapons.TierStarting)
	s.False(ok)
	regular, ok := state.Deck(weapons.TierRegular)
	s.Require().True(ok)
	s.NotNil(regular.Remaining)
	s.Len(state.Decks, 1)
}

func TestCustomizationOwnership(t *testing.T) {
	spec := weapons.CustomizationSpec{DefinitionID: "starting/pistol/core", Enabled: true}

	_, err := weapons.NewPresetCustomization("", spec)
	assert.Error(t, err)

	_, err = weapons.NewSessionCustomization("", spec)
	assert.Error(t, err)

	c, err := weapons.NewSessionCustomization("sess", spec)
	require.NoError(t, err)
	assert.Equal(t, weapons.OwnerKindSession, c.Owner.Kind)
	assert.True(t, c.Owner.IsValid())
}

func TestCustomizationCountBounds(t *testing.T) {
	for _, tc := range []struct {
		name  string
		count int
		ok    bool
	}{
		{"zero", 0, false},
		{"one", 1, true},
		{"max", weapons.MaxCountOverride, true},
		{"over", weapons.MaxCountOverride + 1, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			n := tc.count
			_, err := weapons.NewPresetCustomization("preset", weapons.CustomizationSpec{
				DefinitionID: "starting/pistol/core",
				Enabled:      true,
				Count:        &n,
			})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestEffectiveHighestPriorityWins(t *testing.T) {
	mk := func(enabled bool, priority int) *weapons.Customization {
		c, err := weapons.NewPresetCustomization("p", weapons.CustomizationSpec{
			DefinitionID: "starting/pistol/core",
			Enabled:      enabled,
			Priority:     priority,
		})
		require.NoError(t, err)
		return c
	}

	got := weapons.Effective([]*weapons.Customization{mk(false, 5), mk(true, 1)})
	assert.False(t, got["starting/pistol/core"].Enabled)

	got = weapons.Effective([]*weapons.Customization{mk(false, 2), mk(true, 2)})
	assert.True(t, got["starting/pistol/core"].Enabled, "ties go to the later entry")
}

func TestInventoryDenseIndices(t *testing.T) {
	inv := &weapons.Inventory{}
	inv.Normalize()

	for _, id := range []string{"i1", "i2", "i3"} {
		inv.Place(&weapons.InventoryItem{ID: id, InstanceID: id + "#0"}, weapons.SlotTypeBackpack)
	}
	inv.Place(&weapons.InventoryItem{ID: "i4", InstanceID: "i4#0"}, weapons.SlotTypeActive)

	_, ok := inv.Remove("i1")
	require.True(t, ok)

	backpack := inv.InSlot(weapons.SlotTypeBackpack)
	require.Len(t, backpack, 2)
	assert.Equal(t, "i2", backpack[0].ID)
	assert.Equal(t, 0, backpack[0].SlotIndex)
	assert.Equal(t, 1, backpack[1].SlotIndex)

	moved, ok := inv.Move("i2", weapons.SlotTypeActive)
	require.True(t, ok)
	assert.Equal(t, 1, moved.SlotIndex)
	assert.True(t, moved.Equipped)
	assert.Equal(t, 0, inv.InSlot(weapons.SlotTypeBackpack)[0].SlotIndex)

	assert.Len(t, inv.EffectiveActive(false), 2)
	assert.Len(t, inv.EffectiveActive(true), 3)
}

func TestInventoryPlaceAtShiftsLaterItems(t *testing.T) {
	inv := &weapons.Inventory{}
	inv.Normalize()
	inv.Place(&weapons.InventoryItem{ID: "a"}, weapons.SlotTypeActive)
	inv.Place(&weapons.InventoryItem{ID: "b"}, weapons.SlotTypeActive)

	inv.PlaceAt(&weapons.InventoryItem{ID: "c"}, weapons.SlotTypeActive, 0)

	active := inv.InSlot(weapons.SlotTypeActive)
	require.Len(t, active, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{active[0].ID, active[1].ID, active[2].ID})
	assert.Equal(t, 2, active[2].SlotIndex)
	assert.True(t, active[0].Equipped)

	inv.PlaceAt(&weapons.InventoryItem{ID: "d"}, weapons.SlotTypeBackpack, 5)
	d, ok := inv.Find("d")
	require.True(t, ok)
	assert.Equal(t, 0, d.SlotIndex, "an index past the end appends")
	assert.False(t, d.Equipped)
}
