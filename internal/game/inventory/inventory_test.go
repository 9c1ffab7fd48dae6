package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/charsim/internal/game/inventory"
	"github.com/cory-johannsen/charsim/internal/game/skill"
)

func shield() *inventory.Item {
	return inventory.NewItem("Buckler", inventory.CategoryShield, inventory.RankNormal, inventory.WithWeight(3))
}

func greatclub() *inventory.Item {
	return inventory.NewWeapon("Greatclub", inventory.RankNormal, inventory.WeaponStats{
		Skill: skill.Club, DieFaces: 8, Handedness: inventory.TwoHanded,
	}, inventory.WithWeight(10))
}

func mace() *inventory.Item {
	return inventory.NewWeapon("Mace", inventory.RankNormal, inventory.WeaponStats{
		Skill: skill.Club, DieFaces: 6, Handedness: inventory.OneHanded,
	}, inventory.WithWeight(4))
}

func TestItem_IdentityNotAttributes(t *testing.T) {
	a, b := mace(), mace()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.False(t, a.Is(b))
	assert.True(t, a.Is(a))
	assert.False(t, a.Is(nil))
}

func TestItem_OptionalAttributes(t *testing.T) {
	it := inventory.NewItem("Potion", inventory.CategoryUsable, inventory.RankMagic, inventory.WithUses(2))
	_, ok := it.Weight().Get()
	assert.False(t, ok)
	assert.Equal(t, "-", it.Value().String())
	assert.Equal(t, 0, it.TotalWeight())

	assert.True(t, it.Use())
	assert.True(t, it.Use())
	assert.False(t, it.Use())
	assert.Equal(t, 0, it.Uses().Or(-1))

	plain := inventory.NewItem("Rock", inventory.CategoryUsable, inventory.RankNone)
	assert.False(t, plain.Use())
}

func TestStore_RejectsInvalid(t *testing.T) {
	inv := inventory.New()

	_, err := inv.Store(nil, inventory.SlotWeapon)
	assert.ErrorIs(t, err, inventory.ErrNilItem)

	_, err = inv.Store(shield(), inventory.SlotWeapon)
	assert.ErrorIs(t, err, inventory.ErrSlotMismatch)
	assert.Nil(t, inv.Weapon())

	_, err = inv.Store(mace(), inventory.Slot(99))
	assert.ErrorIs(t, err, inventory.ErrUnknownSlot)

	m := mace()
	_, err = inv.Store(m, inventory.SlotWeapon)
	require.NoError(t, err)
	_, err = inv.Store(m, inventory.SlotWeapon)
	assert.ErrorIs(t, err, inventory.ErrAlreadyStored)

	_, err = inv.Store(inventory.NewNullWeapon(), inventory.SlotWeapon)
	assert.ErrorIs(t, err, inventory.ErrSlotMismatch)
	assert.True(t, inv.Weapon().Is(m))
}

func TestStore_RejectsNegativeWeight(t *testing.T) {
	inv := inventory.New()
	helmet := inventory.NewItem("Helmet", inventory.CategoryHelmet, inventory.RankNormal, inventory.WithWeight(-500))

	_, err := inv.Store(helmet, inventory.SlotHelmet)
	assert.ErrorIs(t, err, inventory.ErrNegativeWeight)
	assert.Nil(t, inv.Get(inventory.SlotHelmet))
	assert.Equal(t, 0, inv.Weight())

	bag := inventory.NewContainer("Backpack", inventory.RankNormal, 4)
	assert.ErrorIs(t, bag.Contents().Add(helmet), inventory.ErrNegativeWeight)
	assert.Zero(t, bag.Contents().UsedSlots())

	weightless := inventory.NewItem("Helmet", inventory.CategoryHelmet, inventory.RankNormal, inventory.WithWeight(0))
	_, err = inv.Store(weightless, inventory.SlotHelmet)
	assert.NoError(t, err)
}

func TestStore_RingsFitBothHands(t *testing.T) {
	inv := inventory.New()
	r1 := inventory.NewItem("Ring of Might", inventory.CategoryRing, inventory.RankRare)
	r2 := inventory.NewItem("Ring of Haste", inventory.CategoryRing, inventory.RankEpic)
	_, err := inv.Store(r1, inventory.SlotLeftRing)
	require.NoError(t, err)
	_, err = inv.Store(r2, inventory.SlotRightRing)
	require.NoError(t, err)
	assert.Len(t, inv.Equipped(), 2)
}

func TestStore_TwoHandedDropsShieldWithoutContainer(t *testing.T) {
	inv := inventory.New()
	s := shield()
	_, err := inv.Store(s, inventory.SlotShield)
	require.NoError(t, err)

	gc := greatclub()
	d, err := inv.Store(gc, inventory.SlotWeapon)
	require.NoError(t, err)

	assert.Nil(t, inv.Get(inventory.SlotShield))
	assert.True(t, inv.Weapon().Is(gc))
	require.Len(t, d.Dropped, 1)
	assert.True(t, d.Dropped[0].Is(s))
	assert.Empty(t, d.Stowed)
}

func TestStore_TwoHandedStowsShieldInContainer(t *testing.T) {
	inv := inventory.New()
	bag := inventory.NewContainer("Backpack", inventory.RankNormal, 4, inventory.WithWeight(1))
	_, err := inv.Store(bag, inventory.SlotContainer)
	require.NoError(t, err)
	s := shield()
	_, err = inv.Store(s, inventory.SlotShield)
	require.NoError(t, err)

	d, err := inv.Store(greatclub(), inventory.SlotWeapon)
	require.NoError(t, err)

	assert.Nil(t, inv.Get(inventory.SlotShield))
	require.Len(t, d.Stowed, 1)
	assert.True(t, d.Stowed[0].Is(s))
	assert.True(t, inv.Contains(s.ID()))
	assert.Equal(t, 1+3+10, inv.Weight())
}

func TestStore_FullContainerDrops(t *testing.T) {
	inv := inventory.New()
	_, err := inv.Store(inventory.NewContainer("Pouch", inventory.RankNormal, 0), inventory.SlotContainer)
	require.NoError(t, err)
	_, err = inv.Store(shield(), inventory.SlotShield)
	require.NoError(t, err)

	d, err := inv.Store(greatclub(), inventory.SlotWeapon)
	require.NoError(t, err)
	assert.Len(t, d.Dropped, 1)
	assert.Empty(t, d.Stowed)
}

func TestStore_ShieldDisplacesTwoHandedWeapon(t *testing.T) {
	inv := inventory.New()
	gc := greatclub()
	_, err := inv.Store(gc, inventory.SlotWeapon)
	require.NoError(t, err)

	d, err := inv.Store(shield(), inventory.SlotShield)
	require.NoError(t, err)
	assert.Nil(t, inv.Weapon())
	require.Len(t, d.Dropped, 1)
	assert.True(t, d.Dropped[0].Is(gc))
}

func TestStore_ShieldKeepsOneHandedWeapon(t *testing.T) {
	inv := inventory.New()
	m := mace()
	_, err := inv.Store(m, inventory.SlotWeapon)
	require.NoError(t, err)
	d, err := inv.Store(shield(), inventory.SlotShield)
	require.NoError(t, err)
	assert.True(t, d.Empty())
	assert.True(t, inv.Weapon().Is(m))
}

func TestStore_ReplacingOccupantDisplacesIt(t *testing.T) {
	inv := inventory.New()
	first, second := mace(), mace()
	_, err := inv.Store(first, inventory.SlotWeapon)
	require.NoError(t, err)
	d, err := inv.Store(second, inventory.SlotWeapon)
	require.NoError(t, err)
	require.Len(t, d.Dropped, 1)
	assert.True(t, d.Dropped[0].Is(first))

	// The unarmed weapon vanishes instead of being dropped.
	inv2 := inventory.New()
	_, err = inv2.Store(inventory.NewFists(), inventory.SlotWeapon)
	require.NoError(t, err)
	d, err = inv2.Store(mace(), inventory.SlotWeapon)
	require.NoError(t, err)
	assert.True(t, d.Empty())
}

func TestDropAndDropItem(t *testing.T) {
	inv := inventory.New()
	bag := inventory.NewContainer("Backpack", inventory.RankNormal, 2)
	_, err := inv.Store(bag, inventory.SlotContainer)
	require.NoError(t, err)
	potion := inventory.NewItem("Potion", inventory.CategoryUsable, inventory.RankNormal, inventory.WithWeight(1))
	require.NoError(t, bag.Contents().Add(potion))
	m := mace()
	_, err = inv.Store(m, inventory.SlotWeapon)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.Weight())

	assert.Nil(t, inv.Drop(inventory.SlotBoots))
	assert.True(t, inv.DropItem(potion.ID()).Is(potion))
	assert.Equal(t, 0, bag.Contents().UsedSlots())
	assert.True(t, inv.Drop(inventory.SlotWeapon).Is(m))
	assert.Nil(t, inv.DropItem(m.ID()))
	assert.Nil(t, inv.Drop(inventory.Slot(-4)))
}

func TestSlot_Names(t *testing.T) {
	for _, s := range inventory.Slots {
		got, err := inventory.ParseSlot(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	assert.Equal(t, inventory.CategoryRing, inventory.CategoryForSlot(inventory.SlotLeftRing))
	assert.Equal(t, inventory.CategoryNone, inventory.CategoryForSlot(inventory.Slot(50)))
	assert.Equal(t, "Leg Armor", inventory.SlotLegArmor.DisplayName())
	_, err := inventory.ParseSlot("tail")
	assert.Error(t, err)
}

func TestStore_Property_SlotInvariantAndTwoHandedExclusion(t *testing.T) {
	makers := []func() *inventory.Item{
		shield, greatclub, mace,
		func() *inventory.Item { return inventory.NewContainer("Sack", inventory.RankNormal, 1) },
		func() *inventory.Item { return inventory.NewItem("Helm", inventory.CategoryHelmet, inventory.RankNormal) },
		func() *inventory.Item { return inventory.NewItem("Band", inventory.CategoryRing, inventory.RankNormal) },
	}
	rapid.Check(t, func(rt *rapid.T) {
		inv := inventory.New()
		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			item := makers[rapid.IntRange(0, len(makers)-1).Draw(rt, "item")]()
			slot := inventory.Slots[rapid.IntRange(0, len(inventory.Slots)-1).Draw(rt, "slot")]
			_, err := inv.Store(item, slot)
			if err == nil {
				require.True(rt, inv.Get(slot).Is(item))
			}
			for s, it := range inv.Equipped() {
				require.Equal(rt, inventory.CategoryForSlot(s), it.Category())
			}
			if inv.Weapon().IsTwoHanded() {
				require.Nil(rt, inv.Get(inventory.SlotShield))
			}
		}
	})
}
