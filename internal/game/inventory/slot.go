package inventory

import (
	"fmt"
	"strings"
)

// Slot identifies an equipment slot.
type Slot int

const (
	SlotAmulet Slot = iota
	SlotHelmet
	SlotContainer
	SlotWeapon
	SlotRightRing
	SlotArmor
	SlotShield
	SlotLeftRing
	SlotLegArmor
	SlotBoots
	SlotAmmunition

	slotCount
)

// Slots lists every slot in storage order.
var Slots = []Slot{
	SlotAmulet, SlotHelmet, SlotContainer, SlotWeapon, SlotRightRing, SlotArmor,
	SlotShield, SlotLeftRing, SlotLegArmor, SlotBoots, SlotAmmunition,
}

var slotInfo = [slotCount]struct {
	name     string
	display  string
	category Category
}{
	SlotAmulet:     {"amulet", "Amulet", CategoryAmulet},
	SlotHelmet:     {"helmet", "Helmet", CategoryHelmet},
	SlotContainer:  {"container", "Container", CategoryContainer},
	SlotWeapon:     {"weapon", "Weapon", CategoryWeapon},
	SlotRightRing:  {"right_ring", "Right Ring", CategoryRing},
	SlotArmor:      {"armor", "Armor", CategoryArmor},
	SlotShield:     {"shield", "Shield", CategoryShield},
	SlotLeftRing:   {"left_ring", "Left Ring", CategoryRing},
	SlotLegArmor:   {"leg_armor", "Leg Armor", CategoryLegArmor},
	SlotBoots:      {"boots", "Boots", CategoryBoots},
	SlotAmmunition: {"ammunition", "Ammunition", CategoryAmmunition},
}

// Valid reports whether s names a real slot.
func (s Slot) Valid() bool { return s >= 0 && s < slotCount }

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotInfo[s].name
}

// DisplayName returns the human-readable label for s.
func (s Slot) DisplayName() string {
	if !s.Valid() {
		return s.String()
	}
	return slotInfo[s].display
}

// CategoryForSlot returns the only item category s accepts; CategoryNone for
// invalid slots.
func CategoryForSlot(s Slot) Category {
	if !s.Valid() {
		return CategoryNone
	}
	return slotInfo[s].category
}

// ParseSlot resolves a name produced by Slot.String.
func ParseSlot(name string) (Slot, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range Slots {
		if slotInfo[s].name == n {
			return s, nil
		}
	}
	return -1, fmt.Errorf("inventory: unknown slot %q", name)
}
