package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrNilItem is returned when an absent item is stored.
	ErrNilItem = errors.New("inventory: item is nil")
	// ErrUnknownSlot is returned for slots outside the fixed set.
	ErrUnknownSlot = errors.New("inventory: unknown slot")
	// ErrSlotMismatch is returned when an item's category does not fit the slot.
	ErrSlotMismatch = errors.New("inventory: item category does not fit slot")
	// ErrAlreadyStored is returned when an item instance is already carried.
	ErrAlreadyStored = errors.New("inventory: item already stored")
	// ErrNegativeWeight is returned when an item with a weight below zero is
	// carried.
	ErrNegativeWeight = errors.New("inventory: item weight is negative")
)

// Displaced lists the items pushed out of their slots by a Store. Stowed
// items went into the equipped container; Dropped items left the inventory.
type Displaced struct {
	Stowed  []*Item
	Dropped []*Item
}

// Empty reports whether nothing was displaced.
func (d Displaced) Empty() bool { return len(d.Stowed) == 0 && len(d.Dropped) == 0 }

// Inventory is the fixed set of equipment slots, one item per slot.
//
// Invariant: every occupied slot holds an item whose category equals
// CategoryForSlot(slot).
type Inventory struct {
	slots [slotCount]*Item
}

// New returns an empty Inventory.
func New() *Inventory {
	return &Inventory{}
}

// Get returns the occupant of s, or nil.
func (inv *Inventory) Get(s Slot) *Item {
	if !s.Valid() {
		return nil
	}
	return inv.slots[s]
}

// Weapon returns the item in the weapon slot, or nil.
func (inv *Inventory) Weapon() *Item { return inv.slots[SlotWeapon] }

// Container returns the contents of the equipped container, or nil.
func (inv *Inventory) Container() *Contents {
	return inv.slots[SlotContainer].Contents()
}

// Store places item in s. Storing a two-handed weapon displaces an equipped
// shield, storing a shield displaces an equipped two-handed weapon, and a
// previous occupant of s is displaced as well. Displaced items move into the
// equipped container when it has room and are dropped otherwise.
//
// Precondition: none; invalid input is rejected.
// Postcondition: on error nothing changed; on success Get(s) == item.
func (inv *Inventory) Store(item *Item, s Slot) (Displaced, error) {
	if item == nil {
		return Displaced{}, ErrNilItem
	}
	if !s.Valid() {
		return Displaced{}, fmt.Errorf("%w: %d", ErrUnknownSlot, int(s))
	}
	if want := CategoryForSlot(s); item.Category() != want {
		return Displaced{}, fmt.Errorf("%w: %s is %s, slot %s takes %s", ErrSlotMismatch, item.Name(), item.Category(), s, want)
	}
	if w := item.Weight().Or(0); w < 0 {
		return Displaced{}, fmt.Errorf("%w: %s weighs %d", ErrNegativeWeight, item.Name(), w)
	}
	if inv.Contains(item.ID()) {
		return Displaced{}, fmt.Errorf("%w: %s", ErrAlreadyStored, item.Name())
	}

	var d Displaced
	switch s {
	case SlotWeapon:
		if item.IsTwoHanded() && inv.slots[SlotShield] != nil {
			inv.displace(SlotShield, &d)
		}
	case SlotShield:
		if inv.slots[SlotWeapon].IsTwoHanded() {
			inv.displace(SlotWeapon, &d)
		}
	}
	if inv.slots[s] != nil {
		inv.displace(s, &d)
	}
	inv.slots[s] = item
	return d, nil
}

// displace empties s and routes its occupant to the container or the floor.
// The unarmed weapon simply disappears.
func (inv *Inventory) displace(s Slot, d *Displaced) {
	it := inv.slots[s]
	inv.slots[s] = nil
	if it == nil || it.IsUnarmed() {
		return
	}
	if s != SlotContainer {
		if c := inv.Container(); c != nil && c.Add(it) == nil {
			d.Stowed = append(d.Stowed, it)
			return
		}
	}
	d.Dropped = append(d.Dropped, it)
}

// Drop removes and returns the occupant of s, or nil when s is empty.
func (inv *Inventory) Drop(s Slot) *Item {
	if !s.Valid() {
		return nil
	}
	it := inv.slots[s]
	inv.slots[s] = nil
	return it
}

// DropItem removes the item with the given id from whichever slot or
// container holds it.
//
// Postcondition: returns the removed item, or nil when it is not carried.
func (inv *Inventory) DropItem(id string) *Item {
	for _, s := range Slots {
		if it := inv.slots[s]; it != nil && it.ID() == id {
			inv.slots[s] = nil
			return it
		}
	}
	if c := inv.Container(); c != nil {
		return c.Remove(id)
	}
	return nil
}

// SlotOf returns the slot holding the item with the given id.
func (inv *Inventory) SlotOf(id string) (Slot, bool) {
	for _, s := range Slots {
		if it := inv.slots[s]; it != nil && it.ID() == id {
			return s, true
		}
	}
	return -1, false
}

// Contains reports whether the item with the given id is equipped or stowed.
func (inv *Inventory) Contains(id string) bool {
	if _, ok := inv.SlotOf(id); ok {
		return true
	}
	if c := inv.Container(); c != nil {
		return c.find(id) >= 0
	}
	return false
}

// Weight returns the combined weight of every occupied slot, including the
// contents of the equipped container.
func (inv *Inventory) Weight() int {
	total := 0
	for _, it := range inv.slots {
		total += it.TotalWeight()
	}
	return total
}

// Equipped returns the occupied slots keyed by slot.
func (inv *Inventory) Equipped() map[Slot]*Item {
	out := make(map[Slot]*Item)
	for _, s := range Slots {
		if it := inv.slots[s]; it != nil {
			out[s] = it
		}
	}
	return out
}
