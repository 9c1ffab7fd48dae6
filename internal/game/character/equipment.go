package character

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charsim/internal/game/event"
	"github.com/cory-johannsen/charsim/internal/game/inventory"
)

// Weapon returns the equipped weapon. It is never nil: an empty weapon slot
// holds fists.
func (c *Character) Weapon() *inventory.Item { return c.inventory.Weapon() }

// Equipped returns the occupant of slot s, or nil.
func (c *Character) Equipped(s inventory.Slot) *inventory.Item { return c.inventory.Get(s) }

// Carries reports whether the item with the given id is equipped or stowed.
func (c *Character) Carries(id string) bool { return c.inventory.Contains(id) }

// Weight returns the carried weight.
func (c *Character) Weight() int { return c.inventory.Weight() }

// EquipWeapon puts weapon in the weapon slot.
func (c *Character) EquipWeapon(weapon *inventory.Item) error {
	return c.Pick(weapon, inventory.SlotWeapon)
}

// EquipNamedWeapon instantiates the named weapon from the catalog and
// equips it.
func (c *Character) EquipNamedWeapon(name string) (*inventory.Item, error) {
	w := c.env.Weapons.Weapon(name)
	if err := c.EquipWeapon(w); err != nil {
		return nil, fmt.Errorf("character: EquipNamedWeapon: %w", err)
	}
	return w, nil
}

// Pick stores item in slot s. Items pushed out of their slots go into the
// equipped container when it has room and are dropped otherwise. Capacity
// and speed are recomputed from the new weight.
//
// Postcondition: on error nothing changed; on success Equipped(s) == item.
func (c *Character) Pick(item *inventory.Item, s inventory.Slot) error {
	displaced, err := c.inventory.Store(item, s)
	if err != nil {
		c.logger.Warn("pick rejected", zap.Stringer("slot", s), zap.Error(err))
		return fmt.Errorf("character: Pick: %w", err)
	}
	c.ensureWeapon()
	c.recomputeLoad()
	c.publish(event.ItemEquipped, event.KeyItem, item.Name(), event.KeySlot, s.String())
	for _, it := range displaced.Stowed {
		c.logger.Debug("item stowed", zap.String("item", it.Name()))
	}
	for _, it := range displaced.Dropped {
		c.publish(event.ItemDropped, event.KeyItem, it.Name())
	}
	return nil
}

// Drop removes the occupant of slot s and returns it, or nil when the slot
// is empty. Fists cannot be dropped.
func (c *Character) Drop(s inventory.Slot) *inventory.Item {
	if it := c.inventory.Get(s); it == nil || it.IsUnarmed() {
		return nil
	}
	return c.dropped(c.inventory.Drop(s), s.String())
}

// DropItem removes the item with the given id from a slot or the container.
// It returns nil when the item is not carried or is the unarmed weapon.
func (c *Character) DropItem(id string) *inventory.Item {
	if w := c.inventory.Weapon(); w != nil && w.ID() == id && w.IsUnarmed() {
		return nil
	}
	slot := ""
	if s, ok := c.inventory.SlotOf(id); ok {
		slot = s.String()
	}
	return c.dropped(c.inventory.DropItem(id), slot)
}

func (c *Character) dropped(it *inventory.Item, slot string) *inventory.Item {
	if it == nil {
		return nil
	}
	c.ensureWeapon()
	c.recomputeLoad()
	c.publish(event.ItemDropped, event.KeyItem, it.Name(), event.KeySlot, slot)
	return it
}

// ensureWeapon fills an empty weapon slot with fists.
func (c *Character) ensureWeapon() {
	if c.inventory.Weapon() != nil {
		return
	}
	if _, err := c.inventory.Store(inventory.NewFists(), inventory.SlotWeapon); err != nil {
		c.logger.Error("equipping fists", zap.Error(err))
	}
}
