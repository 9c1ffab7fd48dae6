package inventory

import (
	"errors"
	"fmt"
)

// ErrContainerFull is returned when a container has no free slot.
var ErrContainerFull = errors.New("inventory: container is full")

// Contents holds the items stowed inside a container item.
type Contents struct {
	MaxSlots int
	items    []*Item
}

// NewContainer creates a container item with maxSlots free slots.
//
// Precondition: maxSlots >= 0.
func NewContainer(name string, rank Rank, maxSlots int, opts ...Option) *Item {
	it := NewItem(name, CategoryContainer, rank, opts...)
	it.contents = &Contents{MaxSlots: max(0, maxSlots)}
	return it
}

// Contents returns the stowed items of a container, or nil for other items.
func (it *Item) Contents() *Contents {
	if it == nil {
		return nil
	}
	return it.contents
}

// Add stows item.
//
// Postcondition: on error the contents are unchanged.
func (c *Contents) Add(item *Item) error {
	if item == nil {
		return ErrNilItem
	}
	if len(c.items) >= c.MaxSlots {
		return fmt.Errorf("%w: %d of %d slots used", ErrContainerFull, len(c.items), c.MaxSlots)
	}
	if w := item.Weight().Or(0); w < 0 {
		return fmt.Errorf("%w: %s weighs %d", ErrNegativeWeight, item.Name(), w)
	}
	if c.find(item.ID()) >= 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyStored, item.Name())
	}
	c.items = append(c.items, item)
	return nil
}

// Remove takes the item with the given id out of the container.
//
// Postcondition: returns nil when no such item is stowed.
func (c *Contents) Remove(id string) *Item {
	i := c.find(id)
	if i < 0 {
		return nil
	}
	it := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return it
}

// Items returns a copy of the stowed items.
func (c *Contents) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

// UsedSlots returns the number of stowed items.
func (c *Contents) UsedSlots() int { return len(c.items) }

// Weight returns the combined weight of the stowed items.
func (c *Contents) Weight() int {
	total := 0
	for _, it := range c.items {
		total += it.TotalWeight()
	}
	return total
}

func (c *Contents) find(id string) int {
	for i, it := range c.items {
		if it.ID() == id {
			return i
		}
	}
	return -1
}
