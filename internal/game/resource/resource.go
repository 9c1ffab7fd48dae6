// Package resource implements the bounded quantities a character carries:
// health and mana pools, carry capacity and movement speed.
package resource

// Pool is a bounded quantity such as health or mana.
//
// Invariant: 0 <= Current() <= Max() after every mutation.
type Pool struct {
	current int
	maximum int
}

// NewPool returns a full pool. A negative maximum is treated as zero.
func NewPool(maximum int) Pool {
	maximum = max(0, maximum)
	return Pool{current: maximum, maximum: maximum}
}

// Current returns the current amount.
func (p Pool) Current() int { return p.current }

// Max returns the maximum amount.
func (p Pool) Max() int { return p.maximum }

// IsDepleted reports whether the pool is empty.
func (p Pool) IsDepleted() bool { return p.current == 0 }

// Gain adds amount, clamping at the maximum. Non-positive amounts are ignored.
//
// Postcondition: returns the amount actually added.
func (p *Pool) Gain(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.current
	p.current = min(p.current+amount, p.maximum)
	return p.current - before
}

// Spend removes amount, clamping at zero. Non-positive amounts are ignored.
//
// Postcondition: returns the amount actually removed.
func (p *Pool) Spend(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.current
	p.current = max(0, p.current-amount)
	return before - p.current
}

// SetMax changes the maximum and clamps the current amount down to it.
func (p *Pool) SetMax(maximum int) {
	p.maximum = max(0, maximum)
	p.current = min(p.current, p.maximum)
}

// Fill restores the pool to its maximum.
func (p *Pool) Fill() { p.current = p.maximum }

// Capacity is the carry capacity of a character.
//
// Invariant: Current() == max(0, Max() - carried weight) as of the last Recompute.
type Capacity struct {
	current int
	maximum int
}

// NewCapacity returns a Capacity with nothing carried.
func NewCapacity(maximum int) Capacity {
	maximum = max(0, maximum)
	return Capacity{current: maximum, maximum: maximum}
}

// Current returns the capacity left after the last Recompute.
func (c Capacity) Current() int { return c.current }

// Max returns the total capacity.
func (c Capacity) Max() int { return c.maximum }

// SetMax changes the total capacity. The caller recomputes against the
// inventory weight afterwards.
func (c *Capacity) SetMax(maximum int) { c.maximum = max(0, maximum) }

// Recompute sets Current from the carried weight.
func (c *Capacity) Recompute(weight int) {
	c.current = max(0, c.maximum-weight)
}

// Speed is the movement speed of a character.
//
// Invariant: Current() >= 1.
type Speed struct {
	base    int
	current int
}

// NewSpeed returns a Speed with nothing carried.
func NewSpeed(base int) Speed {
	s := Speed{}
	s.SetBase(base)
	s.Recompute(0)
	return s
}

// Base returns the unencumbered speed.
func (s Speed) Base() int { return s.base }

// Current returns the speed after encumbrance.
func (s Speed) Current() int { return s.current }

// SetBase changes the base speed; it never drops below 1.
func (s *Speed) SetBase(base int) { s.base = max(1, base) }

// Recompute sets Current from the carried weight.
func (s *Speed) Recompute(weight int) {
	s.current = max(1, s.base-weight)
}
