package combat

// Value returns the flat defense value for a shielding skill level.
func (d DefenseRules) Value(shielding int) int {
	if d.ShieldingDivisor <= 0 {
		return d.Base
	}
	return d.Base + (shielding+d.ShieldingOffset)/d.ShieldingDivisor
}

// Mitigation is the result of checking incoming damage against a defense value.
type Mitigation struct {
	Incoming int
	Defense  int
	// Absorbed is true when the defense swallowed the whole hit.
	Absorbed bool
	// Damage is what gets through to health.
	Damage int
}

// Mitigate checks incoming damage against the defense value.
//
// Postcondition: Absorbed iff incoming <= defense; Damage == incoming - defense otherwise.
func Mitigate(incoming, defense int) Mitigation {
	m := Mitigation{Incoming: incoming, Defense: defense}
	if incoming <= defense {
		m.Absorbed = true
		return m
	}
	m.Damage = incoming - defense
	return m
}
