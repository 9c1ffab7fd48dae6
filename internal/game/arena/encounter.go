// Package arena runs encounters between characters: initiative order,
// rounds of attacks and the bookkeeping of who is still standing.
package arena

import (
	"cmp"
	"slices"

	"github.com/cory-johannsen/charsim/internal/game/character"
	"github.com/cory-johannsen/charsim/internal/game/combat"
	"github.com/cory-johannsen/charsim/internal/game/dice"
	"github.com/cory-johannsen/charsim/internal/game/heritable"
)

// Combatant is one character taking part in an encounter.
type Combatant struct {
	*character.Character
	// Initiative orders turns within a round; highest acts first.
	Initiative int
}

// RoundEvent records one attack resolved during a round.
type RoundEvent struct {
	Round    int
	Attacker *character.Character
	Target   *character.Character
	Result   combat.Result
	// Killed is true when this attack left the target dead.
	Killed bool
}

// Encounter holds the live state of a single fight.
type Encounter struct {
	// ID names the encounter within its Arena.
	ID string
	// Combatants is the initiative-ordered list of participants.
	Combatants []*Combatant
	// Round is the number of rounds resolved so far.
	Round int
	// Over is true once at most one combatant is alive.
	Over bool
}

// RollInitiative sets every combatant's initiative to d20 + dexterity/10 and
// reorders Combatants, highest first. Ties go to the faster character, then
// to the lower id.
//
// Precondition: roller must be non-nil.
// Postcondition: Combatants is sorted by initiative descending.
func (e *Encounter) RollInitiative(roller *dice.Roller) {
	for _, c := range e.Combatants {
		c.Initiative = roller.Die(20) + c.Heritable(heritable.Dexterity)/10
	}
	slices.SortStableFunc(e.Combatants, func(a, b *Combatant) int {
		if c := cmp.Compare(b.Initiative, a.Initiative); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Speed(), a.Speed()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
}

// Living returns the combatants that are not dead, in turn order.
func (e *Encounter) Living() []*Combatant {
	var alive []*Combatant
	for _, c := range e.Combatants {
		if !c.IsDead() {
			alive = append(alive, c)
		}
	}
	return alive
}

// Winner returns the last combatant standing, or nil while the fight is
// undecided or when nobody survived.
func (e *Encounter) Winner() *character.Character {
	alive := e.Living()
	if len(alive) != 1 {
		return nil
	}
	return alive[0].Character
}

// targetFor picks the next living combatant after i in turn order.
func (e *Encounter) targetFor(i int) *Combatant {
	n := len(e.Combatants)
	for step := 1; step < n; step++ {
		c := e.Combatants[(i+step)%n]
		if !c.IsDead() {
			return c
		}
	}
	return nil
}

// RunRound lets every living combatant attack once, in initiative order.
// Each attacks the next living combatant after it.
//
// Postcondition: Round is incremented unless the encounter was already
// over; Over is set when at most one combatant remains.
func (e *Encounter) RunRound() []RoundEvent {
	if e.Over {
		return nil
	}
	e.Round++
	var events []RoundEvent
	for i, c := range e.Combatants {
		if c.IsDead() {
			continue
		}
		target := e.targetFor(i)
		if target == nil {
			break
		}
		res := c.Attack(target.Character)
		events = append(events, RoundEvent{
			Round:    e.Round,
			Attacker: c.Character,
			Target:   target.Character,
			Result:   res,
			Killed:   target.IsDead(),
		})
	}
	if len(e.Living()) <= 1 {
		e.Over = true
	}
	return events
}
