// Package heritable models the inherited attribute block of a character and
// the rules for passing it on to descendants.
package heritable

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/charsim/internal/game/dice"
)

// Attribute identifies one heritable attribute.
type Attribute int

const (
	Strength Attribute = iota
	Dexterity
	Constitution
	Intelligence
	Charisma
	Appearance

	attributeCount
)

// All lists every attribute in storage order.
var All = []Attribute{Strength, Dexterity, Constitution, Intelligence, Charisma, Appearance}

var attributeNames = [...]string{"strength", "dexterity", "constitution", "intelligence", "charisma", "appearance"}

// String returns the lower-case attribute name.
func (a Attribute) String() string {
	if a < 0 || a >= attributeCount {
		return fmt.Sprintf("attribute(%d)", int(a))
	}
	return attributeNames[a]
}

// ParseAttribute resolves a name produced by String.
func ParseAttribute(name string) (Attribute, bool) {
	for i, n := range attributeNames {
		if strings.EqualFold(n, name) {
			return Attribute(i), true
		}
	}
	return 0, false
}

const (
	// RandomMax is the inclusive upper bound of a freshly rolled attribute.
	RandomMax = 100
	// MutationPercent is the chance, in percent, that an inherited gene mutates.
	MutationPercent = 10
	mutatedMin      = 1
	mutatedMax      = 100
)

// Set is an immutable block of heritable values.
type Set struct {
	values [attributeCount]int
}

// NewSet builds a Set from explicit values; missing attributes are zero.
func NewSet(values map[Attribute]int) Set {
	var s Set
	for a, v := range values {
		if a >= 0 && a < attributeCount {
			s.values[a] = v
		}
	}
	return s
}

// Get returns the value of a; unknown attributes yield 0.
func (s Set) Get(a Attribute) int {
	if a < 0 || a >= attributeCount {
		return 0
	}
	return s.values[a]
}

// Map returns the values keyed by attribute name.
func (s Set) Map() map[string]int {
	out := make(map[string]int, attributeCount)
	for _, a := range All {
		out[a.String()] = s.values[a]
	}
	return out
}

// Random rolls every attribute uniformly in [0, RandomMax].
//
// Precondition: src is non-nil.
func Random(src dice.Source) Set {
	var s Set
	for i := range s.values {
		s.values[i] = src.Intn(RandomMax + 1)
	}
	return s
}

// Inherit derives a descendant's attributes. Each gene is taken from father
// or mother with equal odds and then mutates with MutationPercent chance.
//
// Precondition: src is non-nil.
// Postcondition: a mutated gene is in [1, 100]; an unmutated gene equals one parent's value.
func Inherit(father, mother Set, src dice.Source) Set {
	var s Set
	for i := range s.values {
		gene := mother.values[i]
		if src.Intn(2) == 0 {
			gene = father.values[i]
		}
		if src.Intn(100) < MutationPercent {
			gene = mutate(gene, src)
		}
		s.values[i] = gene
	}
	return s
}

// mutate applies one of three mutations: a shift of up to three points, a
// scale of up to ten percent, or a brand new value.
func mutate(gene int, src dice.Source) int {
	switch src.Intn(3) {
	case 0:
		gene += src.Intn(7) - 3
	case 1:
		gene = gene * (100 + src.Intn(21) - 10) / 100
	default:
		gene = src.Intn(mutatedMax) + 1
	}
	return max(mutatedMin, min(mutatedMax, gene))
}
