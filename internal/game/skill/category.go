// Package skill implements per-category skill training: repeated successful
// actions in a category eventually raise that category's level.
package skill

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category identifies a trainable skill.
type Category int

const (
	// None marks actions that train no skill, such as spells.
	None Category = iota - 1
	Fist
	Sword
	Axe
	Club
	Distance
	Shielding

	categoryCount
)

// Categories lists every trainable category in storage order.
var Categories = []Category{Fist, Sword, Axe, Club, Distance, Shielding}

var categoryNames = [...]string{"fist", "sword", "axe", "club", "distance", "shielding"}

// displayNames holds the title-cased names. A cases.Caser is stateful and
// must not be shared between goroutines, so names are cased once up front.
var displayNames = func() (out [categoryCount]string) {
	caser := cases.Title(language.English)
	for i, n := range categoryNames {
		out[i] = caser.String(n)
	}
	return out
}()

// Valid reports whether c is a trainable category.
func (c Category) Valid() bool { return c >= 0 && c < categoryCount }

// String returns the lower-case category name, or "none".
func (c Category) String() string {
	if c == None {
		return "none"
	}
	if !c.Valid() {
		return fmt.Sprintf("skill(%d)", int(c))
	}
	return categoryNames[c]
}

// DisplayName returns the title-cased name used in ranking output.
// It is safe for concurrent use.
func (c Category) DisplayName() string {
	if c.Valid() {
		return displayNames[c]
	}
	return cases.Title(language.English).String(c.String())
}

// ParseCategory resolves a category name; "none" and "" yield None.
func ParseCategory(name string) (Category, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "none" {
		return None, nil
	}
	for i, cn := range categoryNames {
		if cn == n {
			return Category(i), nil
		}
	}
	return None, fmt.Errorf("skill: unknown category %q", name)
}
