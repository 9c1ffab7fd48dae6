package character

import (
	"errors"
	"slices"
	"sync"
)

// ErrInvalidMarriage is returned by RecordMarriage for a nil partner or a
// character marrying itself.
var ErrInvalidMarriage = errors.New("character: marriage needs two distinct characters")

// Parents identifies the two parents of a descendant.
type Parents struct {
	Father int64
	Mother int64
}

// Marriage identifies a married couple.
type Marriage struct {
	Husband int64
	Wife    int64
}

// Lineage records parent and child links and marriages between characters.
// It is safe for concurrent use.
//
// Invariant: every character id appears in at most one marriage.
type Lineage struct {
	mu        sync.RWMutex
	parents   map[int64]Parents
	children  map[int64][]int64
	marriages map[int64]Marriage
}

// NewLineage returns an empty registry.
func NewLineage() *Lineage {
	return &Lineage{
		parents:   make(map[int64]Parents),
		children:  make(map[int64][]int64),
		marriages: make(map[int64]Marriage),
	}
}

// Record links child to father and mother. Recording the same child twice
// replaces its previous parents.
//
// Precondition: all three characters are non-nil.
func (l *Lineage) Record(child, father, mother *Character) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if old, ok := l.parents[child.ID()]; ok {
		l.unlink(old.Father, child.ID())
		if old.Mother != old.Father {
			l.unlink(old.Mother, child.ID())
		}
	}
	l.parents[child.ID()] = Parents{Father: father.ID(), Mother: mother.ID()}
	l.children[father.ID()] = append(l.children[father.ID()], child.ID())
	if mother.ID() != father.ID() {
		l.children[mother.ID()] = append(l.children[mother.ID()], child.ID())
	}
}

func (l *Lineage) unlink(parent, child int64) {
	l.children[parent] = slices.DeleteFunc(l.children[parent], func(id int64) bool { return id == child })
	if len(l.children[parent]) == 0 {
		delete(l.children, parent)
	}
}

// Breed creates a descendant of father and mother and records it.
func (l *Lineage) Breed(name string, father, mother *Character, env *Environment, opts ...Option) (*Character, error) {
	child, err := NewDescendant(name, father, mother, env, opts...)
	if err != nil {
		return nil, err
	}
	l.Record(child, father, mother)
	return child, nil
}

// ParentsOf returns the parents of id and whether any were recorded.
func (l *Lineage) ParentsOf(id int64) (Parents, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.parents[id]
	return p, ok
}

// ChildrenOf returns the ids of every recorded child of id, in recording
// order.
func (l *Lineage) ChildrenOf(id int64) []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.children[id])
}

// RecordMarriage marries husband to wife. Any earlier marriage of either
// partner is dissolved first.
//
// Postcondition: SpouseOf(husband.ID()) == wife.ID() and vice versa.
func (l *Lineage) RecordMarriage(husband, wife *Character) error {
	if husband == nil || wife == nil || husband.ID() == wife.ID() {
		return ErrInvalidMarriage
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.divorce(husband.ID())
	l.divorce(wife.ID())
	m := Marriage{Husband: husband.ID(), Wife: wife.ID()}
	l.marriages[m.Husband] = m
	l.marriages[m.Wife] = m
	return nil
}

func (l *Lineage) divorce(id int64) {
	if m, ok := l.marriages[id]; ok {
		delete(l.marriages, m.Husband)
		delete(l.marriages, m.Wife)
	}
}

// MarriageOf returns the marriage id belongs to, if any.
func (l *Lineage) MarriageOf(id int64) (Marriage, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.marriages[id]
	return m, ok
}

// SpouseOf returns the partner of id, if id is married.
func (l *Lineage) SpouseOf(id int64) (int64, bool) {
	m, ok := l.MarriageOf(id)
	if !ok {
		return 0, false
	}
	if m.Husband == id {
		return m.Wife, true
	}
	return m.Husband, true
}

// HusbandOf returns the husband of wife, if she is recorded as a wife.
func (l *Lineage) HusbandOf(wife int64) (int64, bool) {
	m, ok := l.MarriageOf(wife)
	if !ok || m.Wife != wife {
		return 0, false
	}
	return m.Husband, true
}

// WifeOf returns the wife of husband, if he is recorded as a husband.
func (l *Lineage) WifeOf(husband int64) (int64, bool) {
	m, ok := l.MarriageOf(husband)
	if !ok || m.Husband != husband {
		return 0, false
	}
	return m.Wife, true
}
