package skill

// Cell is the training state of one category.
type Cell struct {
	Level int
	Tries int
}

// Trainer holds a character's skill cells and advances them against a
// shared Catalog.
//
// Invariant: every cell has Level >= 1 and Tries >= 0; levels never decrease.
type Trainer struct {
	catalog *Catalog
	cells   [categoryCount]Cell
}

// NewTrainer returns a Trainer with every category at its catalog minimum
// (never below 1). A nil catalog leaves every skill untrainable.
func NewTrainer(catalog *Catalog) *Trainer {
	t := &Trainer{catalog: catalog}
	for _, cat := range Categories {
		t.cells[cat] = Cell{Level: max(1, catalog.Def(cat).Min)}
	}
	return t
}

// Level returns the level of cat; 0 for None or unknown categories.
func (t *Trainer) Level(cat Category) int {
	if !cat.Valid() {
		return 0
	}
	return t.cells[cat].Level
}

// Tries returns the tries accumulated towards the next level of cat.
func (t *Trainer) Tries(cat Category) int {
	if !cat.Valid() {
		return 0
	}
	return t.cells[cat].Tries
}

// RecordAttempt adds one try to cat. When the tries reach the catalog
// threshold they reset and the level rises by one, up to the catalog maximum.
//
// Postcondition: returns true iff the level increased.
func (t *Trainer) RecordAttempt(cat Category) bool {
	if !cat.Valid() {
		return false
	}
	def := t.catalog.Def(cat)
	if def.TriesNeeded <= 0 {
		return false
	}
	cell := &t.cells[cat]
	if def.Max > 0 && cell.Level >= def.Max {
		return false
	}
	cell.Tries++
	if cell.Tries < def.TriesNeeded {
		return false
	}
	cell.Tries = 0
	cell.Level++
	return true
}

// Levels returns every category level keyed by category name.
func (t *Trainer) Levels() map[string]int {
	out := make(map[string]int, len(Categories))
	for _, cat := range Categories {
		out[cat.String()] = t.cells[cat].Level
	}
	return out
}
