package progression

// MinLevel is the lowest level a Track can hold.
const MinLevel = 1

// Track couples a level with its Ledger and drives level transitions.
//
// Invariant: Level() >= MinLevel and the ledger threshold always matches the
// current level.
type Track struct {
	level  int
	ledger Ledger
}

// NewTrack returns a Track at MinLevel with nothing accumulated.
//
// Precondition: curve is non-nil.
func NewTrack(curve Curve) Track {
	return Track{level: MinLevel, ledger: NewLedger(curve, MinLevel)}
}

// Level returns the current level.
func (t Track) Level() int { return t.level }

// Ledger returns a copy of the underlying ledger.
func (t Track) Ledger() Ledger { return t.ledger }

// Gain accumulates amount and raises the level once per threshold crossed.
// onLevelUp is called with each new level after the threshold has been
// recomputed; it may be nil.
//
// Postcondition: !Ledger().HasLeveledUp(); returns the number of levels gained.
func (t *Track) Gain(amount uint64, onLevelUp func(level int)) int {
	t.ledger.Add(amount)
	gained := 0
	for t.ledger.HasLeveledUp() {
		t.level++
		t.ledger.SetLevel(t.level)
		gained++
		if onLevelUp != nil {
			onLevelUp(t.level)
		}
	}
	return gained
}

// Lose removes up to amount without touching the level; use Rollback to
// settle the level afterwards.
func (t *Track) Lose(amount uint64) uint64 {
	return t.ledger.Lose(amount)
}

// Penalty returns ceil(current × percent / 100).
func (t Track) Penalty(percent uint64) uint64 {
	return t.ledger.Penalty(percent)
}

// Rollback lowers the level while the accumulated amount no longer covers
// the current level. onLevelDown is called with the level that was lost,
// after the threshold has been recomputed; it may be nil.
//
// Postcondition: Level() == MinLevel or curve(Level()) <= accumulated amount.
// Returns the number of levels lost.
func (t *Track) Rollback(onLevelDown func(lost int)) int {
	lost := 0
	for t.level > MinLevel && t.ledger.Current() < t.ledger.Required(t.level) {
		t.level--
		t.ledger.SetLevel(t.level)
		lost++
		if onLevelDown != nil {
			onLevelDown(t.level + 1)
		}
	}
	return lost
}
