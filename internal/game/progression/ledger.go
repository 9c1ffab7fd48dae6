package progression

// Ledger tracks an accumulated amount against the threshold of the next level.
//
// Invariant: Threshold() == curve(level+1) for the level most recently passed
// to SetLevel.
type Ledger struct {
	curve     Curve
	current   uint64
	threshold uint64
}

// NewLedger returns an empty ledger positioned at level.
//
// Precondition: curve is non-nil.
func NewLedger(curve Curve, level int) Ledger {
	l := Ledger{curve: curve}
	l.SetLevel(level)
	return l
}

// Current returns the accumulated amount.
func (l Ledger) Current() uint64 { return l.current }

// Threshold returns the amount required for the next level.
func (l Ledger) Threshold() uint64 { return l.threshold }

// Remaining returns how much is still needed for the next level.
func (l Ledger) Remaining() uint64 {
	if l.current >= l.threshold {
		return 0
	}
	return l.threshold - l.current
}

// HasLeveledUp reports whether the next level has been reached. A Saturated
// threshold is never reached.
func (l Ledger) HasLeveledUp() bool {
	return l.threshold != Saturated && l.current >= l.threshold
}

// Required returns the curve value for level.
func (l Ledger) Required(level int) uint64 { return l.curve(level) }

// SetLevel recomputes the threshold for the level after level.
func (l *Ledger) SetLevel(level int) {
	l.threshold = l.curve(level + 1)
}

// Add accumulates amount, saturating at the maximum uint64.
func (l *Ledger) Add(amount uint64) {
	l.current = addSat(l.current, amount)
}

// Lose removes amount, clamping at zero, and returns what was removed.
func (l *Ledger) Lose(amount uint64) uint64 {
	if amount > l.current {
		amount = l.current
	}
	l.current -= amount
	return amount
}

// Penalty returns ceil(current × percent / 100) without overflowing.
func (l Ledger) Penalty(percent uint64) uint64 {
	q, r := l.current/100, l.current%100
	return q*percent + (r*percent+99)/100
}
