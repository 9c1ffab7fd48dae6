package dice

import (
	"fmt"

	"go.uber.org/zap"
)

// Roller rolls against a Source and logs every roll at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller. A nil logger disables roll logging.
//
// Precondition: src must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil {
		panic("dice: NewLoggedRoller requires a non-nil Source")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// Die rolls a single die with the given number of faces.
//
// Postcondition: returns a value in [1, sides], or 0 when sides < 1 so that
// a missing weapon contributes nothing.
func (r *Roller) Die(sides int) int {
	return r.Dice(1, sides)
}

// Dice rolls count dice with the given number of faces and returns the sum.
//
// Postcondition: returns 0 when count < 1 or sides < 1.
func (r *Roller) Dice(count, sides int) int {
	if count < 1 || sides < 1 {
		return 0
	}
	expr := Expression{Raw: fmt.Sprintf("%dd%d", count, sides), Count: count, Sides: sides}
	return r.Roll(expr).Total()
}

// Percent rolls a d100.
func (r *Roller) Percent() int {
	return r.Die(100)
}

// Source returns the underlying random source.
func (r *Roller) Source() Source { return r.src }
