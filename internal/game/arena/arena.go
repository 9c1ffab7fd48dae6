package arena

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charsim/internal/game/character"
	"github.com/cory-johannsen/charsim/internal/game/dice"
)

// Arena manages all active encounters, keyed by id.
// All methods are safe for concurrent use; a single Encounter is not.
type Arena struct {
	mu         sync.RWMutex
	encounters map[string]*Encounter
	roller     *dice.Roller
	logger     *zap.Logger
}

// New creates an empty Arena rolling initiative with roller.
//
// Precondition: roller must be non-nil.
func New(roller *dice.Roller, logger *zap.Logger) *Arena {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Arena{
		encounters: make(map[string]*Encounter),
		roller:     roller,
		logger:     logger.Named("arena"),
	}
}

// Start begins a new encounter with the given characters and rolls
// initiative.
//
// Precondition: id must be non-empty; at least two distinct living
// characters.
// Postcondition: Returns the new Encounter or an error if id is taken or the
// line-up is invalid.
func (a *Arena) Start(id string, chars ...*character.Character) (*Encounter, error) {
	if id == "" {
		return nil, fmt.Errorf("encounter id must not be empty")
	}
	if len(chars) < 2 {
		return nil, fmt.Errorf("encounter %q needs at least 2 combatants, got %d", id, len(chars))
	}
	seen := make(map[int64]bool, len(chars))
	combatants := make([]*Combatant, 0, len(chars))
	for _, c := range chars {
		if c == nil {
			return nil, fmt.Errorf("encounter %q: nil combatant", id)
		}
		if c.IsDead() {
			return nil, fmt.Errorf("encounter %q: %s is dead", id, c.Name())
		}
		if seen[c.ID()] {
			return nil, fmt.Errorf("encounter %q: %s listed twice", id, c.Name())
		}
		seen[c.ID()] = true
		combatants = append(combatants, &Combatant{Character: c})
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.encounters[id]; exists {
		return nil, fmt.Errorf("encounter %q already active", id)
	}
	enc := &Encounter{ID: id, Combatants: combatants}
	enc.RollInitiative(a.roller)
	a.encounters[id] = enc
	a.logger.Debug("encounter started", zap.String("encounter", id), zap.Int("combatants", len(combatants)))
	return enc, nil
}

// Get returns the active encounter with id.
func (a *Arena) Get(id string) (*Encounter, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	enc, ok := a.encounters[id]
	return enc, ok
}

// End removes the encounter record for id.
func (a *Arena) End(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.encounters, id)
}

// Active returns the number of encounters in progress.
func (a *Arena) Active() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.encounters)
}

// Outcome summarises a finished fight.
type Outcome struct {
	Rounds int
	// Winner is nil on a draw or when the round limit was reached.
	Winner *character.Character
	Events []RoundEvent
}

// Fight runs rounds of enc until it is over, maxRounds is reached or ctx is
// cancelled, then ends the encounter.
//
// Precondition: maxRounds >= 1.
// Postcondition: enc is no longer registered in a.
func (a *Arena) Fight(ctx context.Context, enc *Encounter, maxRounds int) (Outcome, error) {
	defer a.End(enc.ID)

	var out Outcome
	for !enc.Over && enc.Round < maxRounds {
		if err := ctx.Err(); err != nil {
			out.Rounds = enc.Round
			return out, err
		}
		out.Events = append(out.Events, enc.RunRound()...)
	}
	out.Rounds = enc.Round
	out.Winner = enc.Winner()

	fields := []zap.Field{zap.String("encounter", enc.ID), zap.Int("rounds", out.Rounds)}
	if out.Winner != nil {
		fields = append(fields, zap.String("winner", out.Winner.Name()))
	}
	a.logger.Info("encounter finished", fields...)
	return out, nil
}

// Duel starts a one-on-one encounter between x and y and fights it out.
func (a *Arena) Duel(ctx context.Context, x, y *character.Character, maxRounds int) (Outcome, error) {
	if x == nil || y == nil {
		return Outcome{}, fmt.Errorf("duel needs two combatants")
	}
	id := fmt.Sprintf("duel-%d-%d", x.ID(), y.ID())
	enc, err := a.Start(id, x, y)
	if err != nil {
		return Outcome{}, err
	}
	return a.Fight(ctx, enc, maxRounds)
}
