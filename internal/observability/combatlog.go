package observability

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/charsim/internal/game/event"
)

// milestones are logged even when the combat log is not verbose.
var milestones = map[event.Type]bool{
	event.LevelUp:            true,
	event.LevelDown:          true,
	event.MagicLevelUp:       true,
	event.CharacterDied:      true,
	event.CharacterRespawned: true,
	event.SkillImproved:      true,
}

// CombatLog writes character events to a zap logger. Milestones go out at
// info level; everything else only when verbose, at debug level.
type CombatLog struct {
	logger  *zap.Logger
	verbose bool
}

// NewCombatLog returns a CombatLog writing to logger.
func NewCombatLog(logger *zap.Logger, verbose bool) *CombatLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CombatLog{logger: logger.Named("combat"), verbose: verbose}
}

// Attach subscribes the log to bus. It runs after other subscribers so the
// log reflects what they saw.
func (l *CombatLog) Attach(bus *event.Bus) *event.Subscription {
	return bus.Subscribe(l.Handle, event.WithPriority(-10))
}

// Handle logs e. It satisfies event.Handler.
func (l *CombatLog) Handle(e event.Event) error {
	milestone := milestones[e.Type]
	if !milestone && !l.verbose {
		return nil
	}
	fields := make([]zap.Field, 0, len(e.Payload)+2)
	fields = append(fields, zap.Int64("actor_id", e.ActorID), zap.String("actor", e.Actor))
	for k, v := range e.Payload {
		fields = append(fields, zap.Any(k, v))
	}
	if milestone {
		l.logger.Info(string(e.Type), fields...)
	} else {
		l.logger.Debug(string(e.Type), fields...)
	}
	return nil
}
