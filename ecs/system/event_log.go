package system

import (
	"fmt"

	"github.com/milk9111/orbhop/ecs"
	"github.com/milk9111/orbhop/event"
	"go.uber.org/zap"
)

const defaultRecentEvents = 6

// EventLogSystem drains the world event queue once per frame, logs each
// core event and keeps the most recent ones for the debug overlay.
type EventLogSystem struct {
	log    *zap.Logger
	recent []string
	keep   int
	counts map[event.Kind]int
	frame  int
}

func NewEventLogSystem(log *zap.Logger) *EventLogSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventLogSystem{log: log.Named("events"), keep: defaultRecentEvents, counts: make(map[event.Kind]int)}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}
	s.frame++
	for _, item := range w.Events().Drain() {
		evt, ok := item.(event.Event)
		if !ok {
			continue
		}
		s.counts[evt.Kind()]++
		fields := append([]zap.Field{zap.Int("frame", s.frame)}, EventFields(evt)...)
		s.log.Debug(string(evt.Kind()), fields...)

		s.recent = append(s.recent, fmt.Sprintf("%d %s", s.frame, Describe(evt)))
		if len(s.recent) > s.keep {
			s.recent = s.recent[len(s.recent)-s.keep:]
		}
	}
}

// Recent returns the latest event lines, oldest first.
func (s *EventLogSystem) Recent() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.recent...)
}

func (s *EventLogSystem) Count(k event.Kind) int {
	if s == nil {
		return 0
	}
	return s.counts[k]
}

func EventFields(evt event.Event) []zap.Field {
	switch e := evt.(type) {
	case event.GroundedChanged:
		return []zap.Field{zap.Bool("grounded", e.Grounded), zap.Float64("impact", e.ImpactSpeed)}
	case event.Jumped:
		return []zap.Field{zap.Float64("power", e.Power), zap.Bool("air", e.AirJump), zap.Bool("buffered", e.Buffered)}
	case event.DashStarted:
		return []zap.Field{zap.Float64("dir_x", e.DirectionX), zap.Float64("duration", e.Duration)}
	case event.DashEnded:
		return []zap.Field{zap.Bool("blocked", e.Blocked)}
	case event.DashChargeCountChanged:
		return []zap.Field{zap.Int("remaining", e.Remaining)}
	case event.AbilityStacksChanged:
		return []zap.Field{zap.Int("air_jumps", e.AirJumps), zap.Int("dash_charges", e.DashCharges)}
	case event.OrbCollected:
		return []zap.Field{zap.String("orb", e.Definition.Name), zap.Stringer("kind", e.Definition.Kind), zap.Int("stack", e.StackCount)}
	}
	return nil
}

// Describe is a one-line summary of evt.
func Describe(evt event.Event) string {
	switch e := evt.(type) {
	case event.GroundedChanged:
		if e.Grounded {
			return fmt.Sprintf("landed %.1f", e.ImpactSpeed)
		}
		return "left ground"
	case event.Jumped:
		return fmt.Sprintf("jump %.1f air=%v", e.Power, e.AirJump)
	case event.DashStarted:
		return fmt.Sprintf("dash %+.0f %.2fs", e.DirectionX, e.Duration)
	case event.DashEnded:
		return fmt.Sprintf("dash end blocked=%v", e.Blocked)
	case event.DashChargeCountChanged:
		return fmt.Sprintf("dash charges %d", e.Remaining)
	case event.AbilityStacksChanged:
		return fmt.Sprintf("charges air=%d dash=%d", e.AirJumps, e.DashCharges)
	case event.OrbCollected:
		return fmt.Sprintf("orb %s x%d", e.Definition.Name, e.StackCount)
	}
	return string(evt.Kind())
}
