package system

import (
	"fmt"

	"github.com/younwookim/tileclash/internal/ecs"
)

// EventKind identifies what happened during a tick.
type EventKind uint8

const (
	EventEnemyKilled EventKind = iota + 1
	EventPlayerHurt
	EventHitAbsorbed
	EventProjectileFired
	EventGameOver
)

// String returns the event name
func (k EventKind) String() string {
	switch k {
	case EventEnemyKilled:
		return "enemy_killed"
	case EventPlayerHurt:
		return "player_hurt"
	case EventHitAbsorbed:
		return "hit_absorbed"
	case EventProjectileFired:
		return "projectile_fired"
	case EventGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is a notification produced by a tick.
type Event struct {
	Kind   EventKind
	Frame  uint64
	Entity ecs.Handle

	// Amount is the damage dealt for hurt events.
	Amount int
}

// eventLog collects the events of the current tick.
type eventLog struct {
	frame  uint64
	events []Event
}

func (l *eventLog) emit(kind EventKind, h ecs.Handle, amount int) {
	l.events = append(l.events, Event{Kind: kind, Frame: l.frame, Entity: h, Amount: amount})
}

// drain returns the collected events and starts a new batch.
func (l *eventLog) drain() []Event {
	events := l.events
	l.events = nil
	return events
}

// Count returns how many events of kind k are in events.
func Count(events []Event, k EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
