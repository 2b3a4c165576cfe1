// Package telemetry provides population tracking, bookmarking, perf timing and run output.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/warren/components"
)

// EventCounts tallies what happened to the population over some span of
// phases. Workers keep their own EventCounts and the engine merges them
// after each generation, so no field is ever written concurrently.
type EventCounts struct {
	RabbitBirths    int
	FoxBirths       int
	RabbitsEaten    int
	FoxesStarved    int
	RabbitConflicts int // rabbits removed by losing a contested cell
	FoxConflicts    int // foxes removed by losing a contested cell
	DeferredMoves   int // moves routed through another worker's queue
}

// RecordBirth records a newborn left behind by a moving parent.
func (e *EventCounts) RecordBirth(kind components.Kind) {
	if kind == components.KindRabbit {
		e.RabbitBirths++
	} else {
		e.FoxBirths++
	}
}

// RecordConflictLoss records an entity that lost a contested cell.
func (e *EventCounts) RecordConflictLoss(kind components.Kind) {
	if kind == components.KindRabbit {
		e.RabbitConflicts++
	} else {
		e.FoxConflicts++
	}
}

// Add accumulates o into e.
func (e *EventCounts) Add(o EventCounts) {
	e.RabbitBirths += o.RabbitBirths
	e.FoxBirths += o.FoxBirths
	e.RabbitsEaten += o.RabbitsEaten
	e.FoxesStarved += o.FoxesStarved
	e.RabbitConflicts += o.RabbitConflicts
	e.FoxConflicts += o.FoxConflicts
	e.DeferredMoves += o.DeferredMoves
}

// Reset zeroes every counter.
func (e *EventCounts) Reset() {
	*e = EventCounts{}
}

// LogValue implements slog.LogValuer.
func (e EventCounts) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("rabbit_births", e.RabbitBirths),
		slog.Int("fox_births", e.FoxBirths),
		slog.Int("rabbits_eaten", e.RabbitsEaten),
		slog.Int("foxes_starved", e.FoxesStarved),
		slog.Int("rabbit_conflicts", e.RabbitConflicts),
		slog.Int("fox_conflicts", e.FoxConflicts),
		slog.Int("deferred_moves", e.DeferredMoves),
	)
}
